package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbydesk/paintctl/pkg/config"
	"github.com/hobbydesk/paintctl/pkg/logger"
)

var (
	Verbose    bool
	ConfigPath string
	Cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "paintctl",
	Short: "paintctl - Hobby paint catalog data tool",
	Long: `
paintctl maintains a repository of hobby paint data: per-brand JSON
files, each holding an array of paint records.

Commands:
  combine    Merge every paint file into a single deduplicated combined.json
  manifest   Generate manifest.json with per-file hashes and counts
  index      Load a combined file into the local catalog database
  query      Inspect indexed paints, brands, and runs

Quick Start:
  paintctl combine            # Merge all paint files in the current repo
  paintctl manifest           # Regenerate the manifest
  paintctl index              # Index the combined file for querying
  paintctl query brands 1     # Paint counts per brand for run #1
`,
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRun: initializeApp,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", "", "Config file path (default: ~/.paintctl/config.yaml)")
}

func initializeApp(cmd *cobra.Command, args []string) {
	cfgPath := ConfigPath
	if cfgPath == "" {
		cfgPath = config.GetDefaultConfigPath()
	}

	var err error
	Cfg, err = config.LoadOrCreate(cfgPath)
	if err != nil {
		logger.Warning("Failed to load config: %v", err)
		Cfg = config.DefaultConfig()
	}

	if !Verbose && Cfg.General.Verbose {
		Verbose = true
	}
	logger.SetVerbose(Verbose)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("paintctl v1.0.0")
		fmt.Println("Hobby paint catalog data tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
