package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbydesk/paintctl/pkg/catalog"
	"github.com/hobbydesk/paintctl/pkg/logger"
)

var combineCmd = &cobra.Command{
	Use:   "combine [path]",
	Short: "Merge all paint files into one deduplicated combined.json",
	Long: `Walks the repository tree, parses every *.json paint file, and writes
a single combined array under the root.

Records are deduplicated by their "id" field: the first occurrence in
traversal order wins, later copies are dropped and reported. Records
without a usable id are always kept. Files that fail to read, fail to
parse, or are not arrays of objects are skipped with a warning; only a
failure to write the combined output aborts the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCombine,
}

var (
	combineOutput  string
	combineNoDedup bool
)

func init() {
	combineCmd.Flags().StringVarP(&combineOutput, "output", "o", "", "Output file name (default: combined.json)")
	combineCmd.Flags().BoolVar(&combineNoDedup, "no-dedup", false, "Keep duplicate ids instead of dropping them")
	rootCmd.AddCommand(combineCmd)
}

func combineOptions(args []string) catalog.Options {
	root := Cfg.General.Root
	if len(args) > 0 {
		root = args[0]
	}

	output := combineOutput
	if output == "" {
		output = Cfg.Combine.Output
	}

	return catalog.Options{
		Root:       root,
		OutputName: output,
		Dedup:      Cfg.Combine.Dedup && !combineNoDedup,
		SkipDirs:   Cfg.General.SkipDirs,
		SkipFiles:  Cfg.General.SkipFiles,
	}
}

func runCombine(cmd *cobra.Command, args []string) error {
	opts := combineOptions(args)

	report := catalog.Combine(opts)
	path, err := catalog.WriteCombined(opts, report.Records)
	if err != nil {
		logger.Error("%v", err)
		return err
	}

	if opts.Dedup {
		fmt.Printf("Wrote %d records to %s (%d duplicates skipped)\n",
			len(report.Records), path, len(report.Duplicates))
	} else {
		fmt.Printf("Wrote %d records to %s\n", len(report.Records), path)
	}
	return nil
}
