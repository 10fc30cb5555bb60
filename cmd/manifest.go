package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbydesk/paintctl/pkg/catalog"
	"github.com/hobbydesk/paintctl/pkg/logger"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest [path]",
	Short: "Generate manifest.json for the paint data repository",
	Long: `Scans every paint file under the root and writes manifest.json:
the current commit hash, per-file sha256 hashes, brand and range names,
and paint counts, sorted by brand then range.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	opts := combineOptions(args)

	m := catalog.GenerateManifest(opts)
	path, err := catalog.WriteManifest(opts, m)
	if err != nil {
		logger.Error("%v", err)
		return err
	}

	fmt.Printf("Wrote manifest for %d files (%d paints) to %s\n",
		len(m.Files), m.TotalPaints, path)
	return nil
}
