package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hobbydesk/paintctl/pkg/catalog"
	"github.com/hobbydesk/paintctl/pkg/database"
	"github.com/hobbydesk/paintctl/pkg/logger"
)

var indexCmd = &cobra.Command{
	Use:   "index [combined-file]",
	Short: "Load a combined file into the catalog database",
	Long: `Reads a previously generated combined.json and records every paint in
the local catalog database as a new run. Without an argument the
combined file under the configured root is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

// openDatabase initializes the catalog database for commands that need it.
func openDatabase() error {
	dbPath := Cfg.Database.Path
	if dbPath == "" {
		dbPath = database.GetDefaultDBPath()
	}
	return database.Initialize(dbPath)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := filepath.Join(Cfg.General.Root, Cfg.Combine.Output)
	if len(args) > 0 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read %s: %v", path, err)
		return err
	}

	records, err := catalog.ParseRecords(data)
	if err != nil {
		logger.Error("Failed to parse %s: %v", path, err)
		return err
	}

	if err := openDatabase(); err != nil {
		logger.Error("Failed to open catalog database: %v", err)
		return err
	}
	defer database.Close()

	run, err := database.CreateRun(path, len(records))
	if err != nil {
		logger.Error("Failed to record run: %v", err)
		return err
	}

	if err := database.AddPaints(run.ID, records); err != nil {
		logger.Error("Failed to index paints: %v", err)
		return err
	}

	fmt.Printf("Indexed %d paints from %s as run %d\n", len(records), path, run.ID)
	return nil
}
