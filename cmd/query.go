package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hobbydesk/paintctl/pkg/database"
	"github.com/hobbydesk/paintctl/pkg/logger"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the catalog database",
	Long:  `Inspect indexed runs and their paints.`,
}

var queryRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent index runs",
	Run:   runQueryRuns,
}

var queryPaintsCmd = &cobra.Command{
	Use:   "paints [run_id]",
	Short: "List paints from a run",
	Args:  cobra.MaximumNArgs(1),
	Run:   runQueryPaints,
}

var queryBrandsCmd = &cobra.Command{
	Use:   "brands [run_id]",
	Short: "Paint counts per brand for a run",
	Args:  cobra.MaximumNArgs(1),
	Run:   runQueryBrands,
}

var (
	queryBrand      string
	queryOutputJSON bool
	queryLimit      int
)

func init() {
	queryPaintsCmd.Flags().StringVar(&queryBrand, "brand", "", "Filter paints by brand")
	queryPaintsCmd.Flags().BoolVar(&queryOutputJSON, "json", false, "Output as JSON")
	queryBrandsCmd.Flags().BoolVar(&queryOutputJSON, "json", false, "Output as JSON")
	queryRunsCmd.Flags().IntVar(&queryLimit, "limit", 10, "Number of runs to show")

	queryCmd.AddCommand(queryRunsCmd)
	queryCmd.AddCommand(queryPaintsCmd)
	queryCmd.AddCommand(queryBrandsCmd)
	rootCmd.AddCommand(queryCmd)
}

// resolveRunID picks the run from args, falling back to the latest run.
func resolveRunID(args []string) (int64, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid run id %q", args[0])
		}
		return id, nil
	}
	run, err := database.GetLatestRun()
	if err != nil {
		return 0, fmt.Errorf("no indexed runs found")
	}
	return run.ID, nil
}

func runQueryRuns(cmd *cobra.Command, args []string) {
	if err := openDatabase(); err != nil {
		logger.Error("Failed to open catalog database: %v", err)
		return
	}
	defer database.Close()

	runs, err := database.GetRecentRuns(queryLimit)
	if err != nil {
		logger.Error("Failed to list runs: %v", err)
		return
	}
	if len(runs) == 0 {
		logger.Info("No runs indexed yet. Run 'paintctl index' first.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tPAINTS\tINDEXED AT")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
			run.ID, run.Source, run.RecordCount, run.IndexedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
}

func runQueryPaints(cmd *cobra.Command, args []string) {
	if err := openDatabase(); err != nil {
		logger.Error("Failed to open catalog database: %v", err)
		return
	}
	defer database.Close()

	runID, err := resolveRunID(args)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	var paints []database.Paint
	if queryBrand != "" {
		paints, err = database.GetPaintsByBrand(runID, queryBrand)
	} else {
		paints, err = database.GetPaints(runID)
	}
	if err != nil {
		logger.Error("Failed to query paints: %v", err)
		return
	}

	if queryOutputJSON {
		out, _ := json.MarshalIndent(paints, "", "  ")
		fmt.Println(string(out))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tRANGE\tNAME\tHEX")
	for _, p := range paints {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.PaintID, p.Brand, p.Range, p.Name, p.Hex)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d paints\n", len(paints))
}

func runQueryBrands(cmd *cobra.Command, args []string) {
	if err := openDatabase(); err != nil {
		logger.Error("Failed to open catalog database: %v", err)
		return
	}
	defer database.Close()

	runID, err := resolveRunID(args)
	if err != nil {
		logger.Error("%v", err)
		return
	}

	counts, err := database.GetBrandCounts(runID)
	if err != nil {
		logger.Error("Failed to query brands: %v", err)
		return
	}

	if queryOutputJSON {
		out, _ := json.MarshalIndent(counts, "", "  ")
		fmt.Println(string(out))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BRAND\tPAINTS")
	total := 0
	for _, bc := range counts {
		brand := bc.Brand
		if brand == "" {
			brand = "(unknown)"
		}
		fmt.Fprintf(w, "%s\t%d\n", brand, bc.Count)
		total += bc.Count
	}
	w.Flush()
	fmt.Printf("\nTotal: %d paints\n", total)
}
