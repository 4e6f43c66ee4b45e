package commands

import (
	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/lib/summary"
	"covidwatch-backend/services/covidstats"

	"github.com/spf13/cobra"
)

var summaryDb *string
var summaryId *int64

func init() {
	summaryDb = summaryCmd.PersistentFlags().String("db", "", "The database to read from.")
	summaryId = summaryCmd.PersistentFlags().Int64("id", 0, "The snapshot to summarize, defaults to the latest.")
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.AddCommand(summaryCountryCmd)
	summaryCmd.AddCommand(summaryContinentCmd)
	summaryCmd.AddCommand(summaryGlobalCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate summaries over a stored snapshot.",
}

// summaryEngine loads the selected snapshot and wraps it, the
// database handle closes before this returns since the dataset is
// fully in memory by then.
func summaryEngine(cmd *cobra.Command) *summary.Engine {
	cfg := loadConfig()

	database := openDatabase(*summaryDb, cfg)
	service := covidstats.NewService(database, nil)
	stored := loadSnapshot(cmd.Context(), service, *summaryId)
	database.Close()

	return summary.NewEngine(stored.Data)
}

var summaryCountryCmd = &cobra.Command{
	Use:   "country <iso code>",
	Short: "Peak measure values for one country.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := summaryEngine(cmd)
		s, err := engine.CountrySummary(args[0])
		if err != nil {
			serviceutil.Fatal("failed to summarize", err)
		}
		renderMeasureSummary(s)
	},
}

var summaryContinentCmd = &cobra.Command{
	Use:   "continent <name>",
	Short: "Peak measure values for one continent.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := summaryEngine(cmd)
		s, err := engine.ContinentSummary(args[0])
		if err != nil {
			serviceutil.Fatal("failed to summarize", err)
		}
		renderMeasureSummary(s)
	},
}

var summaryGlobalCmd = &cobra.Command{
	Use:   "global",
	Short: "Peak measure values over every row.",
	Run: func(cmd *cobra.Command, args []string) {
		engine := summaryEngine(cmd)
		s, err := engine.GlobalSummary()
		if err != nil {
			serviceutil.Fatal("failed to summarize", err)
		}
		renderMeasureSummary(s)
	},
}
