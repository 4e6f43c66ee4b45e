package commands

import (
	"covidwatch-backend/lib/summary"
	"covidwatch-backend/services/covidstats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var infoDb *string
var infoId *int64

func init() {
	infoDb = infoCmd.Flags().String("db", "", "The database to read from.")
	infoId = infoCmd.Flags().Int64("id", 0, "The snapshot to inspect, defaults to the latest.")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [--id <snapshot>]",
	Short: "Shows a snapshot's shape, column kinds and missing value counts.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openDatabase(*infoDb, cfg)
		defer database.Close()
		service := covidstats.NewService(database, nil)

		stored := loadSnapshot(cmd.Context(), service, *infoId)
		engine := summary.NewEngine(stored.Data)

		missing := map[string]int{}
		for _, count := range engine.MissingValueCounts(true) {
			missing[count.Column] = count.Count
		}

		info := engine.BasicInfo()
		t := newTable()
		t.AppendHeader(table.Row{"Column", "Kind", "Missing"})
		for _, col := range info.Columns {
			t.AppendRow(table.Row{col.Name, col.Kind.String(), missing[col.Name]})
		}
		t.AppendFooter(table.Row{"rows", info.Rows, ""})
		t.Render()
	},
}
