package commands

import (
	"time"

	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/services/covidstats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyDb *string

func init() {
	historyDb = historyCmd.Flags().String("db", "", "The database to list snapshots from.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--db <path/to/covid.db>]",
	Short: "Lists stored snapshots, oldest first.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openDatabase(*historyDb, cfg)
		defer database.Close()
		service := covidstats.NewService(database, nil)

		infos, err := service.History(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list snapshots", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Scraped At", "Rows", "Columns", "Source"})
		for _, info := range infos {
			t.AppendRow(table.Row{
				info.Id,
				info.ScrapedAt.Format(time.DateTime),
				info.Rows,
				info.Columns,
				info.Source,
			})
		}
		t.Render()
	},
}
