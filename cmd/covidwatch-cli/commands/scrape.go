package commands

import (
	"log/slog"
	"time"

	"covidwatch-backend/lib/scrapers/worldometer"
	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/services/covidstats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scrapeDb *string

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "", "The database to write the snapshot to.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/covid.db>]",
	Short: "Scrapes the statistics page and stores a snapshot with the global counters.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		site, err := worldometer.NewClient(cfg.Source.ClientOptions())
		if err != nil {
			serviceutil.Fatal("failed to initialize site client", err)
		}

		database := openDatabase(*scrapeDb, cfg)
		defer database.Close()
		service := covidstats.NewService(database, site)

		t1 := time.Now()
		info, err := service.ScrapeSnapshot(cmd.Context(), cfg.Source.TableConfig())
		if err != nil {
			serviceutil.Fatal("failed to scrape", err)
		}
		t2 := time.Now()
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())

		counters, err := service.GlobalCounters(cmd.Context(), info.Id)
		if err != nil {
			serviceutil.Fatal("failed to read global counters", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Snapshot", "Rows", "Columns", "Total Cases", "Total Deaths", "Total Recovered"})
		t.AppendRow(table.Row{
			info.Id,
			info.Rows,
			info.Columns,
			counters.TotalCases,
			counters.TotalDeaths,
			counters.TotalRecovered,
		})
		t.Render()
	},
}
