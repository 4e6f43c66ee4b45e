package commands

import (
	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/services/covidstats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var importDb *string

func init() {
	importDb = importCmd.Flags().String("db", "", "The database to write the snapshot to.")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <path/to/data.csv> [--db <path/to/covid.db>]",
	Short: "Imports a csv export (owid-style) as a snapshot.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openDatabase(*importDb, cfg)
		defer database.Close()
		service := covidstats.NewService(database, nil)

		info, err := service.ImportCSV(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to import csv", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Snapshot", "Rows", "Columns", "Source"})
		t.AppendRow(table.Row{info.Id, info.Rows, info.Columns, info.Source})
		t.Render()
	},
}
