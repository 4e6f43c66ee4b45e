package commands

import (
	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/lib/summary"
	"covidwatch-backend/services/covidstats"

	"github.com/spf13/cobra"
)

var previewDb *string
var previewId *int64
var previewRows *int

func init() {
	previewDb = previewCmd.Flags().String("db", "", "The database to read from.")
	previewId = previewCmd.Flags().Int64("id", 0, "The snapshot to preview, defaults to the latest.")
	previewRows = previewCmd.Flags().Int("rows", 10, "How many rows to sample.")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview [--rows <count>]",
	Short: "Prints a random sample of a snapshot's rows.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		database := openDatabase(*previewDb, cfg)
		defer database.Close()
		service := covidstats.NewService(database, nil)

		stored := loadSnapshot(cmd.Context(), service, *previewId)
		engine := summary.NewEngine(stored.Data)

		sampled, err := engine.Sample(*previewRows)
		if err != nil {
			serviceutil.Fatal("failed to sample rows", err)
		}
		renderDataset(sampled)
	},
}
