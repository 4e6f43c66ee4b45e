package commands

import (
	"covidwatch-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var topN *int

func init() {
	topN = summaryTopCmd.Flags().Int("n", 10, "How many locations to list.")
	summaryCmd.AddCommand(summaryTopCmd)
}

var summaryTopCmd = &cobra.Command{
	Use:   "top <measure> [--n <count>]",
	Short: "Ranks locations by the peak value of a measure.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := summaryEngine(cmd)

		ranked, err := engine.TopN(args[0], *topN)
		if err != nil {
			serviceutil.Fatal("failed to rank locations", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"#", "Location", args[0]})
		for i, lv := range ranked {
			t.AppendRow(table.Row{i + 1, lv.Location, lv.Value.Format()})
		}
		t.Render()
	},
}
