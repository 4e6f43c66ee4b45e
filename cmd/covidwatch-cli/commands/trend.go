package commands

import (
	"covidwatch-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	summaryCmd.AddCommand(summaryTrendCmd)
}

var summaryTrendCmd = &cobra.Command{
	Use:   "trend <iso code> <measure>",
	Short: "Shows one country's measure over time.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engine := summaryEngine(cmd)

		points, err := engine.Trend(args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to compute trend", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Date", args[1]})
		for _, p := range points {
			t.AppendRow(table.Row{p.Date.Format(), p.Value.Format()})
		}
		t.Render()
	},
}
