package commands

import (
	"os"
	"time"

	"crickrank/lib/serviceutil"
	"crickrank/services/rankings"
	"crickrank/services/rankings/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsInput *string

func init() {
	statsInput = statsCmd.Flags().String("input", rankings.DefaultOutput, "The master file to summarize.")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [--input <path/to/master.csv.gz>]",
	Short: "Prints per format/category row counts and watermarks of the master file.",
	Run: func(cmd *cobra.Command, args []string) {
		rows, loaded, err := store.Load(*statsInput)
		if err != nil {
			serviceutil.Fatal("failed to load master file", err)
		}
		if !loaded {
			serviceutil.Fatal("no master file found", os.ErrNotExist)
		}

		records := rankings.FromRows(rows)
		counts := map[rankings.Pair]int{}
		for _, r := range records {
			counts[rankings.Pair{Format: r.Format, Category: r.Category}]++
		}
		marks := rankings.Watermarks(records)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Format", "Category", "Rows", "Watermark"})
		for _, f := range rankings.Formats {
			for _, c := range rankings.Categories {
				pair := rankings.Pair{Format: f, Category: c}
				watermark := "-"
				if mark := marks[pair]; mark.After(time.Time{}) && counts[pair] > 0 {
					watermark = mark.Format(rankings.DateLayout)
				}
				t.AppendRow(table.Row{f, c, counts[pair], watermark})
			}
		}
		t.AppendFooter(table.Row{"", "total", len(records), ""})
		t.Render()
	},
}
