package commands

import (
	"log/slog"
	"os"

	"crickrank/lib/rankdb"
	"crickrank/lib/serviceutil"
	"crickrank/services/rankings"
	"crickrank/services/rankings/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	exportInput *string
	exportDb    *string
)

func init() {
	exportInput = exportCmd.Flags().String("input", rankings.DefaultOutput, "The master file to export.")
	exportDb = exportCmd.Flags().String("db", "rankings.db", "The sqlite database to export into.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--input <path/to/master.csv.gz>] [--db <path/to/rankings.db>]",
	Short: "Mirrors the master file into a sqlite database for ad-hoc querying.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		rows, loaded, err := store.Load(*exportInput)
		if err != nil {
			serviceutil.Fatal("failed to load master file", err)
		}
		if !loaded {
			serviceutil.Fatal("no master file found", os.ErrNotExist)
		}

		db, err := rankdb.Open(*exportDb)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer db.Close()

		mirror := make([]rankdb.Row, len(rows))
		for i, r := range rows {
			mirror[i] = rankdb.Row{
				Date:     r.Date,
				Format:   r.Format,
				Category: r.Category,
				Rank:     r.Rank,
				Player:   r.Player,
				Rating:   r.Rating,
			}
		}
		if err := db.Put(ctx, mirror); err != nil {
			serviceutil.Fatal("failed to write rankings", err)
		}

		total, err := db.Count(ctx)
		if err != nil {
			serviceutil.Fatal("failed to count rankings", err)
		}
		slog.Info("exported master file", "db", *exportDb, "rows", total)

		summary, err := db.Summary(ctx)
		if err != nil {
			serviceutil.Fatal("failed to summarize rankings", err)
		}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Format", "Category", "Rows", "Latest"})
		for _, p := range summary {
			t.AppendRow(table.Row{p.Format, p.Category, p.Rows, p.Latest})
		}
		t.Render()
	},
}
