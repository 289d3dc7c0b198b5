package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"crickrank/lib/configutil"
	"crickrank/lib/serviceutil"
	"crickrank/lib/telemetry"
	"crickrank/services/rankings"

	"github.com/spf13/cobra"
)

var (
	scrapeConfig *string
	scrapeOutput *string
)

func init() {
	scrapeConfig = scrapeCmd.Flags().String("config", "config.json5", "The configuration file to read.")
	scrapeOutput = scrapeCmd.Flags().String("output", "", "Override the configured master file path.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config <path>] [--output <path/to/master.csv.gz>]",
	Short: "Scrapes the ranking tables missing from the master file and merges them in.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		tel, err := telemetry.SetupFromEnv(ctx, "crickrank")
		if err == nil {
			defer tel.Shutdown(context.Background())
			telemetry.InstrumentPerfStats(ctx)
		} else if !os.IsNotExist(err) {
			serviceutil.Fatal("failed to setup telemetry", err)
		}

		cfg, err := configutil.ReadConfig[rankings.Config](*scrapeConfig)
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}
		if *scrapeOutput != "" {
			cfg.Output = *scrapeOutput
		}

		t1 := time.Now()
		if err := rankings.Run(ctx, cfg); err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())
	},
}
