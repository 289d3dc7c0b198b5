package rankings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crickrank/lib/timezone"
	"crickrank/services/rankings/store"
)

const (
	DefaultBaseUrl = "https://www.relianceiccrankings.com/datespecific"
	DefaultOutput  = "ICC_Rankings.csv.gz"
)

type Config struct {
	// BaseUrl of the date-specific ranking pages.
	BaseUrl string `json:"base_url"`
	// Output is the master csv path, gzipped when it ends in .gz.
	Output string `json:"output"`
	// Workers caps fetch concurrency, 0 means one per cpu.
	Workers int `json:"workers"`
	// Retries is the per-unit attempt budget, 0 means the default of 3.
	Retries int `json:"retries"`
}

func (c Config) withDefaults() Config {
	if c.BaseUrl == "" {
		c.BaseUrl = DefaultBaseUrl
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return c
}

// Run executes one harvest: load the master dataset, plan the units
// missing below the publication cutoff, fetch them concurrently, merge
// and save. Runs that find nothing to do (or fetch nothing) leave the
// output file untouched.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, timezone.Now())
}

func run(ctx context.Context, cfg Config, now time.Time) error {
	cfg = cfg.withDefaults()

	rows, loaded, err := store.Load(cfg.Output)
	if err != nil {
		return fmt.Errorf("load master dataset: %w", err)
	}
	master := FromRows(rows)
	if loaded {
		slog.InfoContext(ctx, "loaded existing master file", "path", cfg.Output, "rows", len(master))
	} else {
		slog.InfoContext(ctx, "no existing file, starting fresh", "path", cfg.Output)
	}

	cutoff := LastTuesday(now, true)
	units := PlanGaps(master, cutoff)
	if len(units) == 0 {
		slog.InfoContext(ctx, "nothing new to scrape", "cutoff", cutoff.Format(DateLayout))
		return nil
	}
	slog.InfoContext(ctx, "planned scrape jobs", "jobs", len(units), "cutoff", cutoff.Format(DateLayout))

	scraper := NewScraper(ScraperOptions{
		BaseUrl: cfg.BaseUrl,
		Retries: cfg.Retries,
	})
	fresh := RunAll(ctx, scraper, units, cfg.Workers)
	if len(fresh) == 0 {
		slog.InfoContext(ctx, "no new data scraped")
		return nil
	}
	slog.InfoContext(ctx, "scraped new rows", "rows", len(fresh))

	merged := Merge(master, fresh)
	if err := store.Save(cfg.Output, ToRows(merged)); err != nil {
		return fmt.Errorf("save master dataset: %w", err)
	}
	slog.InfoContext(ctx, "updated master file", "path", cfg.Output, "rows", len(merged))
	return nil
}

// FromRows parses persisted csv rows into records. Unparseable dates
// are coerced to the zero time instead of failing the load; those rows
// survive merges but never advance a watermark.
func FromRows(rows []store.Row) []Record {
	records := make([]Record, len(rows))
	for i, row := range rows {
		date, err := time.Parse(DateLayout, row.Date)
		if err != nil {
			date = time.Time{}
		}
		records[i] = Record{
			Date:     date,
			Format:   Format(row.Format),
			Category: Category(row.Category),
			Rank:     row.Rank,
			Player:   row.Player,
			Rating:   row.Rating,
		}
	}
	return records
}

// ToRows serializes records for persistence. A zero date becomes an
// empty cell.
func ToRows(records []Record) []store.Row {
	rows := make([]store.Row, len(records))
	for i, r := range records {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(DateLayout)
		}
		rows[i] = store.Row{
			Date:     date,
			Format:   string(r.Format),
			Category: string(r.Category),
			Rank:     r.Rank,
			Player:   r.Player,
			Rating:   r.Rating,
		}
	}
	return rows
}
