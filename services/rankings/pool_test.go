package rankings

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestRunAllCollectsEveryUnit(t *testing.T) {
	// one row per page, rank derived from the requested date so every
	// unit's contribution is distinguishable
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		day := parts[len(parts)-1]
		fmt.Fprintf(w,
			"<table><tr><th>h</th></tr><tr><td>%s</td><td>p</td><td>900</td></tr></table>",
			day,
		)
	}))

	var units []Unit
	for day := 1; day <= 9; day++ {
		units = append(units, Unit{
			Date:     Date(1971, time.January, day),
			Format:   FormatODI,
			Category: CategoryBatting,
		})
	}

	records := RunAll(context.Background(), scraper, units, 4)
	if len(records) != len(units) {
		t.Fatalf("expected %d records, got %d", len(units), len(records))
	}

	seen := map[string]bool{}
	for _, r := range records {
		seen[r.Rank] = true
	}
	for day := 1; day <= 9; day++ {
		rank := fmt.Sprintf("%02d", day)
		if !seen[rank] {
			t.Fatalf("unit for day %s missing from pooled results", rank)
		}
	}
}

func TestRunAllToleratesFailingUnits(t *testing.T) {
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/1971/01/02/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "<table><tr><th>h</th></tr><tr><td>1</td><td>p</td><td>900</td></tr></table>")
	}))

	units := []Unit{
		{Date: Date(1971, time.January, 1), Format: FormatODI, Category: CategoryBatting},
		{Date: Date(1971, time.January, 2), Format: FormatODI, Category: CategoryBatting},
		{Date: Date(1971, time.January, 3), Format: FormatODI, Category: CategoryBatting},
	}

	records := RunAll(context.Background(), scraper, units, 2)
	if len(records) != 2 {
		t.Fatalf("expected the two healthy units' rows, got %d", len(records))
	}
}

func TestRunAllEmptyPlan(t *testing.T) {
	scraper := NewScraper(ScraperOptions{BaseUrl: "http://localhost:0"})
	if got := RunAll(context.Background(), scraper, nil, 0); got != nil {
		t.Fatalf("expected nil for an empty plan, got %v", got)
	}
}
