package rankings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"crickrank/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const rankingPage = `<html><body>
<h1>Ranking of players</h1>
<table>
	<tr><th>Rank</th><th>Player</th><th>Rating</th></tr>
	<tr><td> 1 </td><td> G. Pollock </td><td>927</td></tr>
	<tr><td>2</td><td>D. Bradman</td><td>911</td></tr>
	<tr><td>3</td><td>B. Richards</td><td>895</td></tr>
	<tr><td>malformed row with too few cells</td></tr>
</table>
</body></html>`

func testScraper(t *testing.T, handler http.Handler) (Scraper, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewScraper(ScraperOptions{
		BaseUrl: srv.URL,
		Backoff: time.Millisecond,
	}), srv
}

func TestFetchUnitParsesTable(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:rankings")
	defer cleanup()

	var gotPath atomic.Value
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		fmt.Fprint(w, rankingPage)
	}))

	unit := Unit{
		Date:     Date(1971, time.January, 5),
		Format:   FormatODI,
		Category: CategoryBatting,
	}
	records := scraper.FetchUnit(context.Background(), unit)

	require.Equal(t, "/odi/batting/1971/01/05/", gotPath.Load())
	require.Len(t, records, 3)
	require.Equal(t, Record{
		Date:     unit.Date,
		Format:   FormatODI,
		Category: CategoryBatting,
		Rank:     "1",
		Player:   "G. Pollock",
		Rating:   "927",
	}, records[0])
	require.Equal(t, "D. Bradman", records[1].Player)
	require.Equal(t, "895", records[2].Rating)
}

func TestFetchUnitCapsRowCount(t *testing.T) {
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var page strings.Builder
		page.WriteString("<table><tr><th>Rank</th><th>Player</th><th>Rating</th></tr>")
		for i := 1; i <= 150; i++ {
			fmt.Fprintf(&page, "<tr><td>%d</td><td>player %d</td><td>%d</td></tr>", i, i, 900-i)
		}
		page.WriteString("</table>")
		fmt.Fprint(w, page.String())
	}))

	records := scraper.FetchUnit(context.Background(), Unit{
		Date:     Date(2000, time.March, 7),
		Format:   FormatTest,
		Category: CategoryBowling,
	})
	require.Len(t, records, 100)
	require.Equal(t, "100", records[99].Rank)
}

func TestFetchUnitEmptyPageIsDefinitive(t *testing.T) {
	var hits atomic.Int64
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "<table><tr><th>Rank</th></tr></table>")
	}))

	records := scraper.FetchUnit(context.Background(), Unit{
		Date:     Date(1971, time.January, 1),
		Format:   FormatODI,
		Category: CategoryBatting,
	})
	require.Empty(t, records)
	// an empty table does not burn the retry budget
	require.EqualValues(t, 1, hits.Load())
}

func TestFetchUnitRetriesThenGivesUp(t *testing.T) {
	var hits atomic.Int64
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	records := scraper.FetchUnit(context.Background(), Unit{
		Date:     Date(1971, time.January, 1),
		Format:   FormatODI,
		Category: CategoryBatting,
	})
	require.Empty(t, records)
	require.EqualValues(t, 3, hits.Load())
}

func TestFetchUnitRecoversAfterFailedAttempt(t *testing.T) {
	var hits atomic.Int64
	scraper, _ := testScraper(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, rankingPage)
	}))

	records := scraper.FetchUnit(context.Background(), Unit{
		Date:     Date(1971, time.January, 5),
		Format:   FormatODI,
		Category: CategoryBatting,
	})
	require.Len(t, records, 3)
	require.EqualValues(t, 2, hits.Load())
}
