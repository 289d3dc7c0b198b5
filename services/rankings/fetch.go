package rankings

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crickrank/lib/htmlutil"
	"crickrank/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("crickrank.services.rankings")

const (
	// the source caps its tables at 100 ranked players
	maxRowsPerPage = 100

	defaultRetries = 3
	defaultBackoff = time.Second
	requestTimeout = time.Second * 10
)

type ScraperOptions struct {
	// BaseUrl is the prefix of the date-specific ranking pages, a page
	// lives at {BaseUrl}/{format}/{category}/{yyyy/mm/dd}/.
	BaseUrl string
	// Retries is the attempt budget per unit (default 3).
	Retries int
	// Backoff is the sleep between failed attempts (default 1s).
	Backoff time.Duration
}

// Scraper fetches single ranking pages. The http client is built once
// here with its headers and timeout; nothing about it mutates afterward.
type Scraper struct {
	http    *resty.Client
	baseUrl string
	retries int
	backoff time.Duration
}

func NewScraper(opts ScraperOptions) Scraper {
	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0")
	client.SetTimeout(requestTimeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, "crickrank.services.rankings.http")

	retries := opts.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return Scraper{
		http:    client,
		baseUrl: strings.TrimSuffix(opts.BaseUrl, "/"),
		retries: retries,
		backoff: backoff,
	}
}

func (s Scraper) unitUrl(unit Unit) string {
	return fmt.Sprintf(
		"%s/%s/%s/%s/",
		s.baseUrl, unit.Format, unit.Category, unit.Date.Format(DateLayout),
	)
}

// FetchUnit fetches and parses one unit's ranking table. It never
// fails outward: transient errors are retried up to the attempt budget
// and an exhausted budget degrades to an empty slice, identical to a
// page that parsed fine but held no rows. The next run re-plans such
// dates since the watermark only moves past dates that produced rows.
func (s Scraper) FetchUnit(ctx context.Context, unit Unit) []Record {
	ctx, span := tracer.Start(ctx, "FetchUnit")
	defer span.End()
	span.SetAttributes(
		attribute.String("date", unit.Date.Format(DateLayout)),
		attribute.String("format", string(unit.Format)),
		attribute.String("category", string(unit.Category)),
	)

	for attempt := 1; attempt <= s.retries; attempt++ {
		if attempt > 1 {
			time.Sleep(s.backoff)
		}

		records, err := s.fetchOnce(ctx, unit)
		if err != nil {
			span.RecordError(err)
			slog.DebugContext(ctx, "fetch attempt failed",
				"date", unit.Date.Format(DateLayout),
				"format", unit.Format,
				"category", unit.Category,
				"attempt", attempt,
				"err", err,
			)
			continue
		}
		// a parsed page with zero rows is definitive, not a failure
		return records
	}

	span.SetStatus(codes.Error, "retries exhausted")
	slog.WarnContext(ctx, "giving up on unit",
		"date", unit.Date.Format(DateLayout),
		"format", unit.Format,
		"category", unit.Category,
		"attempts", s.retries,
	)
	return nil
}

func (s Scraper) fetchOnce(ctx context.Context, unit Unit) ([]Record, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(s.unitUrl(unit))
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, err
	}

	var records []Record
	rows := doc.Find("table").First().Find("tr")
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			// header row
			return true
		}
		if i > maxRowsPerPage {
			return false
		}
		cells := htmlutil.RowCells(row)
		if len(cells) < 3 {
			return true
		}
		records = append(records, Record{
			Date:     unit.Date,
			Format:   unit.Format,
			Category: unit.Category,
			Rank:     cells[0],
			Player:   cells[1],
			Rating:   cells[2],
		})
		return true
	})

	return records, nil
}
