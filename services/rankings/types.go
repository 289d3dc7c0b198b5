// Package rankings implements the incremental fetch-and-merge engine
// for historical cricket ranking tables: it works out which
// (date, format, category) pages are missing from the master dataset,
// scrapes them concurrently and folds the results back in.
package rankings

import "time"

type Format string

const (
	FormatODI  Format = "odi"
	FormatTest Format = "test"
)

var Formats = []Format{FormatODI, FormatTest}

type Category string

const (
	CategoryBatting Category = "batting"
	CategoryBowling Category = "bowling"
)

var Categories = []Category{CategoryBatting, CategoryBowling}

// DateLayout is how dates appear both in the source urls and in the
// persisted csv.
const DateLayout = "2006/01/02"

// Date builds a calendar date. All dates in this package are plain
// calendar days pinned to UTC midnight so they compare with ==.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Record is one observed ranking table row. A zero Date marks a row
// whose persisted date could not be parsed; such rows are carried along
// but never contribute to watermarks.
type Record struct {
	Date     time.Time
	Format   Format
	Category Category
	Rank     string
	Player   string
	Rating   string
}

// identity is the full dedup tuple, two records with equal identities
// are the same observation
type identity struct {
	date     string
	format   Format
	category Category
	rank     string
	player   string
	rating   string
}

func (r Record) key() identity {
	return identity{
		date:     r.Date.Format(DateLayout),
		format:   r.Format,
		category: r.Category,
		rank:     r.Rank,
		player:   r.Player,
		rating:   r.Rating,
	}
}

// Pair is one (format, category) ranking table family.
type Pair struct {
	Format   Format
	Category Category
}

// Unit is a single fetch target: one table family on one date.
type Unit struct {
	Date     time.Time
	Format   Format
	Category Category
}
