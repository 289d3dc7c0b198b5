package rankings

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Merge folds freshly scraped records into the master dataset:
// concatenate, drop duplicate identity tuples (first one wins, they are
// identical by definition) and sort canonically. Merging the same batch
// twice yields the same dataset.
func Merge(master, fresh []Record) []Record {
	merged := make([]Record, 0, len(master)+len(fresh))
	seen := make(map[identity]struct{}, len(master)+len(fresh))

	for _, batch := range [2][]Record{master, fresh} {
		for _, r := range batch {
			k := r.key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, r)
		}
	}

	slices.SortStableFunc(merged, compareRecords)
	return merged
}

// canonical dataset order: (format, category, date, rank)
func compareRecords(a, b Record) int {
	if c := strings.Compare(string(a.Format), string(b.Format)); c != 0 {
		return c
	}
	if c := strings.Compare(string(a.Category), string(b.Category)); c != 0 {
		return c
	}
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return compareRanks(a.Rank, b.Rank)
}

// ranks come off the page as text but "10" still has to sort after "2",
// so compare numerically whenever both sides are plain integers
func compareRanks(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return strings.Compare(a, b)
}
