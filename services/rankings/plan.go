package rankings

import "time"

// the day before the first published ranking table (tuesday
// 1971-01-05), used as the watermark for a pair with no persisted rows
var watermarkSentinel = Date(1971, time.January, 4)

// Watermarks derives the newest persisted date per (format, category)
// pair. Pairs with no usable rows sit at the sentinel so planning
// starts from the very first table.
func Watermarks(master []Record) map[Pair]time.Time {
	marks := make(map[Pair]time.Time, len(Formats)*len(Categories))
	for _, f := range Formats {
		for _, c := range Categories {
			marks[Pair{Format: f, Category: c}] = watermarkSentinel
		}
	}

	for _, r := range master {
		if r.Date.IsZero() {
			continue
		}
		p := Pair{Format: r.Format, Category: r.Category}
		if mark, ok := marks[p]; ok && r.Date.After(mark) {
			marks[p] = r.Date
		}
	}
	return marks
}

// PlanGaps enumerates every missing fetch unit: for each pair, one unit
// per date strictly after its watermark up to the cutoff inclusive. An
// empty result means the dataset is already complete up to the cutoff.
func PlanGaps(master []Record, cutoff time.Time) []Unit {
	marks := Watermarks(master)

	var units []Unit
	for _, f := range Formats {
		for _, c := range Categories {
			mark := marks[Pair{Format: f, Category: c}]
			for d := mark.AddDate(0, 0, 1); !d.After(cutoff); d = d.AddDate(0, 0, 1) {
				units = append(units, Unit{Date: d, Format: f, Category: c})
			}
		}
	}
	return units
}
