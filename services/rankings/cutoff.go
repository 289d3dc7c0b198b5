package rankings

import (
	"time"

	"crickrank/lib/timezone"
)

// LastTuesday returns the date of the most recent Tuesday in the
// publisher's zone, the inclusive upper bound for which ranking tables
// are assumed to exist. Rankings go up on Tuesdays (IST); in strict
// mode a Tuesday "today" is treated as not yet published and the
// previous Tuesday is returned instead.
func LastTuesday(now time.Time, strict bool) time.Time {
	ist := now.In(timezone.Location)

	delta := (int(ist.Weekday()) - int(time.Tuesday)) % 7
	if delta < 0 {
		delta += 7
	}
	if strict && delta == 0 {
		delta = 7
	}

	d := ist.AddDate(0, 0, -delta)
	return Date(d.Year(), d.Month(), d.Day())
}
