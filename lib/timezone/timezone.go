package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// ranking tables are published on an IST schedule, so all weekday/date
// arithmetic has to happen in that zone regardless of where the job runs
func Now() time.Time {
	return time.Now().In(Location)
}
