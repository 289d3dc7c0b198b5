package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocationOffset(t *testing.T) {
	// IST has no daylight saving, the offset is +5:30 year round
	cases := []time.Time{
		time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC),
	}
	for _, now := range cases {
		_, offset := now.In(Location).Zone()
		require.Equal(t, 5*3600+30*60, offset)
	}
}
