package rankdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	rows := []Row{
		{Date: "1971/01/05", Format: "odi", Category: "batting", Rank: "1", Player: "G. Pollock", Rating: "927"},
		{Date: "1971/01/05", Format: "odi", Category: "batting", Rank: "2", Player: "D. Bradman", Rating: "911"},
		{Date: "1971/01/12", Format: "test", Category: "bowling", Rank: "1", Player: "D.K. Lillee", Rating: "884"},
	}
	require.NoError(t, store.Put(ctx, rows))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	// putting the same rows again must not grow the mirror
	require.NoError(t, store.Put(ctx, rows))
	n, err = store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	summary, err := store.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, []PairSummary{
		{Format: "odi", Category: "batting", Rows: 2, Latest: "1971/01/05"},
		{Format: "test", Category: "bowling", Rows: 1, Latest: "1971/01/12"},
	}, summary)
}
