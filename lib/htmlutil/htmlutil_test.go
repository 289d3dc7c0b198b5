package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestRowCells(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<table>
			<tr><th>Rank</th><th>Player</th><th>Rating</th></tr>
			<tr>
				<td> 1 </td>
				<td><a href="/p/1">G. <b>Pollock</b></a></td>
				<td>927</td>
			</tr>
			<tr><td>2</td></tr>
		</table>
	`))
	require.NoError(t, err)

	rows := doc.Find("table tr")
	require.Equal(t, 3, rows.Length())

	// header row has no <td>
	require.Empty(t, RowCells(rows.Eq(0)))

	require.Equal(t,
		[]string{"1", "G. Pollock", "927"},
		RowCells(rows.Eq(1)),
	)
	require.Equal(t, []string{"2"}, RowCells(rows.Eq(2)))
}

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<p>  D.K.\n\t Lillee  </p>",
	))
	require.NoError(t, err)
	require.Equal(t, "D.K. Lillee", CleanText(doc.Find("p")))
}
