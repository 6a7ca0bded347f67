package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func docFromString(t *testing.T, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseTableAnchorsAndImages(t *testing.T) {
	doc := docFromString(t, `
		<table id="acts">
			<tr><th>Date</th><th>Activity</th><th></th></tr>
			<tr><td>05/25/2021</td><td>Adopted</td><td><img src="doc.gif"></td></tr>
			<tr><td>05/20/2021</td><td>Referred</td><td></td></tr>
			<tr><td>05/18/2021</td><td>Filed</td><td><img src="doc.gif"></td></tr>
		</table>`)

	header, rows := ParseTable(doc.Find("table#acts"))
	require.Equal(t, []string{"Date", "Activity", ""}, header)
	// one row per logical <tr> no matter what the cells contain
	require.Len(t, rows, 3)

	require.Equal(t, 1, rows[0][2].Image)
	require.Equal(t, 0, rows[1][2].Image)
	// ordinals count images per table, not per row
	require.Equal(t, 2, rows[2][2].Image)
}

func TestParseTableAnchorWrappedImage(t *testing.T) {
	doc := docFromString(t, `
		<table id="acts">
			<tr><td>05/25/2021</td><td><a href="javascript:showtip(1)"><img src="doc.gif"></a></td></tr>
		</table>`)

	_, rows := ParseTable(doc.Find("table#acts"))
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2)
	// the icon keeps its ordinal even when wrapped in a script anchor
	require.Equal(t, 1, rows[0][1].Image)
	require.Equal(t, "", rows[0][1].Href)
}

func TestParseTableSplitsAnchors(t *testing.T) {
	doc := docFromString(t, `
		<table id="docs">
			<tr><td><a href="/a.pdf">Report A</a></td><td>05/25/2021</td></tr>
			<tr><td><a href="/b.pdf">Report B</a></td><td>05/26/2021</td></tr>
		</table>`)

	_, rows := ParseTable(doc.Find("table#docs"))
	require.Len(t, rows, 2)
	// the anchor contributes a text cell plus a target cell
	require.Len(t, rows[0], 3)
	require.Equal(t, "Report A", rows[0][0].Text)
	require.Equal(t, "/a.pdf", rows[0][1].Href)
	require.Equal(t, "05/25/2021", rows[0][2].Text)
}

func TestParseTableIgnoresNestedRows(t *testing.T) {
	doc := docFromString(t, `
		<table id="outer">
			<tr><td>outer cell</td></tr>
			<tr><td>
				<table><tr><td>inner cell</td></tr></table>
			</td></tr>
		</table>`)

	_, rows := ParseTable(doc.Find("table#outer"))
	require.Len(t, rows, 2)
	require.Equal(t, "outer cell", rows[0][0].Text)
}

func TestNextMatch(t *testing.T) {
	doc := docFromString(t, `
		<div><font>Marker</font></div>
		<div><p>filler</p></div>
		<table id="target"><tr><td>cell</td></tr></table>`)

	marker := doc.Find("font").Nodes[0]
	table := NextMatch(marker, func(n *html.Node) bool { return IsElement(n, "table") })
	require.NotNil(t, table)
	require.Equal(t, "cell", strings.TrimSpace(GetText(table)))

	missing := NextMatch(marker, func(n *html.Node) bool { return IsElement(n, "video") })
	require.Nil(t, missing)
}

func TestNextSiblingMatch(t *testing.T) {
	doc := docFromString(t, `
		<div>
			<table id="first"><tr><td>a</td></tr></table>
			text in between
			<table id="second"><tr><td>b</td></tr></table>
		</div>`)

	first := doc.Find("table#first").Nodes[0]
	second := NextSiblingMatch(first, func(n *html.Node) bool { return IsElement(n, "table") })
	require.NotNil(t, second)
	require.Equal(t, "b", strings.TrimSpace(GetText(second)))
}

func TestColumnIndex(t *testing.T) {
	header := []string{"Date", "Activity", ""}
	require.Equal(t, 0, ColumnIndex(header, "Date"))
	require.Equal(t, 1, ColumnIndex(header, "activity"))
	require.Equal(t, -1, ColumnIndex(header, "Votes"))
}
