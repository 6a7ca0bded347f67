package htmlutil

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TableCell is one logical cell after inline markup has been expanded
// into structured columns.
type TableCell struct {
	Text string
	// set when the source cell held an anchor target
	Href string
	// 1-based ordinal of the source cell's image among all images in
	// the table, 0 when the cell held no image. The clerk system uses
	// an icon as a per-row reference marker, so the ordinal is data.
	Image int
}

// ParseTable flattens a <table> selection into header texts and rows
// of cells. A cell wrapping an anchor contributes two cells: the
// visible text, then the link target (recovering the URL instead of
// losing it to plain text). A cell wrapping an image contributes that
// image's ordinal, anchor-wrapped or not. Every non-header <tr> yields
// exactly one row no
// matter how many anchors or images it carries.
func ParseTable(table *goquery.Selection) (header []string, rows [][]TableCell) {
	imageOrdinal := 0
	var tableNode *html.Node
	if len(table.Nodes) > 0 {
		tableNode = table.Nodes[0]
	}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// rows of nested tables belong to their own table
		if closest := tr.Closest("table"); len(closest.Nodes) > 0 && closest.Nodes[0] != tableNode {
			return
		}

		ths := tr.ChildrenFiltered("th")
		if ths.Length() > 0 && header == nil {
			ths.Each(func(_ int, th *goquery.Selection) {
				header = append(header, strings.TrimSpace(th.Text()))
			})
			return
		}

		tds := tr.ChildrenFiltered("td")
		if tds.Length() == 0 {
			return
		}
		var row []TableCell
		tds.Each(func(_ int, td *goquery.Selection) {
			row = append(row, expandCell(td, &imageOrdinal)...)
		})
		rows = append(rows, row)
	})
	return header, rows
}

func expandCell(td *goquery.Selection, imageOrdinal *int) []TableCell {
	// icons are frequently wrapped in a javascript anchor, so the image
	// check has to win over the anchor check
	if td.Find("img").Length() > 0 {
		*imageOrdinal++
		return []TableCell{{
			Text:  strconv.Itoa(*imageOrdinal),
			Image: *imageOrdinal,
		}}
	}

	if anchor := td.Find("a").First(); anchor.Length() > 0 {
		href := anchor.AttrOr("href", "")
		return []TableCell{
			{Text: strings.TrimSpace(anchor.Text())},
			{Text: href, Href: href},
		}
	}

	var text string
	for _, node := range td.Nodes {
		text += GetText(node)
	}
	return []TableCell{{Text: strings.TrimSpace(text)}}
}

// ColumnIndex locates a header column by its trimmed text, -1 when the
// table carries no such column.
func ColumnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}
