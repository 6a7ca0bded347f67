package lacityclerk

import (
	"fmt"
	"strings"

	"laclerk-backend/lib/dateutil"
	"laclerk-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// extractDocuments returns the record's canonical document listing.
// The listing is anchored by a header cell literally reading "Title";
// the listing table itself follows it in document order.
func extractDocuments(page Page) ([]DocumentEntry, error) {
	marker := page.doc.Find("th").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == "Title"
	}).First()
	if marker.Length() == 0 {
		return nil, StructuralError{Anchor: "Title"}
	}

	tableNode := htmlutil.NextMatch(marker.Nodes[0], func(n *html.Node) bool {
		return htmlutil.IsElement(n, "table")
	})
	if tableNode == nil {
		return nil, StructuralError{Anchor: "document listing table"}
	}

	return documentRows(page.doc.FindNodes(tableNode))
}

// resolveDocumentRef resolves a document icon ordinal from an activity
// row into the documents of its showtip lookup table. Ordinal 0 means
// the row references nothing.
func resolveDocumentRef(page Page, index int) ([]DocumentEntry, error) {
	if index == 0 {
		return []DocumentEntry{}, nil
	}

	anchor := fmt.Sprintf("showtip_%d", index)
	container := page.doc.Find("div#" + anchor)
	if container.Length() == 0 {
		return nil, StructuralError{Anchor: anchor}
	}

	documents := []DocumentEntry{}
	tables := container.Find("table")
	for i := range tables.Nodes {
		rows, err := documentRows(tables.Eq(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", anchor, err)
		}
		documents = append(documents, rows...)
	}
	return documents, nil
}

// documentRows parses a headerless (name, url, date) document table.
// The name cell wraps an anchor, which ParseTable splits into separate
// name and url cells.
func documentRows(table *goquery.Selection) ([]DocumentEntry, error) {
	_, rows := htmlutil.ParseTable(table)

	documents := []DocumentEntry{}
	for _, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("document row has %d cells, expected name, url and date", len(row))
		}
		date, err := dateutil.Parse(row[2].Text)
		if err != nil {
			return nil, err
		}
		documents = append(documents, DocumentEntry{
			Name: row[0].Text,
			Url:  row[1].Text,
			Date: date,
		})
	}
	return documents, nil
}
