package lacityclerk

import (
	"context"
	"fmt"
	"strings"

	"laclerk-backend/lib/dateutil"
	"laclerk-backend/lib/htmlutil"
	"laclerk-backend/lib/textutil"

	"golang.org/x/net/html"
)

// MalformedHistoryLineError reports a file history line that does not
// split into a date and an activity. Guessing a split would fabricate
// timeline data, so the line fails the record instead.
type MalformedHistoryLineError struct {
	Line string
}

func (e MalformedHistoryLineError) Error() string {
	return fmt.Sprintf("file history line %q does not split into date and activity", e.Line)
}

// extractTimeline merges the two activity feeds of a record page into
// one ordered timeline: first every row of the tabular "File
// Activities" feed, then every line of the free text "File History"
// feed, each feed in its own page order.
//
// The concatenation order is an observable contract. Downstream
// identifier synthesis is positional, so entries are never re-sorted
// chronologically.
func extractTimeline(ctx context.Context, page Page) ([]ActionEntry, error) {
	ctx, span := tracer.Start(ctx, "extractTimeline")
	defer span.End()

	entries, err := activityEntries(ctx, page)
	if err != nil {
		return nil, err
	}

	history, err := historyEntries(page)
	if err != nil {
		return nil, err
	}

	return append(entries, history...), nil
}

func activityEntries(ctx context.Context, page Page) ([]ActionEntry, error) {
	table, err := page.FieldTable("File Activities")
	if err != nil {
		return nil, err
	}

	header, rows := htmlutil.ParseTable(table)
	dateCol := htmlutil.ColumnIndex(header, "Date")
	activityCol := htmlutil.ColumnIndex(header, "Activity")
	if dateCol < 0 || activityCol < 0 {
		return nil, StructuralError{Anchor: "File Activities header"}
	}

	entries := []ActionEntry{}
	for _, row := range rows {
		if len(row) <= dateCol || len(row) <= activityCol {
			return nil, fmt.Errorf("file activities row has %d cells", len(row))
		}

		date, err := dateutil.Parse(row[dateCol].Text)
		if err != nil {
			return nil, err
		}

		// the third column holds a document icon; its ordinal keys the
		// showtip lookup table, 0 meaning no reference
		documentIndex := 0
		for _, cell := range row {
			if cell.Image > 0 {
				documentIndex = cell.Image
				break
			}
		}
		documents, err := resolveDocumentRef(page, documentIndex)
		if err != nil {
			return nil, err
		}

		entries = append(entries, ActionEntry{
			Date:      date,
			Activity:  textutil.Clean(row[activityCol].Text, false),
			Documents: documents,
		})
	}
	return entries, nil
}

func historyEntries(page Page) ([]ActionEntry, error) {
	value := page.Value("File History")
	if value.Length() == 0 {
		// plenty of records carry no free text history
		return nil, nil
	}

	entries := []ActionEntry{}
	for _, line := range historyLines(value.Nodes) {
		idx := strings.Index(line, "- ")
		if idx < 0 {
			return nil, MalformedHistoryLineError{Line: textutil.Clean(line, false)}
		}

		date, err := dateutil.Parse(textutil.StripInner(line[:idx]))
		if err != nil {
			return nil, err
		}

		entries = append(entries, ActionEntry{
			Date:      date,
			Activity:  textutil.Clean(line[idx+2:], false),
			Documents: []DocumentEntry{},
		})
	}
	return entries, nil
}

// each history line is whatever precedes a <br>, usually a bare text
// node but occasionally wrapped in an inline element; trailing text
// with no <br> after it is not part of the history. Non-empty lines
// are never dropped here, a line that cannot be split fails later in
// historyEntries.
func historyLines(nodes []*html.Node) []string {
	var lines []string
	for _, node := range nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if !htmlutil.IsElement(child, "br") {
				continue
			}
			prev := child.PrevSibling
			if prev == nil || htmlutil.IsElement(prev, "br") {
				continue
			}

			var line string
			switch prev.Type {
			case html.TextNode:
				line = prev.Data
			case html.ElementNode:
				line = htmlutil.GetText(prev)
			}
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}
