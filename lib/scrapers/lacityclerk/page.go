package lacityclerk

import (
	"fmt"
	"strings"

	"laclerk-backend/lib/dateutil"
	"laclerk-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// StructuralError reports a page that is missing one of the markup
// anchors every record page is expected to carry. It fails the
// enclosing record's extraction; the batch keeps going.
type StructuralError struct {
	Anchor string
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("expected page anchor %q is missing", e.Anchor)
}

// Page wraps one parsed record page. All extractors go through its
// label/value accessors instead of crawling the markup themselves.
//
// The clerk system lays out record metadata as pairs of
// <div class="reclabel"> / <div class="rectext"> siblings.
type Page struct {
	doc *goquery.Document
}

func NewPage(doc *goquery.Document) Page {
	return Page{doc: doc}
}

// FindLabel returns the first label div whose text equals label
// exactly. The selection is empty when the page has no such label.
func (p Page) FindLabel(label string) *goquery.Selection {
	return p.doc.Find("div.reclabel").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == label
	}).First()
}

// Value returns the value div paired with the given label; empty
// selection when the label (or its value sibling) is absent.
func (p Page) Value(label string) *goquery.Selection {
	return p.FindLabel(label).NextAllFiltered("div.rectext").First()
}

// Field returns the cleaned text of a labeled value, or "" when the
// label is absent. Absence of optional metadata is expected, not an
// error. Labels naming a date get canonicalized date text instead;
// unparsable date text is fatal to the field.
func (p Page) Field(label string) (string, error) {
	value := p.Value(label)
	if value.Length() == 0 {
		return "", nil
	}
	if strings.Contains(strings.ToLower(label), "date") {
		parsed, err := dateutil.Parse(value.Text())
		if err != nil {
			return "", fmt.Errorf("field %q: %w", label, err)
		}
		return parsed, nil
	}
	return textutil.Clean(value.Text(), false), nil
}

// FieldTable narrows a labeled value down to the scrollable data table
// the clerk system nests inside it.
func (p Page) FieldTable(label string) (*goquery.Selection, error) {
	value := p.Value(label)
	if value.Length() == 0 {
		return nil, StructuralError{Anchor: label}
	}
	table := value.Find("table#inscrolltbl").First()
	if table.Length() == 0 {
		return nil, StructuralError{Anchor: label + " table"}
	}
	return table, nil
}
