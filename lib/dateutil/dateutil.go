package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// the clerk system is not consistent about how it renders dates; the
// same page can carry "05/25/2021" in a table cell and "May 25, 2021"
// in a free text block.
var layouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/06",
}

// ParseError reports date text that matched none of the known layouts.
// Callers must treat this as fatal for the enclosing field; silently
// substituting a default date would corrupt the merged timeline.
type ParseError struct {
	Raw string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("unrecognized date text %q", e.Raw)
}

// Parse canonicalizes raw date text into YYYY-MM-DD. Parsing the
// canonical form again is a no-op.
func Parse(raw string) (string, error) {
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" {
		return "", ParseError{Raw: raw}
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, cleaned)
		if err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", ParseError{Raw: raw}
}
