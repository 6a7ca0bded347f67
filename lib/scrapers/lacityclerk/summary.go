package lacityclerk

import (
	"laclerk-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// extractSummary fills the per-record metadata fields. Every field is
// optional on the page; only a date that fails to parse is fatal.
func extractSummary(page Page, record *Record) error {
	var err error
	fields := []struct {
		label  string
		target *string
	}{
		{"Title", &record.Title},
		{"Date Received / Introduced", &record.DateReceived},
		{"Last Changed Date", &record.LastModified},
		{"Expiration Date", &record.Expiration},
		{"Reference Numbers", &record.Reference},
		{"Council District", &record.District},
		{"Initiated by", &record.InitiatedBy},
	}
	for _, f := range fields {
		*f.target, err = page.Field(f.label)
		if err != nil {
			return err
		}
	}

	record.Movers = nameList(page.Value("Mover"))
	record.Seconds = nameList(page.Value("Second"))
	return nil
}

// mover/second values hold one nested div per council member.
func nameList(value *goquery.Selection) []string {
	names := []string{}
	value.Find("div").Each(func(_ int, div *goquery.Selection) {
		names = append(names, textutil.Clean(div.Text(), true))
	})
	return names
}
