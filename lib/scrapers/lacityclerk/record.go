package lacityclerk

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DocumentEntry is one attached document: either a row of the record's
// canonical document listing or a copy referenced from an action row.
type DocumentEntry struct {
	Name string `json:"name"`
	Url  string `json:"url"`
	Date string `json:"date"`
}

// ActionEntry is one step of the merged activity timeline. Documents
// are copied by value; the activity feed and the document listing share
// no key at extraction time, so matching happens at reconciliation.
type ActionEntry struct {
	Date      string          `json:"date"`
	Activity  string          `json:"activity"`
	Documents []DocumentEntry `json:"documents"`
}

type MemberVote struct {
	MemberName string `json:"member_name"`
	Cd         int    `json:"cd"`
	Vote       string `json:"vote"`
}

type VoteInfo struct {
	MeetingDate string       `json:"meeting_date"`
	MeetingType string       `json:"meeting_type"`
	VoteAction  string       `json:"vote_action"`
	VoteGiven   string       `json:"vote_given"`
	Members     []MemberVote `json:"members"`
}

// Record is everything extracted from one council file page. Id is the
// council file number, stable across re-extraction, and is the join key
// for reconciliation.
type Record struct {
	Id           string          `json:"id"`
	Url          string          `json:"url"`
	Title        string          `json:"title"`
	DateReceived string          `json:"date_received"`
	LastModified string          `json:"last_modified"`
	Expiration   string          `json:"expiration"`
	Reference    string          `json:"reference"`
	District     string          `json:"district"`
	InitiatedBy  string          `json:"initiated_by"`
	Movers       []string        `json:"movers"`
	Seconds      []string        `json:"seconds"`
	Vote         *VoteInfo       `json:"vote_data"`
	Actions      []ActionEntry   `json:"actions"`
	Documents    []DocumentEntry `json:"documents"`
}

// FileIdFromURL derives the external record identifier from the
// trailing query segment of a record page URL.
func FileIdFromURL(pageUrl string) string {
	idx := strings.LastIndex(pageUrl, "=")
	if idx < 0 {
		return pageUrl
	}
	return pageUrl[idx+1:]
}

// Assemble extracts one Record from a parsed council file page. A
// failure anywhere fails the whole record; the caller isolates it from
// the rest of the batch.
func Assemble(ctx context.Context, doc *goquery.Document, fileId, pageUrl string) (Record, error) {
	ctx, span := tracer.Start(ctx, "Assemble")
	defer span.End()
	span.SetAttributes(attribute.String("file_id", fileId))

	page := NewPage(doc)
	record := Record{
		Id:  fileId,
		Url: pageUrl,
	}

	err := extractSummary(page, &record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "summary extraction failed")
		return Record{}, fmt.Errorf("summary: %w", err)
	}

	record.Vote, err = extractVote(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "vote extraction failed")
		return Record{}, fmt.Errorf("votes: %w", err)
	}

	record.Actions, err = extractTimeline(ctx, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "timeline extraction failed")
		return Record{}, fmt.Errorf("timeline: %w", err)
	}

	record.Documents, err = extractDocuments(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "document extraction failed")
		return Record{}, fmt.Errorf("documents: %w", err)
	}

	return record, nil
}
