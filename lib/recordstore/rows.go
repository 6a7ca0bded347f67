// Package recordstore persists reconciled council file data. Every
// table row is uniquely constrained over all of its columns, so loading
// the same batch twice leaves the database unchanged.
package recordstore

// ActionRow is one timeline entry. ActionId is synthesized from the
// file id and the entry's position, so re-extraction of an unchanged
// page produces identical rows.
type ActionRow struct {
	ActionId string
	FileId   string
	Date     string
	Activity string
}

type DocumentRow struct {
	DocumentId string
	FileId     string
	Name       string
	Url        string
	Date       string
}

type SummaryRow struct {
	FileId       string
	Url          string
	Title        string
	DateReceived string
	LastModified string
	Expiration   string
	Reference    string
	District     string
	InitiatedBy  string
}

type VoteSummaryRow struct {
	FileId      string
	MeetingDate string
	MeetingType string
	VoteAction  string
	VoteGiven   string
}

type MemberVoteRow struct {
	FileId     string
	MemberName string
	Cd         int
	Vote       string
}

// ActionDocumentLink joins a timeline entry to a document of the same
// record's canonical listing.
type ActionDocumentLink struct {
	ActionId   string
	DocumentId string
}

// Tables is one reconciled batch, ready to merge.
type Tables struct {
	Actions         []ActionRow
	Documents       []DocumentRow
	Summary         []SummaryRow
	VoteSummary     []VoteSummaryRow
	Members         []MemberVoteRow
	ActionDocuments []ActionDocumentLink
}
