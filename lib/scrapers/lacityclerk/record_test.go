package lacityclerk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"laclerk-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func loadPage(t *testing.T, name string) *goquery.Document {
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestAssemble(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "lacityclerk")
	defer cleanup()

	doc := loadPage(t, "viewrecord.html")
	record, err := Assemble(context.Background(), doc, "21-1247", RecordURL(DefaultBaseUrl, "21-1247"))
	require.NoError(t, err)

	require.Equal(t, "21-1247", record.Id)
	require.Equal(t, "Department of Water and Power / Street Lighting Improvements / Council District 13", record.Title)
	require.Equal(t, "2021-10-27", record.DateReceived)
	require.Equal(t, "2021-11-10", record.LastModified)
	require.Equal(t, "2023-05-25", record.Expiration)
	require.Equal(t, "14-0694", record.Reference)
	require.Equal(t, "CD 13", record.District)
	require.Equal(t, "Department of Water and Power", record.InitiatedBy)
	require.Equal(t, []string{"krekorian (2)", "o'farrell (13)"}, record.Movers)
	require.Equal(t, []string{"price (9)"}, record.Seconds)

	expectedDocuments := []DocumentEntry{
		{Name: "Motion", Url: "/docs/motion.pdf", Date: "2021-10-27"},
		{Name: "Report A", Url: "/docs/report-a.pdf", Date: "2021-10-27"},
		{Name: "Council Action", Url: "/docs/council-action.pdf", Date: "2021-11-10"},
	}
	if diff := cmp.Diff(expectedDocuments, record.Documents); diff != "" {
		t.Fatal(diff)
	}

	require.NotNil(t, record.Vote)
	require.Equal(t, "2021-11-09", record.Vote.MeetingDate)
	require.Equal(t, "Regular", record.Vote.MeetingType)
	require.Equal(t, "Adopted", record.Vote.VoteAction)
	require.Equal(t, "Yes", record.Vote.VoteGiven)
	expectedMembers := []MemberVote{
		{MemberName: "krekorian", Cd: 2, Vote: "yes"},
		{MemberName: "martinez", Cd: 6, Vote: "yes"},
		{MemberName: "price", Cd: 9, Vote: "absent"},
	}
	if diff := cmp.Diff(expectedMembers, record.Vote.Members); diff != "" {
		t.Fatal(diff)
	}
}

// tabular activities come first in table order, then the free text
// history in page order; the merge never re-sorts by date.
func TestTimelineOrdering(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "lacityclerk")
	defer cleanup()

	doc := loadPage(t, "viewrecord.html")
	record, err := Assemble(context.Background(), doc, "21-1247", RecordURL(DefaultBaseUrl, "21-1247"))
	require.NoError(t, err)

	require.Len(t, record.Actions, 5)

	expected := []ActionEntry{
		{
			Date:     "2021-11-10",
			Activity: "Council action final.",
			Documents: []DocumentEntry{
				{Name: "Council Action", Url: "/docs/council-action.pdf", Date: "2021-11-10"},
			},
		},
		{
			Date:      "2021-11-09",
			Activity:  "Council adopted item forthwith.",
			Documents: []DocumentEntry{},
		},
		{
			Date:     "2021-10-27",
			Activity: "Motion referred to Energy Committee.",
			Documents: []DocumentEntry{
				{Name: "Motion", Url: "/docs/motion.pdf", Date: "2021-10-27"},
				{Name: "Report A", Url: "/docs/report-a.pdf", Date: "2021-10-27"},
			},
		},
		{
			Date:      "2021-10-27",
			Activity:  "Motion document(s) referred to Energy Committee.",
			Documents: []DocumentEntry{},
		},
		{
			Date:      "2021-10-29",
			Activity:  "File ordered to Council.",
			Documents: []DocumentEntry{},
		},
	}
	if diff := cmp.Diff(expected, record.Actions); diff != "" {
		t.Fatal(diff)
	}
}

func TestAssembleNoVotes(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "lacityclerk")
	defer cleanup()

	doc := loadPage(t, "viewrecord_novotes.html")
	record, err := Assemble(context.Background(), doc, "20-0631", RecordURL(DefaultBaseUrl, "20-0631"))
	require.NoError(t, err)

	require.Nil(t, record.Vote)
	// optional metadata that is simply absent reads as empty
	require.Equal(t, "", record.District)
	require.Equal(t, []string{}, record.Movers)
	require.Len(t, record.Actions, 1)
	require.Len(t, record.Documents, 1)
}

func TestMalformedHistoryLine(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "lacityclerk")
	defer cleanup()

	markup := `
	<div class="reclabel">File Activities</div>
	<div class="rectext">
		<table id="inscrolltbl">
			<tr><th>Date</th><th>Activity</th><th></th></tr>
			<tr><td>03/02/2020</td><td>Adopted.</td><td></td></tr>
		</table>
	</div>
	<div class="reclabel">File History</div>
	<div class="rectext">this line has no separator<br></div>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	_, err = extractTimeline(context.Background(), NewPage(doc))
	require.Error(t, err)

	var malformed MalformedHistoryLineError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, "this line has no separator", malformed.Line)
}

// a roll call row shorter than its header fails the record with an
// error instead of taking down the whole batch.
func TestRollCallShortRow(t *testing.T) {
	markup := `
	<font>Council Vote Information</font>
	<div class="votesect">
		<table>
			<tr><td>Meeting Date:</td><td>11/09/2021</td></tr>
		</table>
		<table>
			<tr><th>Member Name</th><th>CD</th><th>Vote</th></tr>
			<tr><td>Krekorian</td><td>2</td></tr>
		</table>
	</div>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	_, err = extractVote(NewPage(doc))
	require.Error(t, err)

	var structural StructuralError
	require.True(t, errors.As(err, &structural))
	require.Equal(t, "vote roll call row", structural.Anchor)
}

// history lines are sometimes wrapped in an inline element; they still
// count, both the well formed and the malformed ones.
func TestHistoryLineInElement(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "lacityclerk")
	defer cleanup()

	markup := `
	<div class="reclabel">File Activities</div>
	<div class="rectext">
		<table id="inscrolltbl">
			<tr><th>Date</th><th>Activity</th><th></th></tr>
		</table>
	</div>
	<div class="reclabel">File History</div>
	<div class="rectext">
		10/27/2021 - Motion referred to committee.<br>
		<b>10/29/2021 - File ordered to Council.</b><br>
	</div>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	entries, err := extractTimeline(context.Background(), NewPage(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "2021-10-29", entries[1].Date)
	require.Equal(t, "File ordered to Council.", entries[1].Activity)

	malformed := strings.Replace(markup, "10/29/2021 - ", "", 1)
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(malformed))
	require.NoError(t, err)

	_, err = extractTimeline(context.Background(), NewPage(doc))
	var lineErr MalformedHistoryLineError
	require.True(t, errors.As(err, &lineErr))
	require.Equal(t, "File ordered to Council.", lineErr.Line)
}

func TestStructuralAnchorMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	page := NewPage(doc)

	_, err = extractDocuments(page)
	var structural StructuralError
	require.True(t, errors.As(err, &structural))

	_, err = extractVote(page)
	require.True(t, errors.As(err, &structural))

	_, err = page.FieldTable("File Activities")
	require.True(t, errors.As(err, &structural))
}

func TestFileIdFromURL(t *testing.T) {
	require.Equal(
		t, "21-1247",
		FileIdFromURL("https://cityclerk.lacity.org/lacityclerkconnect/index.cfm?fa=ccfi.viewrecord&cfnumber=21-1247"),
	)
}
