package lacityclerk

import (
	"log/slog"
	"strconv"
	"strings"

	"laclerk-backend/lib/dateutil"
	"laclerk-backend/lib/htmlutil"
	"laclerk-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const voteMarkerText = "Council Vote Information"

// extractVote returns the council vote summary and roll call, or nil
// when the page reports that no votes were found. The marker itself
// must always be present.
func extractVote(page Page) (*VoteInfo, error) {
	marker := page.doc.Find("font").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == voteMarkerText
	}).First()
	if marker.Length() == 0 {
		return nil, StructuralError{Anchor: voteMarkerText}
	}
	markerNode := marker.Nodes[0]

	status := htmlutil.NextMatch(markerNode, func(n *html.Node) bool {
		return htmlutil.IsElement(n, "div")
	})
	if status == nil {
		return nil, StructuralError{Anchor: "vote status"}
	}
	if textutil.Clean(htmlutil.GetText(status), true) == "no votes were found." {
		return nil, nil
	}

	summaryNode := htmlutil.NextMatch(markerNode, func(n *html.Node) bool {
		return htmlutil.IsElement(n, "table")
	})
	if summaryNode == nil {
		return nil, StructuralError{Anchor: "vote summary table"}
	}

	vote := &VoteInfo{}
	err := fillVoteSummary(page.doc.FindNodes(summaryNode), vote)
	if err != nil {
		return nil, err
	}

	rollCallNode := htmlutil.NextSiblingMatch(summaryNode, func(n *html.Node) bool {
		return htmlutil.IsElement(n, "table")
	})
	if rollCallNode == nil {
		return nil, StructuralError{Anchor: "vote roll call table"}
	}

	vote.Members, err = memberVotes(page.doc.FindNodes(rollCallNode))
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// the summary table is key/value pairs, one per row, keys rendered
// like "Meeting Date:".
func fillVoteSummary(table *goquery.Selection, vote *VoteInfo) error {
	rows := table.Find("tr")
	for i := range rows.Nodes {
		cells := rows.Eq(i).Find("td")
		if cells.Length() < 2 {
			continue
		}

		key := textutil.Clean(cells.Eq(0).Text(), true)
		key = strings.TrimSuffix(key, ":")
		key = strings.ReplaceAll(key, " ", "_")

		value := textutil.Clean(cells.Eq(1).Text(), false)
		if strings.Contains(key, "date") {
			var err error
			value, err = dateutil.Parse(value)
			if err != nil {
				return err
			}
		}

		switch key {
		case "meeting_date":
			vote.MeetingDate = value
		case "meeting_type":
			vote.MeetingType = value
		case "vote_action":
			vote.VoteAction = value
		case "vote_given":
			vote.VoteGiven = value
		default:
			slog.Debug("unrecognized vote summary key", "key", key)
		}
	}
	return nil
}

func memberVotes(table *goquery.Selection) ([]MemberVote, error) {
	header, rows := htmlutil.ParseTable(table)
	nameCol := htmlutil.ColumnIndex(header, "Member Name")
	cdCol := htmlutil.ColumnIndex(header, "CD")
	voteCol := htmlutil.ColumnIndex(header, "Vote")
	if nameCol < 0 || cdCol < 0 || voteCol < 0 {
		return nil, StructuralError{Anchor: "vote roll call header"}
	}

	members := []MemberVote{}
	for _, row := range rows {
		if len(row) <= nameCol || len(row) <= cdCol || len(row) <= voteCol {
			return nil, StructuralError{Anchor: "vote roll call row"}
		}
		cd, err := strconv.Atoi(strings.TrimSpace(row[cdCol].Text))
		if err != nil {
			return nil, StructuralError{Anchor: "vote roll call district number"}
		}
		members = append(members, MemberVote{
			MemberName: textutil.Clean(row[nameCol].Text, true),
			Cd:         cd,
			Vote:       textutil.Clean(row[voteCol].Text, true),
		})
	}
	return members, nil
}
