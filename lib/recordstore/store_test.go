package recordstore

import (
	"context"
	"testing"

	"laclerk-backend/lib/recordstore/db"
	"laclerk-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func sampleTables() Tables {
	return Tables{
		Actions: []ActionRow{
			{ActionId: "21-1247-0a", FileId: "21-1247", Date: "2021-11-10", Activity: "Council action final."},
			{ActionId: "21-1247-1a", FileId: "21-1247", Date: "2021-11-09", Activity: "Council adopted item forthwith."},
		},
		Documents: []DocumentRow{
			{DocumentId: "21-1247-0d", FileId: "21-1247", Name: "Motion", Url: "/docs/motion.pdf", Date: "2021-10-27"},
		},
		Summary: []SummaryRow{
			{
				FileId: "21-1247", Url: "https://example.org/?cfnumber=21-1247",
				Title: "Street Lighting Improvements", DateReceived: "2021-10-27",
				LastModified: "2021-11-10", Expiration: "2023-05-25",
				Reference: "14-0694", District: "CD 13", InitiatedBy: "Department of Water and Power",
			},
		},
		VoteSummary: []VoteSummaryRow{
			{FileId: "21-1247", MeetingDate: "2021-11-09", MeetingType: "Regular", VoteAction: "Adopted", VoteGiven: "Yes"},
		},
		Members: []MemberVoteRow{
			{FileId: "21-1247", MemberName: "krekorian", Cd: 2, Vote: "yes"},
			{FileId: "21-1247", MemberName: "price", Cd: 9, Vote: "absent"},
		},
		ActionDocuments: []ActionDocumentLink{
			{ActionId: "21-1247-0a", DocumentId: "21-1247-0d"},
		},
	}
}

func TestMergeIdempotent(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "recordstore",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	store := NewStore(res.DB)
	tables := sampleTables()

	// merging the same batch twice must not duplicate anything
	require.NoError(t, store.Merge(ctx, tables))
	require.NoError(t, store.Merge(ctx, tables))

	for table, expected := range map[string]int{
		"actions":           2,
		"documents":         1,
		"summary":           1,
		"vote":              1,
		"members":           2,
		"actions_documents": 1,
	} {
		count, err := store.CountRows(ctx, table)
		require.NoError(t, err)
		require.Equal(t, expected, count, table)
	}
}

func TestMergeAppendsChangedRows(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "recordstore",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	store := NewStore(res.DB)

	require.NoError(t, store.Merge(ctx, sampleTables()))

	// a re-extraction where the record changed appends rows instead of
	// rewriting them; the changed row differs in some column so it is a
	// new row under the all-columns uniqueness rule
	changed := sampleTables()
	changed.Actions[0].Activity = "Council action final. (corrected)"
	require.NoError(t, store.Merge(ctx, changed))

	actions, err := store.Actions(ctx, "21-1247")
	require.NoError(t, err)
	require.Len(t, actions, 3)

	count, err := store.CountRows(ctx, "summary")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestStoreQueries(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "recordstore",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	store := NewStore(res.DB)
	require.NoError(t, store.Merge(ctx, sampleTables()))

	documents, err := store.Documents(ctx, "21-1247")
	require.NoError(t, err)
	require.Len(t, documents, 1)
	require.Equal(t, "Motion", documents[0].Name)

	summary, err := store.Summary(ctx, "21-1247")
	require.NoError(t, err)
	require.Len(t, summary, 1)
	require.Equal(t, "CD 13", summary[0].District)

	links, err := store.Links(ctx, "21-1247-0a")
	require.NoError(t, err)
	require.Equal(t, []ActionDocumentLink{{ActionId: "21-1247-0a", DocumentId: "21-1247-0d"}}, links)

	_, err = store.CountRows(ctx, "nonsense")
	require.Error(t, err)
}
