// Package reconciler turns extracted council file records into the
// relational batch the record store persists. Nested timeline and vote
// structures flatten into child tables keyed by synthesized
// identifiers, and action document references resolve into links
// against the record's canonical document listing.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"

	"laclerk-backend/lib/recordstore"
	"laclerk-backend/lib/scrapers/lacityclerk"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/reconciler")

// ActionId synthesizes the identifier of the i-th timeline entry of a
// record. Positions are zero based, so an unchanged page reconciles to
// identical identifiers every time.
func ActionId(fileId string, i int) string {
	return fmt.Sprintf("%s-%da", fileId, i)
}

// DocumentId synthesizes the identifier of the i-th entry of a
// record's canonical document listing.
func DocumentId(fileId string, i int) string {
	return fmt.Sprintf("%s-%dd", fileId, i)
}

// Reconcile flattens a batch of records into store tables. Each record
// contributes independently, so batch composition never changes any
// record's rows.
func Reconcile(ctx context.Context, batch []lacityclerk.Record) recordstore.Tables {
	_, span := tracer.Start(ctx, "Reconcile")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(batch)))

	tables := recordstore.Tables{}
	for _, record := range batch {
		reconcileRecord(record, &tables)
	}
	return tables
}

func reconcileRecord(record lacityclerk.Record, tables *recordstore.Tables) {
	tables.Summary = append(tables.Summary, recordstore.SummaryRow{
		FileId:       record.Id,
		Url:          record.Url,
		Title:        record.Title,
		DateReceived: record.DateReceived,
		LastModified: record.LastModified,
		Expiration:   record.Expiration,
		Reference:    record.Reference,
		District:     record.District,
		InitiatedBy:  record.InitiatedBy,
	})

	// document identifiers are positional over the canonical listing;
	// action references resolve against it by name
	documentIds := map[string]string{}
	documentNames := []string{}
	for i, document := range record.Documents {
		id := DocumentId(record.Id, i)
		tables.Documents = append(tables.Documents, recordstore.DocumentRow{
			DocumentId: id,
			FileId:     record.Id,
			Name:       document.Name,
			Url:        document.Url,
			Date:       document.Date,
		})
		if _, taken := documentIds[document.Name]; !taken {
			documentIds[document.Name] = id
			documentNames = append(documentNames, document.Name)
		}
	}

	seenLinks := map[recordstore.ActionDocumentLink]bool{}
	for i, action := range record.Actions {
		actionId := ActionId(record.Id, i)
		tables.Actions = append(tables.Actions, recordstore.ActionRow{
			ActionId: actionId,
			FileId:   record.Id,
			Date:     action.Date,
			Activity: action.Activity,
		})

		for _, document := range action.Documents {
			documentId, ok := documentIds[document.Name]
			if !ok {
				// a reference naming no listed document is dropped, not
				// guessed; the nearest listing name helps diagnose it
				slog.Info(
					"action references unlisted document",
					"file_id", record.Id,
					"action_id", actionId,
					"name", document.Name,
					"nearest", nearestName(document.Name, documentNames),
				)
				continue
			}
			link := recordstore.ActionDocumentLink{
				ActionId:   actionId,
				DocumentId: documentId,
			}
			if seenLinks[link] {
				continue
			}
			seenLinks[link] = true
			tables.ActionDocuments = append(tables.ActionDocuments, link)
		}
	}

	if record.Vote == nil {
		return
	}
	tables.VoteSummary = append(tables.VoteSummary, recordstore.VoteSummaryRow{
		FileId:      record.Id,
		MeetingDate: record.Vote.MeetingDate,
		MeetingType: record.Vote.MeetingType,
		VoteAction:  record.Vote.VoteAction,
		VoteGiven:   record.Vote.VoteGiven,
	})
	for _, member := range record.Vote.Members {
		tables.Members = append(tables.Members, recordstore.MemberVoteRow{
			FileId:     record.Id,
			MemberName: member.MemberName,
			Cd:         member.Cd,
			Vote:       member.Vote,
		})
	}
}

func nearestName(name string, candidates []string) string {
	best := ""
	bestScore := 0.0
	for _, candidate := range candidates {
		score := matchr.JaroWinkler(name, candidate, false)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}
