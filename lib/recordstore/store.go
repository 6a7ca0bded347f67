package recordstore

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("recordstore")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Merge appends a reconciled batch in one transaction. Rows already
// present, compared over all columns, are skipped, so merging is
// idempotent. Either the whole batch lands or none of it does.
func (s *Store) Merge(ctx context.Context, tables Tables) error {
	ctx, span := tracer.Start(ctx, "Merge")
	defer span.End()
	span.SetAttributes(
		attribute.Int("actions", len(tables.Actions)),
		attribute.Int("documents", len(tables.Documents)),
		attribute.Int("summary", len(tables.Summary)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = mergeTables(ctx, tx, tables)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "merge failed")
		return err
	}
	return tx.Commit()
}

func mergeTables(ctx context.Context, tx *sql.Tx, tables Tables) error {
	for _, row := range tables.Actions {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO actions (action_id, file_id, date, activity)
			 VALUES (?, ?, ?, ?)`,
			row.ActionId, row.FileId, row.Date, row.Activity,
		)
		if err != nil {
			return err
		}
	}
	for _, row := range tables.Documents {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO documents (document_id, file_id, name, url, date)
			 VALUES (?, ?, ?, ?, ?)`,
			row.DocumentId, row.FileId, row.Name, row.Url, row.Date,
		)
		if err != nil {
			return err
		}
	}
	for _, row := range tables.Summary {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO summary (
				file_id, url, title, date_received, last_modified,
				expiration, reference, district, initiated_by
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.FileId, row.Url, row.Title, row.DateReceived, row.LastModified,
			row.Expiration, row.Reference, row.District, row.InitiatedBy,
		)
		if err != nil {
			return err
		}
	}
	for _, row := range tables.VoteSummary {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO vote (file_id, meeting_date, meeting_type, vote_action, vote_given)
			 VALUES (?, ?, ?, ?, ?)`,
			row.FileId, row.MeetingDate, row.MeetingType, row.VoteAction, row.VoteGiven,
		)
		if err != nil {
			return err
		}
	}
	for _, row := range tables.Members {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO members (file_id, member_name, cd, vote)
			 VALUES (?, ?, ?, ?)`,
			row.FileId, row.MemberName, row.Cd, row.Vote,
		)
		if err != nil {
			return err
		}
	}
	for _, row := range tables.ActionDocuments {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO actions_documents (action_id, document_id)
			 VALUES (?, ?)`,
			row.ActionId, row.DocumentId,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Actions returns every stored timeline row for one council file, in
// synthesized identifier order.
func (s *Store) Actions(ctx context.Context, fileId string) ([]ActionRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action_id, file_id, date, activity
		 FROM actions WHERE file_id = ? ORDER BY action_id`,
		fileId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActionRow
	for rows.Next() {
		var row ActionRow
		err = rows.Scan(&row.ActionId, &row.FileId, &row.Date, &row.Activity)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) Documents(ctx context.Context, fileId string) ([]DocumentRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, file_id, name, url, date
		 FROM documents WHERE file_id = ? ORDER BY document_id`,
		fileId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var row DocumentRow
		err = rows.Scan(&row.DocumentId, &row.FileId, &row.Name, &row.Url, &row.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) Summary(ctx context.Context, fileId string) ([]SummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_id, url, title, date_received, last_modified,
		        expiration, reference, district, initiated_by
		 FROM summary WHERE file_id = ?`,
		fileId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var row SummaryRow
		err = rows.Scan(
			&row.FileId, &row.Url, &row.Title, &row.DateReceived, &row.LastModified,
			&row.Expiration, &row.Reference, &row.District, &row.InitiatedBy,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) Links(ctx context.Context, actionId string) ([]ActionDocumentLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action_id, document_id
		 FROM actions_documents WHERE action_id = ? ORDER BY document_id`,
		actionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActionDocumentLink
	for rows.Next() {
		var link ActionDocumentLink
		err = rows.Scan(&link.ActionId, &link.DocumentId)
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, rows.Err()
}

// CountRows reports the row count of one store table, mostly for
// operational reporting after a load.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	var query string
	switch table {
	case "actions":
		query = `SELECT COUNT(*) FROM actions`
	case "documents":
		query = `SELECT COUNT(*) FROM documents`
	case "summary":
		query = `SELECT COUNT(*) FROM summary`
	case "vote":
		query = `SELECT COUNT(*) FROM vote`
	case "members":
		query = `SELECT COUNT(*) FROM members`
	case "actions_documents":
		query = `SELECT COUNT(*) FROM actions_documents`
	default:
		return 0, fmt.Errorf("unknown store table %q", table)
	}

	var count int
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
