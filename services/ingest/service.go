// Package ingest runs the end to end pipeline: fetch council file
// pages, extract records, reconcile them and merge the batch into the
// record store. One bad page fails only its own record.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"laclerk-backend/lib/recordstore"
	"laclerk-backend/lib/scrapers/lacityclerk"
	"laclerk-backend/lib/timezone"
	"laclerk-backend/services/reconciler"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/ingest")

// PageSource produces extracted records, usually a lacityclerk.Client.
type PageSource interface {
	FetchRecord(ctx context.Context, fileId string) (lacityclerk.Record, error)
}

type Runner struct {
	Source PageSource
	Store  *recordstore.Store
	// when set, every run drops its raw extracted batch here as json
	RawDir string
}

// Failure is one record that could not be ingested.
type Failure struct {
	FileId string
	Err    error
}

type RunResult struct {
	Records  []lacityclerk.Record
	Failures []Failure
	Tables   recordstore.Tables
}

// Run ingests the given council file numbers. Extraction failures are
// collected, not fatal; the surviving records still reconcile and
// merge. The returned result always reflects what actually landed.
func (r Runner) Run(ctx context.Context, fileIds []string) (RunResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.Int("file_ids", len(fileIds)))

	result := RunResult{}
	for _, fileId := range fileIds {
		record, err := r.Source.FetchRecord(ctx, fileId)
		if err != nil {
			slog.WarnContext(ctx, "record ingestion failed", "file_id", fileId, "err", err)
			result.Failures = append(result.Failures, Failure{FileId: fileId, Err: err})
			continue
		}
		result.Records = append(result.Records, record)
	}
	span.SetAttributes(attribute.Int("failures", len(result.Failures)))

	if r.RawDir != "" {
		_, err := WriteRawBatch(r.RawDir, result.Records)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "raw batch write failed")
			return result, err
		}
	}

	result.Tables = reconciler.Reconcile(ctx, result.Records)
	err := r.Store.Merge(ctx, result.Tables)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "merge failed")
		return result, err
	}

	slog.InfoContext(
		ctx, "ingestion run finished",
		"records", len(result.Records),
		"failures", len(result.Failures),
	)
	return result, nil
}

// WriteRawBatch keeps the unreconciled extraction output around as a
// timestamped json file, one per run, and returns the written path.
func WriteRawBatch(dir string, records []lacityclerk.Record) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}

	contents, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("records_%s.json", timezone.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, contents, 0644)
}
