package commands

import (
	"log/slog"
	"time"

	"laclerk-backend/cmd/laclerk-cli/utils"
	"laclerk-backend/lib/recordstore"
	"laclerk-backend/lib/recordstore/db"
	"laclerk-backend/lib/sqliteutil"
	"laclerk-backend/lib/util/serviceutil"
	"laclerk-backend/services/ingest"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var runDb *string
var runDumpHttp *bool

func init() {
	runDb = runCmd.Flags().String("db", "", "The database to write results to, overriding the config.")
	runDumpHttp = runCmd.Flags().Bool("dump-http", false, "Dump raw http request/response pairs to .dev/resty/laclerk.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--db <path/to/output.db>] [--dump-http]",
	Short: "Scrapes the configured council files and loads them into a database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		if *runDb != "" {
			cfg.Db = *runDb
		}

		database, err := sqliteutil.OpenDB(db.Schema, cfg.Db)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		runner := ingest.Runner{
			Source: newClient(cfg, *runDumpHttp),
			Store:  recordstore.NewStore(database),
			RawDir: cfg.RawDir,
		}

		t1 := time.Now()
		result, err := runner.Run(cmd.Context(), cfg.FileIds)
		if err != nil {
			serviceutil.Fatal("ingestion run failed", err)
		}
		t2 := time.Now()

		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())
		printManifest(result)
	},
}

func printManifest(result ingest.RunResult) {
	t := utils.NewTable()
	t.AppendHeader(table.Row{"table", "rows"})
	t.AppendRows([]table.Row{
		{"summary", len(result.Tables.Summary)},
		{"actions", len(result.Tables.Actions)},
		{"documents", len(result.Tables.Documents)},
		{"vote", len(result.Tables.VoteSummary)},
		{"members", len(result.Tables.Members)},
		{"actions_documents", len(result.Tables.ActionDocuments)},
	})
	t.Render()

	if len(result.Failures) == 0 {
		return
	}
	f := utils.NewTable()
	f.AppendHeader(table.Row{"file id", "error"})
	for _, failure := range result.Failures {
		f.AppendRow(table.Row{failure.FileId, failure.Err.Error()})
	}
	f.Render()
}
