package commands

import (
	"encoding/json"
	"os"

	"laclerk-backend/lib/recordstore"
	"laclerk-backend/lib/recordstore/db"
	"laclerk-backend/lib/scrapers/lacityclerk"
	"laclerk-backend/lib/sqliteutil"
	"laclerk-backend/lib/util/serviceutil"
	"laclerk-backend/services/ingest"
	"laclerk-backend/services/reconciler"

	"github.com/spf13/cobra"
)

var loadDb *string

func init() {
	loadDb = loadCmd.Flags().String("db", "", "The database to load into, overriding the config.")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <path/to/records.json> [--db <path/to/output.db>]",
	Short: "Reconciles a previously collected raw json batch into a database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		if *loadDb != "" {
			cfg.Db = *loadDb
		}

		contents, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read raw batch", err)
		}
		var records []lacityclerk.Record
		err = json.Unmarshal(contents, &records)
		if err != nil {
			serviceutil.Fatal("failed to decode raw batch", err)
		}

		database, err := sqliteutil.OpenDB(db.Schema, cfg.Db)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		tables := reconciler.Reconcile(cmd.Context(), records)
		store := recordstore.NewStore(database)
		err = store.Merge(cmd.Context(), tables)
		if err != nil {
			serviceutil.Fatal("failed to merge batch", err)
		}

		printManifest(ingest.RunResult{Records: records, Tables: tables})
	},
}
