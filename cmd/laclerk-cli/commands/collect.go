package commands

import (
	"log/slog"

	"laclerk-backend/lib/scrapers/lacityclerk"
	"laclerk-backend/lib/util/serviceutil"
	"laclerk-backend/services/ingest"

	"github.com/spf13/cobra"
)

var collectDumpHttp *bool

func init() {
	collectDumpHttp = collectCmd.Flags().Bool("dump-http", false, "Dump raw http request/response pairs to .dev/resty/laclerk.")
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect [--dump-http]",
	Short: "Scrapes the configured council files into a raw json batch without touching a database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		client := newClient(cfg, *collectDumpHttp)

		records := []lacityclerk.Record{}
		for _, fileId := range cfg.FileIds {
			record, err := client.FetchRecord(cmd.Context(), fileId)
			if err != nil {
				slog.Warn("record extraction failed", "file_id", fileId, "err", err)
				continue
			}
			records = append(records, record)
		}

		path, err := ingest.WriteRawBatch(cfg.RawDir, records)
		if err != nil {
			serviceutil.Fatal("failed to write raw batch", err)
		}
		slog.Info("wrote raw batch", "path", path, "records", len(records))
	},
}
