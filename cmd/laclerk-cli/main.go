package main

import (
	"context"
	"log/slog"

	"laclerk-backend/cmd/laclerk-cli/commands"
	"laclerk-backend/lib/telemetry"
	"laclerk-backend/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(true)
	t, err := telemetry.SetupFromEnv(ctx, "laclerk-cli")
	if err != nil {
		// scraping still works without an otlp collector around
		slog.Warn("telemetry disabled", "err", err)
	} else {
		defer t.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
