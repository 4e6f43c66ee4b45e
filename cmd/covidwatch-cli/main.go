package main

import (
	"context"
	"errors"
	"os"

	"covidwatch-backend/cmd/covidwatch-cli/commands"
	"covidwatch-backend/lib/fetch"
	"covidwatch-backend/lib/restyutil"
	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	verbose := os.Getenv("COVIDWATCH_VERBOSE") != ""
	telemetry.InitSlog(verbose)
	err := telemetry.SetupFromEnv(ctx, "covidwatch-cli")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("setup telemetry", err)
	}
	if err == nil {
		telemetry.InstrumentPerfStats(ctx)
	}

	if verbose {
		fetch.SetRestyInstrumentOutput(
			restyutil.NewFilesystemOutput(".dev/resty/fetch"),
		)
	}

	commands.ExecuteContext(ctx)
	telemetry.Shutdown(context.Background())
}
