package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"daybook/ledger"
	"daybook/store"
	"daybook/telemetry"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	DB        string `help:"Path to the SQLite database file." env:"DAYBOOK_DB" default:"daybook.db"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Serve     ServeCmd     `cmd:"" help:"Start the JSON API server."`
	Accounts  AccountsCmd  `cmd:"" help:"List and manage registry accounts."`
	Txn       TxnCmd       `cmd:"" help:"Record, list and delete transactions."`
	Report    ReportCmd    `cmd:"" help:"Generate per-account financial reports."`
	Dashboard DashboardCmd `cmd:"" help:"Show account, type and transaction counts."`
}

// openStore opens the SQLite store named by the global --db flag.
func openStore(globals *Globals) (*store.SQLite, error) {
	s, err := store.OpenSQLite(globals.DB)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", globals.DB, err)
	}
	return s, nil
}

// withTelemetry wraps run with an optional timing collector, reporting to
// stderr after the command finishes.
func withTelemetry(ctx *kong.Context, globals *Globals, name string, run func(context.Context) error) error {
	runCtx := context.Background()

	if !globals.Telemetry {
		return run(runCtx)
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)

	timer := collector.Start(name)
	err := run(runCtx)
	timer.End()

	_, _ = fmt.Fprintln(ctx.Stderr)
	collector.Report(ctx.Stderr)

	return err
}

// renderValidation prints each violation on its own line; other errors
// pass through to kong.
func renderValidation(w io.Writer, err error) bool {
	var validation *ledger.ValidationErrors
	if !errors.As(err, &validation) {
		return false
	}

	for _, message := range validation.Messages() {
		printError(w, message)
	}
	return true
}
