package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"daybook/ledger"
	"daybook/store"
	"daybook/web"
)

type ServeCmd struct {
	Addr  string `help:"Address to listen on." env:"DAYBOOK_ADDR" default:"127.0.0.1:8083"`
	Store string `help:"Storage backend." enum:"sqlite,memory" env:"DAYBOOK_STORE" default:"sqlite"`
	Watch bool   `help:"Watch the database file and push change events to clients."`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	var (
		backing   ledger.Store
		watchPath string
	)
	switch cmd.Store {
	case "memory":
		backing = store.NewMemory()
		logger.Info("using in-memory store; data is lost on exit")
	default:
		sqlite, err := openStore(globals)
		if err != nil {
			return err
		}
		defer sqlite.Close()
		backing = sqlite
		if cmd.Watch {
			watchPath = sqlite.Path()
		}
		logger.Info("using sqlite store", "path", sqlite.Path())
	}

	server := web.New(cmd.Addr, backing, logger)
	server.WatchPath = watchPath

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printInfof(ctx.Stdout, "serving on http://%s", cmd.Addr)
	if err := server.Start(runCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
