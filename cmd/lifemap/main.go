package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/lifemap/internal/cli"
	"github.com/alexanderramin/lifemap/internal/saveclient"
	"github.com/alexanderramin/lifemap/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := saveclient.LoadConfig()

	// Structured logs go to stderr only when LIFEMAP_LOG is set; the editor
	// owns the terminal otherwise.
	var (
		saveObserver saveclient.Observer     = saveclient.NoopObserver{}
		useCases     service.UseCaseObserver = service.NoopUseCaseObserver{}
		logger                               = slog.New(slog.NewTextHandler(io.Discard, nil))
	)
	if cfg.LogCalls {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		saveObserver = saveclient.NewLogObserver(os.Stderr)
		useCases = service.NewSlogUseCaseObserver(logger)
	}

	app := &cli.App{
		Saver:     saveclient.New(cfg, saveObserver),
		Observer:  useCases,
		Logger:    logger,
		DefaultDB: cli.DefaultDBPath(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
