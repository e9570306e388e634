package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/config"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
	"github.com/cacaneves/dev-sistema-codigo/internal/logging"
	"github.com/cacaneves/dev-sistema-codigo/internal/pages"
	"github.com/cacaneves/dev-sistema-codigo/internal/session"
	"github.com/cacaneves/dev-sistema-codigo/internal/terminal"
	"github.com/cacaneves/dev-sistema-codigo/internal/timer"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return err
	}

	// stdout belongs to the session; logs go to stderr.
	logger := logging.NewWithWriter(cfg.LogLevel, os.Stderr).With("service", "vitrine-cli")
	slog.SetDefault(logger)

	store, err := session.OpenSQLite(cfg.TokenDB)
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	defer store.Close()

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = producer
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	api := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger.With("component", "apiclient")).
		WithMaxBody(int64(cfg.APIMaxBodyBytes))
	console := terminal.NewConsole(os.Stdout)

	shell := &terminal.Shell{
		List: &pages.ProductList{
			API:      api,
			Tokens:   store,
			Board:    console,
			Search:   console,
			Alerts:   console,
			Debounce: timer.NewDebouncer(cfg.SearchDebounce, nil),
			Events:   publisher,
			Logger:   logger,
		},
		Categories: &pages.CategoryLoader{API: api, Select: console, Messages: console, Logger: logger},
		Console:    console,
		Tokens:     store,
		Logger:     logger,
	}

	fmt.Fprintln(os.Stdout, "Vitrine: digite para buscar, :ajuda para comandos.")
	// Scan on stdin does not observe ctx, so a signal ends the session from here.
	done := make(chan error, 1)
	go func() { done <- shell.Run(ctx, os.Stdin) }()

	select {
	case err := <-done:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("session: %w", err)
		}
	case <-ctx.Done():
	}
	return nil
}
