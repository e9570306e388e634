package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/config"
	"github.com/cacaneves/dev-sistema-codigo/internal/events"
	"github.com/cacaneves/dev-sistema-codigo/internal/logging"
	"github.com/cacaneves/dev-sistema-codigo/internal/middleware/csrf"
	"github.com/cacaneves/dev-sistema-codigo/internal/web"
)

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "vitrine-web")
	slog.SetDefault(logger)

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
		if err != nil {
			log.Fatal(err)
		}
		publisher = producer
	}

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CSRFSecure

	api := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger.With("component", "apiclient")).
		WithMaxBody(int64(cfg.APIMaxBodyBytes))

	e, err := web.New(&web.Deps{
		API:    api,
		Events: publisher,
		Logger: logger,
		CSRF:   csrfCfg,
	})
	if err != nil {
		log.Fatalf("web setup: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
