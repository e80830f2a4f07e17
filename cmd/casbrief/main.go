package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkoval/casbrief/internal/api"
	"github.com/mkoval/casbrief/internal/asr"
	"github.com/mkoval/casbrief/internal/config"
	"github.com/mkoval/casbrief/internal/session"
	"github.com/mkoval/casbrief/internal/storage/sqlite"
	"github.com/mkoval/casbrief/internal/websocket"
	"github.com/mkoval/casbrief/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("fatal", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var transmissions *sqlite.TransmissionStorage
	var reports *sqlite.ReportStorage
	if cfg.Storage.Enabled {
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer db.Close()
		transmissions = sqlite.NewTransmissionStorage(db, log)
		reports = sqlite.NewReportStorage(db, log)
		log.Info("storage enabled", logger.String("path", cfg.Storage.Path))
	} else {
		log.Info("storage disabled, reports are in-memory only")
	}

	wsServer := websocket.NewServer(originChecker(cfg.Server.CORSAllowedOrigins), log)
	defer wsServer.Close()

	reviewer := asr.NewReviewer(
		cfg.ASR.MinConfidence,
		cfg.ASR.MaxEditDist,
		cfg.ASR.Callsigns,
		log,
	)

	sessions := session.NewManager(
		session.Config{
			IncrementalProcess: cfg.Parser.IncrementalProcess,
			MaxIdle:            time.Duration(cfg.Sessions.MaxIdleMinutes) * time.Minute,
		},
		transmissions, reports, wsServer, reviewer, log,
	)
	go sessions.RunSweeper(ctx)

	router := api.NewRouter(sessions, cfg, log, wsServer)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// originChecker applies the CORS allowlist to websocket upgrades too.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
