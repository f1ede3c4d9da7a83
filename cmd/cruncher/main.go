package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/numbercruncher/numbercruncher/internal/api"
	"github.com/numbercruncher/numbercruncher/internal/config"
	"github.com/numbercruncher/numbercruncher/internal/cruncher"
	"github.com/numbercruncher/numbercruncher/internal/fetcher"
	"github.com/numbercruncher/numbercruncher/internal/metrics"
	"github.com/numbercruncher/numbercruncher/internal/runner"
	"github.com/numbercruncher/numbercruncher/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file; defaults are used if it does not exist")
	once := flag.Bool("once", false, "crunch a single fact, print the verdict and exit")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, watch, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"max_size", cfg.Cruncher.MaxSize,
		"interval", cfg.Cruncher.Interval,
		"endpoint", cfg.Fetcher.Endpoint,
		"http_port", cfg.Server.HTTPPort,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	f := fetcher.New(cfg.Fetcher)
	rec := metrics.NewRecorder()
	c, err := cruncher.New(cfg.Cruncher.MaxSize, metrics.InstrumentFetcher(f, rec))
	if err != nil {
		slog.Error("failed to build cruncher", "err", err)
		os.Exit(1)
	}
	run := runner.New(c, f, rec)

	if *once {
		v, err := run.Crunch(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(v)
		return
	}

	slog.Info("numbercruncher starting", "config", *configPath)

	// Hot-reload is logged only; capacity is fixed for the life of a tummy.
	if watch {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				slog.Info("config hot-reloaded; restart to apply",
					"max_size", updated.Cruncher.MaxSize,
					"interval", updated.Cruncher.Interval)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	var srv *http.Server
	if cfg.Server.HTTPPort > 0 {
		// WebSocket hub: one message per crunch to every connected client.
		hub := ws.New(run)
		run.OnCrunch(hub.Publish)
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/api/v1/stream", hub)
		mux.Handle("/", api.New(run))

		srv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("HTTP API listening", "port", cfg.Server.HTTPPort)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("HTTP server stopped", "err", err)
				cancel()
			}
		}()
	}

	if cfg.Cruncher.Interval > 0 {
		go run.Run(ctx, cfg.Cruncher.Interval)
	} else {
		slog.Info("crunch loop disabled; use POST /api/v1/crunch")
	}

	<-ctx.Done()
	slog.Info("numbercruncher shutting down")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP shutdown", "err", err)
		}
	}
}

// loadConfig loads path, falling back to defaults when the file is absent.
// The bool reports whether there is a file to watch.
func loadConfig(path string) (*config.Config, bool, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", path)
		return config.Defaults(), false, nil
	}
	return nil, false, err
}
