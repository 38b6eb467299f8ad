// Package main starts the viewer API server. It exposes endpoints for
// importing ADOxml exports, browsing the resulting model tree, selection
// state and cross-model reference queries.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/femviewer/core/cmd/api/middleware"
	"github.com/femviewer/core/internal/config"
	"github.com/femviewer/core/internal/fetch"
	"github.com/femviewer/core/internal/handlers"
	"github.com/femviewer/core/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "config file path")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	st := store.New()
	fc := fetch.New(cfg.FetchTimeout(), cfg.MaxImportBytes)
	router := handlers.NewRouter(st, fc, logger, cfg.MaxImportBytes)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      middleware.Cors(cfg.CORSAllowedOrigin)(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("viewer API listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}
