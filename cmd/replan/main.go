package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/config"
	"github.com/claude/replan/internal/interpreter"
	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/server"
	"github.com/claude/replan/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("Replan starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Exercise knowledge: remote catalog and SQLite cache are both optional.
	var catalog knowledge.Catalog
	if cfg.Catalog.BaseURL != "" {
		catalog = knowledge.NewRESTCatalog(cfg.Catalog.BaseURL)
		log.Info("exercise catalog enabled", "base_url", cfg.Catalog.BaseURL)
	}
	var cache *knowledge.Cache
	if cfg.Catalog.CacheDir != "" {
		cache, err = knowledge.OpenCache(cfg.Catalog.CacheDir)
		if err != nil {
			log.Warn("catalog cache unavailable", "error", err)
		} else {
			defer cache.Close()
		}
	}
	ks := knowledge.NewService(catalog, cache, log)

	// Feedback interpreter: without a model endpoint the keyword fallback
	// parser handles everything.
	var llm interpreter.LanguageModel
	if cfg.Interpreter.Endpoint != "" {
		llm = interpreter.NewOllamaClient(cfg.Interpreter.Endpoint, cfg.Interpreter.Model)
		log.Info("language model enabled", "endpoint", cfg.Interpreter.Endpoint, "model", cfg.Interpreter.Model)
	}
	interp := interpreter.New(llm, log)

	adjustSvc := adjust.New(db, interp, ks, log)
	srv := server.New(db, adjustSvc, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
