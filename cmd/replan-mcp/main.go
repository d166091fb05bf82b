// replan-mcp serves the Replan MCP tools over stdio. It runs in two modes:
// remote (-server URL, plans live on a Replan server) or local (-config,
// plans come straight from the database).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/config"
	"github.com/claude/replan/internal/interpreter"
	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/mcp"
	"github.com/claude/replan/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "Replan server URL for remote mode (e.g. https://replan.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("REPLAN_AUTH_API_KEY"), "API key for mutating calls in remote mode")
	configPath := flag.String("config", "", "path to config file for local mode")
	user := flag.String("user", "default", "user whose plans the tools operate on")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("replan-mcp", Version)
		return
	}

	// Logs go to stderr; stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*serverURL == "") == (*configPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: replan-mcp -server <URL> [-api-key KEY] | replan-mcp -config config.yaml\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ps mcp.PlanSource
	if *serverURL != "" {
		ps = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		var catalog knowledge.Catalog
		if cfg.Catalog.BaseURL != "" {
			catalog = knowledge.NewRESTCatalog(cfg.Catalog.BaseURL)
		}
		ks := knowledge.NewService(catalog, nil, log)

		var llm interpreter.LanguageModel
		if cfg.Interpreter.Endpoint != "" {
			llm = interpreter.NewOllamaClient(cfg.Interpreter.Endpoint, cfg.Interpreter.Model)
		}
		interp := interpreter.New(llm, log)

		ps = &mcp.LocalSource{
			DB:      db,
			Service: adjust.New(db, interp, ks, log),
		}
		log.Info("local mode", "database", cfg.Database.Name)
	}

	s := mcp.New(ps, Version, log)

	contextFunc := func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *user)
	}

	log.Info("serving MCP over stdio", "user", *user)
	if err := server.ServeStdio(s, server.WithStdioContextFunc(contextFunc)); err != nil {
		log.Error("stdio server stopped", "error", err)
		os.Exit(1)
	}
}
