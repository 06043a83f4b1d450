// liftlog-mcp exposes the workout log to MCP clients over stdio. It is
// read-only: assistants can browse history, PRs, and volume trends, but all
// writes go through the app.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/liftlog/liftlog/internal/config"
	"github.com/liftlog/liftlog/internal/mcp"
	"github.com/liftlog/liftlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	flag.Parse()

	// Stdout carries the MCP protocol, so logs must go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	srv := mcp.New(db, Version, log)

	log.Info("starting MCP server on stdio", "version", Version, "db", cfg.Database.Path)
	if err := server.ServeStdio(srv); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".liftlog", "config.yaml")
}
