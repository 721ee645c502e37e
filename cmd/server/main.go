// Package main is the entry point for the notes API server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main" package.
// The main package should be kept minimal — its job is to:
// 1. Read configuration (from env vars or a .env file)
// 2. Create dependencies (logger, database connection)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
//
// WHY cmd/server/?
// The cmd/ directory is a Go convention for executable entry points.
// This project has two executables: cmd/server (the HTTP API) and
// cmd/mcp (the agent bridge). Each gets its own directory with its own main.go.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/server"
)

func main() {
	// === 1. SET UP LOGGING ===
	// slog.New creates a structured logger. slog.NewTextHandler outputs
	// human-readable logs to the terminal.
	//
	// Log levels (from least to most severe): Debug → Info → Warn → Error
	// In production, you'd use LevelInfo or LevelWarn to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. READ CONFIGURATION ===
	// godotenv.Load reads a .env file into the process environment if one
	// exists. Missing file is fine — real env vars always win.
	_ = godotenv.Load()

	// Port from the PORT environment variable, defaulting to 8080.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// === 3. DATABASE PATH ===
	// Default to "data/notes.db" in the project root.
	// DB_PATH env var allows overriding for deployments:
	//   DB_PATH=/var/lib/notes/notes.db
	dbPath := "data/notes.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// Ensure the data directory exists.
	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. STATIC UI PATH ===
	// The "web" directory is at the project root, so when running with
	// `go run ./cmd/server` from the root, "web/static" resolves directly.
	staticDir, _ := filepath.Abs("web/static")

	// === 5. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:      port,
		StaticDir: staticDir,
		DBPath:    dbPath,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
