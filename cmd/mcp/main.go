// Package main is the entry point for the MCP agent bridge.
//
// This is the composition root for the bridge: it creates the HTTP client,
// injects it into the tools, and registers the tools with the MCP server.
// No business logic lives here — only wiring.
//
// MCP (Model Context Protocol) servers speak JSON-RPC over stdio: the AI
// runtime launches this binary and pipes requests in. That's why all logging
// goes to STDERR — stdout belongs to the protocol.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/bridge"
)

func main() {
	// Logs to stderr: stdout is the MCP protocol channel.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	_ = godotenv.Load()

	// The URL where the notes API is running. A fixed external dependency —
	// the bridge performs no discovery, retries, or health checks.
	baseURL := os.Getenv("NOTES_API_URL")
	if baseURL == "" {
		baseURL = bridge.DefaultBaseURL
	}

	client := bridge.NewClient(baseURL)

	s := server.NewMCPServer(
		"notes-app",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	// --- Register the three note tools ---

	createTool := bridge.NewCreateNoteTool(client)
	s.AddTool(createTool.Definition(), createTool.Handle)

	searchTool := bridge.NewSearchNotesTool(client)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	deleteTool := bridge.NewDeleteNoteTool(client)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	logger.Info("bridge starting", slog.String("api", baseURL))

	// ServeStdio blocks until stdin closes (the agent runtime shuts us down).
	if err := server.ServeStdio(s); err != nil {
		logger.Error("bridge error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
