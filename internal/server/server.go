// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// It decides which URL patterns map to which handler functions, what middleware
// runs on which routes, and how the server starts and stops gracefully.
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Clean (main.go stays minimal — just "start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go creates the config → passed to Server
// Server.New() creates: sqlite.DB → NoteService → NoteHandler
//
// This is the "composition root" pattern — all dependencies are wired
// in one place, rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/handler"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/middleware"
	sqliteRepo "github.com/RomanNihal/Notes-App-with-MCP/internal/repository/sqlite"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/service"
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy
// to add new options without changing function signatures.
type Config struct {
	Port      int
	StaticDir string // directory served at /ui/
	DBPath    string // path to the SQLite database file
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection (db). When the server shuts down,
// we must close it to flush pending writes and release the file lock.
// This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB // database connection (owned by server, closed on shutdown)
}

// New creates a new Server with the given config.
//
// This is where the entire dependency chain is assembled:
//  1. Create the database connection (sqlite.New — also creates the table)
//  2. Create the service layer (service.NewNoteService) with the DB
//  3. Create the handler (handler.NewNoteHandler) with the service
//  4. Wire handlers to routes
//
// Each layer only receives what it needs: the service gets the repository
// interface (not the concrete sqlite.DB), the handler gets the service.
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with
// the sqlite driver package.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /             → redirect to /ui/
// GET    /ui/*         → static frontend files
// POST   /notes/       → create a note (JSON)
// GET    /notes/       → list notes (JSON, ?skip=&limit=)
// DELETE /notes/{id}   → delete a note
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added:
// 1. RequestID — assigns a unique ID to each request (for tracing)
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
func (s *Server) setupRoutes() {
	// === Global Middleware ===
	// These run on EVERY request, in order

	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	// Our custom logging middleware
	s.router.Use(middleware.Logger(s.logger))

	// === Root Redirect + Static UI ===
	// The root URL sends browsers to the UI mount; the UI itself is plain
	// static files. http.StripPrefix removes "/ui/" from the URL path before
	// looking up the file, so GET /ui/index.html serves {StaticDir}/index.html.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/ui/*", http.StripPrefix("/ui/", fileServer))

	// === API Routes ===
	// DEPENDENCY CHAIN:
	//   s.db (sqlite.DB) → implements repository.NoteRepository
	//   NoteService receives the repository interface
	//   NoteHandler receives the service
	//
	// Notice: the handler never touches the database directly.
	// The service never touches HTTP.
	noteService := service.NewNoteService(s.db, s.logger)
	noteHandler := handler.NewNoteHandler(noteService, s.logger)

	s.router.Route("/notes", func(r chi.Router) {
		r.Post("/", noteHandler.HandleCreate)
		r.Get("/", noteHandler.HandleList)
		r.Delete("/{id}", noteHandler.HandleDelete)
	})
}

// Handler exposes the configured router — used by tests to drive the server
// through httptest without opening a real port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's database connection. Start() does this itself
// on graceful shutdown; Close exists for callers (tests) that never Start().
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases the file lock)
//
// If we skip step 3, the database file might be left in an inconsistent state.
// The `defer s.db.Close()` ensures this happens even if something panics.
func (s *Server) Start() error {
	defer s.db.Close()

	// Create the HTTP server with sensible timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine (so it doesn't block)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
