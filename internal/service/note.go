// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// WHY A SEPARATE SERVICE LAYER?
// Without it, handlers do everything: parse HTTP, validate data, call the
// database, format responses. With it:
//
//  1. TESTING: business logic is tested with plain Go function calls,
//     no HTTP requests needed.
//  2. REUSE: the MCP bridge intentionally goes through HTTP (so agents obey
//     the same validation as humans), but a CLI or background job could call
//     this layer directly without touching HTTP at all.
//  3. SEPARATION: handlers know HTTP, services know rules, neither knows SQL.
//
// DEPENDENCY INJECTION:
// NoteService takes a repository.NoteRepository (interface), NOT a *sqlite.DB
// (concrete type). In tests we pass a mock repository; in production main.go
// passes the SQLite implementation. The service never imports the sqlite
// package at all.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/apperror"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/model"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/repository"
)

// Validation constants.
// Defining these as constants (not magic numbers in code) makes them easy to
// find, change, and reference in error messages.
const (
	MaxTitleLength   = 200
	MaxContentLength = 100000 // ~100KB of text
	DefaultListLimit = 100
	MaxListLimit     = 100
)

// NoteService handles business logic for notes.
//
// Both fields are unexported (lowercase) — private to this package.
// External code interacts with NoteService only through its methods.
type NoteService struct {
	repo   repository.NoteRepository
	logger *slog.Logger
}

// NewNoteService creates a new NoteService.
//
// CONSTRUCTOR PATTERN IN GO:
// Go doesn't have constructors like Java/Python. Instead, we use "New"
// functions: NewXxx returns *Xxx and takes all dependencies as parameters.
func NewNoteService(repo repository.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new note.
//
// The method signature is (ctx, title, content string), NOT (*http.Request) —
// the service has ZERO knowledge of HTTP. Validation failures are returned as
// apperror.ValidationFailed BEFORE any storage interaction; the handler
// translates them to 400. The repository fills in ID and CreatedAt.
func (s *NoteService) Create(ctx context.Context, title, content string) (*model.Note, error) {
	// === VALIDATION ===
	// Trim whitespace first — " hello " becomes "hello"
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "note title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("note title must be %d characters or less", MaxTitleLength))
	}
	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("note content must be %d characters or less", MaxContentLength))
	}

	// === CREATE THE MODEL ===
	// The repository assigns ID and CreatedAt on insert.
	note := &model.Note{
		Title:   title,
		Content: content,
	}

	// === DELEGATE TO REPOSITORY ===
	// ctx flows through so the insert is cancelled if the request is aborted.
	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("failed to create note",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.Int64("id", note.ID),
		slog.String("title", note.Title),
	)

	return note, nil
}

// List retrieves notes with skip/limit pagination.
//
// - limit: how many items per page (default 100, capped at 100)
// - skip: how many items to skip (negative clamps to 0)
//
// The service enforces sane limits so callers can't request a million rows.
// An empty store is not an error — it returns an empty slice.
func (s *NoteService) List(ctx context.Context, skip, limit int) ([]model.Note, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	if skip < 0 {
		skip = 0
	}

	notes, err := s.repo.List(ctx, repository.ListOptions{
		Limit: limit,
		Skip:  skip,
	})
	if err != nil {
		s.logger.Error("failed to list notes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	return notes, nil
}

// Delete removes a note by its id, permanently.
// Returns apperror.ErrNotFound if the note doesn't exist. There is no
// soft-delete and no existence pre-check — the repository reports not-found
// from the delete itself.
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "note id must be a positive integer")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("note deleted", slog.Int64("id", id))
	return nil
}
