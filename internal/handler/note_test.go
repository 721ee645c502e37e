package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/handler"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/model"
	sqliteRepo "github.com/RomanNihal/Notes-App-with-MCP/internal/repository/sqlite"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/service"
)

// newTestHandler wires a real service onto an in-memory SQLite database.
// Handler tests go through the full stack below HTTP — that way they catch
// mapping bugs (wrong status code, wrong JSON shape) against real behaviour.
func newTestHandler(t *testing.T) *handler.NoteHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqliteRepo.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := service.NewNoteService(db, logger)
	return handler.NewNoteHandler(svc, logger)
}

// createNote POSTs a note through the handler and returns the decoded response.
func createNote(t *testing.T, h *handler.NoteHandler, title, content string) model.Note {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"content":%q}`, title, content)
	req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.HandleCreate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var note model.Note
	if err := json.NewDecoder(rr.Body).Decode(&note); err != nil {
		t.Fatalf("create: decoding response: %v", err)
	}
	return note
}

func TestNoteHandler_HandleCreate(t *testing.T) {
	t.Run("valid note", func(t *testing.T) {
		h := newTestHandler(t)

		reqBody := `{"title":"A","content":"B"}`
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var note model.Note
		err := json.NewDecoder(rr.Body).Decode(&note)
		assert.NoError(t, err)
		assert.Positive(t, note.ID)
		assert.Equal(t, "A", note.Title)
		assert.Equal(t, "B", note.Content)
		assert.False(t, note.CreatedAt.IsZero(), "created_at should be set")
	})

	t.Run("invalid request body", func(t *testing.T) {
		h := newTestHandler(t)

		reqBody := `{"title":`
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing title field", func(t *testing.T) {
		h := newTestHandler(t)

		reqBody := `{"content":"body without a title"}`
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var errRes handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&errRes))
		assert.Equal(t, "validation_error", errRes.Error)
		assert.Contains(t, errRes.Message, "title")
	})

	t.Run("missing content field", func(t *testing.T) {
		h := newTestHandler(t)

		reqBody := `{"title":"no content key"}`
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		h := newTestHandler(t)

		reqBody := `{"title":"","content":"body"}`
		req := httptest.NewRequest(http.MethodPost, "/notes/", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNoteHandler_HandleList(t *testing.T) {
	t.Run("empty store returns empty array", func(t *testing.T) {
		h := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/notes/", nil)
		rr := httptest.NewRecorder()

		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		// [] not null — callers iterate without a nil check
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("returns created notes in insertion order", func(t *testing.T) {
		h := newTestHandler(t)

		createNote(t, h, "first", "1")
		createNote(t, h, "second", "2")
		createNote(t, h, "third", "3")

		req := httptest.NewRequest(http.MethodGet, "/notes/", nil)
		rr := httptest.NewRecorder()

		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var notes []model.Note
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&notes))
		assert.Len(t, notes, 3)
		assert.Equal(t, "first", notes[0].Title)
		assert.Equal(t, "third", notes[2].Title)
	})

	t.Run("skip and limit", func(t *testing.T) {
		h := newTestHandler(t)

		for i := 0; i < 5; i++ {
			createNote(t, h, fmt.Sprintf("n%d", i), "x")
		}

		req := httptest.NewRequest(http.MethodGet, "/notes/?skip=2&limit=1", nil)
		rr := httptest.NewRecorder()

		h.HandleList(rr, req)

		var notes []model.Note
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&notes))
		assert.Len(t, notes, 1)
		assert.Equal(t, "n2", notes[0].Title)
	})

	t.Run("non-integer skip rejected", func(t *testing.T) {
		h := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/notes/?skip=abc", nil)
		rr := httptest.NewRecorder()

		h.HandleList(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNoteHandler_HandleDelete(t *testing.T) {
	t.Run("deletes existing note", func(t *testing.T) {
		h := newTestHandler(t)
		note := createNote(t, h, "doomed", "bye")

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), nil)
		req.SetPathValue("id", fmt.Sprintf("%d", note.ID))
		rr := httptest.NewRecorder()

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"success","message":"Note deleted"}`, rr.Body.String())

		// It must no longer appear in the listing
		listReq := httptest.NewRequest(http.MethodGet, "/notes/", nil)
		listRR := httptest.NewRecorder()
		h.HandleList(listRR, listReq)

		var notes []model.Note
		assert.NoError(t, json.NewDecoder(listRR.Body).Decode(&notes))
		for _, n := range notes {
			assert.NotEqual(t, note.ID, n.ID, "deleted note still listed")
		}

		// A second delete must 404
		again := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), nil)
		again.SetPathValue("id", fmt.Sprintf("%d", note.ID))
		againRR := httptest.NewRecorder()
		h.HandleDelete(againRR, again)

		assert.Equal(t, http.StatusNotFound, againRR.Code)
	})

	t.Run("missing note returns 404 with detail", func(t *testing.T) {
		h := newTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/notes/999999", nil)
		req.SetPathValue("id", "999999")
		rr := httptest.NewRecorder()

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var errRes handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&errRes))
		assert.Equal(t, "not_found", errRes.Error)
		assert.Contains(t, errRes.Message, "999999")
	})

	t.Run("non-integer id rejected", func(t *testing.T) {
		h := newTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/notes/abc", nil)
		req.SetPathValue("id", "abc")
		rr := httptest.NewRecorder()

		h.HandleDelete(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
