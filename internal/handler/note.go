package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/apperror"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/service"
)

// NoteHandler manages the HTTP surface for notes.
//
// Each handler struct "owns" one area of functionality — all note parsing,
// status-code mapping, and JSON shaping lives here, and only here. The handler
// never touches the database directly; it calls the service, which calls the
// repository.
type NoteHandler struct {
	service *service.NoteService
	logger  *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{service: service, logger: logger}
}

// CreateNoteRequest is the payload for creating a note.
//
// WHY POINTER FIELDS?
// With plain strings, a missing "content" key and "content": "" decode to the
// same value, so we couldn't report "field is missing". Pointers make absence
// observable: a missing key decodes to nil. Both fields are required; title
// must additionally be non-empty (the service checks that).
type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// DeleteResponse acknowledges a successful deletion.
type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleCreate saves a new note.
//
// HTTP: POST /notes/
// REQUEST BODY: {"title": "shopping", "content": "milk, eggs"}
//
// json.NewDecoder(r.Body) reads the request body as a stream and decodes it
// into the request struct. Malformed JSON and missing required fields both
// fail with 400 BEFORE the service (and therefore storage) is ever touched.
// On success the response carries the full persisted note, including the
// database-assigned id and created_at.
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "request body must be valid JSON"))
		return
	}

	// Field-presence checks: nil means the key was absent entirely.
	if req.Title == nil {
		writeError(w, apperror.ValidationFailed("title", "title is required"))
		return
	}
	if req.Content == nil {
		writeError(w, apperror.ValidationFailed("content", "content is required"))
		return
	}

	note, err := h.service.Create(r.Context(), *req.Title, *req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleList returns saved notes with pagination.
//
// HTTP: GET /notes/?skip=0&limit=100
//
// skip: how many notes to skip (for page 2, 3, ...), default 0
// limit: max number to return, default 100
//
// An empty store is not an error — the response is an empty JSON array.
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, apperror.ValidationFailed("skip", "skip must be an integer"))
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, apperror.ValidationFailed("limit", "limit must be an integer"))
		return
	}

	notes, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// HandleDelete permanently removes a note.
//
// HTTP: DELETE /notes/{id}
//
// Chi provides r.PathValue("id") to extract URL parameters. The id must parse
// as an integer; a missing note maps to 404 via writeError. Deletion is
// unconditional — no soft-delete, no confirmation step.
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "note id must be an integer"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{
		Status:  "success",
		Message: "Note deleted",
	})
}

// queryInt reads an optional integer query parameter, falling back to def
// when the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
