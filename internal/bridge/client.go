// Package bridge exposes the notes API to AI agents as MCP tools.
//
// INDUSTRY PATTERN:
// The bridge does NOT access the database directly. It talks to the backend
// over plain HTTP, so the agent follows the exact same validation rules as a
// human user. It is a pure client: no persisted or cached state, no retries,
// no discovery — just a base URL and a connection pool.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/apperror"
	"github.com/RomanNihal/Notes-App-with-MCP/internal/model"
)

// DefaultBaseURL is where the API runs when nothing else is configured.
const DefaultBaseURL = "http://localhost:8080"

// Client is a thin HTTP client for the notes API.
//
// ERROR CONTRACT:
// Methods return domain errors, not HTTP details:
//   - apperror.ErrNotFound  — the API answered 404 (delete of a missing id)
//   - apperror.ErrTransport — network failure or any other unexpected status
//
// The tool layer turns these into the distinct human-readable strings the
// agent sees, so "the note doesn't exist" never reads like "the app is down".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the API at baseURL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		// One client, reused for every call — http.Client is safe for
		// concurrent use and pools connections internally. The timeout bounds
		// a whole call; there is no retry policy on top.
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateNote POSTs a new note and returns the persisted representation,
// including the assigned id.
func (c *Client) CreateNote(ctx context.Context, title, content string) (*model.Note, error) {
	body, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: encoding note: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/notes/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bridge: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Transport(err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apperror.Transport(c.statusMessage(res))
	}

	var note model.Note
	if err := json.NewDecoder(res.Body).Decode(&note); err != nil {
		return nil, apperror.Transport(fmt.Sprintf("decoding response: %v", err))
	}

	return &note, nil
}

// ListNotes GETs all notes with the API's default pagination.
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/notes/", nil)
	if err != nil {
		return nil, fmt.Errorf("bridge: building request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Transport(err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apperror.Transport(c.statusMessage(res))
	}

	var notes []model.Note
	if err := json.NewDecoder(res.Body).Decode(&notes); err != nil {
		return nil, apperror.Transport(fmt.Sprintf("decoding response: %v", err))
	}

	return notes, nil
}

// DeleteNote DELETEs a note by id. A 404 from the API comes back as
// apperror.ErrNotFound so callers can tell it apart from transport failures.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/notes/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("bridge: building request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Transport(err.Error())
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return apperror.NotFound("note", id)
	default:
		return apperror.Transport(c.statusMessage(res))
	}
}

// statusMessage builds a readable description of an unexpected response,
// preferring the API's own error message when the body parses as one.
func (c *Client) statusMessage(res *http.Response) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		return fmt.Sprintf("%s (%s)", apiErr.Message, res.Status)
	}
	return fmt.Sprintf("unexpected status %s", res.Status)
}
