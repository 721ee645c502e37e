package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/apperror"
)

// MCP TOOL SHAPE:
// Each tool is a small struct holding its dependencies, with a Definition()
// describing the tool schema to the agent and a Handle() executing it.
// The composition root (cmd/mcp) registers each pair with the MCP server.
//
// ERROR POLICY:
// Tool handlers never return a Go error for an operation failure — every
// outcome, including "the API is down", becomes a human-readable text result.
// The agent always gets something it can read back to the user. The error
// return is reserved for malformed tool arguments, which mcp-go reports as a
// protocol-level tool error.

// CreateNoteTool saves a new note through the API.
type CreateNoteTool struct {
	client *Client
}

func NewCreateNoteTool(client *Client) *CreateNoteTool {
	return &CreateNoteTool{client: client}
}

func (t *CreateNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("create_new_note",
		mcp.WithDescription("Create a new note. Use this when the user asks to save information, ideas, or reminders."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("A short summary or headline for the note."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The detailed body text of the note."),
		),
	)
}

func (t *CreateNoteTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	note, err := t.client.CreateNote(ctx, title, content)
	if err != nil {
		// Validation failures from the API and transport failures both land
		// here — either way the agent gets text, never a raised error.
		return mcp.NewToolResultText(fmt.Sprintf("Error connecting to Notes App: %s", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Success! Note created with ID %d.", note.ID)), nil
}

// SearchNotesTool reads all existing notes.
type SearchNotesTool struct {
	client *Client
}

func NewSearchNotesTool(client *Client) *SearchNotesTool {
	return &SearchNotesTool{client: client}
}

func (t *SearchNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_notes",
		mcp.WithDescription("Read all existing notes. Use this when the user asks what is in their notebook or wants to find specific information."),
	)
}

func (t *SearchNotesTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := t.client.ListNotes(ctx)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error reading notes: %s", err)), nil
	}

	if len(notes) == 0 {
		return mcp.NewToolResultText("The notebook is currently empty."), nil
	}

	// One line per note so the agent can quote ids back to the user
	var b strings.Builder
	b.WriteString("Here are the current notes:\n")
	for _, note := range notes {
		fmt.Fprintf(&b, "- ID %d | Title: %s | Content: %s\n", note.ID, note.Title, note.Content)
	}

	return mcp.NewToolResultText(b.String()), nil
}

// DeleteNoteTool permanently deletes a note by id.
type DeleteNoteTool struct {
	client *Client
}

func NewDeleteNoteTool(client *Client) *DeleteNoteTool {
	return &DeleteNoteTool{client: client}
}

func (t *DeleteNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_note_by_id",
		mcp.WithDescription("Permanently delete a note. CRITICAL: You must ask the user for the specific Note ID before using this tool. Do not guess the ID."),
		mcp.WithNumber("note_id",
			mcp.Required(),
			mcp.Description("The ID of the note to delete."),
		),
	)
}

func (t *DeleteNoteTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID, err := request.RequireInt("note_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Three distinguishable outcomes: not-found, success, everything else.
	// No existence check first — it wouldn't be atomic with the delete, and
	// the API's 404 already tells us everything a pre-check would.
	err = t.client.DeleteNote(ctx, int64(noteID))
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Error: Note with ID %d was not found.", noteID)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error deleting note: %s", err)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Note %d has been deleted.", noteID)), nil
	}
}
