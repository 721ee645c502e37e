package repository

import (
	"context"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/model"
)

type ListOptions struct {
	Limit int
	Skip  int
}

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	List(ctx context.Context, opts ListOptions) ([]model.Note, error)
	Delete(ctx context.Context, id int64) error
}
