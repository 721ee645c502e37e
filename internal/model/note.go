// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Note represents a single saved note.
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. The tag names match the wire contract exactly, so
//
//	note := Note{ID: 1, Title: "hello"}
//	json.Marshal(note) → {"id":1,"title":"hello",...}
//
// ID is assigned by the database (AUTOINCREMENT) and never reused after deletion.
// CreatedAt is set once, at insert time.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
