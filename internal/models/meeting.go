package models

import "time"

// MeetingFile is a stored transcript or extracted document with its embedding.
// Filename is the unique lookup key; the embedding is computed once at insert.
type MeetingFile struct {
	ID        string    `json:"file_id" db:"file_id"`
	Filename  string    `json:"filename" db:"filename"`
	Content   string    `json:"content" db:"content"`
	Embedding []float32 `json:"-" db:"embedding"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MeetingSearchResult is one similarity-search hit over stored meeting files.
type MeetingSearchResult struct {
	Filename  string    `json:"filename"`
	Content   string    `json:"content"`
	Score     float64   `json:"similarity"`
	CreatedAt time.Time `json:"created_at"`
}
