package models

import (
	"time"

	"github.com/google/uuid"
)

// FileChange represents one file touched by a commit, with its line churn.
// Binary files are reported with zero line counts.
type FileChange struct {
	Path         string `json:"path"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
	IsBinary     bool   `json:"is_binary"`
}

// CachedCommitFile represents a file change row in the local commit cache
type CachedCommitFile struct {
	ID           string    `json:"id"`
	CommitID     string    `json:"commit_id"`
	Filename     string    `json:"filename"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	IsBinary     bool      `json:"is_binary"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCachedCommitFile creates a new CachedCommitFile with a generated UUID
func NewCachedCommitFile(commitID, filename string, linesAdded, linesDeleted int, isBinary bool) *CachedCommitFile {
	return &CachedCommitFile{
		ID:           uuid.New().String(),
		CommitID:     commitID,
		Filename:     filename,
		LinesAdded:   linesAdded,
		LinesDeleted: linesDeleted,
		IsBinary:     isBinary,
		CreatedAt:    time.Now(),
	}
}
