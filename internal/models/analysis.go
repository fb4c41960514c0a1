package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis represents one cached walk of a repository reference.
// The cache is keyed by repository path, ref name and the head commit hash;
// a new head invalidates the previous snapshot for that (path, ref).
type Analysis struct {
	ID        string    `json:"id"`
	RepoPath  string    `json:"repo_path"`
	Ref       string    `json:"ref"`
	HeadSHA   string    `json:"head_sha"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnalysis creates a new Analysis with a generated UUID
func NewAnalysis(repoPath, ref, headSHA string) *Analysis {
	return &Analysis{
		ID:        uuid.New().String(),
		RepoPath:  repoPath,
		Ref:       ref,
		HeadSHA:   headSHA,
		CreatedAt: time.Now(),
	}
}
