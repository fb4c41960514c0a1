package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CommitRecord represents a single commit as read from a repository.
// Records are immutable once produced by the git reader.
type CommitRecord struct {
	Hash         string        `json:"hash"`
	AuthorName   string        `json:"author_name"`
	AuthorEmail  string        `json:"author_email"`
	Timestamp    time.Time     `json:"timestamp"`
	ParentHashes []string      `json:"parent_hashes"`
	ChangedFiles []*FileChange `json:"changed_files"`
}

// IsMerge reports whether the commit has more than one parent
func (c *CommitRecord) IsMerge() bool {
	return len(c.ParentHashes) > 1
}

// IsRoot reports whether the commit has no parents
func (c *CommitRecord) IsRoot() bool {
	return len(c.ParentHashes) == 0
}

// CachedCommit represents a commit row in the local commit cache.
// Parent hashes are stored space-separated so a record rehydrates into a
// full CommitRecord.
type CachedCommit struct {
	ID          string    `json:"id"`
	AnalysisID  string    `json:"analysis_id"`
	CommitSHA   string    `json:"commit_sha"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	CommitDate  time.Time `json:"commit_date"`
	Parents     string    `json:"parents"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCachedCommit creates a new CachedCommit with a generated UUID
func NewCachedCommit(analysisID, commitSHA, authorName, authorEmail string, commitDate time.Time, parents []string) *CachedCommit {
	return &CachedCommit{
		ID:          uuid.New().String(),
		AnalysisID:  analysisID,
		CommitSHA:   commitSHA,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		CommitDate:  commitDate,
		Parents:     strings.Join(parents, " "),
		CreatedAt:   time.Now(),
	}
}

// ParentHashes splits the stored parent hash list
func (c *CachedCommit) ParentHashes() []string {
	if c.Parents == "" {
		return nil
	}
	return strings.Split(c.Parents, " ")
}
