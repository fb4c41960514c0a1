package git

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alimgiray/gitpulse/internal/models"
	"github.com/alimgiray/gitpulse/pkg/logger"
)

var (
	// ErrNotARepository indicates the path is missing or not a git repository
	ErrNotARepository = errors.New("not a git repository")
	// ErrBranchNotFound indicates the requested branch does not exist
	ErrBranchNotFound = errors.New("branch not found")
)

// Repository reads commit history from a local git repository
type Repository struct {
	path string
	repo *gogit.Repository
}

// Open opens the repository at the given path
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("failed to open repository %s: %w", path, err)
	}

	return &Repository{path: path, repo: repo}, nil
}

// Path returns the repository path this reader was opened with
func (r *Repository) Path() string {
	return r.path
}

// Head resolves the analysis starting point: the given branch, or HEAD
// when branch is empty. It returns the ref name and the commit hash, which
// together key the commit cache.
func (r *Repository) Head(branch string) (string, string, error) {
	if branch == "" {
		head, err := r.repo.Head()
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve HEAD of %s: %w", r.path, err)
		}
		return head.Name().String(), head.Hash().String(), nil
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q in %s", ErrBranchNotFound, branch, r.path)
	}
	return branch, hash.String(), nil
}

// Commits walks the history reachable from the given head hash and returns
// every commit with its author, parents and per-file line churn. Merge
// commits are returned with their parent hashes but no file changes; the
// caller decides to skip them. File changes for a commit come from its
// diff against the first parent; binary patches yield a file entry with
// zero line counts.
func (r *Repository) Commits(headSHA string) ([]*models.CommitRecord, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(headSHA)})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %s: %w", r.path, err)
	}
	defer iter.Close()

	var commits []*models.CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		record := &models.CommitRecord{
			Hash:        c.Hash.String(),
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			Timestamp:   c.Committer.When,
		}
		for _, parent := range c.ParentHashes {
			record.ParentHashes = append(record.ParentHashes, parent.String())
		}

		if len(c.ParentHashes) == 1 {
			record.ChangedFiles = r.fileChanges(c)
		}

		commits = append(commits, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %s: %w", r.path, err)
	}

	return commits, nil
}

// fileChanges diffs a commit against its first parent. A commit whose diff
// cannot be computed contributes no file changes rather than failing the
// whole walk.
func (r *Repository) fileChanges(c *object.Commit) []*models.FileChange {
	parent, err := c.Parent(0)
	if err != nil {
		logger.WithError(err).Debugf("Skipping diff for commit %s", c.Hash)
		return nil
	}

	patch, err := parent.Patch(c)
	if err != nil {
		logger.WithError(err).Debugf("Skipping diff for commit %s", c.Hash)
		return nil
	}

	var changes []*models.FileChange
	for _, fp := range patch.FilePatches() {
		change := &models.FileChange{Path: filePatchPath(fp)}
		if change.Path == "" {
			continue
		}

		if fp.IsBinary() {
			change.IsBinary = true
			changes = append(changes, change)
			continue
		}

		for _, chunk := range fp.Chunks() {
			switch chunk.Type() {
			case diff.Add:
				change.LinesAdded += countLines(chunk.Content())
			case diff.Delete:
				change.LinesDeleted += countLines(chunk.Content())
			}
		}
		changes = append(changes, change)
	}

	return changes
}

// filePatchPath returns the post-image path of a file patch, falling back
// to the pre-image path for deletions
func filePatchPath(fp diff.FilePatch) string {
	from, to := fp.Files()
	if to != nil {
		return to.Path()
	}
	if from != nil {
		return from.Path()
	}
	return ""
}

// countLines counts the lines in a chunk, tolerating a missing trailing
// newline
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// FilterByDate keeps only the commits whose timestamp falls inside the
// inclusive [since, until] window. Nil bounds are open.
func FilterByDate(commits []*models.CommitRecord, since, until *time.Time) []*models.CommitRecord {
	if since == nil && until == nil {
		return commits
	}

	filtered := make([]*models.CommitRecord, 0, len(commits))
	for _, commit := range commits {
		if since != nil && commit.Timestamp.Before(*since) {
			continue
		}
		if until != nil && commit.Timestamp.After(*until) {
			continue
		}
		filtered = append(filtered, commit)
	}
	return filtered
}
