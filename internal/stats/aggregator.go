package stats

import (
	"strings"

	"github.com/alimgiray/gitpulse/internal/identity"
	"github.com/alimgiray/gitpulse/internal/models"
)

// Aggregator walks a repository's commit list once and accumulates raw
// per-identity counters. Merge commits are skipped entirely; excluded
// authors contribute to no identity.
type Aggregator struct {
	consolidator *EmailConsolidator
}

// NewAggregator creates a new Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		consolidator: NewEmailConsolidator(),
	}
}

// Aggregate produces the per-identity statistics for a commit list.
// excludePatterns filters changed files by substring match on their path.
func (a *Aggregator) Aggregate(commits []*models.CommitRecord, resolver *identity.Resolver, excludePatterns []string) map[string]*models.DeveloperStats {
	consolidation := a.consolidate(commits, resolver)

	result := make(map[string]*models.DeveloperStats)

	for _, commit := range commits {
		if commit.IsMerge() {
			continue
		}

		resolved, excluded := resolver.Resolve(commit.AuthorName, commit.AuthorEmail)
		if excluded {
			continue
		}
		canonical := consolidation.CanonicalIdentity(resolved)

		dev, ok := result[canonical]
		if !ok {
			dev = models.NewDeveloperStats(canonical)
			dev.CanonicalEmail = consolidation.GroupEmail(canonical)
			result[canonical] = dev
		}

		dev.AddName(commit.AuthorName)
		dev.AddEmail(identity.NormalizeEmail(commit.AuthorEmail))
		dev.RecordCommit(commit.Hash, commit.Timestamp)

		// Root commits have no diff against a parent and contribute only
		// to the commit and date counters.
		if commit.IsRoot() {
			continue
		}

		for _, file := range commit.ChangedFiles {
			if matchesAny(file.Path, excludePatterns) {
				continue
			}
			dev.FilesChanged++
			if file.IsBinary {
				continue
			}
			dev.LinesAdded += file.LinesAdded
			dev.LinesDeleted += file.LinesDeleted
		}
	}

	return result
}

// consolidate runs the identity pre-pass: resolve every author and collect
// identity to email observations for the transitive email grouping
func (a *Aggregator) consolidate(commits []*models.CommitRecord, resolver *identity.Resolver) *Consolidation {
	var observations []Observation
	index := make(map[string]int)

	for _, commit := range commits {
		if commit.IsMerge() {
			continue
		}

		resolved, excluded := resolver.Resolve(commit.AuthorName, commit.AuthorEmail)
		if excluded {
			continue
		}

		email := identity.NormalizeEmail(commit.AuthorEmail)

		i, ok := index[resolved]
		if !ok {
			i = len(observations)
			index[resolved] = i
			observations = append(observations, Observation{Identity: resolved})
		}
		if email != "" && !containsString(observations[i].Emails, email) {
			observations[i].Emails = append(observations[i].Emails, email)
		}
	}

	return a.consolidator.Consolidate(observations)
}

// matchesAny reports whether any pattern occurs as a substring of path
func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
