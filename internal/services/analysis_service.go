package services

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/alimgiray/gitpulse/internal/git"
	"github.com/alimgiray/gitpulse/internal/identity"
	"github.com/alimgiray/gitpulse/internal/models"
	"github.com/alimgiray/gitpulse/internal/repositories"
	"github.com/alimgiray/gitpulse/internal/stats"
	"github.com/alimgiray/gitpulse/pkg/logger"
)

// AnalysisService runs the full single-repository pipeline: read commits
// (through the cache when possible), resolve identities, aggregate and
// finalize. It never terminates the process; fatal repository errors
// propagate to the caller.
type AnalysisService struct {
	analysisRepo   *repositories.AnalysisRepository
	commitRepo     *repositories.CommitRepository
	commitFileRepo *repositories.CommitFileRepository
	identityStore  *identity.Store
	aggregator     *stats.Aggregator
	metrics        *stats.MetricsCalculator
	cacheEnabled   bool
}

// NewAnalysisService creates a new AnalysisService. The repository
// arguments may be nil when caching is disabled.
func NewAnalysisService(
	analysisRepo *repositories.AnalysisRepository,
	commitRepo *repositories.CommitRepository,
	commitFileRepo *repositories.CommitFileRepository,
	identityStore *identity.Store,
	cacheEnabled bool,
) *AnalysisService {
	return &AnalysisService{
		analysisRepo:   analysisRepo,
		commitRepo:     commitRepo,
		commitFileRepo: commitFileRepo,
		identityStore:  identityStore,
		aggregator:     stats.NewAggregator(),
		metrics:        stats.NewMetricsCalculator(),
		cacheEnabled:   cacheEnabled && analysisRepo != nil,
	}
}

// AnalyzeOptions holds the per-run filters for one repository
type AnalyzeOptions struct {
	RepoPath        string
	Branch          string
	Since           *time.Time
	Until           *time.Time
	ExcludePatterns []string
}

// AnalyzeRepository computes the finalized per-identity statistics for one
// repository
func (s *AnalysisService) AnalyzeRepository(opts AnalyzeOptions) (map[string]*models.DeveloperStats, error) {
	commits, err := s.ReadCommits(opts)
	if err != nil {
		return nil, err
	}

	result := s.AggregateCommits(opts.RepoPath, commits, opts.ExcludePatterns)
	s.metrics.FinalizeAll(result)
	return result, nil
}

// ReadCommits loads the repository's filtered commit list, serving it from
// the cache when the head hash still matches the stored snapshot
func (s *AnalysisService) ReadCommits(opts AnalyzeOptions) ([]*models.CommitRecord, error) {
	repo, err := git.Open(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	ref, headSHA, err := repo.Head(opts.Branch)
	if err != nil {
		return nil, err
	}

	commits, err := s.loadCommits(repo, ref, headSHA)
	if err != nil {
		return nil, err
	}

	return git.FilterByDate(commits, opts.Since, opts.Until), nil
}

// AggregateCommits runs identity resolution and the aggregation pass over
// an already-materialized commit list
func (s *AnalysisService) AggregateCommits(repoPath string, commits []*models.CommitRecord, excludePatterns []string) map[string]*models.DeveloperStats {
	resolver := identity.NewResolver(s.identityStore.Load(repoPath))
	return s.aggregator.Aggregate(commits, resolver, excludePatterns)
}

// loadCommits returns the full history for a head, consulting and
// maintaining the commit cache
func (s *AnalysisService) loadCommits(repo *git.Repository, ref, headSHA string) ([]*models.CommitRecord, error) {
	cacheKey := repoCacheKey(repo.Path())

	if s.cacheEnabled {
		cached, err := s.readCache(cacheKey, ref, headSHA)
		if err != nil {
			logger.WithError(err).Warnf("Commit cache read failed for %s, falling back to a full walk", repo.Path())
		} else if cached != nil {
			logger.Debugf("Commit cache hit for %s@%s", repo.Path(), ref)
			return cached, nil
		}
	}

	commits, err := repo.Commits(headSHA)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		if err := s.writeCache(cacheKey, ref, headSHA, commits); err != nil {
			logger.WithError(err).Warnf("Commit cache write failed for %s", repo.Path())
		}
	}

	return commits, nil
}

// readCache rehydrates a cached snapshot, or returns nil on a stale or
// missing entry
func (s *AnalysisService) readCache(repoPath, ref, headSHA string) ([]*models.CommitRecord, error) {
	analysis, err := s.analysisRepo.GetByPathAndRef(repoPath, ref)
	if err != nil {
		return nil, err
	}
	if analysis == nil || analysis.HeadSHA != headSHA {
		return nil, nil
	}

	cachedCommits, err := s.commitRepo.GetByAnalysisID(analysis.ID)
	if err != nil {
		return nil, err
	}
	cachedFiles, err := s.commitFileRepo.GetByAnalysisID(analysis.ID)
	if err != nil {
		return nil, err
	}

	commits := make([]*models.CommitRecord, 0, len(cachedCommits))
	for _, cached := range cachedCommits {
		record := &models.CommitRecord{
			Hash:         cached.CommitSHA,
			AuthorName:   cached.AuthorName,
			AuthorEmail:  cached.AuthorEmail,
			Timestamp:    cached.CommitDate,
			ParentHashes: cached.ParentHashes(),
		}
		for _, file := range cachedFiles[cached.ID] {
			record.ChangedFiles = append(record.ChangedFiles, &models.FileChange{
				Path:         file.Filename,
				LinesAdded:   file.LinesAdded,
				LinesDeleted: file.LinesDeleted,
				IsBinary:     file.IsBinary,
			})
		}
		commits = append(commits, record)
	}

	return commits, nil
}

// writeCache stores a fresh snapshot, replacing any stale one for the
// same (path, ref)
func (s *AnalysisService) writeCache(repoPath, ref, headSHA string, commits []*models.CommitRecord) error {
	stale, err := s.analysisRepo.GetByPathAndRef(repoPath, ref)
	if err != nil {
		return err
	}
	if stale != nil {
		if err := s.analysisRepo.Delete(stale.ID); err != nil {
			return err
		}
	}

	analysis := models.NewAnalysis(repoPath, ref, headSHA)
	if err := s.analysisRepo.Create(analysis); err != nil {
		return err
	}

	for _, commit := range commits {
		cached := models.NewCachedCommit(
			analysis.ID, commit.Hash, commit.AuthorName, commit.AuthorEmail,
			commit.Timestamp, commit.ParentHashes,
		)
		if err := s.commitRepo.Create(cached); err != nil {
			return err
		}

		for _, file := range commit.ChangedFiles {
			cachedFile := models.NewCachedCommitFile(
				cached.ID, file.Path, file.LinesAdded, file.LinesDeleted, file.IsBinary,
			)
			if err := s.commitFileRepo.Create(cachedFile); err != nil {
				return err
			}
		}
	}

	return nil
}

// repoCacheKey normalizes a repository path for use as a cache key
func repoCacheKey(repoPath string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return repoPath
	}
	return abs
}

// ParseDateFilter parses a YYYY-MM-DD flag value as a local calendar date.
// until marks the inclusive upper bound, extending to the end of its day.
func ParseDateFilter(value string, until bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	if until {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}
