package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitpulse/internal/models"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create creates a new analysis snapshot record
func (r *AnalysisRepository) Create(analysis *models.Analysis) error {
	query := `
		INSERT INTO analyses (id, repo_path, ref, head_sha, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		analysis.ID, analysis.RepoPath, analysis.Ref, analysis.HeadSHA, analysis.CreatedAt,
	)

	return err
}

// GetByPathAndRef retrieves the snapshot for a repository reference, or nil
// when none is cached
func (r *AnalysisRepository) GetByPathAndRef(repoPath, ref string) (*models.Analysis, error) {
	query := `
		SELECT id, repo_path, ref, head_sha, created_at
		FROM analyses WHERE repo_path = ? AND ref = ?
	`

	analysis := &models.Analysis{}
	err := r.db.QueryRow(query, repoPath, ref).Scan(
		&analysis.ID, &analysis.RepoPath, &analysis.Ref, &analysis.HeadSHA, &analysis.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return analysis, nil
}

// Delete removes a snapshot; cached commits and files cascade
func (r *AnalysisRepository) Delete(id string) error {
	query := `DELETE FROM analyses WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
