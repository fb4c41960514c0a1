package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitpulse/internal/models"
)

type CommitRepository struct {
	db *sql.DB
}

func NewCommitRepository(db *sql.DB) *CommitRepository {
	return &CommitRepository{db: db}
}

// Create creates a new cached commit
func (r *CommitRepository) Create(commit *models.CachedCommit) error {
	query := `
		INSERT INTO commits (id, analysis_id, commit_sha, author_name, author_email, commit_date, parents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		commit.ID, commit.AnalysisID, commit.CommitSHA, commit.AuthorName,
		commit.AuthorEmail, commit.CommitDate, commit.Parents, commit.CreatedAt,
	)

	return err
}

// GetByAnalysisID retrieves all cached commits for an analysis snapshot
func (r *CommitRepository) GetByAnalysisID(analysisID string) ([]*models.CachedCommit, error) {
	query := `
		SELECT id, analysis_id, commit_sha, author_name, author_email, commit_date, parents, created_at
		FROM commits WHERE analysis_id = ?
		ORDER BY commit_date DESC
	`

	rows, err := r.db.Query(query, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commits []*models.CachedCommit
	for rows.Next() {
		commit := &models.CachedCommit{}
		err := rows.Scan(
			&commit.ID, &commit.AnalysisID, &commit.CommitSHA, &commit.AuthorName,
			&commit.AuthorEmail, &commit.CommitDate, &commit.Parents, &commit.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}

	return commits, rows.Err()
}
