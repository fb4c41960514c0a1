package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitpulse/internal/models"
)

type CommitFileRepository struct {
	db *sql.DB
}

func NewCommitFileRepository(db *sql.DB) *CommitFileRepository {
	return &CommitFileRepository{db: db}
}

// Create creates a new cached commit file
func (r *CommitFileRepository) Create(file *models.CachedCommitFile) error {
	query := `
		INSERT INTO commit_files (id, commit_id, filename, lines_added, lines_deleted, is_binary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		file.ID, file.CommitID, file.Filename, file.LinesAdded,
		file.LinesDeleted, file.IsBinary, file.CreatedAt,
	)

	return err
}

// GetByAnalysisID retrieves all cached file changes for an analysis
// snapshot, keyed by their cached commit ID
func (r *CommitFileRepository) GetByAnalysisID(analysisID string) (map[string][]*models.CachedCommitFile, error) {
	query := `
		SELECT cf.id, cf.commit_id, cf.filename, cf.lines_added, cf.lines_deleted, cf.is_binary, cf.created_at
		FROM commit_files cf
		INNER JOIN commits c ON c.id = cf.commit_id
		WHERE c.analysis_id = ?
	`

	rows, err := r.db.Query(query, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string][]*models.CachedCommitFile)
	for rows.Next() {
		file := &models.CachedCommitFile{}
		err := rows.Scan(
			&file.ID, &file.CommitID, &file.Filename, &file.LinesAdded,
			&file.LinesDeleted, &file.IsBinary, &file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files[file.CommitID] = append(files[file.CommitID], file)
	}

	return files, rows.Err()
}
