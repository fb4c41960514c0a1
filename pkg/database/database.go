package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	repo_path TEXT NOT NULL,
	ref TEXT NOT NULL,
	head_sha TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE(repo_path, ref)
);

CREATE TABLE IF NOT EXISTS commits (
	id TEXT PRIMARY KEY,
	analysis_id TEXT NOT NULL,
	commit_sha TEXT NOT NULL,
	author_name TEXT NOT NULL,
	author_email TEXT NOT NULL,
	commit_date TIMESTAMP NOT NULL,
	parents TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	FOREIGN KEY(analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_commits_analysis ON commits(analysis_id);

CREATE TABLE IF NOT EXISTS commit_files (
	id TEXT PRIMARY KEY,
	commit_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	lines_added INTEGER NOT NULL DEFAULT 0,
	lines_deleted INTEGER NOT NULL DEFAULT 0,
	is_binary INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	FOREIGN KEY(commit_id) REFERENCES commits(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_commit_files_commit ON commit_files(commit_id);
`

// Init opens the SQLite commit cache at the given path, creating the file
// and its parent directory if needed
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var err error
	DB, err = sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(1)
	DB.SetConnMaxLifetime(time.Hour)

	if err = DB.Ping(); err != nil {
		return err
	}

	if _, err = DB.Exec(schema); err != nil {
		return err
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
