package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the run-history database at path.
func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		language TEXT NOT NULL,
		status TEXT NOT NULL,
		runtime INTEGER NOT NULL,
		ran_at TEXT NOT NULL
	)
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *Repository) Create(run *Run) error {
	result, err := r.db.Exec(
		"INSERT INTO runs (file, language, status, runtime, ran_at) VALUES (?, ?, ?, ?, ?)",
		run.File, run.Language, run.Status, int64(run.Runtime),
		run.RanAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	run.ID = id
	return nil
}

// Recent returns up to limit runs, newest first.
func (r *Repository) Recent(limit int) ([]Run, error) {
	rows, err := r.db.Query(
		"SELECT id, file, language, status, runtime, ran_at FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var runtime int64
		var ranAt string
		if err := rows.Scan(&run.ID, &run.File, &run.Language, &run.Status, &runtime, &ranAt); err != nil {
			return nil, err
		}
		run.Runtime = time.Duration(runtime)
		run.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
