package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps projects in a local SQLite file.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLite opens (or creates) the database at path and initializes the schema.
// ":memory:" gives a throwaway database.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client_name TEXT NOT NULL DEFAULT '',
		input TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects(updated_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) Create(ctx context.Context, p *Project) error {
	prepareNew(p, time.Now().UTC())
	input, err := json.Marshal(p.Input)
	if err != nil {
		return fmt.Errorf("encoding project input: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, `
	INSERT INTO projects (id, name, client_name, input, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.ClientName, string(input),
		p.CreatedAt.Format(sqliteTimeLayout), p.UpdatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	row := s.conn.QueryRowContext(ctx, `
	SELECT id, name, client_name, input, created_at, updated_at
	FROM projects WHERE id = ?`, id.String())
	p, err := scanSQLiteProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying project: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Project, error) {
	rows, err := s.conn.QueryContext(ctx, `
	SELECT id, name, client_name, input, created_at, updated_at
	FROM projects ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		p, err := scanSQLiteProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Update(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now().UTC()
	input, err := json.Marshal(p.Input)
	if err != nil {
		return fmt.Errorf("encoding project input: %w", err)
	}
	res, err := s.conn.ExecContext(ctx, `
	UPDATE projects SET name = ?, client_name = ?, input = ?, updated_at = ?
	WHERE id = ?`,
		p.Name, p.ClientName, string(input), p.UpdatedAt.Format(sqliteTimeLayout), p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	created, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = created.CreatedAt
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// sqliteTimeLayout is fixed-width so timestamps sort as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteProject(r rowScanner) (*Project, error) {
	var (
		p                    Project
		id, input            string
		createdAt, updatedAt string
	)
	if err := r.Scan(&id, &p.Name, &p.ClientName, &input, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing id: %w", err)
	}
	if err := json.Unmarshal([]byte(input), &p.Input); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}
	if p.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
