// Package store persists saved proposals ("projects").
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"solar-proposal/internal/simulation"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("project not found")

// Project is a named, saved set of simulation inputs.
type Project struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	ClientName string           `json:"client_name,omitempty"`
	Input      simulation.Input `json:"input"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Store is the CRUD surface shared by the SQLite and Postgres backends.
type Store interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Open picks a backend by driver name. For postgres an empty dsn falls back to DATABASE_URL.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite":
		return NewSQLite(dsn)
	case "postgres", "postgresql":
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, errors.New("DATABASE_URL environment variable not set")
		}
		return NewPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

// prepareNew fills the ID and timestamps of a project about to be created.
func prepareNew(p *Project, now time.Time) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
}
