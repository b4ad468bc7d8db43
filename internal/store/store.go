// Package store persists named palette projects.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jsvensson/palettekit/internal/config"
	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrNameRequired = errors.New("project name is required")
)

// Project is a named palette with bookkeeping timestamps.
type Project struct {
	ID        string
	Name      string
	Palette   *palette.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch describes an update. Nil fields are left unchanged.
type Patch struct {
	Name    *string
	Palette *palette.Document
}

// Store is implemented by every backend.
type Store interface {
	// List returns all projects, most recently updated first.
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (Project, error)
	// Create stores a new project. A nil palette is stored as empty.
	Create(ctx context.Context, name string, p *palette.Document) (Project, error)
	Update(ctx context.Context, id string, patch Patch) (Project, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(afero.NewOsFs(), cfg.Dir)
	case config.BackendRedis:
		return NewRedisStore(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		}, cfg.Redis.Prefix), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

var now = func() time.Time { return time.Now().UTC() }

func newProject(name string, p *palette.Document) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ErrNameRequired
	}
	if p == nil {
		p = palette.New()
	}
	t := now()
	return Project{
		ID:        uuid.NewString(),
		Name:      name,
		Palette:   p,
		CreatedAt: t,
		UpdatedAt: t,
	}, nil
}

func applyPatch(p Project, patch Patch) (Project, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return Project{}, ErrNameRequired
		}
		p.Name = name
	}
	if patch.Palette != nil {
		p.Palette = patch.Palette
	}
	p.UpdatedAt = now()
	return p, nil
}

func sortProjects(ps []Project) {
	slices.SortStableFunc(ps, func(a, b Project) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// validID rejects anything that is not a UUID before it reaches a file name
// or key.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
