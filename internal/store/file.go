package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/spf13/afero"
)

const projectExt = ".json"

// FileStore keeps one JSON file per project in a directory.
type FileStore struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(fsys afero.Fs, dir string) (*FileStore, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{fs: fsys, dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+projectExt)
}

func (s *FileStore) List(ctx context.Context) ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var out []Project
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, ok := strings.CutSuffix(e.Name(), projectExt)
		if e.IsDir() || !ok || !validID(id) {
			continue
		}
		p, err := s.read(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sortProjects(out)
	return out, nil
}

func (s *FileStore) Get(_ context.Context, id string) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

func (s *FileStore) Create(_ context.Context, name string, doc *palette.Document) (Project, error) {
	p, err := newProject(name, doc)
	if err != nil {
		return Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *FileStore) Update(_ context.Context, id string, patch Patch) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.read(id)
	if err != nil {
		return Project{}, err
	}
	p, err = applyPatch(p, patch)
	if err != nil {
		return Project{}, err
	}
	if err := s.write(p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validID(id) {
		return notFound(id)
	}
	if err := s.fs.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound(id)
		}
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read(id string) (Project, error) {
	if !validID(id) {
		return Project{}, notFound(id)
	}
	data, err := afero.ReadFile(s.fs, s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Project{}, notFound(id)
		}
		return Project{}, fmt.Errorf("reading project %s: %w", id, err)
	}
	return decodeProject(data)
}

// write replaces the project file through a temporary file and rename.
func (s *FileStore) write(p Project) error {
	data, err := encodeProject(p)
	if err != nil {
		return err
	}
	tmp := s.path(p.ID) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing project %s: %w", p.ID, err)
	}
	if err := s.fs.Rename(tmp, s.path(p.ID)); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("writing project %s: %w", p.ID, err)
	}
	return nil
}
