package store

import (
	"context"
	"sync"

	"github.com/jsvensson/palettekit/internal/palette"
)

// MemoryStore keeps projects in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]Project
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]Project)}
}

func (s *MemoryStore) List(_ context.Context) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sortProjects(out)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, notFound(id)
	}
	return p, nil
}

func (s *MemoryStore) Create(_ context.Context, name string, doc *palette.Document) (Project, error) {
	p, err := newProject(name, doc)
	if err != nil {
		return Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	return p, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, patch Patch) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, notFound(id)
	}
	p, err := applyPatch(p, patch)
	if err != nil {
		return Project{}, err
	}
	s.projects[id] = p
	return p, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return notFound(id)
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
