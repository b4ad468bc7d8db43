package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsvensson/palettekit/internal/palette"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each project as a JSON string value and tracks IDs in a
// set. All keys start with the configured prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(opts *redis.Options, prefix string) *RedisStore {
	return &RedisStore{rdb: redis.NewClient(opts), prefix: prefix}
}

func (s *RedisStore) projectKey(id string) string {
	return s.prefix + "project:" + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "projects"
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]Project, error) {
	ids, err := s.rdb.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	out := make([]Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Index entry without a value; the value was deleted elsewhere.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sortProjects(out)
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Project, error) {
	data, err := s.rdb.Get(ctx, s.projectKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Project{}, notFound(id)
	}
	if err != nil {
		return Project{}, fmt.Errorf("reading project %s: %w", id, err)
	}
	return decodeProject(data)
}

func (s *RedisStore) Create(ctx context.Context, name string, doc *palette.Document) (Project, error) {
	p, err := newProject(name, doc)
	if err != nil {
		return Project{}, err
	}
	if err := s.write(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, patch Patch) (Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	p, err = applyPatch(p, patch)
	if err != nil {
		return Project{}, err
	}
	if err := s.write(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.projectKey(id))
		pipe.SRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	if del.Val() == 0 {
		return notFound(id)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) write(ctx context.Context, p Project) error {
	data, err := encodeProject(p)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.projectKey(p.ID), data, 0)
		pipe.SAdd(ctx, s.indexKey(), p.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing project %s: %w", p.ID, err)
	}
	return nil
}
