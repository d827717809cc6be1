// Package artifact keeps binary byproducts of the flows (detection
// images, analysis JSON, audio clips) in an object store. Wiring it is
// optional; core pond state stays session-scoped either way.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound marks a missing artifact.
var ErrNotFound = errors.New("artifact not found")

// Store persists named artifacts grouped by owner id (e.g. a detection id).
type Store interface {
	Put(ctx context.Context, id, name string, content []byte) error
	Get(ctx context.Context, id, name string) ([]byte, error)
	List(ctx context.Context, id string) ([]string, error)
	GetURL(ctx context.Context, id, name string) (string, error)
}

// MemoryStore is the in-process fallback backend.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func artifactKey(id, name string) (string, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return "", fmt.Errorf("artifact: id is required")
	}
	if name == "" {
		return "", fmt.Errorf("artifact: name is required")
	}
	return id + "/" + strings.TrimLeft(name, "/"), nil
}

func (s *MemoryStore) Put(_ context.Context, id, name string, content []byte) error {
	key, err := artifactKey(id, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id, name string) ([]byte, error) {
	key, err := artifactKey(id, name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) List(_ context.Context, id string) ([]string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("artifact: id is required")
	}
	prefix := id + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, 8)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}

// GetURL is unsupported for the memory backend.
func (s *MemoryStore) GetURL(context.Context, string, string) (string, error) {
	return "", nil
}
