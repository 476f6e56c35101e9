// Package store persists solved structures so the server can serve repeat
// formulas and list what has been solved.
//
// [MongoStore] keeps one document per structure, keyed by formula and
// index. [MemoryStore] has the same semantics and backs tests and servers
// started without a database.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/lewis/pkg/graph"
)

// Store saves and retrieves structures by formula.
type Store interface {
	// Save upserts structures. An existing structure with the same formula
	// and index is replaced.
	Save(ctx context.Context, structures []graph.Structure) error

	// Find returns the structures of a normalized formula ordered by index.
	// An unknown formula yields an empty slice.
	Find(ctx context.Context, formula string) ([]graph.Structure, error)

	// Formulas lists every stored formula in ascending order.
	Formulas(ctx context.Context) ([]string, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[int]graph.Structure
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[int]graph.Structure)}
}

func (m *MemoryStore) Save(_ context.Context, structures []graph.Structure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range structures {
		byIndex, ok := m.data[s.Formula]
		if !ok {
			byIndex = make(map[int]graph.Structure)
			m.data[s.Formula] = byIndex
		}
		byIndex[s.Index] = s
	}
	return nil
}

func (m *MemoryStore) Find(_ context.Context, formula string) ([]graph.Structure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]graph.Structure, 0, len(m.data[formula]))
	for _, s := range m.data[formula] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func (m *MemoryStore) Formulas(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for f := range m.data {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
