// Package entity provides the entity registry: an injected key-value store
// for opaque references (links, embeds) attached to character ranges. The
// registry is a capability passed to the components that need it, never a
// process-wide singleton, so independent documents cannot cross-talk.
package entity

import (
	"errors"
	"sort"
	"strconv"
)

// Mutability values describe how an entity's range behaves under edits.
const (
	Mutable   = "MUTABLE"
	Immutable = "IMMUTABLE"
	Segmented = "SEGMENTED"
)

// ErrEntityNotFound indicates a lookup for an unknown entity key.
var ErrEntityNotFound = errors.New("entity not found")

// Entity is one stored reference. Data is owned by the registry; callers
// must treat it as read-only.
type Entity struct {
	Type       string
	Mutability string
	Data       map[string]any
}

// Registry stores entities under string keys.
type Registry interface {
	// Create stores a new entity and returns its generated key.
	Create(typ, mutability string, data map[string]any) string

	// Put stores an entity under an explicit key, replacing any previous
	// entry. Used when loading persisted documents.
	Put(key string, e Entity)

	// Get returns the entity stored under key.
	Get(key string) (Entity, bool)

	// MergeData merges entries into an entity's data map.
	MergeData(key string, data map[string]any) error

	// Keys returns all keys in sorted order.
	Keys() []string
}

// NewInMemory returns a registry backed by a plain map with sequential
// numeric keys.
func NewInMemory() Registry {
	return &inMemory{entities: make(map[string]Entity)}
}

type inMemory struct {
	entities map[string]Entity
	nextKey  int
}

func (r *inMemory) Create(typ, mutability string, data map[string]any) string {
	r.nextKey++
	key := strconv.Itoa(r.nextKey)
	r.entities[key] = Entity{Type: typ, Mutability: mutability, Data: copyData(data)}
	return key
}

func (r *inMemory) Put(key string, e Entity) {
	e.Data = copyData(e.Data)
	r.entities[key] = e
	// Keep generated keys clear of loaded numeric keys.
	if n, err := strconv.Atoi(key); err == nil && n > r.nextKey {
		r.nextKey = n
	}
}

func (r *inMemory) Get(key string) (Entity, bool) {
	e, ok := r.entities[key]
	return e, ok
}

func (r *inMemory) MergeData(key string, data map[string]any) error {
	e, ok := r.entities[key]
	if !ok {
		return ErrEntityNotFound
	}
	merged := copyData(e.Data)
	if merged == nil {
		merged = make(map[string]any, len(data))
	}
	for k, v := range data {
		merged[k] = v
	}
	e.Data = merged
	r.entities[key] = e
	return nil
}

func (r *inMemory) Keys() []string {
	keys := make([]string, 0, len(r.entities))
	for k := range r.entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
