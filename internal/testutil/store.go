package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T, filter interface{}) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// CloneFunc copies an item so callers never share memory with the store
type CloneFunc[T any] func(item T) T

// Snapshotter is a store whose contents can be saved and put back.
// MockPostgresClient uses it to undo the writes of a failed transaction.
type Snapshotter interface {
	Snapshot() any
	Restore(snapshot any)
}

// InMemoryStore implements a generic in-memory store. Items are cloned on
// the way in and on the way out, so a caller mutating what it read does not
// change the store until it calls Update.
type InMemoryStore[T any] struct {
	mu     sync.RWMutex
	items  map[string]T
	clone  CloneFunc[T]
	entity string
}

// NewInMemoryStore creates a new InMemoryStore
func NewInMemoryStore[T any](entity string, clone CloneFunc[T]) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items:  make(map[string]T),
		clone:  clone,
		entity: entity,
	}
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("%s %s already exists", s.entity, id).
			WithHintf("%s already exists", s.entity).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = s.clone(item)
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, exists := s.items[id]; exists {
		return s.clone(item), nil
	}

	var zero T
	return zero, s.notFound(id)
}

// Find returns the first item matching fn
func (s *InMemoryStore[T]) Find(ctx context.Context, fn func(item T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if fn(item) {
			return s.clone(item), true
		}
	}

	var zero T
	return zero, false
}

// List retrieves items based on filter
func (s *InMemoryStore[T]) List(ctx context.Context, filter interface{}, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0)
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item, filter) {
			result = append(result, s.clone(item))
		}
	}

	if sortFn != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}

	// Apply pagination if filter implements BaseFilter
	if f, ok := filter.(types.BaseFilter); ok {
		start := f.GetOffset()
		if start >= len(result) {
			return []T{}, nil
		}
		if f.IsUnlimited() {
			return result[start:], nil
		}

		end := start + f.GetLimit()
		if end > len(result) {
			end = len(result)
		}
		return result[start:end], nil
	}

	return result, nil
}

// Count returns the total number of items matching the filter
func (s *InMemoryStore[T]) Count(ctx context.Context, filter interface{}, filterFn FilterFunc[T]) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item, filter) {
			count++
		}
	}

	return count, nil
}

// Update updates an existing item
func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound(id)
	}

	s.items[id] = s.clone(item)
	return nil
}

// Delete removes an item from the store
func (s *InMemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return s.notFound(id)
	}

	delete(s.items, id)
	return nil
}

// DeleteWhere removes every item matching fn
func (s *InMemoryStore[T]) DeleteWhere(ctx context.Context, fn func(item T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, item := range s.items {
		if fn(item) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

// Snapshot copies the current contents. Stored items are never mutated in
// place, so copying the map is enough.
func (s *InMemoryStore[T]) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make(map[string]T, len(s.items))
	for id, item := range s.items {
		items[id] = item
	}
	return items
}

// Restore replaces the contents with a snapshot taken earlier
func (s *InMemoryStore[T]) Restore(snapshot any) {
	items, ok := snapshot.(map[string]T)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *InMemoryStore[T]) notFound(id string) error {
	return ierr.NewErrorf("%s %s not found", s.entity, id).
		WithHintf("%s not found", s.entity).
		WithReportableDetails(map[string]any{
			"id": id,
		}).
		Mark(ierr.ErrNotFound)
}
