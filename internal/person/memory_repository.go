package person

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	persons map[string]Person
}

// NewMemoryRepository builds an in-memory person store for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{persons: make(map[string]Person)}
}

func (r *memoryRepository) Create(_ context.Context, p Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persons[p.ID] = p
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.persons[id]
	if !ok {
		return Person{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	persons := make([]Person, 0, len(r.persons))
	for _, p := range r.persons {
		persons = append(persons, p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].CreatedAt.Before(persons[j].CreatedAt) })
	return persons, nil
}

func (r *memoryRepository) Update(_ context.Context, p Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.persons[p.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	r.persons[p.ID] = p
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.persons[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.persons, id)
	return nil
}
