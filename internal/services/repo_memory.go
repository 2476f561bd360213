package services

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	rows  map[string]Service
	order []string
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: map[string]Service{}} }

func (r *MemoryRepo) Insert(ctx context.Context, s Service) (Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = s
	r.order = append(r.order, s.ID)
	return s, nil
}

func (r *MemoryRepo) Update(ctx context.Context, s Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.ID]; !ok {
		return ErrNotFound
	}
	r.rows[s.ID] = s
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return Service{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Service, 0, len(r.rows))
	for _, id := range r.order {
		out = append(out, r.rows[id])
	}
	return out, nil
}
