package clients

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	rows  map[string]Client
	order []string
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: map[string]Client{}} }

func (r *MemoryRepo) Insert(ctx context.Context, c Client) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

func (r *MemoryRepo) Update(ctx context.Context, c Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return ErrNotFound
	}
	r.rows[c.ID] = c
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

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Client, 0, len(r.rows))
	for _, id := range r.order {
		out = append(out, r.rows[id])
	}
	return out, nil
}
