package webhook

import (
	"context"
	"sync"
)

// Repository is the persistence contract for audit records.
//
// Records are insert-then-flip only: MarkProcessed is the single permitted
// mutation, and nothing deletes.
type Repository interface {
	Insert(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	MarkProcessed(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]Record, error)
	List(ctx context.Context) ([]Record, error)
}

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	rows  map[string]Record
	order []string

	// Failure knobs for exercising persistence-failure paths.
	FailInsert        error
	FailMarkProcessed error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: map[string]Record{}} }

func (r *MemoryRepo) Insert(ctx context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailInsert != nil {
		return Record{}, r.FailInsert
	}
	r.rows[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return rec, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) MarkProcessed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailMarkProcessed != nil {
		return r.FailMarkProcessed
	}
	rec, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	rec.Processed = true
	r.rows[id] = rec
	return nil
}

func (r *MemoryRepo) ListPending(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, 0)
	for _, id := range r.order {
		if rec := r.rows[id]; !rec.Processed {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rows[id])
	}
	return out, nil
}

// Count is a test helper.
func (r *MemoryRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
