package calls

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("calls: not found")

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	ClientID  string
	ServiceID string
	Outcome   Outcome
	From      time.Time
	To        time.Time
}

// Repository is the persistence contract for call rows.
//
// Insert is the only write: call rows are immutable once persisted.
type Repository interface {
	Insert(ctx context.Context, c Call) (Call, error)
	GetByID(ctx context.Context, id string) (Call, error)
	List(ctx context.Context, f ListFilter) ([]Call, error)
}

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	rows  map[string]Call
	order []string

	// FailInsert forces Insert to fail; used to exercise persistence-failure paths.
	FailInsert error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: map[string]Call{}} }

func (r *MemoryRepo) Insert(ctx context.Context, c Call) (Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailInsert != nil {
		return Call{}, r.FailInsert
	}
	r.rows[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return Call{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, 0, len(r.rows))
	for _, id := range r.order {
		c := r.rows[id]
		if f.ClientID != "" && c.ClientID != f.ClientID {
			continue
		}
		if f.ServiceID != "" && c.ServiceID != f.ServiceID {
			continue
		}
		if f.Outcome != "" && c.Outcome != f.Outcome {
			continue
		}
		if !f.From.IsZero() && c.OccurredAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !c.OccurredAt.Before(f.To) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

// Count is a test helper.
func (r *MemoryRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
