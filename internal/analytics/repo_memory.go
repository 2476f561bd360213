package analytics

import (
	"context"
	"sync"
	"time"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

// MemoryRepo is a simple in-memory reporting source for tests.
type MemoryRepo struct {
	mu sync.Mutex

	Calls   []calls.Call
	Clients []clients.Client
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListCalls(ctx context.Context, from, to time.Time) ([]calls.Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]calls.Call, 0)
	for _, c := range r.Calls {
		if c.OccurredAt.Before(from) || !c.OccurredAt.Before(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryRepo) ListClients(ctx context.Context) ([]clients.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]clients.Client, len(r.Clients))
	copy(out, r.Clients)
	return out, nil
}
