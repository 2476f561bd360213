package postgres

import (
	"context"
	"database/sql"
	"time"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

// AnalyticsRepo serves read-only aggregation queries over the same tables
// the pipeline writes.
type AnalyticsRepo struct {
	calls   *CallRepo
	clients *ClientRepo
}

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo {
	return &AnalyticsRepo{calls: NewCallRepo(db), clients: NewClientRepo(db)}
}

func (r *AnalyticsRepo) ListCalls(ctx context.Context, from, to time.Time) ([]calls.Call, error) {
	return r.calls.List(ctx, calls.ListFilter{From: from, To: to})
}

func (r *AnalyticsRepo) ListClients(ctx context.Context) ([]clients.Client, error) {
	return r.clients.List(ctx)
}
