package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

func day(d int, hour int) time.Time {
	return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
}

func seedCalls() []calls.Call {
	return []calls.Call{
		{ID: "c1", OccurredAt: day(1, 9), DurationSeconds: 60, CostAmount: 1.5, Outcome: calls.OutcomeSuccess, ServiceID: "svc-a", ServiceName: "Support Line"},
		{ID: "c2", OccurredAt: day(1, 14), DurationSeconds: 120, CostAmount: 3.0, Outcome: calls.OutcomeFailed, ServiceID: "svc-a", ServiceName: "Support Line"},
		{ID: "c3", OccurredAt: day(2, 10), DurationSeconds: 30, CostAmount: 0.75, Outcome: calls.OutcomeNoAnswer, ServiceID: "svc-b", ServiceName: "Sales"},
		{ID: "c4", OccurredAt: day(2, 11), DurationSeconds: 90, CostAmount: 2.25, Outcome: calls.OutcomeBusy},
	}
}

func TestCallsSummary(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Calls = seedCalls()
	svc := NewService(repo)

	got, err := svc.CallsSummary(context.Background(), TimeRange{From: day(1, 0), To: day(3, 0)})
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalCalls)
	assert.Equal(t, 1, got.SuccessCalls)
	assert.Equal(t, 1, got.FailedCalls)
	assert.Equal(t, 1, got.NoAnswerCalls)
	assert.Equal(t, 1, got.BusyCalls)
	assert.Equal(t, 300, got.TotalDurationSeconds)
	assert.Equal(t, 75, got.AverageDurationSeconds)
	assert.InDelta(t, 7.5, got.TotalCost, 1e-9)
}

func TestCallsSummaryRangeIsHalfOpen(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Calls = seedCalls()
	svc := NewService(repo)

	got, err := svc.CallsSummary(context.Background(), TimeRange{From: day(1, 0), To: day(2, 0)})
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalCalls)
}

func TestServiceBreakdownSortsByVolume(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Calls = seedCalls()
	svc := NewService(repo)

	got, err := svc.ServiceBreakdown(context.Background(), TimeRange{From: day(1, 0), To: day(3, 0)})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "svc-a", got[0].ServiceID)
	assert.Equal(t, "Support Line", got[0].ServiceName)
	assert.Equal(t, 2, got[0].Calls)
	assert.InDelta(t, 4.5, got[0].TotalCost, 1e-9)

	// single-call buckets tie, so they come back in id order
	assert.Equal(t, "", got[1].ServiceID)
	assert.Equal(t, "svc-b", got[2].ServiceID)
}

func TestDailyVolumeGroupsByUTCDay(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Calls = seedCalls()
	svc := NewService(repo)

	got, err := svc.DailyVolume(context.Background(), TimeRange{From: day(1, 0), To: day(3, 0)})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2025-03-01", got[0].Date)
	assert.Equal(t, 2, got[0].Calls)
	assert.InDelta(t, 4.5, got[0].Cost, 1e-9)
	assert.Equal(t, "2025-03-02", got[1].Date)
	assert.Equal(t, 2, got[1].Calls)
}

func TestClientStatus(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Clients = []clients.Client{
		{ID: "a", Status: clients.StatusActive},
		{ID: "b", Status: clients.StatusActive},
		{ID: "c", Status: clients.StatusInactive},
		{ID: "d", Status: clients.StatusPending},
	}
	svc := NewService(repo)

	got, err := svc.ClientStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ClientStatusDistribution{Active: 2, Inactive: 1, Pending: 1, Total: 4}, got)
}

func TestInvalidRange(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.CallsSummary(context.Background(), TimeRange{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.DailyVolume(context.Background(), TimeRange{From: day(2, 0), To: day(1, 0)})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
