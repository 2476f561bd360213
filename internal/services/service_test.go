package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog_CreateRejectsNegativePrices(t *testing.T) {
	cat := NewCatalog(NewMemoryRepo())

	_, err := cat.Create(context.Background(), Input{Name: "General", PricePerMinute: -0.5})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalog_EstimateRoundsUpStartedMinute(t *testing.T) {
	cat := NewCatalog(NewMemoryRepo())
	s, err := cat.Create(context.Background(), Input{
		Name: "Consulta General", PricePerMinute: 0.5, PricePerCall: 1.0, Active: true,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		seconds int
		minutes int
		total   float64
	}{
		{"zero duration bills only the per-call fee", 0, 0, 1.0},
		{"partial minute rounds up", 30, 1, 1.5},
		{"exact minutes do not round", 180, 3, 2.5},
		{"one second past the minute starts a new one", 61, 2, 2.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			est, err := cat.EstimateCallCost(context.Background(), s.ID, tc.seconds)
			require.NoError(t, err)
			require.Equal(t, tc.minutes, est.BillableMinutes)
			require.InDelta(t, tc.total, est.Total, 1e-9)
		})
	}
}

func TestCatalog_EstimateUnknownService(t *testing.T) {
	cat := NewCatalog(NewMemoryRepo())

	_, err := cat.EstimateCallCost(context.Background(), "ghost", 60)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_UpdateRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	cat := NewCatalog(repo)

	s, err := cat.Create(context.Background(), Input{Name: "Soporte", PricePerMinute: 0.2})
	require.NoError(t, err)

	updated, err := cat.Update(context.Background(), s.ID, Input{
		Name: "Soporte Tecnico", PricePerMinute: 0.25, Active: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Soporte Tecnico", updated.Name)
	require.True(t, updated.Active)

	got, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	require.Equal(t, 0.25, got.PricePerMinute)
}
