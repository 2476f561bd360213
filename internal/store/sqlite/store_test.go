package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"callboard/internal/calls"
	"callboard/internal/clients"
	"callboard/internal/webhook"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestWebhookRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewWebhookRepo(openTestDB(t))

	rec := webhook.Record{
		ID:         "wh-1",
		Kind:       webhook.KindCall,
		RawData:    []byte(`{"callId":"abc"}`),
		ReceivedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2025, 3, 1, 10, 0, 1, 0, time.UTC),
	}
	_, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "wh-1")
	require.NoError(t, err)
	assert.Equal(t, webhook.KindCall, got.Kind)
	assert.JSONEq(t, `{"callId":"abc"}`, string(got.RawData))
	assert.False(t, got.Processed)
	assert.True(t, got.ReceivedAt.Equal(rec.ReceivedAt))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, repo.MarkProcessed(ctx, "wh-1"))
	pending, err = repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Processed)
}

func TestWebhookRepoMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewWebhookRepo(openTestDB(t))

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, webhook.ErrNotFound)
	assert.ErrorIs(t, repo.MarkProcessed(ctx, "nope"), webhook.ErrNotFound)
}

func TestCallRepoRoundTripAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewCallRepo(openTestDB(t))

	ok := true
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []calls.Call{
		{ID: "c1", ClientID: "cl-1", ClientName: "Acme", OccurredAt: base, DurationSeconds: 60, CostAmount: 1.5, Outcome: calls.OutcomeSuccess, WasSuccessful: &ok, ServiceID: "svc-1"},
		{ID: "c2", ClientID: "cl-2", ClientName: "unknown client", OccurredAt: base.Add(time.Hour), Outcome: calls.OutcomeFailed},
	}
	for _, c := range rows {
		c.CreatedAt = base
		_, err := repo.Insert(ctx, c)
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.ClientName)
	require.NotNil(t, got.WasSuccessful)
	assert.True(t, *got.WasSuccessful)
	assert.True(t, got.OccurredAt.Equal(base))

	got, err = repo.GetByID(ctx, "c2")
	require.NoError(t, err)
	assert.Nil(t, got.WasSuccessful)

	byClient, err := repo.List(ctx, calls.ListFilter{ClientID: "cl-1"})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, "c1", byClient[0].ID)

	byOutcome, err := repo.List(ctx, calls.ListFilter{Outcome: calls.OutcomeFailed})
	require.NoError(t, err)
	require.Len(t, byOutcome, 1)
	assert.Equal(t, "c2", byOutcome[0].ID)

	inRange, err := repo.List(ctx, calls.ListFilter{From: base, To: base.Add(30 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "c1", inRange[0].ID)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, calls.ErrNotFound)
}

func TestClientRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(openTestDB(t))

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := clients.Client{
		ID:               "cl-1",
		Name:             "Acme",
		Phone:            "+15550001111",
		Email:            "ops@acme.test",
		Status:           clients.StatusActive,
		RegistrationDate: now,
		ServiceIDs:       []string{"svc-1", "svc-2"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_, err := repo.Insert(ctx, c)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "cl-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-1", "svc-2"}, got.ServiceIDs)
	assert.Equal(t, clients.StatusActive, got.Status)

	c.Name = "Acme Corp"
	c.UpdatedAt = now.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, c))

	got, err = repo.GetByID(ctx, "cl-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)

	require.NoError(t, repo.Delete(ctx, "cl-1"))
	_, err = repo.GetByID(ctx, "cl-1")
	assert.ErrorIs(t, err, clients.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "cl-1"), clients.ErrNotFound)
}
