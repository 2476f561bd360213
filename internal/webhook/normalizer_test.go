package webhook

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

func TestNormalizeCall_FullPayload(t *testing.T) {
	raw := []byte(`{
		"call_id": "ext-42",
		"client_id": "c-1",
		"client_name": "Juan Perez",
		"time": "2024-03-15T10:30:00Z",
		"duration": 180,
		"type": "inbound",
		"cost": 2.45,
		"disconnection_reason": "agent_hangup",
		"result": "success",
		"user_sentiment": "positive",
		"from_number": "+34600111222",
		"to_number": "+34911000111",
		"call_successful": true,
		"call_summary": "resolved billing question",
		"service_id": "s-1",
		"service_name": "Consulta General",
		"recording": "https://cdn.example.com/rec/42.mp3",
		"transcription": "hola..."
	}`)

	c, err := NormalizeCall(context.Background(), raw, nil)
	require.NoError(t, err)
	require.Equal(t, "ext-42", c.ExternalCallID)
	require.Equal(t, "Juan Perez", c.ClientName)
	require.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), c.OccurredAt)
	require.Equal(t, 180, c.DurationSeconds)
	require.Equal(t, 2.45, c.CostAmount)
	require.Equal(t, calls.OutcomeSuccess, c.Outcome)
	require.NotNil(t, c.WasSuccessful)
	require.True(t, *c.WasSuccessful)
	require.Equal(t, "https://cdn.example.com/rec/42.mp3", c.RecordingURL)
}

func TestNormalizeCall_NumericCoercion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		duration int
		cost     float64
	}{
		{"garbage duration coerces to zero", `{"time":"2024-03-15T10:30:00Z","result":"success","duration":"abc","cost":1}`, 0, 1},
		{"numeric string cost parses", `{"time":"2024-03-15T10:30:00Z","result":"success","duration":60,"cost":"2.5"}`, 60, 2.5},
		{"negative values clamp to zero", `{"time":"2024-03-15T10:30:00Z","result":"success","duration":-5,"cost":-1.2}`, 0, 0},
		{"absent values default to zero", `{"time":"2024-03-15T10:30:00Z","result":"success"}`, 0, 0},
		{"fractional duration truncates", `{"time":"2024-03-15T10:30:00Z","result":"success","duration":90.7,"cost":0}`, 90, 0},
		{"duration beyond int range coerces to zero", `{"time":"2024-03-15T10:30:00Z","result":"success","duration":1e300,"cost":0}`, 0, 0},
		{"duration at the int boundary coerces to zero", `{"time":"2024-03-15T10:30:00Z","result":"success","duration":9223372036854775808,"cost":0}`, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NormalizeCall(context.Background(), []byte(tc.raw), nil)
			require.NoError(t, err)
			require.Equal(t, tc.duration, c.DurationSeconds)
			require.Equal(t, tc.cost, c.CostAmount)
		})
	}
}

func TestNormalizeCall_NoSuccessDefaultForResult(t *testing.T) {
	// The server-side pipeline treats a missing or invalid result as a hard
	// failure; it never falls back to "success".
	for _, raw := range []string{
		`{"time":"2024-03-15T10:30:00Z","duration":60,"cost":0}`,
		`{"time":"2024-03-15T10:30:00Z","duration":60,"cost":0,"result":"maybe"}`,
	} {
		_, err := NormalizeCall(context.Background(), []byte(raw), nil)
		require.ErrorIs(t, err, ErrNormalization)
	}
}

func TestNormalizeCall_UnparseableTime(t *testing.T) {
	_, err := NormalizeCall(context.Background(), []byte(`{"time":"10:30","duration":60,"cost":0,"result":"success"}`), nil)
	require.ErrorIs(t, err, ErrNormalization)
}

func TestNormalizeCall_ClientNameResolution(t *testing.T) {
	repo := clients.NewMemoryRepo()
	_, err := repo.Insert(context.Background(), clients.Client{ID: "c-1", Name: "Maria Garcia"})
	require.NoError(t, err)

	t.Run("payload name wins", func(t *testing.T) {
		c, err := NormalizeCall(context.Background(),
			[]byte(`{"time":"2024-03-15T10:30:00Z","duration":0,"cost":0,"result":"busy","client_id":"c-1","client_name":"From Payload"}`), repo)
		require.NoError(t, err)
		require.Equal(t, "From Payload", c.ClientName)
	})

	t.Run("lookup fills missing name", func(t *testing.T) {
		c, err := NormalizeCall(context.Background(),
			[]byte(`{"time":"2024-03-15T10:30:00Z","duration":0,"cost":0,"result":"busy","client_id":"c-1"}`), repo)
		require.NoError(t, err)
		require.Equal(t, "Maria Garcia", c.ClientName)
	})

	t.Run("unknown client id gets the placeholder, not an error", func(t *testing.T) {
		c, err := NormalizeCall(context.Background(),
			[]byte(`{"time":"2024-03-15T10:30:00Z","duration":0,"cost":0,"result":"busy","client_id":"ghost"}`), repo)
		require.NoError(t, err)
		require.Equal(t, UnknownClientName, c.ClientName)
	})

	t.Run("no client reference leaves the name empty", func(t *testing.T) {
		c, err := NormalizeCall(context.Background(),
			[]byte(`{"time":"2024-03-15T10:30:00Z","duration":0,"cost":0,"result":"busy"}`), repo)
		require.NoError(t, err)
		require.Empty(t, c.ClientName)
	})
}

func TestNormalizeClient_MapsFields(t *testing.T) {
	in, err := NormalizeClient([]byte(`{"name":"Juan","phone":"+34 600","email":"j@e.com","company":"ACME","status":"active","services":["s-1"]}`))
	require.NoError(t, err)
	require.Equal(t, "Juan", in.Name)
	require.Equal(t, "active", in.Status)
	require.Equal(t, []string{"s-1"}, in.ServiceIDs)
}
