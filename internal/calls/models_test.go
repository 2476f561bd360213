package calls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidOutcome(t *testing.T) {
	for _, s := range Outcomes() {
		require.True(t, ValidOutcome(s), s)
	}
	require.False(t, ValidOutcome(""))
	require.False(t, ValidOutcome("completed"))
	require.False(t, ValidOutcome("SUCCESS"))
}
