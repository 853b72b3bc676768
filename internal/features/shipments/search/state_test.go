package search

import (
	"errors"
	"fmt"
	"testing"

	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Lifecycle(t *testing.T) {
	s := NewState()
	assert.Equal(t, PhaseIdle, s.Phase())

	ticket, err := s.SubmitQuery("  SHIP-AB12CD34 ")
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, "SHIP-AB12CD34", s.Query())

	ok := s.ReceiveResults(ticket, []domain.Shipment{{TrackingNumber: "SHIP-AB12CD34"}})
	assert.True(t, ok)
	assert.Equal(t, PhaseLoaded, s.Phase())
	assert.Len(t, s.Results(), 1)
	assert.Empty(t, s.Message())
}

func TestState_EmptyQuery(t *testing.T) {
	s := NewState()

	ticket, err := s.SubmitQuery("   ")
	assert.ErrorIs(t, err, lookup.ErrEmptyQuery)
	assert.Zero(t, ticket)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, MessageEmptyQuery, s.Message())
	assert.Empty(t, s.Recent())
}

func TestState_EmptyResults(t *testing.T) {
	s := NewState()
	ticket, _ := s.SubmitQuery("SHIP-NOPE0000")

	s.ReceiveResults(ticket, nil)
	assert.Equal(t, PhaseEmpty, s.Phase())
	assert.Equal(t, MessageNotFound, s.Message())
}

func TestState_ReceiveError(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		s := NewState()
		ticket, _ := s.SubmitQuery("x")

		assert.True(t, s.ReceiveError(ticket, fmt.Errorf("wrapped: %w", lookup.ErrNotFound)))
		assert.Equal(t, PhaseEmpty, s.Phase())
		assert.Equal(t, MessageNotFound, s.Message())
	})

	t.Run("Upstream", func(t *testing.T) {
		s := NewState()
		ticket, _ := s.SubmitQuery("x")

		assert.True(t, s.ReceiveError(ticket, errors.New("dial tcp 10.0.0.1:5432: connection refused")))
		assert.Equal(t, PhaseErrored, s.Phase())
		assert.Equal(t, MessageUnavailable, s.Message())
		assert.NotContains(t, s.Message(), "5432")
	})
}

func TestState_LastWriteWins(t *testing.T) {
	s := NewState()

	first, _ := s.SubmitQuery("first")
	second, _ := s.SubmitQuery("second")

	assert.False(t, s.ReceiveResults(first, []domain.Shipment{{ID: "stale"}}))
	assert.False(t, s.ReceiveError(first, errors.New("stale failure")))
	assert.Equal(t, PhaseLoading, s.Phase())

	assert.True(t, s.ReceiveResults(second, []domain.Shipment{{ID: "fresh"}}))
	assert.Equal(t, "fresh", s.Results()[0].ID)

	// A completed search ignores repeated deliveries.
	assert.False(t, s.ReceiveResults(second, nil))
	assert.Equal(t, PhaseLoaded, s.Phase())
}

func TestState_Recent(t *testing.T) {
	s := NewState()
	for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
		_, err := s.SubmitQuery(q)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, s.Recent())

	_, _ = s.SubmitQuery("C")
	assert.Equal(t, []string{"C", "f", "e", "d", "b"}, s.Recent())

	recent := s.Recent()
	recent[0] = "mutated"
	assert.Equal(t, "C", s.Recent()[0])
}

func TestState_ResultsAreCopies(t *testing.T) {
	s := NewState()
	ticket, _ := s.SubmitQuery("q")
	in := []domain.Shipment{{ID: "1"}}
	s.ReceiveResults(ticket, in)

	in[0].ID = "changed"
	out := s.Results()
	out[0].ID = "changed too"

	assert.Equal(t, "1", s.Results()[0].ID)
}
