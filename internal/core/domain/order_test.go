package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusExpired},
		{StatusConfirmed, StatusProcessing},
		{StatusConfirmed, StatusCancelled},
		{StatusProcessing, StatusCompleted},
		{StatusProcessing, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	all := []OrderStatus{StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled, StatusExpired}

	// No edges lead out of a terminal status.
	for _, from := range []OrderStatus{StatusCompleted, StatusCancelled, StatusExpired} {
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s should be rejected", from, to)
		}
	}

	// No edge leads back to pending, no edge skips a step.
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusPending))
	assert.False(t, StatusPending.CanTransitionTo(StatusProcessing))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusExpired))
	assert.False(t, StatusProcessing.CanTransitionTo(StatusExpired))
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
}

func TestTransitionSources(t *testing.T) {
	assert.ElementsMatch(t, []OrderStatus{StatusPending}, TransitionSources(StatusConfirmed))
	assert.ElementsMatch(t, []OrderStatus{StatusConfirmed}, TransitionSources(StatusProcessing))
	assert.ElementsMatch(t, []OrderStatus{StatusProcessing}, TransitionSources(StatusCompleted))
	assert.ElementsMatch(t, []OrderStatus{StatusPending, StatusConfirmed, StatusProcessing}, TransitionSources(StatusCancelled))
	assert.ElementsMatch(t, []OrderStatus{StatusPending}, TransitionSources(StatusExpired))
	assert.Empty(t, TransitionSources(StatusPending))
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)

	// Casing is part of the contract.
	_, err = ParseOrderStatus("Pending")
	assert.Error(t, err)
}

func TestOrderIsExpiredAt(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	order := Order{Status: StatusPending, ExpiresAt: deadline}

	assert.False(t, order.IsExpiredAt(deadline.Add(-time.Second)))
	assert.False(t, order.IsExpiredAt(deadline), "the deadline itself is still inside the TTL")
	assert.True(t, order.IsExpiredAt(deadline.Add(time.Second)))

	// Only pending orders expire.
	confirmed := Order{Status: StatusConfirmed, ExpiresAt: deadline}
	assert.False(t, confirmed.IsExpiredAt(deadline.Add(time.Hour)))
}
