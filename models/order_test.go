package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{StatusReceived, StatusProcessing, true},
		{StatusReceived, StatusCancelled, true},
		{StatusReceived, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusReceived, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusCancelled, StatusReceived, false},
		{StatusCancelled, StatusProcessing, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, StatusReceived.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusReceived.Valid())
	assert.False(t, OrderStatus("SHIPPED").Valid())
}
