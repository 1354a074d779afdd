package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulfillmentState_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    FulfillmentState
		to      FulfillmentState
		wantErr bool
	}{
		{name: "received to validated", from: StateReceived, to: StateValidated},
		{name: "received to rejected", from: StateReceived, to: StateRejected},
		{name: "validated to reserved", from: StateValidated, to: StateStockReserved},
		{name: "reserved to packed", from: StateStockReserved, to: StatePacked},
		{name: "packed to confirmed", from: StatePacked, to: StateConfirmed},
		{name: "validated cannot be rejected", from: StateValidated, to: StateRejected, wantErr: true},
		{name: "reserved cannot skip packing", from: StateStockReserved, to: StateConfirmed, wantErr: true},
		{name: "confirmed is final", from: StateConfirmed, to: StateReceived, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestFulfillmentState_Terminal(t *testing.T) {
	assert.True(t, StateConfirmed.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.False(t, StateReceived.Terminal())
	assert.False(t, StatePacked.Terminal())
}
