package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name  string
		entry *LogEntry
		key   string
		value interface{}
	}{
		{name: "nil fields are initialized", entry: &LogEntry{}, key: "trucks", value: 2},
		{name: "existing field is overwritten", entry: &LogEntry{Fields: map[string]interface{}{"trucks": 1}}, key: "trucks", value: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, result)
			assert.Equal(t, tt.value, result.Fields[tt.key])
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := (&LogEntry{ActionType: ActionOutboundOrder}).WithField("warehouse", 1)

	entry.WithFields(map[string]interface{}{"trucks": 2, "state": "confirmed"})

	assert.Len(t, entry.Fields, 3)
	assert.Equal(t, "confirmed", entry.Fields["state"])
}
