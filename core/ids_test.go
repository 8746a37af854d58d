package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID("txn")

	assert.True(t, strings.HasPrefix(id, "txn_"))
	assert.Len(t, id, len("txn_")+26)
	assert.True(t, IsValidID(id))
}

func TestNewID_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID("txn")
		assert.False(t, seen[id], "generated duplicate ID: %s", id)
		seen[id] = true
	}
}

func TestNewID_NormalizesPrefix(t *testing.T) {
	id := NewID(" TXN ")
	assert.True(t, strings.HasPrefix(id, "txn_"))
}

func TestNewID_PanicsOnEmptyPrefix(t *testing.T) {
	assert.Panics(t, func() { NewID("") })
	assert.Panics(t, func() { NewID("   ") })
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		{"valid generated id", NewID("c"), true},
		{"empty string", "", false},
		{"no separator", "txn01G0EZ1XTM37C5X11SQTDNCTM1", false},
		{"empty prefix", "_01G0EZ1XTM37C5X11SQTDNCTM1", false},
		{"uppercase prefix", "TXN_01G0EZ1XTM37C5X11SQTDNCTM1", false},
		{"ulid too short", "txn_01G0EZ1XTM", false},
		{"invalid ulid characters", "txn_01G0EZ1XTM37C5X11SQTDNCTMI", false},
		{"multiple separators", "txn_01G0_EZ1XTM37C5X11SQTDNC", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidID(tt.id))
		})
	}
}
