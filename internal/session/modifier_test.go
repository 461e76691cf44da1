package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/animcurve/internal/curve"
)

func TestModifierSteps(t *testing.T) {
	m := NewModifier(curve.Keyframe{Time: 1, Value: 1})
	tests := []struct {
		slot int
		want float64
	}{
		{0, 0.01}, {1, 0.1}, {2, 1}, {3, 10}, {4, 100}, {5, 0.01}, {-1, 0.01},
	}
	for _, tt := range tests {
		m.SetStep(tt.slot)
		assert.Equal(t, tt.want, m.Step(), "slot %d", tt.slot)
	}
}

func TestModifierTimeClamp(t *testing.T) {
	m := NewModifier(curve.Keyframe{Time: 0.5, Value: 0})
	m.SetStep(2)
	m.DecreaseTime()
	assert.Equal(t, 0.0, m.Keyframe().Time)

	m.DecreaseValue()
	assert.Equal(t, -1.0, m.Keyframe().Value, "values may go negative")
	assert.Equal(t, curve.Keyframe{Time: 0.5, Value: 0}, m.Original())
}

func TestModifierDisplay(t *testing.T) {
	m := NewModifier(curve.Keyframe{Time: 0, Value: 1.23456})
	m.SetStep(1)
	m.IncreaseTime()
	m.IncreaseTime()
	m.IncreaseTime()

	tm, val, step := m.Display()
	assert.Equal(t, "0.3", tm)
	assert.Equal(t, "1.23", val)
	assert.Equal(t, "0.1", step)
}

func TestClockCursor(t *testing.T) {
	var c Clock
	c.AdvanceCursor(0.1)
	c.AdvanceCursor(0.1)
	c.AdvanceCursor(0.1)
	assert.Equal(t, 0.3, c.Cursor())

	c.AdvanceCursor(-1)
	assert.Equal(t, 0.0, c.Cursor())
	assert.False(t, c.Recording())
}
