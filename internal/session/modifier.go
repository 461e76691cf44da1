package session

import (
	"math"
	"strconv"

	"github.com/ivlev/animcurve/internal/curve"
)

// StepSizes are the increments offered by the keyframe edit surface.
var StepSizes = [...]float64{0.01, 0.1, 1, 10, 100}

// Modifier holds the working copy of a keyframe while it is being edited.
type Modifier struct {
	original curve.Keyframe
	key      curve.Keyframe
	slot     int
}

// NewModifier starts an edit of k with the smallest step selected.
func NewModifier(k curve.Keyframe) *Modifier {
	return &Modifier{original: k, key: k}
}

// Original is the keyframe as it was when the edit opened.
func (m *Modifier) Original() curve.Keyframe { return m.original }

// Keyframe is the edited keyframe.
func (m *Modifier) Keyframe() curve.Keyframe { return m.key }

// SetStep selects a step by slot index into StepSizes.
func (m *Modifier) SetStep(slot int) {
	m.slot = slot
}

// Step returns the selected increment. Unknown slots fall back to the smallest step.
func (m *Modifier) Step() float64 {
	if m.slot < 0 || m.slot >= len(StepSizes) {
		return StepSizes[0]
	}
	return StepSizes[m.slot]
}

func (m *Modifier) IncreaseTime() {
	m.key.Time += m.Step()
}

// DecreaseTime never moves the keyframe before 0.
func (m *Modifier) DecreaseTime() {
	m.key.Time -= m.Step()
	if m.key.Time < 0 {
		m.key.Time = 0
	}
}

func (m *Modifier) IncreaseValue() {
	m.key.Value += m.Step()
}

func (m *Modifier) DecreaseValue() {
	m.key.Value -= m.Step()
}

// Display returns time, value and step as shown to the user, rounded to
// two decimals.
func (m *Modifier) Display() (time, value, step string) {
	return format2(m.key.Time), format2(m.key.Value), format2(m.Step())
}

func format2(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
