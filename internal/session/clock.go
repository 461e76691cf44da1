package session

import "math"

// Clock tracks the editing cursor and, while recording, a running
// recording time seeded from the cursor.
type Clock struct {
	cursor    float64
	recording bool
	recTime   float64
}

// Cursor is the manual capture time.
func (c *Clock) Cursor() float64 { return c.cursor }

// AdvanceCursor moves the cursor by delta, rounded to two decimals and
// never below 0.
func (c *Clock) AdvanceCursor(delta float64) {
	c.cursor = math.Round((c.cursor+delta)*100) / 100
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// StartRecording begins advancing recording time from the cursor.
func (c *Clock) StartRecording() {
	c.recording = true
	c.recTime = c.cursor
}

func (c *Clock) StopRecording() {
	c.recording = false
}

func (c *Clock) Recording() bool { return c.recording }

// Advance moves recording time by dt seconds while recording.
func (c *Clock) Advance(dt float64) {
	if c.recording {
		c.recTime += dt
	}
}

// Now is the time a capture is stamped with.
func (c *Clock) Now() float64 {
	if c.recording {
		return c.recTime
	}
	return c.cursor
}
