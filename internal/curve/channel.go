package curve

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a keyframe index does not exist in a channel.
var ErrIndexOutOfRange = errors.New("keyframe index out of range")

// Channel is an ordered keyframe sequence for one scalar property.
// Keyframes keep insertion order; they are never resorted by time.
type Channel struct {
	keys []Keyframe
}

// Add appends a keyframe.
func (c *Channel) Add(k Keyframe) {
	c.keys = append(c.keys, k)
}

// Len returns the number of keyframes.
func (c *Channel) Len() int {
	return len(c.keys)
}

// Read returns a copy of the keyframes in insertion order.
func (c *Channel) Read() []Keyframe {
	out := make([]Keyframe, len(c.keys))
	copy(out, c.keys)
	return out
}

// Get returns the keyframe at index.
func (c *Channel) Get(index int) (Keyframe, error) {
	if err := c.check(index); err != nil {
		return Keyframe{}, err
	}
	return c.keys[index], nil
}

// Modify replaces the keyframe at index in place. Length is unchanged.
func (c *Channel) Modify(index int, k Keyframe) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.keys[index] = k
	return nil
}

// Delete removes the keyframe at index; every later index shifts down by one.
func (c *Channel) Delete(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.keys = append(c.keys[:index], c.keys[index+1:]...)
	return nil
}

func (c *Channel) check(index int) error {
	if index < 0 || index >= len(c.keys) {
		return fmt.Errorf("index %d (len %d): %w", index, len(c.keys), ErrIndexOutOfRange)
	}
	return nil
}
