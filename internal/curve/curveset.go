package curve

import (
	"fmt"
	"sort"
)

// CurveSet owns one Channel per ChannelID.
type CurveSet struct {
	channels [NumChannels]Channel
}

// NewCurveSet returns a set with nine empty channels.
func NewCurveSet() *CurveSet {
	return &CurveSet{}
}

func (s *CurveSet) channel(ch ChannelID) (*Channel, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("invalid channel %d", int(ch))
	}
	return &s.channels[ch], nil
}

// Add appends a keyframe to ch.
func (s *CurveSet) Add(ch ChannelID, k Keyframe) error {
	c, err := s.channel(ch)
	if err != nil {
		return err
	}
	c.Add(k)
	return nil
}

// Len returns the keyframe count of ch, or 0 for an invalid channel.
func (s *CurveSet) Len(ch ChannelID) int {
	c, err := s.channel(ch)
	if err != nil {
		return 0
	}
	return c.Len()
}

// Read returns a copy of ch in insertion order.
func (s *CurveSet) Read(ch ChannelID) []Keyframe {
	c, err := s.channel(ch)
	if err != nil {
		return nil
	}
	return c.Read()
}

func (s *CurveSet) Get(ch ChannelID, index int) (Keyframe, error) {
	c, err := s.channel(ch)
	if err != nil {
		return Keyframe{}, err
	}
	k, err := c.Get(index)
	if err != nil {
		return Keyframe{}, fmt.Errorf("%s: %w", ch, err)
	}
	return k, nil
}

func (s *CurveSet) Modify(ch ChannelID, index int, k Keyframe) error {
	c, err := s.channel(ch)
	if err != nil {
		return err
	}
	if err := c.Modify(index, k); err != nil {
		return fmt.Errorf("%s: %w", ch, err)
	}
	return nil
}

func (s *CurveSet) Delete(ch ChannelID, index int) error {
	c, err := s.channel(ch)
	if err != nil {
		return err
	}
	if err := c.Delete(index); err != nil {
		return fmt.Errorf("%s: %w", ch, err)
	}
	return nil
}

// Snapshot copies every channel. The result does not alias the set.
func (s *CurveSet) Snapshot() [NumChannels][]Keyframe {
	var snap [NumChannels][]Keyframe
	for i := range s.channels {
		snap[i] = s.channels[i].Read()
	}
	return snap
}

// Sorted returns a copy of ch ordered by time. Equal times keep insertion order.
func (s *CurveSet) Sorted(ch ChannelID) []Keyframe {
	keys := s.Read(ch)
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Time < keys[j].Time
	})
	return keys
}
