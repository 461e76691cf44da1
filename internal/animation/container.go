package animation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ivlev/animcurve/internal/curve"
)

// Container is the animation of one object: a CurveSet plus naming metadata.
type Container struct {
	name     string
	curves   *curve.CurveSet
	reg      *Registry
	onEdited func()
}

// New creates a container named by reg.
func New(reg *Registry) *Container {
	return NewNamed(reg, reg.NextName())
}

// NewNamed creates a container with an explicit display name. Export
// numbers come from reg; a nil reg gives the container its own numbering.
func NewNamed(reg *Registry, name string) *Container {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Container{
		name:   name,
		curves: curve.NewCurveSet(),
		reg:    reg,
	}
}

func (c *Container) Name() string { return c.name }

// SetOnEdited registers the callback fired after every successful Modify or Delete.
func (c *Container) SetOnEdited(fn func()) {
	c.onEdited = fn
}

// CaptureSnapshot appends one keyframe at time to each of the nine channels.
// values are ordered as curve.Channels().
func (c *Container) CaptureSnapshot(time float64, values [curve.NumChannels]float64) {
	for _, ch := range curve.Channels() {
		// Channels() only yields valid IDs
		_ = c.curves.Add(ch, curve.Keyframe{Time: time, Value: values[ch]})
	}
}

func (c *Container) Read(ch curve.ChannelID) []curve.Keyframe {
	return c.curves.Read(ch)
}

func (c *Container) Len(ch curve.ChannelID) int {
	return c.curves.Len(ch)
}

func (c *Container) Get(ch curve.ChannelID, index int) (curve.Keyframe, error) {
	return c.curves.Get(ch, index)
}

// Snapshot returns an unaliased copy of all channels.
func (c *Container) Snapshot() [curve.NumChannels][]curve.Keyframe {
	return c.curves.Snapshot()
}

func (c *Container) Modify(ch curve.ChannelID, index int, k curve.Keyframe) error {
	if err := c.curves.Modify(ch, index, k); err != nil {
		return err
	}
	c.edited()
	return nil
}

func (c *Container) Delete(ch curve.ChannelID, index int) error {
	if err := c.curves.Delete(ch, index); err != nil {
		return err
	}
	c.edited()
	return nil
}

func (c *Container) edited() {
	if c.onEdited != nil {
		c.onEdited()
	}
}

// ExportClip builds a time-ordered clip from all nine channels. Each call
// yields a new clip ID and a name numbered by the registry; the curve
// content is the same until the container is edited.
func (c *Container) ExportClip() *Clip {
	clip := &Clip{
		ID:   uuid.New().String(),
		Name: fmt.Sprintf("%s_%d", c.name, c.reg.NextExport()),
	}

	for _, ch := range curve.Channels() {
		clip.Curves = append(clip.Curves, ClipCurve{
			Channel:  ch,
			Property: ch.Property(),
			Keys:     c.curves.Sorted(ch),
		})
	}
	return clip
}
