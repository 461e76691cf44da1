package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/ivlev/animcurve/internal/curve"
)

var (
	ErrNoPoint       = errors.New("no point at index")
	ErrChannelHidden = errors.New("channel is hidden")
)

// Options configures canvas geometry. Sizes are in canvas units.
type Options struct {
	MinWidth      float64
	MinHeight     float64
	WidthOffset   float64
	HeightOffset  float64
	Thickness     float64 // full line width; quads are offset by half
	Colors        [curve.NumChannels]color.RGBA
	SelectedColor color.RGBA
}

// Bounds is the auto-sized drawing area. Expanded is set when the mapped
// data outgrew the configured minimum in either direction.
type Bounds struct {
	Width    float64
	Height   float64
	Expanded bool
}

// Marker is the interactive handle drawn for one point.
type Marker struct {
	Channel  curve.ChannelID
	Index    int
	X, Y     float64
	Color    color.RGBA
	Selected bool
}

// Selection references the selected point.
type Selection struct {
	Channel curve.ChannelID
	Index   int
}

// Canvas holds per-channel mapped points and derives line geometry, marker
// handles and bounds from them on Rebuild.
type Canvas struct {
	opts Options

	points   [curve.NumChannels][]Point
	markers  [curve.NumChannels][]Marker
	visible  [curve.NumChannels]bool
	segments []Segment
	bounds   Bounds

	selected    Selection
	hasSelected bool

	geometryDirty bool
	boundsDirty   bool
}

// New returns a canvas with every channel visible and both dirty flags set.
func New(opts Options) *Canvas {
	c := &Canvas{
		opts:          opts,
		geometryDirty: true,
		boundsDirty:   true,
		bounds:        Bounds{Width: opts.MinWidth, Height: opts.MinHeight},
	}
	for i := range c.visible {
		c.visible[i] = true
	}
	return c
}

// Dirty reports whether Rebuild has pending work.
func (c *Canvas) Dirty() bool {
	return c.geometryDirty || c.boundsDirty
}

// SetChannelData replaces the points of ch. The selection is dropped when
// ch's length changes, since its indices may now name different keyframes.
func (c *Canvas) SetChannelData(ch curve.ChannelID, points []Point) {
	if !ch.Valid() {
		return
	}
	if c.hasSelected && c.selected.Channel == ch && len(points) != len(c.points[ch]) {
		c.clearSelection()
	}
	c.points[ch] = append([]Point(nil), points...)
	c.geometryDirty = true
	c.boundsDirty = true
}

// Points returns a copy of the stored points of ch, visible or not.
func (c *Canvas) Points(ch curve.ChannelID) []Point {
	if !ch.Valid() {
		return nil
	}
	return append([]Point(nil), c.points[ch]...)
}

// SetVisibility toggles drawing of ch. Stored points are kept while hidden.
func (c *Canvas) SetVisibility(ch curve.ChannelID, visible bool) {
	if !ch.Valid() || c.visible[ch] == visible {
		return
	}
	c.visible[ch] = visible
	if !visible && c.hasSelected && c.selected.Channel == ch {
		c.clearSelection()
	}
	c.geometryDirty = true
	c.boundsDirty = true
}

// Toggle flips the visibility of ch and returns the new state.
func (c *Canvas) Toggle(ch curve.ChannelID) bool {
	if !ch.Valid() {
		return false
	}
	c.SetVisibility(ch, !c.visible[ch])
	return c.visible[ch]
}

func (c *Canvas) Visible(ch curve.ChannelID) bool {
	return ch.Valid() && c.visible[ch]
}

// Select marks (ch, index) as the single selected point, deselecting the
// previous one. Selection only changes marker appearance, not geometry.
func (c *Canvas) Select(ch curve.ChannelID, index int) error {
	if !ch.Valid() {
		return fmt.Errorf("select %d: invalid channel", int(ch))
	}
	if !c.visible[ch] {
		return fmt.Errorf("select %s: %w", ch, ErrChannelHidden)
	}
	if index < 0 || index >= len(c.points[ch]) {
		return fmt.Errorf("select %s[%d]: %w", ch, index, ErrNoPoint)
	}

	c.clearSelection()
	c.selected = Selection{Channel: ch, Index: index}
	c.hasSelected = true
	c.highlight(true)
	return nil
}

// Deselect clears the selection, if any.
func (c *Canvas) Deselect() {
	c.clearSelection()
}

// Selection returns the selected point reference.
func (c *Canvas) Selection() (Selection, bool) {
	return c.selected, c.hasSelected
}

func (c *Canvas) clearSelection() {
	if !c.hasSelected {
		return
	}
	c.highlight(false)
	c.hasSelected = false
	c.selected = Selection{}
}

func (c *Canvas) highlight(on bool) {
	ms := c.markers[c.selected.Channel]
	if c.selected.Index >= len(ms) {
		return
	}
	m := &ms[c.selected.Index]
	m.Selected = on
	if on {
		m.Color = c.opts.SelectedColor
	} else {
		m.Color = c.opts.Colors[m.Channel]
	}
}

// Rebuild regenerates line segments, marker handles and bounds when dirty.
// It reports whether any work was done.
func (c *Canvas) Rebuild() bool {
	if !c.Dirty() {
		return false
	}

	half := float32(c.opts.Thickness / 2)
	c.segments = c.segments[:0]
	for _, ch := range curve.Channels() {
		pts := c.points[ch]
		c.markers[ch] = nil
		if !c.visible[ch] {
			continue
		}

		col := c.opts.Colors[ch]
		for i := 1; i < len(pts); i++ {
			c.segments = append(c.segments, lineQuad(ch, pts[i-1], pts[i], half, col))
		}

		markers := make([]Marker, len(pts))
		for i, p := range pts {
			markers[i] = Marker{Channel: ch, Index: i, X: p.X, Y: p.Y, Color: col}
		}
		c.markers[ch] = markers
	}
	if c.hasSelected {
		c.highlight(true)
	}

	c.recalculateBounds()
	c.geometryDirty = false
	c.boundsDirty = false
	return true
}

func (c *Canvas) recalculateBounds() {
	maxW, maxH := c.opts.MinWidth, c.opts.MinHeight
	for _, ch := range curve.Channels() {
		if !c.visible[ch] {
			continue
		}
		for _, p := range c.points[ch] {
			if p.X > maxW {
				maxW = p.X
			}
			if h := math.Abs(p.Y) * 2; h > maxH {
				maxH = h
			}
		}
	}

	b := Bounds{Width: c.opts.MinWidth, Height: c.opts.MinHeight}
	if maxW > c.opts.MinWidth {
		b.Width = maxW + c.opts.WidthOffset
		b.Expanded = true
	}
	if maxH > c.opts.MinHeight {
		b.Height = maxH + c.opts.HeightOffset
		b.Expanded = true
	}
	c.bounds = b
}

// Bounds returns the bounds computed by the last Rebuild.
func (c *Canvas) Bounds() Bounds {
	return c.bounds
}

// Markers returns a copy of the marker handles of ch from the last Rebuild.
func (c *Canvas) Markers(ch curve.ChannelID) []Marker {
	if !ch.Valid() {
		return nil
	}
	return append([]Marker(nil), c.markers[ch]...)
}

// Segments returns the line segments of ch from the last Rebuild.
func (c *Canvas) Segments(ch curve.ChannelID) []Segment {
	var out []Segment
	for _, s := range c.segments {
		if s.Channel == ch {
			out = append(out, s)
		}
	}
	return out
}

// Mesh flattens every segment into one triangle mesh.
func (c *Canvas) Mesh() Mesh {
	var m Mesh
	for _, s := range c.segments {
		m.AddQuad(s.Quad[0], s.Quad[1], s.Quad[2], s.Quad[3])
	}
	return m
}
