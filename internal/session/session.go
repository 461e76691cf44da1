package session

import (
	"errors"
	"fmt"

	"github.com/ivlev/animcurve/internal/axis"
	"github.com/ivlev/animcurve/internal/canvas"
	"github.com/ivlev/animcurve/internal/curve"
	"github.com/ivlev/animcurve/internal/mapper"
)

var (
	ErrInvalidState = errors.New("operation not valid in current edit state")
	ErrNoSelection  = errors.New("no keyframe selected")
	ErrStaleEdit    = errors.New("edited keyframe changed since the edit opened")
)

// State of the edit session.
type State int

const (
	Clean State = iota
	Dirty
	Editing
)

func (s State) String() string {
	switch s {
	case Clean:
		return "CLEAN"
	case Dirty:
		return "DIRTY"
	case Editing:
		return "EDITING"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Animation is the curve store a session edits.
type Animation interface {
	CaptureSnapshot(time float64, values [curve.NumChannels]float64)
	Snapshot() [curve.NumChannels][]curve.Keyframe
	Get(ch curve.ChannelID, index int) (curve.Keyframe, error)
	Modify(ch curve.ChannelID, index int, k curve.Keyframe) error
	Delete(ch curve.ChannelID, index int) error
	SetOnEdited(fn func())
}

// Session drives one animation's redraw cycle and its modal keyframe edit.
// It is not safe for concurrent use; call it from a single update loop.
type Session struct {
	Clock

	anim   Animation
	canvas *canvas.Canvas
	axis   *axis.Renderer
	mapper mapper.Mapper

	curveDirty  bool
	scrollDirty bool
	scroll      float64

	edit       *Modifier
	editTarget canvas.Selection
}

// New wires a session to its animation and views. The first Tick draws
// whatever the animation already holds.
func New(anim Animation, cv *canvas.Canvas, ax *axis.Renderer, m mapper.Mapper) *Session {
	s := &Session{
		anim:        anim,
		canvas:      cv,
		axis:        ax,
		mapper:      m,
		curveDirty:  true,
		scrollDirty: true,
	}
	anim.SetOnEdited(s.markDirty)
	return s
}

func (s *Session) markDirty() {
	s.curveDirty = true
}

func (s *Session) Canvas() *canvas.Canvas { return s.canvas }
func (s *Session) Axis() *axis.Renderer   { return s.axis }
func (s *Session) Mapper() mapper.Mapper  { return s.mapper }

// State reports EDITING while an edit is open, otherwise DIRTY while any
// derived geometry is stale.
func (s *Session) State() State {
	switch {
	case s.edit != nil:
		return Editing
	case s.curveDirty || s.scrollDirty || s.canvas.Dirty():
		return Dirty
	}
	return Clean
}

// Capture records a snapshot at the clock's current time.
func (s *Session) Capture(values [curve.NumChannels]float64) {
	s.CaptureAt(s.Now(), values)
}

// CaptureAt records a snapshot at time.
func (s *Session) CaptureAt(time float64, values [curve.NumChannels]float64) {
	s.anim.CaptureSnapshot(time, values)
	s.markDirty()
}

// Select forwards a marker activation to the canvas. Pending curve changes
// are pushed first so index reflects the current keyframes.
func (s *Session) Select(ch curve.ChannelID, index int) error {
	s.syncCanvas()
	return s.canvas.Select(ch, index)
}

func (s *Session) SetVisibility(ch curve.ChannelID, visible bool) {
	s.canvas.SetVisibility(ch, visible)
}

func (s *Session) Toggle(ch curve.ChannelID) bool {
	return s.canvas.Toggle(ch)
}

// Scroll sets the timeline scroll fraction. Only the axis is rebuilt.
func (s *Session) Scroll(fraction float64) {
	s.scroll = fraction
	s.scrollDirty = true
}

// SetScale changes the zoom. Points are remapped on the next Tick.
func (s *Session) SetScale(horizontal, vertical float64) error {
	m, err := mapper.New(horizontal, vertical)
	if err != nil {
		return err
	}
	m.OriginX, m.OriginY, m.Precision = s.mapper.OriginX, s.mapper.OriginY, s.mapper.Precision
	s.mapper = m
	s.axis.SetScale(horizontal)
	s.markDirty()
	return nil
}

// DeleteSelected removes the selected keyframe and clears the selection,
// since later indices of that channel have shifted.
func (s *Session) DeleteSelected() error {
	if s.edit != nil {
		return ErrInvalidState
	}
	s.syncCanvas()
	sel, ok := s.canvas.Selection()
	if !ok {
		return ErrNoSelection
	}
	if err := s.anim.Delete(sel.Channel, sel.Index); err != nil {
		return err
	}
	s.canvas.Deselect()
	return nil
}

// OpenEdit starts editing the selected keyframe and returns its working copy.
func (s *Session) OpenEdit() (*Modifier, error) {
	if s.edit != nil {
		return nil, ErrInvalidState
	}
	s.syncCanvas()
	sel, ok := s.canvas.Selection()
	if !ok {
		return nil, ErrNoSelection
	}
	k, err := s.anim.Get(sel.Channel, sel.Index)
	if err != nil {
		return nil, err
	}
	s.edit = NewModifier(k)
	s.editTarget = sel
	return s.edit, nil
}

// Editor returns the open edit, or nil.
func (s *Session) Editor() *Modifier {
	return s.edit
}

// ApplyEdit writes k over the keyframe the edit was opened on and closes
// the edit. If that keyframe was deleted or changed meanwhile the edit is
// dropped with ErrStaleEdit. On other errors the edit stays open.
func (s *Session) ApplyEdit(k curve.Keyframe) error {
	if s.edit == nil {
		return ErrInvalidState
	}
	target := s.editTarget
	if cur, err := s.anim.Get(target.Channel, target.Index); err != nil || cur != s.edit.Original() {
		s.edit = nil
		s.canvas.Deselect()
		return fmt.Errorf("%s[%d]: %w", target.Channel, target.Index, ErrStaleEdit)
	}
	if k.Time < 0 {
		k.Time = 0
	}
	if err := s.anim.Modify(s.editTarget.Channel, s.editTarget.Index, k); err != nil {
		return err
	}
	s.edit = nil
	return nil
}

// CancelEdit closes the edit without touching the curves.
func (s *Session) CancelEdit() error {
	if s.edit == nil {
		return ErrInvalidState
	}
	s.edit = nil
	return nil
}

// syncCanvas remaps every channel into the canvas when curves changed. The
// canvas drops a selection whose channel changed length.
func (s *Session) syncCanvas() {
	if !s.curveDirty {
		return
	}
	snap := s.anim.Snapshot()
	for _, ch := range curve.Channels() {
		s.canvas.SetChannelData(ch, s.mapper.MapChannel(ch, snap[ch]))
	}
	s.curveDirty = false
}

// Tick runs one frame of the redraw cycle: remap and rebuild the canvas
// when curves changed, then rebuild the axis from the fresh bounds. It
// reports whether anything was rebuilt.
func (s *Session) Tick() bool {
	worked := false
	s.syncCanvas()
	if s.canvas.Rebuild() {
		s.scrollDirty = true
		worked = true
	}
	if s.scrollDirty {
		b := s.canvas.Bounds()
		s.axis.Rebuild(b.Width, b.Height, s.scroll, b.Expanded)
		s.scrollDirty = false
		worked = true
	}
	return worked
}
