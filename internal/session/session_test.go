package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animcurve/internal/animation"
	"github.com/ivlev/animcurve/internal/axis"
	"github.com/ivlev/animcurve/internal/canvas"
	"github.com/ivlev/animcurve/internal/curve"
	"github.com/ivlev/animcurve/internal/mapper"
)

func newTestSession(t *testing.T) (*Session, *animation.Container) {
	t.Helper()
	anim := animation.NewNamed(nil, "cube")
	m, err := mapper.New(0.08, 0.08)
	require.NoError(t, err)
	cv := canvas.New(canvas.Options{MinWidth: 200, MinHeight: 100, WidthOffset: 10, HeightOffset: 10, Thickness: 1})
	ax := axis.New(axis.Options{ViewportWidth: 200, Scale: 0.08, MajorHeight: 3, MajorThickness: 1, MinorHeight: 1, MinorThickness: 0.5})
	return New(anim, cv, ax, m), anim
}

func captureSteps(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.CaptureAt(float64(i), [9]float64{float64(i), 0, 0, 0, float64(i * 2), 0, 1, 1, 1})
	}
}

func TestInitialTickCleans(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Equal(t, Dirty, s.State())
	assert.True(t, s.Tick())
	assert.Equal(t, Clean, s.State())
	assert.False(t, s.Tick(), "clean tick does nothing")
}

func TestDirtyConvergence(t *testing.T) {
	s, anim := newTestSession(t)
	s.Tick()

	captureSteps(s, 4)
	assert.Equal(t, Dirty, s.State())
	captureSteps(s, 1)
	assert.Equal(t, Dirty, s.State(), "repeated mutations stay dirty")

	s.Tick()
	assert.Equal(t, Clean, s.State())

	for _, ch := range curve.Channels() {
		assert.Len(t, s.Canvas().Points(ch), anim.Len(ch), ch.String())
		assert.Len(t, s.Canvas().Markers(ch), anim.Len(ch), ch.String())
	}
	assert.NotEmpty(t, s.Axis().Last().Lines)
}

func TestSelectionInvalidatedByDelete(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 3)
	s.Tick()

	require.NoError(t, s.Select(curve.RotY, 2))
	require.NoError(t, s.Select(curve.RotY, 0))
	require.NoError(t, s.DeleteSelected())

	_, ok := s.Canvas().Selection()
	assert.False(t, ok)

	_, err := s.OpenEdit()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.ErrorIs(t, s.ApplyEdit(curve.Keyframe{Time: 9, Value: 9}), ErrInvalidState)

	assert.Equal(t, []curve.Keyframe{{Time: 1, Value: 2}, {Time: 2, Value: 4}}, anim.Read(curve.RotY))
}

func TestSelectionInvalidatedByRemap(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 3)
	s.Tick()
	require.NoError(t, s.Select(curve.RotY, 2))

	// deleting through the container bypasses the session's own deselect
	require.NoError(t, anim.Delete(curve.RotY, 0))
	assert.Equal(t, Dirty, s.State())
	s.Tick()

	_, ok := s.Canvas().Selection()
	assert.False(t, ok, "length change must drop the stale index")
	_, err := s.OpenEdit()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSelectAfterDeleteUsesCurrentIndices(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 4)
	s.Tick()

	require.NoError(t, s.Select(curve.RotY, 0))
	require.NoError(t, s.DeleteSelected())

	// no Tick: the canvas must not accept indices from before the delete
	assert.ErrorIs(t, s.Select(curve.RotY, 3), canvas.ErrNoPoint)
	require.NoError(t, s.Select(curve.RotY, 2))
	require.Len(t, s.Canvas().Points(curve.RotY), 3)

	mod, err := s.OpenEdit()
	require.NoError(t, err)
	assert.Equal(t, curve.Keyframe{Time: 3, Value: 6}, mod.Original())

	pt := s.Canvas().Points(curve.RotY)[2]
	assert.Equal(t, mod.Original(), s.Mapper().KeyframeAt(pt.X, pt.Y), "selected point shows the edited keyframe")
	assert.Equal(t, 3, anim.Len(curve.RotY))
}

func TestApplyEditRejectsShiftedTarget(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 4)
	s.Tick()
	require.NoError(t, s.Select(curve.RotY, 2))
	mod, err := s.OpenEdit()
	require.NoError(t, err)
	require.Equal(t, curve.Keyframe{Time: 2, Value: 4}, mod.Original())

	require.NoError(t, anim.Delete(curve.RotY, 0))
	s.Tick()

	assert.ErrorIs(t, s.ApplyEdit(curve.Keyframe{Time: 99, Value: 99}), ErrStaleEdit)
	assert.NotEqual(t, Editing, s.State())
	assert.Nil(t, s.Editor())
	assert.Equal(t, []curve.Keyframe{{Time: 1, Value: 2}, {Time: 2, Value: 4}, {Time: 3, Value: 6}}, anim.Read(curve.RotY))
}

func TestApplyEditAfterCaptureStillValid(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 2)
	s.Tick()
	require.NoError(t, s.Select(curve.PosX, 1))
	_, err := s.OpenEdit()
	require.NoError(t, err)

	// appends never shift existing indices
	s.CaptureAt(5, [9]float64{5})
	require.NoError(t, s.ApplyEdit(curve.Keyframe{Time: 1, Value: 7}))
	assert.Equal(t, curve.Keyframe{Time: 1, Value: 7}, anim.Read(curve.PosX)[1])
}

func TestEditApply(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 3)
	s.Tick()
	require.NoError(t, s.Select(curve.PosX, 1))

	mod, err := s.OpenEdit()
	require.NoError(t, err)
	assert.Equal(t, Editing, s.State())
	assert.Equal(t, curve.Keyframe{Time: 1, Value: 1}, mod.Original())

	_, err = s.OpenEdit()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, s.DeleteSelected(), ErrInvalidState)

	mod.SetStep(2)
	mod.IncreaseValue()
	mod.IncreaseTime()
	require.NoError(t, s.ApplyEdit(mod.Keyframe()))

	assert.Equal(t, Dirty, s.State())
	got, err := anim.Get(curve.PosX, 1)
	require.NoError(t, err)
	assert.Equal(t, curve.Keyframe{Time: 2, Value: 2}, got)

	s.Tick()
	assert.Equal(t, Clean, s.State())
	_, ok := s.Canvas().Selection()
	assert.True(t, ok, "modify keeps length so the selection survives")
}

func TestEditCancel(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 2)
	s.Tick()
	require.NoError(t, s.Select(curve.ScaleX, 0))

	mod, err := s.OpenEdit()
	require.NoError(t, err)
	mod.IncreaseValue()
	require.NoError(t, s.CancelEdit())

	assert.Equal(t, Clean, s.State())
	assert.Equal(t, 1.0, anim.Read(curve.ScaleX)[0].Value)
	assert.ErrorIs(t, s.CancelEdit(), ErrInvalidState)
}

func TestApplyEditClampsTime(t *testing.T) {
	s, anim := newTestSession(t)
	captureSteps(s, 1)
	s.Tick()
	require.NoError(t, s.Select(curve.PosY, 0))
	_, err := s.OpenEdit()
	require.NoError(t, err)

	require.NoError(t, s.ApplyEdit(curve.Keyframe{Time: -4, Value: 3}))
	assert.Equal(t, curve.Keyframe{Time: 0, Value: 3}, anim.Read(curve.PosY)[0])
}

func TestVisibilityScenario(t *testing.T) {
	s, _ := newTestSession(t)
	captureSteps(s, 3)
	s.Tick()
	require.Len(t, s.Canvas().Segments(curve.PosX), 2)

	s.SetVisibility(curve.PosX, false)
	assert.Equal(t, Dirty, s.State())
	s.Tick()
	assert.Empty(t, s.Canvas().Segments(curve.PosX))
	assert.Empty(t, s.Canvas().Markers(curve.PosX))

	s.SetVisibility(curve.PosX, true)
	s.Tick()
	assert.Len(t, s.Canvas().Segments(curve.PosX), 2)
	assert.Len(t, s.Canvas().Markers(curve.PosX), 3)
}

func TestScrollRebuildsAxisOnly(t *testing.T) {
	s, _ := newTestSession(t)
	// 40 seconds at 0.08 => 500 canvas units, wider than the 200 minimum
	s.CaptureAt(0, [9]float64{})
	s.CaptureAt(40, [9]float64{})
	s.Tick()
	require.True(t, s.Canvas().Bounds().Expanded)
	before := s.Axis().Last()

	s.Scroll(1)
	assert.Equal(t, Dirty, s.State())
	assert.False(t, s.Canvas().Dirty())
	s.Tick()

	after := s.Axis().Last()
	assert.Equal(t, 1.0, after.Scroll)
	assert.Greater(t, after.Start, before.Start)
	assert.Equal(t, Clean, s.State())
}

func TestSetScaleRemaps(t *testing.T) {
	s, _ := newTestSession(t)
	s.CaptureAt(1, [9]float64{1})
	s.Tick()
	x0 := s.Canvas().Points(curve.PosX)[0].X

	require.NoError(t, s.SetScale(0.04, 0.08))
	s.Tick()
	assert.InDelta(t, x0*2, s.Canvas().Points(curve.PosX)[0].X, 1e-9)
	assert.Error(t, s.SetScale(0, 1))
}

func TestCaptureUsesClock(t *testing.T) {
	s, anim := newTestSession(t)
	s.AdvanceCursor(0.5)
	s.Capture([9]float64{1})

	s.StartRecording()
	s.Advance(0.25)
	s.Capture([9]float64{2})
	s.StopRecording()
	s.Advance(10)
	s.Capture([9]float64{3})

	keys := anim.Read(curve.PosX)
	require.Len(t, keys, 3)
	assert.Equal(t, []float64{0.5, 0.75, 0.5}, []float64{keys[0].Time, keys[1].Time, keys[2].Time})
}
