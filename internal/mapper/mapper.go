package mapper

import (
	"errors"
	"math"

	"github.com/ivlev/animcurve/internal/canvas"
	"github.com/ivlev/animcurve/internal/curve"
)

// ErrZeroScale is returned when a scale factor would divide by zero.
var ErrZeroScale = errors.New("mapper scale must be non-zero")

// DefaultPrecision is the number of decimals domain values are rounded to.
const DefaultPrecision = 2

// Mapper converts between curve domain (time, value) and canvas units.
// A Mapper is a value; changing zoom means building a new one.
type Mapper struct {
	HorizontalScale float64 // domain seconds per canvas unit
	VerticalScale   float64 // domain value per canvas unit
	OriginX         float64
	OriginY         float64
	Precision       int // decimals kept by ToDomain
}

// New returns a mapper with the origin at (0, 0) and DefaultPrecision.
func New(horizontalScale, verticalScale float64) (Mapper, error) {
	if horizontalScale == 0 || verticalScale == 0 {
		return Mapper{}, ErrZeroScale
	}
	return Mapper{
		HorizontalScale: horizontalScale,
		VerticalScale:   verticalScale,
		Precision:       DefaultPrecision,
	}, nil
}

// WithOrigin returns a copy of m offset to (x, y).
func (m Mapper) WithOrigin(x, y float64) Mapper {
	m.OriginX, m.OriginY = x, y
	return m
}

// ToCanvas maps a keyframe sample to canvas coordinates.
func (m Mapper) ToCanvas(time, value float64) (x, y float64) {
	return m.OriginX + time/m.HorizontalScale, m.OriginY + value/m.VerticalScale
}

// ToDomain is the inverse of ToCanvas, rounded to m.Precision decimals.
func (m Mapper) ToDomain(x, y float64) (time, value float64) {
	time = (x - m.OriginX) * m.HorizontalScale
	value = (y - m.OriginY) * m.VerticalScale
	return round(time, m.Precision), round(value, m.Precision)
}

// KeyframeAt converts a canvas position back into a keyframe, clamping time at 0.
func (m Mapper) KeyframeAt(x, y float64) curve.Keyframe {
	t, v := m.ToDomain(x, y)
	if t < 0 {
		t = 0
	}
	return curve.Keyframe{Time: t, Value: v}
}

// MapChannel projects a channel's keyframes into canvas points, preserving order.
func (m Mapper) MapChannel(ch curve.ChannelID, keys []curve.Keyframe) []canvas.Point {
	points := make([]canvas.Point, len(keys))
	for i, k := range keys {
		x, y := m.ToCanvas(k.Time, k.Value)
		points[i] = canvas.Point{Channel: ch, Index: i, X: x, Y: y}
	}
	return points
}

func round(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
