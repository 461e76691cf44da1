package axis

import (
	"image/color"
	"math"
	"strconv"

	"github.com/ivlev/animcurve/internal/canvas"
)

// Options configures the horizontal timeline axis.
type Options struct {
	ViewportWidth  float64 // visible width of the axis bar, canvas units
	Scale          float64 // domain units per canvas unit
	MajorEvery     int     // grid values divisible by this are major
	MajorHeight    float64
	MajorThickness float64
	MinorHeight    float64
	MinorThickness float64
	LabelOffsetX   float64
	LabelOffsetY   float64
	MajorColor     color.RGBA
	MinorColor     color.RGBA
}

// GridLine is one tick of the axis.
type GridLine struct {
	Value float64 // domain value at the tick
	X     float64 // position along the axis bar
	Major bool
}

// Label is the text drawn next to a major tick.
type Label struct {
	Text string
	X, Y float64
}

// Result is the geometry produced by one Rebuild.
type Result struct {
	Scroll float64 // effective scroll after clamping
	Start  float64 // domain value at the left edge of the viewport
	Lines  []GridLine
	Labels []Label
	Mesh   canvas.Mesh
}

// Renderer derives gridlines from canvas geometry alone. It never reads
// curve data.
type Renderer struct {
	opts Options
	last Result
}

func New(opts Options) *Renderer {
	if opts.MajorEvery <= 0 {
		opts.MajorEvery = 10
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) Options() Options { return r.opts }

// SetScale changes the zoom used by the next Rebuild.
func (r *Renderer) SetScale(scale float64) {
	r.opts.Scale = scale
}

// ClampScroll limits scroll to [0, 1], rounds interior values to four
// decimals, and pins it to 0 while the canvas has not expanded.
func ClampScroll(scroll float64, expanded bool) float64 {
	if !expanded {
		return 0
	}
	switch {
	case scroll >= 1:
		return 1
	case scroll <= 0:
		return 0
	}
	return math.Round(scroll*1e4) / 1e4
}

// Classify reports whether the grid value is a major line.
func (r *Renderer) Classify(value float64) bool {
	return int64(math.Round(value))%int64(r.opts.MajorEvery) == 0
}

// Rebuild computes the ticks visible for a canvas of the given size at the
// given scroll position.
func (r *Renderer) Rebuild(canvasWidth, canvasHeight, scroll float64, expanded bool) Result {
	res := Result{Scroll: ClampScroll(scroll, expanded)}
	if r.opts.Scale <= 0 || r.opts.ViewportWidth <= 0 {
		r.last = res
		return res
	}

	span := math.Max(canvasWidth-r.opts.ViewportWidth, 0)
	start := res.Scroll * span * r.opts.Scale
	end := start + r.opts.ViewportWidth*r.opts.Scale
	res.Start = start

	for i := math.Round(start); i < end; i++ {
		x := (i - start) / r.opts.Scale
		major := r.Classify(i)
		res.Lines = append(res.Lines, GridLine{Value: i, X: x, Major: major})

		height, thickness, col := r.opts.MinorHeight, r.opts.MinorThickness, r.opts.MinorColor
		if major {
			height, thickness, col = r.opts.MajorHeight, r.opts.MajorThickness, r.opts.MajorColor
			res.Labels = append(res.Labels, Label{
				Text: strconv.FormatFloat(math.Round(i), 'f', -1, 64),
				X:    x + r.opts.LabelOffsetX,
				Y:    r.opts.LabelOffsetY,
			})
		}
		addTick(&res.Mesh, x, height, thickness, col)
	}

	r.last = res
	return res
}

// Last returns the result of the most recent Rebuild.
func (r *Renderer) Last() Result {
	return r.last
}

// addTick adds a vertical tick hanging down from the axis line.
func addTick(m *canvas.Mesh, x, height, thickness float64, col color.RGBA) {
	half := float32(thickness / 2)
	fx, top, bottom := float32(x), float32(0), float32(-height)
	m.AddQuad(
		canvas.Vertex{X: fx + half, Y: top, Color: col},
		canvas.Vertex{X: fx - half, Y: top, Color: col},
		canvas.Vertex{X: fx + half, Y: bottom, Color: col},
		canvas.Vertex{X: fx - half, Y: bottom, Color: col},
	)
}
