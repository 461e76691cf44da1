package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitOptions() Options {
	return Options{
		ViewportWidth:  100,
		Scale:          1,
		MajorHeight:    3,
		MajorThickness: 1,
		MinorHeight:    1,
		MinorThickness: 0.5,
		LabelOffsetX:   4,
		LabelOffsetY:   -12,
	}
}

func TestClassify(t *testing.T) {
	r := New(unitOptions())
	assert.True(t, r.Classify(30))
	assert.False(t, r.Classify(31))
	assert.True(t, r.Classify(0))
	assert.True(t, r.Classify(-20))
	assert.True(t, r.Classify(29.9999))
}

func TestClampScroll(t *testing.T) {
	tests := []struct {
		name     string
		scroll   float64
		expanded bool
		want     float64
	}{
		{"not expanded", 0.7, false, 0},
		{"above", 1.3, true, 1},
		{"below", -0.2, true, 0},
		{"rounded", 0.123456, true, 0.1235},
		{"edge", 1, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampScroll(tt.scroll, tt.expanded))
		})
	}
}

func TestRebuildUnitScale(t *testing.T) {
	r := New(unitOptions())
	res := r.Rebuild(100, 50, 0, false)

	require.Len(t, res.Lines, 100)
	assert.Equal(t, 30.0, res.Lines[30].Value)
	assert.True(t, res.Lines[30].Major)
	assert.False(t, res.Lines[31].Major)
	assert.Equal(t, 31.0, res.Lines[31].X)

	// majors at 0,10,...,90
	require.Len(t, res.Labels, 10)
	assert.Equal(t, "30", res.Labels[3].Text)
	assert.Equal(t, 34.0, res.Labels[3].X)
	assert.Equal(t, -12.0, res.Labels[3].Y)

	assert.Equal(t, 100, res.Mesh.Triangles()/2, "one quad per tick")
	assert.Equal(t, res, r.Last())
}

func TestRebuildScrolled(t *testing.T) {
	opts := unitOptions()
	opts.ViewportWidth = 50
	opts.Scale = 0.5
	r := New(opts)

	// canvas 300 wide, viewport 50: scrollable span 250 units = 125 domain units
	res := r.Rebuild(300, 50, 1, true)
	assert.Equal(t, 1.0, res.Scroll)
	assert.Equal(t, 125.0, res.Start)

	// viewport covers 50*0.5 = 25 domain units: 125..149
	require.Len(t, res.Lines, 25)
	assert.Equal(t, 125.0, res.Lines[0].Value)
	assert.False(t, res.Lines[0].Major)
	assert.Equal(t, 0.0, res.Lines[0].X)
	assert.True(t, res.Lines[5].Major)
	assert.Equal(t, 10.0, res.Lines[5].X)
	assert.Equal(t, []string{"130", "140"}, []string{res.Labels[0].Text, res.Labels[1].Text})

	// same inputs without expansion ignore scroll
	res = r.Rebuild(300, 50, 1, false)
	assert.Equal(t, 0.0, res.Start)
	assert.Equal(t, 0.0, res.Lines[0].Value)
}

func TestRebuildMajorTaller(t *testing.T) {
	r := New(unitOptions())
	res := r.Rebuild(100, 50, 0, false)

	major := res.Mesh.Vertices[0:4] // tick 0
	minor := res.Mesh.Vertices[4:8] // tick 1
	assert.Equal(t, float32(-3), major[2].Y)
	assert.Equal(t, float32(-1), minor[2].Y)
	assert.Greater(t, major[0].X-major[1].X, minor[0].X-minor[1].X)
}

func TestRebuildDegenerate(t *testing.T) {
	opts := unitOptions()
	opts.Scale = 0
	res := New(opts).Rebuild(100, 50, 0.5, true)
	assert.Empty(t, res.Lines)
	assert.Equal(t, 0.5, res.Scroll)
}
