package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ivlev/animcurve/internal/axis"
	"github.com/ivlev/animcurve/internal/canvas"
	"github.com/ivlev/animcurve/internal/curve"
)

// Style controls preview appearance. Sizes are in pixels; one canvas unit
// maps to one pixel.
type Style struct {
	Background color.RGBA
	Label      color.RGBA
	MarkerSize int
	BarHeight  int
	Margin     int
	QRSize     int
}

// Renderer draws canvas and axis geometry into RGBA previews.
type Renderer struct {
	style Style
	pool  *ImagePool
	z     *vector.Rasterizer
}

func NewRenderer(style Style, pool *ImagePool) *Renderer {
	if pool == nil {
		pool = NewImagePool()
	}
	return &Renderer{style: style, pool: pool, z: vector.NewRasterizer(0, 0)}
}

// frame maps canvas and axis coordinates to pixels. Canvas y grows up from
// the vertical middle of the plot; axis y grows up from the top of the bar.
type frame struct {
	margin  float32
	midY    float32
	barTopY float32
}

func (f frame) plot(x, y float32) (float32, float32) {
	return f.margin + x, f.midY - y
}

func (f frame) bar(x, y float32) (float32, float32) {
	return f.margin + x, f.barTopY - y
}

// Size returns the pixel size of a preview for cv.
func (r *Renderer) Size(cv *canvas.Canvas) image.Rectangle {
	b := cv.Bounds()
	w := int(math.Ceil(b.Width)) + 2*r.style.Margin
	h := int(math.Ceil(b.Height)) + r.style.BarHeight + 2*r.style.Margin
	return image.Rect(0, 0, w, h)
}

// Render draws the last rebuilt state of cv and ax. When qrText is not
// empty a QR code of it is stamped in the top-right corner. Callers hand
// the image back with Release.
func (r *Renderer) Render(cv *canvas.Canvas, ax axis.Result, qrText string) (*image.RGBA, error) {
	rect := r.Size(cv)
	img := r.pool.Get(rect)
	draw.Draw(img, rect, image.NewUniform(r.style.Background), image.Point{}, draw.Src)

	plotH := float32(math.Ceil(cv.Bounds().Height))
	f := frame{
		margin:  float32(r.style.Margin),
		midY:    float32(r.style.Margin) + plotH/2,
		barTopY: float32(r.style.Margin) + plotH,
	}

	mesh := cv.Mesh()
	r.fillMesh(img, &mesh, f.plot)
	r.drawMarkers(img, cv, f)
	r.fillMesh(img, &ax.Mesh, f.bar)
	r.drawLabels(img, ax.Labels, f)

	if qrText != "" {
		if err := r.stampQR(img, qrText); err != nil {
			r.Release(img)
			return nil, err
		}
	}
	return img, nil
}

// Release returns a rendered image to the pool.
func (r *Renderer) Release(img *image.RGBA) {
	r.pool.Put(img)
}

func (r *Renderer) fillMesh(dst *image.RGBA, m *canvas.Mesh, toPixel func(x, y float32) (float32, float32)) {
	size := dst.Bounds().Size()
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Vertices[m.Indices[t]], m.Vertices[m.Indices[t+1]], m.Vertices[m.Indices[t+2]]

		r.z.Reset(size.X, size.Y)
		r.z.DrawOp = draw.Over
		r.z.MoveTo(toPixel(a.X, a.Y))
		r.z.LineTo(toPixel(b.X, b.Y))
		r.z.LineTo(toPixel(c.X, c.Y))
		r.z.ClosePath()
		r.z.Draw(dst, dst.Bounds(), image.NewUniform(a.Color), image.Point{})
	}
}

func (r *Renderer) drawMarkers(dst *image.RGBA, cv *canvas.Canvas, f frame) {
	half := r.style.MarkerSize / 2
	for _, ch := range curve.Channels() {
		for _, m := range cv.Markers(ch) {
			px, py := f.plot(float32(m.X), float32(m.Y))
			cx, cy := int(math.Round(float64(px))), int(math.Round(float64(py)))
			box := image.Rect(cx-half, cy-half, cx+half+1, cy+half+1)
			draw.Draw(dst, box, image.NewUniform(m.Color), image.Point{}, draw.Src)
		}
	}
}

func (r *Renderer) drawLabels(dst *image.RGBA, labels []axis.Label, f frame) {
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(r.style.Label), Face: basicfont.Face7x13}
	for _, l := range labels {
		px, py := f.bar(float32(l.X), float32(l.Y))
		dr.Dot = fixed.Point26_6{X: fixed.I(int(px)), Y: fixed.I(int(py))}
		dr.DrawString(l.Text)
	}
}

func (r *Renderer) stampQR(dst *image.RGBA, text string) error {
	size := r.style.QRSize
	if size <= 0 {
		return nil
	}
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	code := q.Image(size)
	b := dst.Bounds()
	at := image.Rect(b.Max.X-size, b.Min.Y, b.Max.X, b.Min.Y+size)
	draw.Draw(dst, at, code, code.Bounds().Min, draw.Src)
	return nil
}

// WritePNG encodes img to path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
