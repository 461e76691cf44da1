package engine

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/animcurve/internal/animation"
	"github.com/ivlev/animcurve/internal/axis"
	"github.com/ivlev/animcurve/internal/canvas"
	"github.com/ivlev/animcurve/internal/config"
	"github.com/ivlev/animcurve/internal/curve"
	"github.com/ivlev/animcurve/internal/export"
	"github.com/ivlev/animcurve/internal/mapper"
	"github.com/ivlev/animcurve/internal/raster"
	"github.com/ivlev/animcurve/internal/recording"
	"github.com/ivlev/animcurve/internal/session"
)

const (
	previewMargin = 8
	qrSize        = 64
)

// Project replays recordings into animation containers, applies their edit
// scripts through an edit session and exports the resulting clips.
type Project struct {
	Config   *config.Config
	Registry *animation.Registry
	pool     *raster.ImagePool
}

// Result describes one processed recording.
type Result struct {
	Input       string
	Clip        *animation.Clip
	ClipPath    string
	PreviewPath string
	Keyframes   int
	Failed      int // edits that were rejected
	Replay      time.Duration
	Export      time.Duration
}

func NewProject(cfg *config.Config, reg *animation.Registry) *Project {
	if reg == nil {
		reg = animation.NewRegistry()
	}
	return &Project{Config: cfg, Registry: reg, pool: raster.NewImagePool()}
}

// NewSession builds an empty container named name (or a registry name when
// empty) and a session wired to views configured from the editor config.
func (p *Project) NewSession(name string) (*animation.Container, *session.Session, error) {
	ed := p.Config.Editor

	m, err := mapper.New(ed.HorizontalScale, ed.VerticalScale)
	if err != nil {
		return nil, nil, err
	}
	m.Precision = ed.Precision

	var colors [curve.NumChannels]color.RGBA
	for i := range colors {
		if i < len(ed.Colors.Channels) {
			colors[i] = config.MustColor(ed.Colors.Channels[i])
		}
	}
	cv := canvas.New(canvas.Options{
		MinWidth:      ed.Canvas.MinWidth,
		MinHeight:     ed.Canvas.MinHeight,
		WidthOffset:   ed.Canvas.WidthOffset,
		HeightOffset:  ed.Canvas.HeightOffset,
		Thickness:     ed.Canvas.Thickness,
		Colors:        colors,
		SelectedColor: config.MustColor(ed.Colors.Selected),
	})
	ax := axis.New(axis.Options{
		ViewportWidth:  ed.Axis.ViewportWidth,
		Scale:          ed.HorizontalScale,
		MajorEvery:     ed.Axis.MajorEvery,
		MajorHeight:    ed.Axis.MajorHeight,
		MajorThickness: ed.Axis.MajorThickness,
		MinorHeight:    ed.Axis.MinorHeight,
		MinorThickness: ed.Axis.MinorThickness,
		LabelOffsetX:   ed.Axis.LabelOffsetX,
		LabelOffsetY:   ed.Axis.LabelOffsetY,
		MajorColor:     config.MustColor(ed.Colors.MajorLine),
		MinorColor:     config.MustColor(ed.Colors.MinorLine),
	})

	var anim *animation.Container
	if name != "" {
		anim = animation.NewNamed(p.Registry, name)
	} else {
		anim = animation.New(p.Registry)
	}
	return anim, session.New(anim, cv, ax, m), nil
}

// Run processes the recording at path.
func (p *Project) Run(path string) (*Result, error) {
	rec, err := recording.Read(path)
	if err != nil {
		return nil, err
	}
	hidden, err := HiddenChannels(p.Config.Hidden)
	if err != nil {
		return nil, err
	}

	anim, sess, err := p.NewSession(rec.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res := &Result{Input: path}

	replayStart := time.Now()
	for _, snap := range rec.Snapshots {
		sess.CaptureAt(snap.Time, snap.Values)
	}
	sess.Tick()

	for i, e := range rec.Edits {
		if err := ApplyEdit(sess, e); err != nil {
			log.Printf("[!] %s: edit %d (%s): %v", filepath.Base(path), i, e.Op, err)
			res.Failed++
		}
		sess.Tick()
	}

	for _, ch := range hidden {
		sess.SetVisibility(ch, false)
	}
	if p.Config.Scroll >= 0 {
		sess.Scroll(p.Config.Scroll)
	}
	sess.Tick()
	res.Replay = time.Since(replayStart)

	exportStart := time.Now()
	for _, ch := range curve.Channels() {
		res.Keyframes += anim.Len(ch)
	}
	res.Clip = anim.ExportClip()
	res.ClipPath = export.ClipPath(p.Config.OutputDir, res.Clip)
	if err := export.WriteClip(res.Clip, res.ClipPath); err != nil {
		return nil, fmt.Errorf("export %s: %w", res.Clip.Name, err)
	}

	if p.Config.Preview {
		res.PreviewPath = strings.TrimSuffix(res.ClipPath, ".anim.yaml") + ".png"
		if err := p.writePreview(sess, res.Clip, res.PreviewPath); err != nil {
			return nil, fmt.Errorf("preview %s: %w", res.Clip.Name, err)
		}
	}
	res.Export = time.Since(exportStart)

	fmt.Printf("[>] Ready: %s -> %s (%d keys)\n", filepath.Base(path), filepath.Base(res.ClipPath), res.Keyframes)
	return res, nil
}

func (p *Project) writePreview(sess *session.Session, clip *animation.Clip, path string) error {
	ed := p.Config.Editor
	style := raster.Style{
		Background: config.MustColor(ed.Colors.Background),
		Label:      config.MustColor(ed.Colors.Label),
		MarkerSize: int(ed.Canvas.MarkerSize),
		BarHeight:  int(ed.Axis.BarHeight),
		Margin:     previewMargin,
	}
	qrText := ""
	if p.Config.StampQR {
		style.QRSize = qrSize
		qrText = clip.ID
	}

	r := raster.NewRenderer(style, p.pool)
	img, err := r.Render(sess.Canvas(), sess.Axis().Last(), qrText)
	if err != nil {
		return err
	}
	defer r.Release(img)
	return raster.WritePNG(img, path)
}

// HiddenChannels parses channel names such as "ROT_X" or "scale-z".
func HiddenChannels(names []string) ([]curve.ChannelID, error) {
	var out []curve.ChannelID
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		ch, err := curve.ParseChannel(n)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

// ApplyEdit performs one scripted editor action on sess. The session's
// geometry must be current, so callers Tick between edits.
func ApplyEdit(sess *session.Session, e recording.Edit) error {
	switch e.Op {
	case recording.OpSelect:
		return sess.Select(e.Channel, e.Index)
	case recording.OpDelete:
		return sess.DeleteSelected()
	case recording.OpModify:
		if _, err := sess.OpenEdit(); err != nil {
			return err
		}
		return closeEdit(sess, curve.Keyframe{Time: e.Time, Value: e.Value})
	case recording.OpNudge:
		m, err := sess.OpenEdit()
		if err != nil {
			return err
		}
		m.SetStep(e.Step)
		switch {
		case e.TimeDir > 0:
			m.IncreaseTime()
		case e.TimeDir < 0:
			m.DecreaseTime()
		}
		switch {
		case e.ValueDir > 0:
			m.IncreaseValue()
		case e.ValueDir < 0:
			m.DecreaseValue()
		}
		return closeEdit(sess, m.Keyframe())
	case recording.OpHide:
		sess.SetVisibility(e.Channel, false)
	case recording.OpShow:
		sess.SetVisibility(e.Channel, true)
	case recording.OpScroll:
		sess.Scroll(e.Scroll)
	case recording.OpCursor:
		sess.AdvanceCursor(e.Time)
	default:
		return fmt.Errorf("unknown op %q", e.Op)
	}
	return nil
}

// closeEdit applies k, cancelling the edit if the write is rejected so the
// script can continue.
func closeEdit(sess *session.Session, k curve.Keyframe) error {
	if err := sess.ApplyEdit(k); err != nil {
		sess.CancelEdit()
		return err
	}
	return nil
}
