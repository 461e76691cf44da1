package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Editor holds the graph editor geometry, scaling and colours.
type Editor struct {
	HorizontalScale float64 `yaml:"horizontal_scale"` // seconds per canvas unit
	VerticalScale   float64 `yaml:"vertical_scale"`   // value per canvas unit
	Precision       int     `yaml:"precision"`        // decimals for canvas -> domain

	Canvas CanvasConfig `yaml:"canvas"`
	Axis   AxisConfig   `yaml:"axis"`
	Colors ColorConfig  `yaml:"colors"`
}

type CanvasConfig struct {
	MinWidth     float64 `yaml:"min_width"`
	MinHeight    float64 `yaml:"min_height"`
	WidthOffset  float64 `yaml:"width_offset"`
	HeightOffset float64 `yaml:"height_offset"`
	Thickness    float64 `yaml:"thickness"`
	MarkerSize   float64 `yaml:"marker_size"`
}

type AxisConfig struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	MajorEvery     int     `yaml:"major_every"`
	MajorHeight    float64 `yaml:"major_height"`
	MajorThickness float64 `yaml:"major_thickness"`
	MinorHeight    float64 `yaml:"minor_height"`
	MinorThickness float64 `yaml:"minor_thickness"`
	LabelOffsetX   float64 `yaml:"label_offset_x"`
	LabelOffsetY   float64 `yaml:"label_offset_y"`
	BarHeight      float64 `yaml:"bar_height"`
}

// ColorConfig holds "#rrggbb" or "#rrggbbaa" colours.
type ColorConfig struct {
	Channels   []string `yaml:"channels"` // one per channel, POS_X..SCALE_Z
	Selected   string   `yaml:"selected"`
	MajorLine  string   `yaml:"major_line"`
	MinorLine  string   `yaml:"minor_line"`
	Label      string   `yaml:"label"`
	Background string   `yaml:"background"`
}

// DefaultEditor mirrors the stock editor layout: 0.08 domain units per
// canvas unit on both axes and a major tick every 10 seconds.
func DefaultEditor() Editor {
	return Editor{
		HorizontalScale: 0.08,
		VerticalScale:   0.08,
		Precision:       2,
		Canvas: CanvasConfig{
			MinWidth:     400,
			MinHeight:    200,
			WidthOffset:  20,
			HeightOffset: 20,
			Thickness:    1,
			MarkerSize:   4,
		},
		Axis: AxisConfig{
			ViewportWidth:  400,
			MajorEvery:     10,
			MajorHeight:    8,
			MajorThickness: 1,
			MinorHeight:    4,
			MinorThickness: 0.5,
			LabelOffsetX:   4,
			LabelOffsetY:   -12,
			BarHeight:      24,
		},
		Colors: ColorConfig{
			Channels: []string{
				"#e6194b", "#3cb44b", "#4363d8",
				"#f58231", "#911eb4", "#42d4f4",
				"#f032e6", "#9a6324", "#808000",
			},
			Selected:   "#000000",
			MajorLine:  "#000000",
			MinorLine:  "#808080",
			Label:      "#000000",
			Background: "#ffffff",
		},
	}
}

// LoadEditor reads a YAML file over DefaultEditor. An empty path returns
// the defaults.
func LoadEditor(path string) (Editor, error) {
	ed := DefaultEditor()
	if path == "" {
		return ed, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ed, fmt.Errorf("read editor config: %w", err)
	}
	if err := yaml.Unmarshal(data, &ed); err != nil {
		return ed, fmt.Errorf("parse editor config %s: %w", path, err)
	}
	if err := ed.Validate(); err != nil {
		return ed, fmt.Errorf("editor config %s: %w", path, err)
	}
	return ed, nil
}

// Validate checks values the editor would divide by or index with.
func (e Editor) Validate() error {
	var errs []error
	if e.HorizontalScale <= 0 {
		errs = append(errs, errors.New("horizontal_scale must be positive"))
	}
	if e.VerticalScale <= 0 {
		errs = append(errs, errors.New("vertical_scale must be positive"))
	}
	if e.Axis.ViewportWidth <= 0 {
		errs = append(errs, errors.New("axis.viewport_width must be positive"))
	}
	if e.Axis.MajorEvery <= 0 {
		errs = append(errs, errors.New("axis.major_every must be positive"))
	}
	if len(e.Colors.Channels) != 9 {
		errs = append(errs, fmt.Errorf("colors.channels needs 9 entries, got %d", len(e.Colors.Channels)))
	}
	for _, c := range append(append([]string{}, e.Colors.Channels...),
		e.Colors.Selected, e.Colors.MajorLine, e.Colors.MinorLine, e.Colors.Label, e.Colors.Background) {
		if _, err := ParseColor(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor is ParseColor for values already checked by Validate.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
