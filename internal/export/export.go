package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/animcurve/internal/animation"
)

const clipVersion = "1.0"

// ClipFile is the on-disk form of an exported clip.
type ClipFile struct {
	Version  string          `yaml:"version"`
	Duration float64         `yaml:"duration"`
	Clip     *animation.Clip `yaml:"clip"`
}

// ClipPath returns the file path for clip inside dir.
func ClipPath(dir string, clip *animation.Clip) string {
	name := strings.ReplaceAll(clip.Name, " ", "_")
	return filepath.Join(dir, fmt.Sprintf("%s.anim.yaml", name))
}

// WriteClip writes clip as YAML, creating the parent directory if needed.
func WriteClip(clip *animation.Clip, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	data, err := yaml.Marshal(&ClipFile{
		Version:  clipVersion,
		Duration: clip.Duration(),
		Clip:     clip,
	})
	if err != nil {
		return fmt.Errorf("marshal clip %s: %w", clip.Name, err)
	}

	return os.WriteFile(path, data, 0644)
}

// ReadClip reads a clip written by WriteClip.
func ReadClip(path string) (*animation.Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f ClipFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse clip %s: %w", path, err)
	}
	if f.Clip == nil {
		return nil, fmt.Errorf("%s: no clip", path)
	}
	return f.Clip, nil
}
