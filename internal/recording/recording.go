package recording

import (
	"fmt"

	"github.com/ivlev/animcurve/internal/curve"
)

// Recording is a captured transform track for one object plus an optional
// script of graph edits to apply after replay.
type Recording struct {
	Version   string     `yaml:"version"`
	Name      string     `yaml:"name,omitempty"`
	Snapshots []Snapshot `yaml:"snapshots"`
	Edits     []Edit     `yaml:"edits,omitempty"`
}

// Snapshot is one captured transform: position xyz, rotation xyz, scale xyz.
type Snapshot struct {
	Time   float64                    `yaml:"time"`
	Values [curve.NumChannels]float64 `yaml:"values,flow"`
}

// EditOp names a graph editor action.
type EditOp string

const (
	OpSelect EditOp = "select"
	OpDelete EditOp = "delete" // deletes the selected keyframe
	OpModify EditOp = "modify" // opens an edit on the selected keyframe and applies Time/Value
	OpNudge  EditOp = "nudge"  // opens an edit and steps it by Step slot, Dir on TimeDir/ValueDir
	OpHide   EditOp = "hide"
	OpShow   EditOp = "show"
	OpScroll EditOp = "scroll"
	OpCursor EditOp = "cursor" // moves the capture cursor by Time
)

// Edit is one scripted action. Fields unused by an op are ignored.
type Edit struct {
	Op       EditOp          `yaml:"op"`
	Channel  curve.ChannelID `yaml:"channel,omitempty"`
	Index    int             `yaml:"index,omitempty"`
	Time     float64         `yaml:"time,omitempty"`
	Value    float64         `yaml:"value,omitempty"`
	Step     int             `yaml:"step,omitempty"`
	TimeDir  int             `yaml:"time_dir,omitempty"`
	ValueDir int             `yaml:"value_dir,omitempty"`
	Scroll   float64         `yaml:"scroll,omitempty"`
}

// Validate rejects unknown ops and empty recordings.
func (r *Recording) Validate() error {
	if len(r.Snapshots) == 0 {
		return fmt.Errorf("recording %q has no snapshots", r.Name)
	}
	for i, s := range r.Snapshots {
		if s.Time < 0 {
			return fmt.Errorf("snapshot %d: negative time %.3f", i, s.Time)
		}
	}
	for i, e := range r.Edits {
		switch e.Op {
		case OpSelect, OpDelete, OpModify, OpNudge, OpHide, OpShow, OpScroll, OpCursor:
		default:
			return fmt.Errorf("edit %d: unknown op %q", i, e.Op)
		}
	}
	return nil
}
