package curve

import (
	"fmt"
	"strings"
)

// Keyframe is a single (time, value) sample of one animatable property.
type Keyframe struct {
	Time  float64 `yaml:"time"`  // Time offset in seconds
	Value float64 `yaml:"value"` // Property value at Time
}

// ChannelID identifies one of the nine animatable transform properties.
type ChannelID int

const (
	PosX ChannelID = iota
	PosY
	PosZ
	RotX
	RotY
	RotZ
	ScaleX
	ScaleY
	ScaleZ
)

// NumChannels is the fixed number of channels in a CurveSet.
const NumChannels = 9

var channelNames = [NumChannels]string{
	"POS_X", "POS_Y", "POS_Z",
	"ROT_X", "ROT_Y", "ROT_Z",
	"SCALE_X", "SCALE_Y", "SCALE_Z",
}

var channelProperties = [NumChannels]string{
	"localPosition.x", "localPosition.y", "localPosition.z",
	"localRotation.x", "localRotation.y", "localRotation.z",
	"localScale.x", "localScale.y", "localScale.z",
}

// Channels returns all channel IDs in storage order.
func Channels() []ChannelID {
	ids := make([]ChannelID, NumChannels)
	for i := range ids {
		ids[i] = ChannelID(i)
	}
	return ids
}

// Valid reports whether c names one of the nine channels.
func (c ChannelID) Valid() bool {
	return c >= 0 && c < NumChannels
}

func (c ChannelID) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ChannelID(%d)", int(c))
	}
	return channelNames[c]
}

// Property returns the transform property path the channel drives on playback.
func (c ChannelID) Property() string {
	if !c.Valid() {
		return ""
	}
	return channelProperties[c]
}

// ParseChannel accepts "POS_X", "pos_x" or "pos-x".
func ParseChannel(s string) (ChannelID, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, name := range channelNames {
		if name == norm {
			return ChannelID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown channel: %q", s)
}

func (c ChannelID) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid channel: %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *ChannelID) UnmarshalText(text []byte) error {
	id, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = id
	return nil
}
