package animation

import (
	"github.com/ivlev/animcurve/internal/curve"
)

// Clip is an exported, playback-ready animation. Keys of every curve are
// sorted by time.
type Clip struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Curves []ClipCurve `yaml:"curves"`
}

// ClipCurve binds one channel's sorted keys to its transform property.
type ClipCurve struct {
	Channel  curve.ChannelID  `yaml:"channel"`
	Property string           `yaml:"property"`
	Keys     []curve.Keyframe `yaml:"keys"`
}

// Curve returns the curve for ch, or nil.
func (c *Clip) Curve(ch curve.ChannelID) *ClipCurve {
	for i := range c.Curves {
		if c.Curves[i].Channel == ch {
			return &c.Curves[i]
		}
	}
	return nil
}

// Duration is the largest key time across all curves.
func (c *Clip) Duration() float64 {
	d := 0.0
	for _, cc := range c.Curves {
		if n := len(cc.Keys); n > 0 && cc.Keys[n-1].Time > d {
			d = cc.Keys[n-1].Time
		}
	}
	return d
}

// Sample evaluates ch at time t. Missing or empty curves sample as 0.
func (c *Clip) Sample(ch curve.ChannelID, t float64) float64 {
	cc := c.Curve(ch)
	if cc == nil {
		return 0
	}
	return interpolate(cc.Keys, t)
}

// Evaluate samples every channel at time t.
func (c *Clip) Evaluate(t float64) [curve.NumChannels]float64 {
	var out [curve.NumChannels]float64
	for _, ch := range curve.Channels() {
		out[ch] = c.Sample(ch, t)
	}
	return out
}

// interpolate linearly interpolates time-sorted keys at currentTime.
func interpolate(keys []curve.Keyframe, currentTime float64) float64 {
	if len(keys) == 0 {
		return 0
	}

	// Before first key, hold first value
	if currentTime <= keys[0].Time {
		return keys[0].Value
	}

	// After last key, hold last value
	last := keys[len(keys)-1]
	if currentTime >= last.Time {
		return last.Value
	}

	// Find surrounding keys; with duplicate times the later key wins
	prev, next := keys[0], keys[1]
	for i := 0; i < len(keys)-1; i++ {
		if currentTime >= keys[i].Time && currentTime < keys[i+1].Time {
			prev, next = keys[i], keys[i+1]
			break
		}
	}

	timeDelta := next.Time - prev.Time
	if timeDelta == 0 {
		return next.Value
	}
	return lerp(prev.Value, next.Value, (currentTime-prev.Time)/timeDelta)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
