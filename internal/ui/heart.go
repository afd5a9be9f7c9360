package ui

import (
	"math"
	"time"

	"github.com/iburimskiy/valentine/internal/config"
	"github.com/iburimskiy/valentine/internal/hearts"
)

// Circle is a filled disc.
type Circle struct {
	X, Y, R float64
}

// HeartShape is a heart built from two lobes and a stack of rows tapering to
// the tip.
type HeartShape struct {
	Lobes [2]Circle
	Rows  []Rect
	Alpha float64
}

// Pulse returns the size multiplier of the heartbeat at the given clock.
// A louder level makes the hearts swell.
func Pulse(now time.Duration, level float64) float64 {
	beat := math.Sin(now.Seconds()*config.PulseSpeed) * 0.08
	return 1 + beat + 0.25*Clamp01(level)
}

// PlaceHeart positions a heart on a width x height screen: it rises from below
// the bottom edge to above the top over its duration, shrinking to half its
// scale on the way.
func PlaceHeart(p hearts.Particle, now time.Duration, width, height int, pulse float64) HeartShape {
	progress := p.Progress(now)
	scale := p.Scale * (1 - (1-config.HeartEndScale)*progress) * pulse
	size := config.HeartBaseSize * scale

	x := p.Left / 100 * float64(width)
	y := float64(height) - progress*(float64(height)+config.HeartRiseOffset)

	r := size / 4
	shape := HeartShape{
		Lobes: [2]Circle{
			{X: x + r, Y: y + r, R: r},
			{X: x + 3*r, Y: y + r, R: r},
		},
		Alpha: 1 - 0.6*progress,
	}

	// Rows from the lobe centers down to the tip, one pixel each.
	top := y + r
	bottom := y + size
	for row := top; row < bottom; row++ {
		f := (row - top) / (bottom - top)
		half := size / 2 * (1 - f)
		shape.Rows = append(shape.Rows, Rect{X: x + size/2 - half, Y: row, W: 2 * half, H: 1})
	}
	return shape
}

// FadeAlpha is the opacity of a line revealed at revealedAt.
func FadeAlpha(revealedAt, now time.Duration) float64 {
	return Clamp01(float64(now-revealedAt) / float64(config.FadeIn))
}
