package ui

import "github.com/iburimskiy/valentine/internal/config"

// Rect is an axis-aligned box in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx <= r.X+r.W && fy >= r.Y && fy <= r.Y+r.H
}

// CenterX returns the horizontal center of r.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// Layout places the welcome card and its controls on the screen.
type Layout struct {
	Card   Rect
	Input  Rect
	Prompt Rect
	Submit Rect
	Reset  Rect
	Music  Rect
}

// NewLayout centers the card in a width x height screen.
func NewLayout(width, height int) Layout {
	w, h := float64(width), float64(height)
	card := Rect{
		X: (w - config.CardWidth) / 2,
		Y: (h - config.CardHeight) / 2,
		W: config.CardWidth,
		H: config.CardHeight,
	}
	pad := 24.0

	input := Rect{
		X: card.X + pad,
		Y: card.Y + 120,
		W: card.W - 2*pad - config.PromptWidth - 8,
		H: config.ButtonHeight,
	}
	return Layout{
		Card:   card,
		Input:  input,
		Prompt: Rect{X: input.X + input.W + 8, Y: input.Y, W: config.PromptWidth, H: config.ButtonHeight},
		Submit: Rect{
			X: card.CenterX() - config.ButtonWidth/2,
			Y: input.Y + input.H + 20,
			W: config.ButtonWidth,
			H: config.ButtonHeight,
		},
		Reset: Rect{
			X: card.CenterX() - config.ButtonWidth/2,
			Y: card.Y + card.H - config.ButtonHeight - pad,
			W: config.ButtonWidth,
			H: config.ButtonHeight,
		},
		Music: Rect{
			X: w - config.MusicSize - config.MusicMargin,
			Y: h - config.MusicSize - config.MusicMargin,
			W: config.MusicSize,
			H: config.MusicSize,
		},
	}
}

// InputChars returns how many glyphs fit in the input box.
func (l Layout) InputChars() int {
	return int(l.Input.W-16) / GlyphWidth
}
