package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Ticks per second of the game loop; the scheduler advances one tick per Update.
	TPS = 60

	// Card dimensions
	CardWidth  = 420
	CardHeight = 260

	// Button dimensions
	ButtonWidth  = 220
	ButtonHeight = 36
	MusicSize    = 44
	MusicMargin  = 16
	PromptWidth  = 36

	// Heart visualization parameters
	HeartBaseSize   = 24
	HeartRiseOffset = 100
	HeartEndScale   = 0.5
	PulseSpeed      = 4.0
	FadeIn          = 500 * time.Millisecond

	// Level meter
	VisualRingSize  = 4096
	LevelWindow     = 1024
	SmoothingFactor = 0.6

	// Backspace key repeat, in ticks
	RepeatDelay    = 30
	RepeatInterval = 3
)
