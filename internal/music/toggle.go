// Package music plays the looping background track behind an on/off toggle.
package music

import "log/slog"

// Player starts and pauses the shared track.
type Player interface {
	Play() error
	Pause()
}

// Toggle holds the requested playing flag and applies it to a Player.
//
// A Play failure leaves the flag as requested; pressing the toggle twice more
// retries.
type Toggle struct {
	player  Player
	playing bool
	log     *slog.Logger
}

// NewToggle creates a toggle in the paused state.
func NewToggle(player Player, logger *slog.Logger) *Toggle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toggle{player: player, log: logger}
}

// Toggle flips the flag and returns the new value.
func (t *Toggle) Toggle() bool {
	t.Set(!t.playing)
	return t.playing
}

// Set requests playback on or off.
func (t *Toggle) Set(on bool) {
	t.playing = on
	if t.player == nil {
		return
	}
	if !on {
		t.player.Pause()
		return
	}
	if err := t.player.Play(); err != nil {
		t.log.Debug("playback did not start", slog.String("error", err.Error()))
	}
}

// Playing reports the requested state.
func (t *Toggle) Playing() bool {
	return t.playing
}
