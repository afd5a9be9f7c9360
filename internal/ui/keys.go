package ui

import "github.com/iburimskiy/valentine/internal/config"

// Repeat reports whether a key held for the given number of ticks should
// fire: on the first tick, then every RepeatInterval ticks after RepeatDelay.
func Repeat(ticks int) bool {
	if ticks == 1 {
		return true
	}
	return ticks >= config.RepeatDelay && (ticks-config.RepeatDelay)%config.RepeatInterval == 0
}
