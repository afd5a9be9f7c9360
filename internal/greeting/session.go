// Package greeting implements the timed reveal of the valentine message.
package greeting

import (
	"strings"
	"time"

	"github.com/iburimskiy/valentine/internal/schedule"
)

// DefaultName stands in for an empty or blank name.
const DefaultName = "Friend"

// Phase is the state of a greeting session.
type Phase int

const (
	CollectingInput Phase = iota
	Revealing
	Complete
)

func (p Phase) String() string {
	switch p {
	case CollectingInput:
		return "collecting-input"
	case Revealing:
		return "revealing"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Messages returns the five greeting lines addressed to name.
func Messages(name string) []string {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	return []string{
		"Dear " + name + ",",
		"🌹 On this special Valentine's Day 🌹",
		"May your heart be filled with joy,",
		"love, and wonderful moments!",
		"Happy Valentine's Day! ❤️",
	}
}

// Timer schedules one-shot callbacks. *schedule.Scheduler satisfies it.
type Timer interface {
	After(delay time.Duration, fn func()) schedule.Handle
	Now() time.Duration
}

// Line is one revealed message with the clock time it appeared.
type Line struct {
	Text       string
	RevealedAt time.Duration
}

// Session walks collecting-input -> revealing -> complete -> collecting-input.
type Session struct {
	timer    Timer
	interval time.Duration

	name     string
	lines    []string
	revealed []Line
	pending  []schedule.Handle
}

// NewSession creates a session revealing one line per interval.
func NewSession(timer Timer, interval time.Duration) *Session {
	return &Session{timer: timer, interval: interval}
}

// Phase derives the state from the number of revealed lines.
func (s *Session) Phase() Phase {
	switch {
	case s.lines == nil:
		return CollectingInput
	case len(s.revealed) < len(s.lines):
		return Revealing
	default:
		return Complete
	}
}

// Name returns the entered name.
func (s *Session) Name() string {
	return s.name
}

// SetName replaces the entered name while input is being collected.
func (s *Session) SetName(name string) bool {
	if s.Phase() != CollectingInput {
		return false
	}
	s.name = name
	return true
}

// Append adds typed runes to the name.
func (s *Session) Append(r ...rune) bool {
	if s.Phase() != CollectingInput || len(r) == 0 {
		return false
	}
	s.name += string(r)
	return true
}

// Backspace drops the last rune of the name.
func (s *Session) Backspace() bool {
	if s.Phase() != CollectingInput || s.name == "" {
		return false
	}
	rs := []rune(s.name)
	s.name = string(rs[:len(rs)-1])
	return true
}

// Submit starts revealing the lines for the entered name, line i after i intervals.
func (s *Session) Submit() bool {
	if s.Phase() != CollectingInput {
		return false
	}
	s.cancelPending()
	s.lines = Messages(s.name)
	s.revealed = make([]Line, 0, len(s.lines))

	for i, line := range s.lines {
		h := s.timer.After(time.Duration(i)*s.interval, func() {
			s.revealed = append(s.revealed, Line{Text: line, RevealedAt: s.timer.Now()})
		})
		s.pending = append(s.pending, h)
	}
	return true
}

// CanReset reports whether every line has been revealed.
func (s *Session) CanReset() bool {
	return s.Phase() == Complete
}

// Reset returns a complete session to collecting input with an empty name.
func (s *Session) Reset() bool {
	if s.Phase() != Complete {
		return false
	}
	s.clear()
	return true
}

// Revealed returns the lines shown so far, in order.
func (s *Session) Revealed() []Line {
	out := make([]Line, len(s.revealed))
	copy(out, s.revealed)
	return out
}

// Close cancels any reveal still pending and drops the session state.
func (s *Session) Close() {
	s.clear()
}

func (s *Session) clear() {
	s.cancelPending()
	s.name = ""
	s.lines = nil
	s.revealed = nil
}

func (s *Session) cancelPending() {
	for _, h := range s.pending {
		if h.Active() {
			h.Cancel()
		}
	}
	s.pending = nil
}
