package greeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/valentine/internal/schedule"
)

func revealedText(s *Session) []string {
	var out []string
	for _, l := range s.Revealed() {
		out = append(out, l.Text)
	}
	return out
}

func TestMessages_NameFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "Dear Friend,"},
		{"spaces", "   ", "Dear Friend,"},
		{"tabs and newline", "\t\n", "Dear Friend,"},
		{"plain", "Sam", "Dear Sam,"},
		{"unicode", "Zoë 💘", "Dear Zoë 💘,"},
		{"kept verbatim", " Sam ", "Dear  Sam ,"},
		{"template chars", "{s},%d", "Dear {s},%d,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Messages(tt.input)
			require.Len(t, lines, 5)
			assert.Equal(t, tt.want, lines[0])
		})
	}
}

func TestSession_EndToEnd(t *testing.T) {
	sch := schedule.New()
	s := NewSession(sch, time.Second)
	assert.Equal(t, CollectingInput, s.Phase())

	require.True(t, s.SetName("Sam"))
	require.True(t, s.Submit())
	assert.Equal(t, Revealing, s.Phase())
	assert.Empty(t, revealedText(s))

	want := []string{
		"Dear Sam,",
		"🌹 On this special Valentine's Day 🌹",
		"May your heart be filled with joy,",
		"love, and wonderful moments!",
		"Happy Valentine's Day! ❤️",
	}

	sch.Advance(0)
	assert.Equal(t, want[:1], revealedText(s))
	for i := 2; i <= 5; i++ {
		assert.False(t, s.CanReset())
		sch.Advance(time.Second)
		assert.Equal(t, want[:i], revealedText(s))
	}

	assert.Equal(t, Complete, s.Phase())
	assert.True(t, s.CanReset())

	sch.Advance(time.Minute)
	assert.Len(t, revealedText(s), 5)

	require.True(t, s.Reset())
	assert.Equal(t, CollectingInput, s.Phase())
	assert.Equal(t, "", s.Name())
	assert.Empty(t, revealedText(s))
}

func TestSession_RevealTimes(t *testing.T) {
	sch := schedule.New()
	sch.Advance(10 * time.Second)
	s := NewSession(sch, time.Second)
	s.Submit()

	// One large jump still reveals every line in template order.
	sch.Advance(30 * time.Second)
	lines := s.Revealed()
	require.Len(t, lines, 5)
	assert.Equal(t, "Dear Friend,", lines[0].Text)
	for i := 1; i < len(lines); i++ {
		assert.GreaterOrEqual(t, lines[i].RevealedAt, lines[i-1].RevealedAt)
	}
}

func TestSession_GuardsByPhase(t *testing.T) {
	sch := schedule.New()
	s := NewSession(sch, time.Second)

	assert.False(t, s.Reset(), "reset while collecting input")
	assert.False(t, s.Backspace(), "backspace on empty name")

	require.True(t, s.Append('A', 'l'))
	require.True(t, s.Submit())

	assert.False(t, s.Submit(), "submit while revealing")
	assert.False(t, s.Reset(), "reset while revealing")
	assert.False(t, s.Append('x'))
	assert.False(t, s.SetName("Bo"))
	assert.False(t, s.Backspace())
	assert.Equal(t, "Al", s.Name())

	sch.Advance(4 * time.Second)
	assert.Equal(t, Complete, s.Phase())
	assert.False(t, s.Submit(), "submit while complete")
	assert.Equal(t, "Dear Al,", revealedText(s)[0])
}

func TestSession_Backspace(t *testing.T) {
	s := NewSession(schedule.New(), time.Second)
	s.SetName("Zoë")
	require.True(t, s.Backspace())
	assert.Equal(t, "Zo", s.Name())
}

func TestSession_CloseCancelsPendingReveals(t *testing.T) {
	sch := schedule.New()
	s := NewSession(sch, time.Second)
	s.Submit()
	sch.Advance(time.Second)
	require.Len(t, revealedText(s), 2)

	s.Close()
	assert.Equal(t, 0, sch.Pending())
	sch.Advance(time.Minute)
	assert.Empty(t, revealedText(s))
	assert.Equal(t, CollectingInput, s.Phase())
}

func TestSession_ResubmitAfterReset(t *testing.T) {
	sch := schedule.New()
	s := NewSession(sch, time.Second)
	s.SetName("Sam")
	s.Submit()
	sch.Advance(4 * time.Second)
	require.True(t, s.Reset())

	s.SetName("Kim")
	s.Submit()
	sch.Advance(0)
	assert.Equal(t, []string{"Dear Kim,"}, revealedText(s))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "collecting-input", CollectingInput.String())
	assert.Equal(t, "revealing", Revealing.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
