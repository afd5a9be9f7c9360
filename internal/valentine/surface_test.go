package valentine

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/valentine/internal/greeting"
)

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

type countingPlayer struct {
	plays, pauses int
	err           error
}

func (p *countingPlayer) Play() error { p.plays++; return p.err }
func (p *countingPlayer) Pause()      { p.pauses++ }

func newSurface(t *testing.T, opts Options) *Surface {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = fixedRand(0.5)
	}
	if opts.IDs == nil {
		n := 0
		opts.IDs = func() string { n++; return fmt.Sprintf("h%d", n) }
	}
	s := New(opts)
	t.Cleanup(s.Teardown)
	return s
}

func texts(lines []greeting.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestSurface_GreetingEndToEnd(t *testing.T) {
	s := newSurface(t, Options{})
	s.Type('S', 'a', 'm')
	require.Equal(t, "Sam", s.Name())
	require.True(t, s.Submit())
	assert.Equal(t, greeting.Revealing, s.Phase())

	want := []string{
		"Dear Sam,",
		"🌹 On this special Valentine's Day 🌹",
		"May your heart be filled with joy,",
		"love, and wonderful moments!",
		"Happy Valentine's Day! ❤️",
	}

	s.Advance(0)
	for i := 1; i < 5; i++ {
		assert.Equal(t, want[:i], texts(s.Revealed()))
		assert.False(t, s.CanReset())
		s.Advance(time.Second)
	}
	assert.Equal(t, want, texts(s.Revealed()))
	assert.True(t, s.CanReset())
	assert.Equal(t, greeting.Complete, s.Phase())

	require.True(t, s.Reset())
	assert.Equal(t, "", s.Name())
	assert.Empty(t, s.Revealed())
	assert.Equal(t, greeting.CollectingInput, s.Phase())
}

func TestSurface_EmptyNameFallsBack(t *testing.T) {
	for _, name := range []string{"", "  ", "\t"} {
		s := newSurface(t, Options{})
		s.SetName(name)
		s.Submit()
		s.Advance(0)
		assert.Equal(t, "Dear Friend,", s.Revealed()[0].Text)
	}
}

func TestSurface_FrameTicksRevealInOrder(t *testing.T) {
	s := newSurface(t, Options{})
	s.Type('K')
	s.Submit()

	frame := time.Second / 60
	for i := 0; i < 6*60; i++ {
		s.Advance(frame)
	}
	lines := s.Revealed()
	require.Len(t, lines, 5)
	assert.Equal(t, greeting.Messages("K"), texts(lines))
}

func TestSurface_HeartPopulation(t *testing.T) {
	s := newSurface(t, Options{})
	assert.Empty(t, s.Hearts())

	frame := time.Second / 60
	maxSeen := 0
	for i := 0; i < 120*60; i++ {
		s.Advance(frame)
		n := len(s.Hearts())
		assert.LessOrEqual(t, n, DefaultHeartCap)
		assert.GreaterOrEqual(t, n, 0)
		maxSeen = max(maxSeen, n)
	}
	assert.Equal(t, DefaultHeartCap, maxSeen)
}

func TestSurface_HeartCadence(t *testing.T) {
	s := newSurface(t, Options{HeartCap: 3})

	s.Advance(time.Second)
	s.Advance(time.Second)
	require.Len(t, s.Hearts(), 2)
	assert.Equal(t, time.Second, s.Hearts()[0].Born)
	assert.Equal(t, 2*time.Second, s.Hearts()[1].Born)

	s.Advance(3 * time.Second)
	assert.Len(t, s.Hearts(), 3, "capped")

	// At 6s the generator tick finds the field full, then the reaper evicts the oldest.
	s.Advance(time.Second)
	hs := s.Hearts()
	require.Len(t, hs, 2)
	assert.Equal(t, "h2", hs[0].ID)

	s.Advance(time.Second)
	hs = s.Hearts()
	require.Len(t, hs, 3)
	assert.Equal(t, "h4", hs[2].ID)
}

func TestSurface_MusicToggle(t *testing.T) {
	p := &countingPlayer{}
	s := newSurface(t, Options{Player: p})

	assert.False(t, s.Playing())
	assert.True(t, s.ToggleMusic())
	assert.False(t, s.ToggleMusic())
	assert.False(t, s.Playing())
	assert.Equal(t, 1, p.plays)
	assert.Equal(t, 1, p.pauses)
}

func TestSurface_MusicFailureIsSilent(t *testing.T) {
	p := &countingPlayer{err: errors.New("blocked")}
	s := newSurface(t, Options{Player: p})

	assert.True(t, s.ToggleMusic())
	assert.True(t, s.Playing())
}

func TestSurface_Teardown(t *testing.T) {
	p := &countingPlayer{}
	s := newSurface(t, Options{Player: p})
	s.SetMusic(true)
	s.Type('A')
	s.Submit()
	s.Advance(2 * time.Second)
	heartsBefore := len(s.Hearts())

	s.Teardown()
	assert.True(t, s.Closed())
	assert.False(t, s.Playing())
	assert.Equal(t, 1, p.pauses)

	s.Advance(time.Minute)
	assert.Len(t, s.Hearts(), heartsBefore)
	assert.Empty(t, s.Revealed())

	assert.False(t, s.Submit())
	assert.False(t, s.Reset())
	s.Type('x')
	assert.Equal(t, "", s.Name())
	assert.False(t, s.ToggleMusic())

	s.Teardown()
	assert.Equal(t, 1, p.pauses)
}

func TestSurface_DebugLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newSurface(t, Options{Logger: logger})

	s.Advance(6 * time.Second)
	assert.Contains(t, buf.String(), `"msg":"heart reaped","id":"h1","remaining":5`)

	s.Teardown()
	assert.Contains(t, buf.String(), `"msg":"tearing down surface","pending_tasks":2`)
	assert.True(t, s.Closed())
}
