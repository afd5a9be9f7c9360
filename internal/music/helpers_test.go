package music

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/require"
)

// memStream is an in-memory beep.StreamSeeker.
type memStream struct {
	data    [][2]float64
	pos     int
	seekErr error
}

func constStream(n int, v float64) *memStream {
	data := make([][2]float64, n)
	for i := range data {
		data[i] = [2]float64{v, v}
	}
	return &memStream{data: data}
}

func (m *memStream) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= len(m.data) {
		return 0, false
	}
	n := copy(samples, m.data[m.pos:])
	m.pos += n
	return n, true
}

func (m *memStream) Err() error    { return nil }
func (m *memStream) Len() int      { return len(m.data) }
func (m *memStream) Position() int { return m.pos }

func (m *memStream) Seek(p int) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	if p < 0 || p > len(m.data) {
		return errors.New("seek out of range")
	}
	m.pos = p
	return nil
}

// fakeOutput records what the track hands to the audio device.
type fakeOutput struct {
	mu      sync.Mutex
	initErr error
	rate    beep.SampleRate
	inits   int
	played  []beep.Streamer
	cleared bool
}

func (o *fakeOutput) Init(sr beep.SampleRate, bufferSize int) error {
	o.inits++
	o.rate = sr
	return o.initErr
}

func (o *fakeOutput) Play(s ...beep.Streamer) { o.played = append(o.played, s...) }
func (o *fakeOutput) Lock()                   { o.mu.Lock() }
func (o *fakeOutput) Unlock()                 { o.mu.Unlock() }

func (o *fakeOutput) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.played = nil
	o.cleared = true
}

// pull streams n samples from whatever the output is playing.
func (o *fakeOutput) pull(t *testing.T, n int) [][2]float64 {
	t.Helper()
	require.NotEmpty(t, o.played)
	buf := make([][2]float64, n)
	o.mu.Lock()
	defer o.mu.Unlock()
	got, _ := o.played[0].Stream(buf)
	return buf[:got]
}

var testFormat = beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}

// writeWav encodes n samples of value v and returns the file path and bytes.
func writeWav(t *testing.T, n int, v float64) (string, []byte) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, constStream(n, v), testFormat))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return p, data
}
