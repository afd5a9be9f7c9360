package music

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/valentine/internal/config"
)

var (
	// ErrNotLoaded is returned by operations that need a resolved track.
	ErrNotLoaded = errors.New("track not loaded")
	// ErrClosed is returned once Close has been called.
	ErrClosed = errors.New("track closed")
)

// Output is the audio device the track plays on.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear() // must not be called while locked
}

// Speaker is the Output backed by the beep speaker package.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s ...beep.Streamer)                       { speaker.Play(s...) }
func (Speaker) Lock()                                         { speaker.Lock() }
func (Speaker) Unlock()                                       { speaker.Unlock() }
func (Speaker) Clear()                                        { speaker.Clear() }

// Track is a Player over one looping track, resolved once and kept in memory.
//
// Resolution runs in the background; a Play request made before it finishes is
// honored once the track is ready, if it has not been paused since.
type Track struct {
	location string
	client   *http.Client
	out      Output
	log      *slog.Logger

	mu       sync.Mutex
	ctx      context.Context // parent for retried resolutions
	cancel   context.CancelFunc
	closed   bool
	loading  bool
	loaded   bool
	loadErr  error
	want     bool
	streamer beep.StreamSeekCloser
	format   beep.Format
	loop     *looper
	tap      *levelTap
	ctrl     *beep.Ctrl
}

// NewTrack creates an unresolved track. A nil client uses one with timeout.
func NewTrack(location string, client *http.Client, out Output, logger *slog.Logger) *Track {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Track{
		location: location,
		client:   client,
		out:      out,
		log:      logger.With(slog.String("track", location)),
	}
}

// Start resolves the track in the background.
func (t *Track) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if lctx, ok := t.begin(ctx); ok {
		go func() { _ = t.load(lctx) }()
	}
}

// Load resolves the track and blocks until it is ready to play.
func (t *Track) Load(ctx context.Context) error {
	t.mu.Lock()
	lctx, ok := t.begin(ctx)
	closed, loadErr := t.closed, t.loadErr
	t.mu.Unlock()

	switch {
	case ok:
		return t.load(lctx)
	case closed:
		return ErrClosed
	default:
		return loadErr
	}
}

// begin marks a resolution as running and derives its cancelable context.
// Callers hold t.mu.
func (t *Track) begin(parent context.Context) (context.Context, bool) {
	if t.closed || t.loading || t.loaded {
		return nil, false
	}
	if t.cancel != nil {
		t.cancel() // the previous attempt has already finished
	}
	ctx, cancel := context.WithCancel(parent)
	t.ctx = parent
	t.cancel = cancel
	t.loading = true
	t.loadErr = nil
	return ctx, true
}

func (t *Track) load(ctx context.Context) error {
	started := time.Now()
	data, err := fetch(ctx, t.client, t.location)

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	if err == nil {
		streamer, format, err = decode(t.location, data)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false

	if t.closed {
		if streamer != nil {
			_ = streamer.Close()
		}
		return ErrClosed
	}
	if err == nil {
		if err = t.out.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
			_ = streamer.Close()
			err = fmt.Errorf("init speaker: %w", err)
		}
	}
	if err != nil {
		t.loadErr = err
		t.log.Warn("track unavailable", slog.String("error", err.Error()))
		return err
	}

	// Prepare audio chain: streamer -> loop -> tap -> ctrl
	t.streamer = streamer
	t.format = format
	t.loop = &looper{src: streamer}
	t.tap = newLevelTap(t.loop, config.VisualRingSize)
	t.ctrl = &beep.Ctrl{Streamer: t.tap, Paused: !t.want}
	t.loaded = true
	t.out.Play(t.ctrl)

	t.log.Info("track ready",
		slog.Int("bytes", len(data)),
		slog.Duration("length", format.SampleRate.D(streamer.Len())),
		slog.Duration("took", time.Since(started)))
	return nil
}

// Play unpauses the track, or records the request while it resolves.
// After a failed resolution it starts another attempt and returns the failure.
func (t *Track) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.want = true
	switch {
	case t.closed:
		return ErrClosed
	case t.loaded:
		t.setPaused(false)
		return nil
	case t.loading:
		return nil
	case t.loadErr != nil:
		err := t.loadErr
		if t.ctx != nil {
			if lctx, ok := t.begin(t.ctx); ok {
				go func() { _ = t.load(lctx) }()
			}
		}
		return err
	default:
		return ErrNotLoaded
	}
}

// Pause pauses the track at its current position.
func (t *Track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.want = false
	if t.loaded {
		t.setPaused(true)
	}
}

func (t *Track) setPaused(paused bool) {
	t.out.Lock()
	t.ctrl.Paused = paused
	t.out.Unlock()
}

// Loaded reports whether the track is ready.
func (t *Track) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

// Level returns the loudness of the most recently played audio, in [0, 1].
func (t *Track) Level() float64 {
	t.mu.Lock()
	tap := t.tap
	t.mu.Unlock()

	if tap == nil {
		return 0
	}
	return tap.Level(config.LevelWindow)
}

// Position returns the playback position within the current loop.
func (t *Track) Position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		return 0
	}
	t.out.Lock()
	pos := t.streamer.Position()
	t.out.Unlock()
	return t.format.SampleRate.D(pos)
}

// Close stops playback, cancels a resolution still in flight and releases the
// decoded stream. A resolution finishing after Close never starts playback.
func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
	if !t.loaded {
		return nil
	}
	// Clear takes the output lock itself.
	t.out.Clear()

	t.loaded = false
	t.ctrl = nil
	t.tap = nil
	t.loop = nil
	if err := t.streamer.Close(); err != nil {
		return fmt.Errorf("close track: %w", err)
	}
	return nil
}
