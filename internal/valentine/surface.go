// Package valentine is the state owned by the valentine window: the heart
// field, the greeting session and the music toggle, all driven by one
// cooperative scheduler.
//
// The window mutates state only through the handler methods and advances the
// clock once per frame with Advance. Teardown cancels every scheduled task.
package valentine

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/iburimskiy/valentine/internal/greeting"
	"github.com/iburimskiy/valentine/internal/hearts"
	"github.com/iburimskiy/valentine/internal/music"
	"github.com/iburimskiy/valentine/internal/schedule"
)

// Options configures a Surface. Zero values fall back to the defaults.
type Options struct {
	HeartCap       int
	SpawnInterval  time.Duration
	ReapInterval   time.Duration
	RevealInterval time.Duration

	Rand   hearts.Rand
	IDs    func() string
	Player music.Player
	Logger *slog.Logger
}

// Defaults for Options.
const (
	DefaultHeartCap       = 15
	DefaultSpawnInterval  = time.Second
	DefaultReapInterval   = 6 * time.Second
	DefaultRevealInterval = time.Second
)

func (o Options) withDefaults() Options {
	if o.HeartCap <= 0 {
		o.HeartCap = DefaultHeartCap
	}
	if o.SpawnInterval <= 0 {
		o.SpawnInterval = DefaultSpawnInterval
	}
	if o.ReapInterval <= 0 {
		o.ReapInterval = DefaultReapInterval
	}
	if o.RevealInterval <= 0 {
		o.RevealInterval = DefaultRevealInterval
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Surface is the state container of one valentine window.
type Surface struct {
	sched   *schedule.Scheduler
	field   *hearts.Field
	session *greeting.Session
	audio   *music.Toggle
	log     *slog.Logger

	timers []schedule.Handle
}

// New builds the surface and starts the heart generator and reaper.
func New(opts Options) *Surface {
	opts = opts.withDefaults()

	sched := schedule.New()
	fieldOpts := []hearts.Option{hearts.WithClock(sched.Now)}
	if opts.IDs != nil {
		fieldOpts = append(fieldOpts, hearts.WithIDs(opts.IDs))
	}

	s := &Surface{
		sched:   sched,
		field:   hearts.NewField(opts.HeartCap, opts.Rand, fieldOpts...),
		session: greeting.NewSession(sched, opts.RevealInterval),
		audio:   music.NewToggle(opts.Player, opts.Logger),
		log:     opts.Logger,
	}

	s.timers = append(s.timers,
		sched.Every(opts.SpawnInterval, func() { s.field.Spawn() }),
		sched.Every(opts.ReapInterval, func() {
			if p, ok := s.field.Reap(); ok {
				s.log.Debug("heart reaped", slog.String("id", p.ID), slog.Int("remaining", s.field.Len()))
			}
		}),
	)
	return s
}

// Advance moves the surface clock forward by one frame.
func (s *Surface) Advance(dt time.Duration) {
	s.sched.Advance(dt)
}

// Now returns the surface clock.
func (s *Surface) Now() time.Duration {
	return s.sched.Now()
}

// Type appends typed runes to the name.
func (s *Surface) Type(r ...rune) {
	if s.Closed() {
		return
	}
	s.session.Append(r...)
}

// Backspace deletes the last rune of the name.
func (s *Surface) Backspace() {
	if s.Closed() {
		return
	}
	s.session.Backspace()
}

// SetName replaces the name, e.g. from the native prompt.
func (s *Surface) SetName(name string) {
	if s.Closed() {
		return
	}
	s.session.SetName(name)
}

// Submit starts revealing the greeting.
func (s *Surface) Submit() bool {
	if s.Closed() || !s.session.Submit() {
		return false
	}
	s.log.Debug("greeting submitted", slog.Bool("default_name", strings.TrimSpace(s.session.Name()) == ""))
	return true
}

// Reset starts a new session once the greeting is complete.
func (s *Surface) Reset() bool {
	if s.Closed() {
		return false
	}
	return s.session.Reset()
}

// ToggleMusic flips the playing flag.
func (s *Surface) ToggleMusic() bool {
	if s.Closed() {
		return s.audio.Playing()
	}
	on := s.audio.Toggle()
	s.log.Debug("music toggled", slog.Bool("playing", on))
	return on
}

// SetMusic requests playback on or off.
func (s *Surface) SetMusic(on bool) {
	if s.Closed() {
		return
	}
	s.audio.Set(on)
}

// Phase returns the greeting phase.
func (s *Surface) Phase() greeting.Phase {
	return s.session.Phase()
}

// Name returns the entered name.
func (s *Surface) Name() string {
	return s.session.Name()
}

// Revealed returns the greeting lines shown so far.
func (s *Surface) Revealed() []greeting.Line {
	return s.session.Revealed()
}

// CanReset reports whether the reset control is available.
func (s *Surface) CanReset() bool {
	return s.session.CanReset()
}

// Hearts returns the live hearts, oldest first.
func (s *Surface) Hearts() []hearts.Particle {
	return s.field.Particles()
}

// Playing reports the music flag.
func (s *Surface) Playing() bool {
	return s.audio.Playing()
}

// Teardown cancels all timers and pauses the music. Later calls are no-ops.
func (s *Surface) Teardown() {
	if s.sched.Stopped() {
		return
	}
	s.log.Debug("tearing down surface", slog.Int("pending_tasks", s.sched.Pending()))
	for _, h := range s.timers {
		h.Cancel()
	}
	s.timers = nil
	s.session.Close()
	s.sched.Stop()
	if s.audio.Playing() {
		s.audio.Set(false)
	}
}

// Closed reports whether Teardown has run.
func (s *Surface) Closed() bool {
	return s.sched.Stopped()
}
