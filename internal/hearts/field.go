// Package hearts keeps the floating-heart particles: a generator appends
// randomized hearts below a cap and a reaper evicts the oldest one.
package hearts

import (
	"time"

	"github.com/google/uuid"
)

// Ranges for the randomized attributes, as [min, min+span).
const (
	LeftSpan     = 90.0
	MinDuration  = 5 * time.Second
	DurationSpan = 5 * time.Second
	MinScale     = 0.5
	ScaleSpan    = 1.0
)

// Rand is the source of uniform values in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Particle is one floating heart. Its fields never change after creation.
type Particle struct {
	ID       string
	Left     float64       // horizontal position, percent of the surface width
	Duration time.Duration // time to float from bottom to top
	Scale    float64
	Born     time.Duration // surface clock when generated
}

// Progress returns how far the heart has floated at the given clock, in [0, 1].
func (p Particle) Progress(now time.Duration) float64 {
	if p.Duration <= 0 {
		return 1
	}
	f := float64(now-p.Born) / float64(p.Duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Field is the ordered heart collection, oldest first.
//
// Removal is strictly FIFO and independent of each heart's Duration, so a
// heart can be evicted before or well after it has visually left the screen.
type Field struct {
	limit     int
	particles []Particle
	rnd       Rand
	newID     func() string
	clock     func() time.Duration
}

// Option customizes a Field.
type Option func(*Field)

// WithIDs replaces the identity source (uuid by default).
func WithIDs(newID func() string) Option {
	return func(f *Field) { f.newID = newID }
}

// WithClock sets the clock stamped into each particle's Born time.
func WithClock(clock func() time.Duration) Option {
	return func(f *Field) { f.clock = clock }
}

// NewField creates an empty field holding at most limit hearts after a spawn.
func NewField(limit int, rnd Rand, opts ...Option) *Field {
	f := &Field{
		limit:     limit,
		particles: make([]Particle, 0, limit),
		rnd:       rnd,
		newID:     uuid.NewString,
		clock:     func() time.Duration { return 0 },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Spawn is the generator tick. It appends one heart unless the cap is reached.
func (f *Field) Spawn() bool {
	if len(f.particles) >= f.limit {
		return false
	}
	f.particles = append(f.particles, Particle{
		ID:       f.newID(),
		Left:     f.rnd.Float64() * LeftSpan,
		Duration: MinDuration + time.Duration(f.rnd.Float64()*float64(DurationSpan)),
		Scale:    MinScale + f.rnd.Float64()*ScaleSpan,
		Born:     f.clock(),
	})
	return true
}

// Reap is the reaper tick. It removes and returns the oldest heart, if any.
func (f *Field) Reap() (Particle, bool) {
	if len(f.particles) == 0 {
		return Particle{}, false
	}
	p := f.particles[0]
	f.particles[0] = Particle{}
	f.particles = f.particles[1:]
	return p, true
}

// Len returns the number of live hearts.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the hearts, oldest first.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}
