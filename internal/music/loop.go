package music

import "github.com/faiface/beep"

// looper restarts its source from the beginning whenever it runs out.
type looper struct {
	src      beep.StreamSeeker
	restarts int
	err      error
}

func (l *looper) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	fresh := false
	for filled < len(samples) {
		n, ok := l.src.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			fresh = false
			continue
		}
		// An empty source would otherwise spin forever.
		if fresh || l.src.Err() != nil {
			break
		}
		if err := l.src.Seek(0); err != nil {
			l.err = err
			break
		}
		l.restarts++
		fresh = true
	}
	return filled, filled > 0
}

func (l *looper) Err() error {
	if l.err != nil {
		return l.err
	}
	return l.src.Err()
}
