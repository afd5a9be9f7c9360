package music

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooper_RestartsAtEnd(t *testing.T) {
	src := &memStream{data: [][2]float64{{1, 1}, {2, 2}, {3, 3}}}
	l := &looper{src: src}

	buf := make([][2]float64, 8)
	n, ok := l.Stream(buf)

	assert.True(t, ok)
	assert.Equal(t, 8, n)
	var firsts []float64
	for _, s := range buf {
		firsts = append(firsts, s[0])
	}
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1, 2}, firsts)
	assert.Equal(t, 2, l.restarts)
	assert.NoError(t, l.Err())
}

func TestLooper_EmptySourceDoesNotSpin(t *testing.T) {
	l := &looper{src: &memStream{}}
	n, ok := l.Stream(make([][2]float64, 4))
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestLooper_SeekFailure(t *testing.T) {
	boom := errors.New("boom")
	src := constStream(2, 0.1)
	src.seekErr = boom
	l := &looper{src: src}

	n, ok := l.Stream(make([][2]float64, 4))
	assert.Equal(t, 2, n)
	assert.True(t, ok)
	assert.ErrorIs(t, l.Err(), boom)

	n, ok = l.Stream(make([][2]float64, 4))
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}
