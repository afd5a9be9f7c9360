package music

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelTap_Level(t *testing.T) {
	tap := newLevelTap(constStream(100, 0.25), 64)
	assert.Equal(t, 0.0, tap.Level(32), "nothing played yet")

	buf := make([][2]float64, 100)
	n, ok := tap.Stream(buf)
	assert.Equal(t, 100, n)
	assert.True(t, ok)

	assert.InDelta(t, math.Pow(0.25, 0.3), tap.Level(32), 1e-9)
	assert.InDelta(t, math.Pow(0.25, 0.3), tap.Level(1000), 1e-9, "window clamps to ring size")
}

func TestLevelTap_Silence(t *testing.T) {
	tap := newLevelTap(constStream(10, 0), 16)
	tap.Stream(make([][2]float64, 10))
	assert.Equal(t, 0.0, tap.Level(10))
}

func TestLevelTap_UsesMostRecentSamples(t *testing.T) {
	src := &memStream{data: append(constStream(8, 1).data, constStream(4, 0).data...)}
	tap := newLevelTap(src, 8)
	tap.Stream(make([][2]float64, 12))

	assert.Equal(t, 0.0, tap.Level(4))
	assert.Greater(t, tap.Level(8), 0.0)
}
