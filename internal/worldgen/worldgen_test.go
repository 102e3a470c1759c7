package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainDeterministicForSeed(t *testing.T) {
	opts := DefaultOptions(42)
	opts.Width, opts.Depth = 8, 8

	a := Terrain(opts)
	b := Terrain(opts)
	assert.Equal(t, a, b)

	opts.Seed = 43
	c := Terrain(opts)
	assert.NotEqual(t, a, c)
}

func TestTerrainTilesAreValidStaticBodies(t *testing.T) {
	opts := DefaultOptions(7)
	opts.Width, opts.Depth = 16, 16

	defs := Terrain(opts)
	require.Len(t, defs, 16*16)
	for _, d := range defs {
		assert.True(t, d.Static)
		assert.Greater(t, d.Scale.Y, float32(0))
		assert.LessOrEqual(t, d.Scale.Y, opts.HeightScale)
		assert.Equal(t, d.Position.Y, d.Scale.Y*0.5, "tile bottom must sit at Y=0")
	}
}

func TestTerrainCenteredOnOrigin(t *testing.T) {
	opts := DefaultOptions(1)
	opts.Width, opts.Depth = 4, 4
	opts.TileSize = 2

	defs := Terrain(opts)
	var sumX, sumZ float32
	for _, d := range defs {
		sumX += d.Position.X
		sumZ += d.Position.Z
	}
	assert.InDelta(t, 0, float64(sumX), 1e-3)
	assert.InDelta(t, 0, float64(sumZ), 1e-3)
}

func TestCubeRainDeterministicForSeed(t *testing.T) {
	opts := DefaultOptions(11)
	opts.CubeCount = 50
	opts.TowerHeight = 5

	a := CubeRain(opts)
	b := CubeRain(opts)
	require.Len(t, a, 55)
	assert.Equal(t, a, b)
}

func TestCubeRainAboveTerrain(t *testing.T) {
	opts := DefaultOptions(3)
	opts.CubeCount = 100

	for _, d := range CubeRain(opts) {
		assert.False(t, d.Static)
		assert.Greater(t, d.Position.Y, opts.HeightScale)
	}
}

func TestNoiseRangeAndContinuity(t *testing.T) {
	for x := float32(0); x < 4; x += 0.25 {
		for y := float32(0); y < 4; y += 0.25 {
			n := fractalValueNoise2D(x, y, 5, 4, 2, 0.5)
			assert.GreaterOrEqual(t, n, float32(0))
			assert.LessOrEqual(t, n, float32(1))
		}
	}
}

func TestRampColorEndpointsAndMonotoneAlpha(t *testing.T) {
	low := rampColor(0)
	high := rampColor(1)
	assert.NotEqual(t, low, high)
	assert.EqualValues(t, 255, low[3])
	assert.EqualValues(t, 255, rampColor(0.5)[3])
	assert.EqualValues(t, 255, high[3])
}
