// Package worldgen builds the initial world content from a single seed:
// a fractal-noise heightmap of static terrain tiles colored by height, and a
// shower of dynamic cubes to stress the solver. Same seed, same world.
package worldgen

import (
	"math"
	"math/rand"

	"github.com/colon-crab-colon/game/internal/physics"
	"github.com/colon-crab-colon/game/internal/transform"
)

// Options controls terrain generation. Width/Depth are in tiles; TileSize is
// the world size of one tile on X/Z; HeightScale is the maximum terrain
// height. Octaves, Frequency, Lacunarity, and Gain shape the fractal noise.
type Options struct {
	Width       int
	Depth       int
	TileSize    float32
	HeightScale float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32

	// CubeCount is how many falling cubes to scatter above the terrain.
	CubeCount int
	// TowerHeight is the number of cubes in the stacked test column.
	TowerHeight int
}

// DefaultOptions returns a sane default world: 64x64 tiles, 500 falling
// cubes, a 24-cube tower.
func DefaultOptions(seed int64) Options {
	return Options{
		Width:       64,
		Depth:       64,
		TileSize:    1.0,
		HeightScale: 8.0,
		Seed:        seed,
		Octaves:     4,
		Frequency:   0.06,
		Lacunarity:  2.0,
		Gain:        0.5,
		CubeCount:   500,
		TowerHeight: 24,
	}
}

// Terrain generates the static heightmap tiles, centered around the origin
// on XZ with bottoms at Y=0. Each tile is one static body whose color comes
// from the height ramp.
func Terrain(opts Options) []physics.BodyDef {
	opts = opts.sanitized()

	halfTile := opts.TileSize * 0.5
	startX := -float32(opts.Width)*opts.TileSize*0.5 + halfTile
	startZ := -float32(opts.Depth)*opts.TileSize*0.5 + halfTile

	const minHeight = 0.15

	defs := make([]physics.BodyDef, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := fractalValueNoise2D(
				float32(x)*opts.Frequency, float32(z)*opts.Frequency,
				opts.Seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			height := minHeight + h*(opts.HeightScale-minHeight)
			if !finite(height) || height <= 0 {
				height = minHeight
			}

			defs = append(defs, physics.BodyDef{
				Position: transform.Vec3{
					X: startX + float32(x)*opts.TileSize,
					Y: height * 0.5,
					Z: startZ + float32(z)*opts.TileSize,
				},
				Scale:  transform.Vec3{X: opts.TileSize, Y: height, Z: opts.TileSize},
				Static: true,
				Color:  rampColor(h),
			})
		}
	}
	return defs
}

// CubeRain scatters dynamic unit cubes above the terrain and stacks the test
// tower, all from the seeded RNG. Cube colors are random; tower cubes sit in
// a single column so toppling is easy to eyeball.
func CubeRain(opts Options) []physics.BodyDef {
	opts = opts.sanitized()
	rng := rand.New(rand.NewSource(opts.Seed))

	extent := float32(opts.Width) * opts.TileSize * 0.4
	defs := make([]physics.BodyDef, 0, opts.CubeCount+opts.TowerHeight)

	for i := 0; i < opts.CubeCount; i++ {
		defs = append(defs, physics.BodyDef{
			Position: transform.Vec3{
				X: (rng.Float32()*2 - 1) * extent,
				Y: opts.HeightScale + 10 + rng.Float32()*40,
				Z: (rng.Float32()*2 - 1) * extent,
			},
			Mass: 1,
			Color: [4]uint8{
				uint8(rng.Intn(256)),
				uint8(rng.Intn(256)),
				uint8(rng.Intn(256)),
				255,
			},
		})
	}

	towerX := extent * 0.5
	for i := 0; i < opts.TowerHeight; i++ {
		defs = append(defs, physics.BodyDef{
			Position: transform.Vec3{
				X: towerX,
				Y: opts.HeightScale + 2 + float32(i)*1.05,
				Z: towerX,
			},
			Mass:  1,
			Color: rampColor(float32(i) / float32(opts.TowerHeight)),
		})
	}
	return defs
}

func (o Options) sanitized() Options {
	if o.Width <= 0 {
		o.Width = 64
	}
	if o.Depth <= 0 {
		o.Depth = 64
	}
	if o.TileSize <= 0 {
		o.TileSize = 1
	}
	if o.HeightScale <= 0 {
		o.HeightScale = 8
	}
	if o.Octaves <= 0 {
		o.Octaves = 4
	}
	if o.Frequency <= 0 {
		o.Frequency = 0.06
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = 2
	}
	if o.Gain <= 0 {
		o.Gain = 0.5
	}
	return o
}

// rampStops is a turbo-style color ramp sampled at five stops; rampColor
// interpolates between them by normalized height.
var rampStops = [5][3]float32{
	{48, 18, 59},    // deep violet
	{62, 156, 254},  // blue
	{70, 247, 131},  // green
	{252, 179, 22},  // orange
	{122, 4, 3},     // dark red
}

func rampColor(t float32) [4]uint8 {
	if t <= 0 {
		return [4]uint8{uint8(rampStops[0][0]), uint8(rampStops[0][1]), uint8(rampStops[0][2]), 255}
	}
	if t >= 1 {
		last := rampStops[len(rampStops)-1]
		return [4]uint8{uint8(last[0]), uint8(last[1]), uint8(last[2]), 255}
	}
	scaled := t * float32(len(rampStops)-1)
	i := int(scaled)
	f := scaled - float32(i)
	a, b := rampStops[i], rampStops[i+1]
	return [4]uint8{
		uint8(a[0] + (b[0]-a[0])*f),
		uint8(a[1] + (b[1]-a[1])*f),
		uint8(a[2] + (b[2]-a[2])*f),
		255,
	}
}

// fractalValueNoise2D layers smooth value noise with configurable octaves,
// lacunarity, and gain. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude := float32(1)
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] over a hashed integer lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math.Floor(float64(x)))
	y0 := int32(math.Floor(float64(y)))
	tx := x - float32(x0)
	ty := y - float32(y0)

	v00 := hash2D(x0, y0, seed)
	v10 := hash2D(x0+1, y0, seed)
	v01 := hash2D(x0, y0+1, seed)
	v11 := hash2D(x0+1, y0+1, seed)

	sx := smoothStep(tx)
	sy := smoothStep(ty)

	ix0 := v00 + (v10-v00)*sx
	ix1 := v01 + (v11-v01)*sx
	return ix0 + (ix1-ix0)*sy
}

// hash2D maps lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

// smoothStep is Perlin-style cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}
