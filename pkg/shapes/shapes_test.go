package shapes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineNoiseless(t *testing.T) {
	points, err := Line(50, 0, nil)
	require.NoError(t, err)
	require.Len(t, points, 50)

	// Exact manifold: rows are (0.4t, 0.6t, t) with t spanning [-1, 1].
	for _, p := range points {
		assert.InDelta(t, 0.4*p[2], p[0], 1e-12)
		assert.InDelta(t, 0.6*p[2], p[1], 1e-12)
	}
	assert.InDelta(t, -1, points[0][2], 1e-12)
	assert.InDelta(t, 1, points[49][2], 1e-12)
}

func TestHelixNoiseless(t *testing.T) {
	points, err := Helix(200, 0, nil)
	require.NoError(t, err)
	require.Len(t, points, 200)

	// Each coordinate is rescaled to span exactly 2; the z axis is
	// additionally centered on zero.
	for c := 0; c < 3; c++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range points {
			lo = math.Min(lo, p[c])
			hi = math.Max(hi, p[c])
		}
		assert.InDelta(t, 2, hi-lo, 1e-9, "coordinate %d span", c)
	}
	assert.InDelta(t, -1, points[0][2], 1e-12)
	assert.InDelta(t, 1, points[199][2], 1e-12)
}

func TestSphereUnitNorm(t *testing.T) {
	for _, n := range []int{1, 2, 10, 500} {
		points, err := Sphere(n)
		require.NoError(t, err)
		require.Len(t, points, n)

		for _, p := range points {
			norm := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
			assert.InDelta(t, 1, norm, 1e-12)
		}
	}
}

func TestSphereDeterministic(t *testing.T) {
	a, err := Sphere(100)
	require.NoError(t, err)
	b, err := Sphere(100)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBlobsSplit(t *testing.T) {
	centers := [][]float64{{-1, -1, -1}, {0, 0, 0}, {1, 1, 1}}

	points, err := Blobs(100, 0, centers, nil)
	require.NoError(t, err)
	require.Len(t, points, 100)

	// sd = 0 collapses every sample onto its center; 100 over 3
	// centers puts the remainder on the leading center.
	counts := map[float64]int{}
	for _, p := range points {
		counts[p[0]]++
	}
	assert.Equal(t, 34, counts[-1])
	assert.Equal(t, 33, counts[0])
	assert.Equal(t, 33, counts[1])
}

func TestMoonsNoiseless(t *testing.T) {
	points, err := Moons(100, 0, nil)
	require.NoError(t, err)
	require.Len(t, points, 100)

	// Scaled half-circles stay inside the 2D benchmark box.
	for _, p := range points {
		require.Len(t, p, 2)
		assert.LessOrEqual(t, math.Abs(p[0]), 6.0)
		assert.LessOrEqual(t, math.Abs(p[1]), 6.0)
	}
}

func TestSeededReproducibility(t *testing.T) {
	gen := func(seed int64) [][]float64 {
		points, err := Line(100, 0.1, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		return points
	}

	assert.Equal(t, gen(7), gen(7))
	assert.NotEqual(t, gen(7), gen(8))
}

func TestGeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"line zero samples", func() error { _, err := Line(0, 0, nil); return err }, ErrBadSampleCount},
		{"helix negative noise", func() error { _, err := Helix(10, -0.1, nil); return err }, ErrBadNoise},
		{"sphere zero samples", func() error { _, err := Sphere(0); return err }, ErrBadSampleCount},
		{"moons zero samples", func() error { _, err := Moons(0, 0, nil); return err }, ErrBadSampleCount},
		{"blobs no centers", func() error { _, err := Blobs(10, 0, nil, nil); return err }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSingleSample(t *testing.T) {
	for name, call := range map[string]func() ([][]float64, error){
		"line":  func() ([][]float64, error) { return Line(1, 0, nil) },
		"helix": func() ([][]float64, error) { return Helix(1, 0, nil) },
		"moons": func() ([][]float64, error) { return Moons(1, 0, nil) },
	} {
		t.Run(name, func(t *testing.T) {
			points, err := call()
			require.NoError(t, err)
			assert.Len(t, points, 1)
		})
	}
}
