// Package shapes generates synthetic point clouds on canonical
// manifolds used as inlier populations in detector benchmarks.
//
// Every generator returns one sample per row. Gaussian noise with
// standard deviation sd is added independently to each coordinate;
// sd = 0 yields the exact manifold. rng may be nil when sd is 0.
package shapes

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// ErrBadSampleCount is returned when a generator is asked for fewer
// than one sample.
var ErrBadSampleCount = errors.New("shapes: sample count must be >= 1")

// ErrBadNoise is returned for a negative noise standard deviation.
var ErrBadNoise = errors.New("shapes: noise standard deviation must be >= 0")

// Line generates n points along the anisotropic line (0.4t, 0.6t, t)
// for t uniform over [-1, 1].
func Line(n int, sd float64, rng *rand.Rand) ([][]float64, error) {
	if err := check(n, sd); err != nil {
		return nil, err
	}

	t := linspace(-1, 1, n)
	points := make([][]float64, n)
	for i, v := range t {
		points[i] = []float64{
			0.4*v + gauss(sd, rng),
			0.6*v + gauss(sd, rng),
			v + gauss(sd, rng),
		}
	}
	return points, nil
}

// Helix generates n points along a conical helix parametrized by
// t over [2pi, 9pi]. Each coordinate is rescaled to [-1, 1] before
// noise is added, so the curve fits the benchmark bounding box.
func Helix(n int, sd float64, rng *rand.Rand) ([][]float64, error) {
	if err := check(n, sd); err != nil {
		return nil, err
	}

	t := linspace(2*math.Pi, 9*math.Pi, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, v := range t {
		xs[i] = v * math.Cos(v)
		ys[i] = v * math.Sin(v)
	}
	rescale(xs)
	rescale(ys)
	zs := center(t)

	points := make([][]float64, n)
	for i := range points {
		points[i] = []float64{
			xs[i] + gauss(sd, rng),
			ys[i] + gauss(sd, rng),
			zs[i] + gauss(sd, rng),
		}
	}
	return points, nil
}

// Sphere generates n points covering the unit sphere via the Fibonacci
// lattice: equal-area latitude bands with a golden-angle longitude
// increment. The placement is deterministic and takes no noise
// parameter; every row has Euclidean norm 1.
func Sphere(n int) ([][]float64, error) {
	if n < 1 {
		return nil, ErrBadSampleCount
	}

	increment := math.Pi * (3 - math.Sqrt(5)) // golden angle

	offset := 2.0 / float64(n)
	points := make([][]float64, n)
	for i := range points {
		y := float64(i)*offset - 1 + offset/2
		r := math.Sqrt(1 - y*y)
		phi := float64(i) * increment
		points[i] = []float64{math.Cos(phi) * r, y, math.Sin(phi) * r}
	}
	return points, nil
}

// Blobs generates n points split across the given cluster centers,
// each cluster an isotropic Gaussian with standard deviation sd.
// The split is as even as possible, leading centers taking the
// remainder. All centers must share one dimensionality.
func Blobs(n int, sd float64, centers [][]float64, rng *rand.Rand) ([][]float64, error) {
	if err := check(n, sd); err != nil {
		return nil, err
	}
	if len(centers) == 0 {
		return nil, errors.New("shapes: at least one cluster center required")
	}

	dims := len(centers[0])
	points := make([][]float64, 0, n)
	base := n / len(centers)
	extra := n % len(centers)
	for ci, c := range centers {
		count := base
		if ci < extra {
			count++
		}
		for j := 0; j < count; j++ {
			row := make([]float64, dims)
			for d := 0; d < dims; d++ {
				row[d] = c[d] + gauss(sd, rng)
			}
			points = append(points, row)
		}
	}
	return points, nil
}

// Moons generates n points on two interleaved half-circles in 2D,
// recentered and scaled by 4 to match the benchmark bounding box.
func Moons(n int, sd float64, rng *rand.Rand) ([][]float64, error) {
	if err := check(n, sd); err != nil {
		return nil, err
	}

	outer := n / 2
	inner := n - outer
	points := make([][]float64, 0, n)
	for _, t := range linspace(0, math.Pi, outer) {
		points = append(points, moonPoint(math.Cos(t), math.Sin(t), sd, rng))
	}
	for _, t := range linspace(0, math.Pi, inner) {
		points = append(points, moonPoint(1-math.Cos(t), 1-math.Sin(t)-0.5, sd, rng))
	}
	return points, nil
}

func moonPoint(x, y, sd float64, rng *rand.Rand) []float64 {
	return []float64{
		4 * (x + gauss(sd, rng) - 0.5),
		4 * (y + gauss(sd, rng) - 0.25),
	}
}

func check(n int, sd float64) error {
	if n < 1 {
		return ErrBadSampleCount
	}
	if sd < 0 {
		return ErrBadNoise
	}
	return nil
}

func gauss(sd float64, rng *rand.Rand) float64 {
	if sd == 0 {
		return 0
	}
	return sd * rng.NormFloat64()
}

// linspace returns n equally spaced values over [lo, hi]. Unlike
// floats.Span it accepts n < 2, collapsing to lo or nothing.
func linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// rescale maps vals to span 2 around its midpoint scaled origin, i.e.
// divides by (max-min) and multiplies by 2.
func rescale(vals []float64) {
	lo := floats.Min(vals)
	hi := floats.Max(vals)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i := range vals {
		vals[i] = vals[i] / span * 2
	}
}

// center shifts vals to be symmetric about zero and rescales to
// [-1, 1].
func center(vals []float64) []float64 {
	lo := floats.Min(vals)
	hi := floats.Max(vals)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	mid := (hi + lo) / 2
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = (v - mid) / span * 2
	}
	return out
}
