package dataset

import (
	"math/rand"

	"github.com/hed1ad/anombench/pkg/shapes"
)

// Outlier bounding-box half-widths for the two suites.
const (
	bound3D = 1.5
	bound2D = 6
)

// Suite3D builds the five 3D scenarios: a line, a helix, a Fibonacci
// sphere, and two three-cluster Gaussian mixtures (axis-aligned and
// misaligned centers). Each scenario draws from its own seeded stream
// so suites are reproducible end to end.
func Suite3D(cfg Config) ([]*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nin := cfg.NumInliers()

	aligned := [][]float64{{-0.7, -0.7, -0.7}, {0, 0, 0}, {0.7, 0.7, 0.7}}
	misaligned := [][]float64{{-0.7, -0.7, -0.7}, {0.7, 0.7, -0.7}, {-0.7, 0.7, 0.7}}

	scenarios := []struct {
		name  string
		build func(rng *rand.Rand) ([][]float64, error)
	}{
		{"linear", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Line(nin, cfg.ShapeNoiseSD, rng)
		}},
		{"helix", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Helix(nin, cfg.ShapeNoiseSD, rng)
		}},
		{"sphere", func(*rand.Rand) ([][]float64, error) {
			return shapes.Sphere(nin)
		}},
		{"blobs", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Blobs(nin, cfg.ClusterNoiseSD, aligned, rng)
		}},
		{"misaligned-blobs", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Blobs(nin, cfg.ClusterNoiseSD, misaligned, rng)
		}},
	}

	return buildSuite(cfg, bound3D, scenarios)
}

// Suite2D builds the five 2D scenarios from the reference benchmark:
// one central blob, two separated blobs, an unequal-variance pair,
// interleaved moons, and a uniform square.
func Suite2D(cfg Config) ([]*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nin := cfg.NumInliers()

	scenarios := []struct {
		name  string
		build func(rng *rand.Rand) ([][]float64, error)
	}{
		{"central-blob", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Blobs(nin, 0.5, [][]float64{{0, 0}, {0, 0}}, rng)
		}},
		{"two-blobs", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Blobs(nin, 0.5, [][]float64{{2, 2}, {-2, -2}}, rng)
		}},
		{"unequal-blobs", func(rng *rand.Rand) ([][]float64, error) {
			half := nin / 2
			wide, err := shapes.Blobs(half, 1.5, [][]float64{{2, 2}}, rng)
			if err != nil {
				return nil, err
			}
			tight, err := shapes.Blobs(nin-half, 0.3, [][]float64{{-2, -2}}, rng)
			if err != nil {
				return nil, err
			}
			return append(wide, tight...), nil
		}},
		{"moons", func(rng *rand.Rand) ([][]float64, error) {
			return shapes.Moons(nin, 0.05, rng)
		}},
		{"uniform", func(rng *rand.Rand) ([][]float64, error) {
			points := make([][]float64, nin)
			for i := range points {
				points[i] = []float64{14 * (rng.Float64() - 0.5), 14 * (rng.Float64() - 0.5)}
			}
			return points, nil
		}},
	}

	return buildSuite(cfg, bound2D, scenarios)
}

func buildSuite(cfg Config, bound float64, scenarios []struct {
	name  string
	build func(rng *rand.Rand) ([][]float64, error)
}) ([]*Dataset, error) {
	out := make([]*Dataset, 0, len(scenarios))
	for i, sc := range scenarios {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		inliers, err := sc.build(rng)
		if err != nil {
			return nil, err
		}
		ds, err := Assemble(sc.name, inliers, cfg, bound, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}
