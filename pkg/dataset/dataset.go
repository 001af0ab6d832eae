// Package dataset assembles labeled benchmark datasets from synthetic
// inlier shapes and uniformly distributed outliers.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"
)

// Label convention shared with the detectors: +1 inlier, -1 outlier.
const (
	Inlier  = 1
	Outlier = -1
)

// Validation errors returned by Config.Validate.
var (
	ErrBadSamples  = errors.New("dataset: sample count must be >= 1")
	ErrBadFraction = errors.New("dataset: outlier fraction must be in (0, 1)")
	ErrBadNoiseSD  = errors.New("dataset: noise standard deviation must be >= 0")
	ErrBadDims     = errors.New("dataset: noise dimension count must be >= 0")
)

// Config holds the knobs shared by every benchmark scenario.
type Config struct {
	// Samples is the total row count, inliers plus outliers.
	Samples int
	// OutlierFraction is the contamination rate in (0, 1).
	OutlierFraction float64
	// ShapeNoiseSD perturbs the line and helix manifolds.
	ShapeNoiseSD float64
	// ClusterNoiseSD is the spread of the Gaussian blob mixtures.
	ClusterNoiseSD float64
	// DimNoiseSD is the spread of the uninformative extra columns.
	DimNoiseSD float64
	// NoiseDims is the number of uninformative columns appended to
	// every sample. Zero disables dimensional noise.
	NoiseDims int
	// Seed drives all randomness for reproducible suites.
	Seed int64
}

// DefaultConfig mirrors the reference benchmark settings.
func DefaultConfig() Config {
	return Config{
		Samples:         500,
		OutlierFraction: 0.15,
		ShapeNoiseSD:    0.06,
		ClusterNoiseSD:  0.2,
		DimNoiseSD:      1,
		NoiseDims:       0,
		Seed:            42,
	}
}

// Validate rejects configurations before any data is generated.
func (c Config) Validate() error {
	if c.Samples < 1 {
		return ErrBadSamples
	}
	if c.OutlierFraction <= 0 || c.OutlierFraction >= 1 {
		return ErrBadFraction
	}
	if c.ShapeNoiseSD < 0 || c.ClusterNoiseSD < 0 || c.DimNoiseSD < 0 {
		return ErrBadNoiseSD
	}
	if c.NoiseDims < 0 {
		return ErrBadDims
	}
	return nil
}

// NumOutliers derives the outlier row count from the total.
func (c Config) NumOutliers() int {
	return int(c.OutlierFraction * float64(c.Samples))
}

// NumInliers derives the inlier row count from the total.
func (c Config) NumInliers() int {
	return c.Samples - c.NumOutliers()
}

// Dataset is one labeled benchmark scenario. X and Labels are aligned
// row for row, inliers first; both are read-only once assembled so
// every algorithm under test sees identical data.
type Dataset struct {
	Name        string
	X           [][]float64
	Labels      []int
	NumInliers  int
	NumOutliers int
}

// Assemble appends uniform-box outliers and optional dimensional noise
// to the given inlier shape and pairs the result with ground-truth
// labels. The inlier row count must equal cfg.NumInliers; bound is the
// half-width of the outlier sampling box per axis.
func Assemble(name string, inliers [][]float64, cfg Config, bound float64, rng *rand.Rand) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(inliers) != cfg.NumInliers() {
		return nil, fmt.Errorf("dataset: %s: got %d inlier rows, config derives %d",
			name, len(inliers), cfg.NumInliers())
	}

	dims := len(inliers[0])
	nOut := cfg.NumOutliers()

	x := make([][]float64, 0, cfg.Samples)
	for _, row := range inliers {
		x = append(x, append([]float64(nil), row...))
	}
	for i := 0; i < nOut; i++ {
		row := make([]float64, dims)
		for d := range row {
			row[d] = -bound + rng.Float64()*2*bound
		}
		x = append(x, row)
	}

	// Extra columns are drawn from one shared Gaussian at the origin,
	// identically distributed for inliers and outliers.
	if cfg.NoiseDims > 0 {
		for i := range x {
			for d := 0; d < cfg.NoiseDims; d++ {
				x[i] = append(x[i], cfg.DimNoiseSD*rng.NormFloat64())
			}
		}
	}

	labels := make([]int, cfg.Samples)
	for i := range labels {
		if i < cfg.NumInliers() {
			labels[i] = Inlier
		} else {
			labels[i] = Outlier
		}
	}

	return &Dataset{
		Name:        name,
		X:           x,
		Labels:      labels,
		NumInliers:  cfg.NumInliers(),
		NumOutliers: nOut,
	}, nil
}
