// Package detectors defines the common contract for the outlier
// detection algorithms under benchmark.
package detectors

import "errors"

// Labels emitted by every detector, matching the ground-truth
// convention of package dataset: +1 inlier, -1 outlier.
const (
	Inlier  = 1
	Outlier = -1
)

// ErrNotFitted is returned when scores are requested before FitPredict.
var ErrNotFitted = errors.New("detectors: model not fitted")

// ErrEmptyData is returned when a detector is fitted on no samples.
var ErrEmptyData = errors.New("detectors: empty training data")

// Detector is the minimal capability every algorithm provides: fit on
// a sample matrix and label the same samples. data is row-major, one
// sample per row, and must not be mutated by the implementation.
type Detector interface {
	// Name identifies the algorithm in reports.
	Name() string

	// FitPredict trains on data and returns one label per row,
	// calibrated so roughly the configured contamination fraction is
	// labeled Outlier.
	FitPredict(data [][]float64) ([]int, error)
}

// Scorer is the optional capability of exposing a continuous decision
// value per sample: positive on the inlier side of the boundary,
// negative on the outlier side. Not every algorithm supports it; the
// evaluation pipeline asserts this interface once per algorithm and
// branches on the result, never per call.
type Scorer interface {
	Detector

	// DecisionScores returns signed decision values for data. Valid
	// only after FitPredict; before that it returns ErrNotFitted.
	DecisionScores(data [][]float64) ([]float64, error)
}

// Config holds common configuration for detectors.
type Config struct {
	// Contamination is the expected proportion of outliers, used to
	// calibrate the decision threshold.
	Contamination float64
	// RandomSeed for reproducibility.
	RandomSeed int64
}

// DefaultConfig returns sensible defaults for detector configuration.
func DefaultConfig() Config {
	return Config{
		Contamination: 0.15,
		RandomSeed:    42,
	}
}
