// Package robustcov implements an elliptic-envelope detector: a
// robust location/covariance estimate with a Mahalanobis distance
// gate. The covariance is hardened against the contamination by
// concentration steps, refitting on the half of the data with the
// smallest distances until the determinant stops shrinking.
package robustcov

import (
	"errors"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hed1ad/anombench/pkg/detectors"
)

// ErrSingularCovariance is returned when the covariance estimate
// cannot be factorized.
var ErrSingularCovariance = errors.New("robustcov: singular covariance estimate")

const maxConcentrationSteps = 30

// Envelope is the covariance-based detector.
type Envelope struct {
	contamination float64
	rng           *rand.Rand

	mean      []float64
	chol      mat.Cholesky
	threshold float64
	fitted    bool
}

// Option configures an Envelope.
type Option func(*Envelope)

// WithContamination sets the expected proportion of outliers.
func WithContamination(c float64) Option {
	return func(e *Envelope) {
		e.contamination = c
	}
}

// WithSeed sets the random seed. The estimator itself is
// deterministic; the seed is kept for interface parity with the other
// detectors.
func WithSeed(seed int64) Option {
	return func(e *Envelope) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates an Envelope detector.
func New(opts ...Option) *Envelope {
	cfg := detectors.DefaultConfig()
	e := &Envelope{
		contamination: cfg.Contamination,
		rng:           rand.New(rand.NewSource(cfg.RandomSeed)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements detectors.Detector.
func (e *Envelope) Name() string { return "robust covariance" }

// FitPredict estimates a robust ellipsoid around the data and labels
// rows outside the contamination-quantile Mahalanobis radius as
// outliers. Returns ErrSingularCovariance when the data does not span
// its feature space.
func (e *Envelope) FitPredict(data [][]float64) ([]int, error) {
	if len(data) == 0 {
		return nil, detectors.ErrEmptyData
	}

	n := len(data)
	d := len(data[0])

	// Support size: the classical MCD half sample.
	h := (n + d + 1) / 2
	if h > n {
		h = n
	}

	subset := make([]int, n)
	for i := range subset {
		subset[i] = i
	}

	var dist2 []float64
	prevLogDet := 0.0
	for step := 0; step < maxConcentrationSteps; step++ {
		if err := e.estimate(data, subset); err != nil {
			return nil, err
		}

		dist2 = e.distances(data)

		logDet := e.chol.LogDet()
		if step > 0 && prevLogDet-logDet < 1e-9 {
			break
		}
		prevLogDet = logDet

		subset = smallest(dist2, h)
	}

	sorted := append([]float64(nil), dist2...)
	sort.Float64s(sorted)
	e.threshold = stat.Quantile(1-e.contamination, stat.Empirical, sorted, nil)
	e.fitted = true

	labels := make([]int, n)
	for i, d2 := range dist2 {
		if d2 > e.threshold {
			labels[i] = detectors.Outlier
		} else {
			labels[i] = detectors.Inlier
		}
	}
	return labels, nil
}

// DecisionScores implements detectors.Scorer: the signed margin
// between the threshold and the squared Mahalanobis distance.
func (e *Envelope) DecisionScores(data [][]float64) ([]float64, error) {
	if !e.fitted {
		return nil, detectors.ErrNotFitted
	}

	scores := e.distances(data)
	for i, d2 := range scores {
		scores[i] = e.threshold - d2
	}
	return scores, nil
}

// estimate fits mean and covariance on the given row subset.
func (e *Envelope) estimate(data [][]float64, subset []int) error {
	d := len(data[0])

	e.mean = make([]float64, d)
	for _, idx := range subset {
		for j, v := range data[idx] {
			e.mean[j] += v
		}
	}
	for j := range e.mean {
		e.mean[j] /= float64(len(subset))
	}

	x := mat.NewDense(len(subset), d, nil)
	for i, idx := range subset {
		x.SetRow(i, data[idx])
	}
	cov := mat.NewSymDense(d, nil)
	stat.CovarianceMatrix(cov, x, nil)

	if ok := e.chol.Factorize(cov); !ok {
		return ErrSingularCovariance
	}
	return nil
}

// distances returns squared Mahalanobis distances to the current
// estimate for every row.
func (e *Envelope) distances(data [][]float64) []float64 {
	mean := mat.NewVecDense(len(e.mean), e.mean)
	out := make([]float64, len(data))
	for i, row := range data {
		v := mat.NewVecDense(len(row), row)
		md := stat.Mahalanobis(v, mean, &e.chol)
		out[i] = md * md
	}
	return out
}

// smallest returns the indices of the k smallest values.
func smallest(vals []float64, k int) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })
	return idx[:k]
}
