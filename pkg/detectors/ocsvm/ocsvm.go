// Package ocsvm implements a one-class support vector machine with an
// RBF kernel, the kernel-support detector of the benchmark suite. The
// dual problem is solved by pairwise coordinate descent, which keeps
// the equality constraint on the coefficients exact at every step.
package ocsvm

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hed1ad/anombench/pkg/detectors"
)

// OneClassSVM estimates the support of the data distribution and
// labels points outside it as outliers. nu plays the contamination
// role: it upper-bounds the fraction of training points outside the
// boundary.
type OneClassSVM struct {
	nu      float64
	gamma   float64 // <= 0 selects the "scale" heuristic at fit time
	tol     float64
	maxIter int
	rng     *rand.Rand

	vectors  [][]float64
	alpha    []float64
	gammaRes float64
	rho      float64
	fitted   bool
}

// Option configures a OneClassSVM.
type Option func(*OneClassSVM)

// WithNu sets the target fraction of boundary violations.
func WithNu(nu float64) Option {
	return func(m *OneClassSVM) {
		m.nu = nu
	}
}

// WithGamma fixes the RBF kernel width. Non-positive values select
// the scale heuristic 1/(d * var(X)).
func WithGamma(g float64) Option {
	return func(m *OneClassSVM) {
		m.gamma = g
	}
}

// WithTolerance sets the duality-gap stopping tolerance.
func WithTolerance(tol float64) Option {
	return func(m *OneClassSVM) {
		m.tol = tol
	}
}

// WithMaxIter caps the number of pairwise coefficient updates.
func WithMaxIter(n int) Option {
	return func(m *OneClassSVM) {
		m.maxIter = n
	}
}

// WithSeed sets the random seed for reproducibility.
func WithSeed(seed int64) Option {
	return func(m *OneClassSVM) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a OneClassSVM with the given options.
func New(opts ...Option) *OneClassSVM {
	cfg := detectors.DefaultConfig()
	m := &OneClassSVM{
		nu:      cfg.Contamination,
		gamma:   0,
		tol:     1e-4,
		maxIter: 1000,
		rng:     rand.New(rand.NewSource(cfg.RandomSeed)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name implements detectors.Detector.
func (m *OneClassSVM) Name() string { return "one-class SVM" }

// FitPredict solves the dual, calibrates the offset at the nu-quantile
// of the training decision values, and labels every row.
func (m *OneClassSVM) FitPredict(data [][]float64) ([]int, error) {
	if len(data) == 0 {
		return nil, detectors.ErrEmptyData
	}

	n := len(data)
	m.vectors = data
	m.gammaRes = m.resolveGamma(data)

	k := kernelMatrix(data, m.gammaRes)

	// Dual: minimize 0.5 a'Ka subject to 0 <= a_i <= 1/(nu*n),
	// sum(a) = 1. Start from the feasible uniform point.
	c := 1 / (m.nu * float64(n))
	m.alpha = make([]float64, n)
	grad := make([]float64, n)
	for i := range m.alpha {
		m.alpha[i] = 1 / float64(n)
	}
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < n; j++ {
			s += k[i][j] * m.alpha[j]
		}
		grad[i] = s
	}

	for iter := 0; iter < m.maxIter; iter++ {
		// Most-violating pair: shrink where the gradient is largest,
		// grow where it is smallest.
		up, down := -1, -1
		for i := 0; i < n; i++ {
			if m.alpha[i] > 0 && (up < 0 || grad[i] > grad[up]) {
				up = i
			}
			if m.alpha[i] < c && (down < 0 || grad[i] < grad[down]) {
				down = i
			}
		}
		if up < 0 || down < 0 || grad[up]-grad[down] < m.tol {
			break
		}

		curv := k[up][up] + k[down][down] - 2*k[up][down]
		if curv <= 0 {
			curv = 1e-12
		}
		delta := (grad[up] - grad[down]) / curv
		if delta > m.alpha[up] {
			delta = m.alpha[up]
		}
		if delta > c-m.alpha[down] {
			delta = c - m.alpha[down]
		}

		m.alpha[up] -= delta
		m.alpha[down] += delta
		for i := 0; i < n; i++ {
			grad[i] += delta * (k[down][i] - k[up][i])
		}
	}

	// Offset at the nu-quantile of the training margins, so nu of the
	// training set falls outside the boundary.
	sorted := append([]float64(nil), grad...)
	sort.Float64s(sorted)
	m.rho = stat.Quantile(m.nu, stat.Empirical, sorted, nil)
	m.fitted = true

	labels := make([]int, n)
	for i, g := range grad {
		if g-m.rho < 0 {
			labels[i] = detectors.Outlier
		} else {
			labels[i] = detectors.Inlier
		}
	}
	return labels, nil
}

// DecisionScores implements detectors.Scorer.
func (m *OneClassSVM) DecisionScores(data [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, detectors.ErrNotFitted
	}

	scores := make([]float64, len(data))
	for i, x := range data {
		var s float64
		for j, sv := range m.vectors {
			if m.alpha[j] == 0 {
				continue
			}
			s += m.alpha[j] * rbf(sv, x, m.gammaRes)
		}
		scores[i] = s - m.rho
	}
	return scores, nil
}

// resolveGamma applies the scale heuristic when gamma is unset:
// 1/(d * var) over all matrix entries.
func (m *OneClassSVM) resolveGamma(data [][]float64) float64 {
	if m.gamma > 0 {
		return m.gamma
	}

	d := len(data[0])
	var sum, sumSq, count float64
	for _, row := range data {
		for _, v := range row {
			sum += v
			sumSq += v * v
			count++
		}
	}
	mean := sum / count
	variance := sumSq/count - mean*mean
	if variance <= 0 {
		return 1 / float64(d)
	}
	return 1 / (float64(d) * variance)
}

func kernelMatrix(data [][]float64, gamma float64) [][]float64 {
	n := len(data)
	k := make([][]float64, n)
	for i := range k {
		k[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		k[i][i] = 1
		for j := i + 1; j < n; j++ {
			v := rbf(data[i], data[j], gamma)
			k[i][j] = v
			k[j][i] = v
		}
	}
	return k
}

func rbf(a, b []float64, gamma float64) float64 {
	var d2 float64
	for i := range a {
		diff := a[i] - b[i]
		d2 += diff * diff
	}
	return math.Exp(-gamma * d2)
}
