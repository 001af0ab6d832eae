// Package lof implements the Local Outlier Factor algorithm, the
// density-based detector of the benchmark suite. LOF compares each
// point's local reachability density against that of its neighbors;
// it produces labels only and exposes no continuous decision score.
package lof

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hed1ad/anombench/pkg/detectors"
)

// reachEpsilon floors reachability sums so duplicated points do not
// produce infinite densities.
const reachEpsilon = 1e-12

// LocalOutlierFactor labels points whose density is low relative to
// their k nearest neighbors.
type LocalOutlierFactor struct {
	k             int
	contamination float64
}

// Option configures a LocalOutlierFactor.
type Option func(*LocalOutlierFactor)

// WithNeighbors sets the neighborhood size k.
func WithNeighbors(k int) Option {
	return func(l *LocalOutlierFactor) {
		l.k = k
	}
}

// WithContamination sets the expected proportion of outliers.
func WithContamination(c float64) Option {
	return func(l *LocalOutlierFactor) {
		l.contamination = c
	}
}

// New creates a LocalOutlierFactor with the given options.
func New(opts ...Option) *LocalOutlierFactor {
	l := &LocalOutlierFactor{
		k:             35,
		contamination: detectors.DefaultConfig().Contamination,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name implements detectors.Detector.
func (l *LocalOutlierFactor) Name() string { return "local outlier factor" }

// FitPredict computes LOF scores over data and labels the rows above
// the contamination quantile as outliers. The neighborhood size is
// capped at n-1.
func (l *LocalOutlierFactor) FitPredict(data [][]float64) ([]int, error) {
	n := len(data)
	if n == 0 {
		return nil, detectors.ErrEmptyData
	}
	if n == 1 {
		return []int{detectors.Inlier}, nil
	}

	k := l.k
	if k > n-1 {
		k = n - 1
	}

	dist := distanceMatrix(data)

	// k nearest neighbors and k-distance per point.
	neighborhoods := make([][]int, n)
	kdist := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := make([]int, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				idx = append(idx, j)
			}
		}
		sort.Slice(idx, func(a, b int) bool { return dist[i][idx[a]] < dist[i][idx[b]] })
		neighborhoods[i] = idx[:k]
		kdist[i] = dist[i][idx[k-1]]
	}

	// Local reachability density.
	lrd := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for _, j := range neighborhoods[i] {
			reach := dist[i][j]
			if kdist[j] > reach {
				reach = kdist[j]
			}
			sum += reach
		}
		if sum < reachEpsilon {
			sum = reachEpsilon
		}
		lrd[i] = float64(k) / sum
	}

	// LOF: mean neighbor density over own density.
	factors := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for _, j := range neighborhoods[i] {
			sum += lrd[j]
		}
		factors[i] = sum / (float64(k) * lrd[i])
	}

	sorted := append([]float64(nil), factors...)
	sort.Float64s(sorted)
	threshold := stat.Quantile(1-l.contamination, stat.Empirical, sorted, nil)

	labels := make([]int, n)
	for i, f := range factors {
		if f > threshold {
			labels[i] = detectors.Outlier
		} else {
			labels[i] = detectors.Inlier
		}
	}
	return labels, nil
}

func distanceMatrix(data [][]float64) [][]float64 {
	n := len(data)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var d2 float64
			for c := range data[i] {
				diff := data[i][c] - data[j][c]
				d2 += diff * diff
			}
			d := math.Sqrt(d2)
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}
