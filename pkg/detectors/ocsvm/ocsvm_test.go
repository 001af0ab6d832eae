package ocsvm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/anombench/pkg/detectors"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := New()
		assert.Equal(t, 0.15, m.nu)
		assert.Equal(t, 1000, m.maxIter)
	})

	t.Run("options", func(t *testing.T) {
		m := New(WithNu(0.1), WithGamma(0.5), WithTolerance(1e-3), WithMaxIter(500))
		assert.Equal(t, 0.1, m.nu)
		assert.Equal(t, 0.5, m.gamma)
		assert.Equal(t, 1e-3, m.tol)
		assert.Equal(t, 500, m.maxIter)
	})
}

func TestFitPredict(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		_, err := New().FitPredict(nil)
		assert.ErrorIs(t, err, detectors.ErrEmptyData)
	})

	t.Run("violation fraction tracks nu", func(t *testing.T) {
		data := ring(400, 10, 21)
		m := New(WithNu(0.1))

		labels, err := m.FitPredict(data)
		require.NoError(t, err)
		require.Len(t, labels, len(data))

		flagged := 0
		for _, l := range labels {
			assert.Contains(t, []int{detectors.Inlier, detectors.Outlier}, l)
			if l == detectors.Outlier {
				flagged++
			}
		}
		assert.InDelta(t, 0.1*float64(len(data)), float64(flagged), 20)
	})

	t.Run("separates far anomalies", func(t *testing.T) {
		data := ring(300, 12, 5)
		m := New(WithNu(0.05))

		labels, err := m.FitPredict(data)
		require.NoError(t, err)

		flagged := 0
		for _, l := range labels[300:] {
			if l == detectors.Outlier {
				flagged++
			}
		}
		assert.GreaterOrEqual(t, flagged, 10)
	})
}

func TestDecisionScores(t *testing.T) {
	t.Run("before fit", func(t *testing.T) {
		_, err := New().DecisionScores([][]float64{{0, 0}})
		assert.ErrorIs(t, err, detectors.ErrNotFitted)
	})

	t.Run("ranks anomalies below inliers", func(t *testing.T) {
		data := ring(300, 12, 9)
		m := New(WithNu(0.05))

		_, err := m.FitPredict(data)
		require.NoError(t, err)
		scores, err := m.DecisionScores(data)
		require.NoError(t, err)
		require.Len(t, scores, len(data))

		// Mean decision value of the cluster should sit well above
		// the mean of the appended anomalies.
		var inMean, outMean float64
		for _, s := range scores[:300] {
			inMean += s
		}
		for _, s := range scores[300:] {
			outMean += s
		}
		inMean /= 300
		outMean /= 12
		assert.Greater(t, inMean, outMean)
	})
}

func TestGammaScaleHeuristic(t *testing.T) {
	m := New()
	data := [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	g := m.resolveGamma(data)
	assert.Positive(t, g)

	// Constant data has zero variance; the fallback is 1/d.
	flat := [][]float64{{1, 1}, {1, 1}}
	assert.Equal(t, 0.5, m.resolveGamma(flat))
}

// ring builds a 2D Gaussian cluster followed by anomalies scattered
// on a wide ring, so each anomaly is isolated from the others as well
// as from the cluster.
func ring(n, anomalies int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, 0, n+anomalies)
	for i := 0; i < n; i++ {
		data = append(data, []float64{rng.NormFloat64(), rng.NormFloat64()})
	}
	for i := 0; i < anomalies; i++ {
		theta := 2 * math.Pi * float64(i) / float64(anomalies)
		r := 12 + 3*rng.Float64()
		data = append(data, []float64{r * math.Cos(theta), r * math.Sin(theta)})
	}
	return data
}
