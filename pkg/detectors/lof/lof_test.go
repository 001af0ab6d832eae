package lof

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/anombench/pkg/detectors"
)

func TestNoScoringCapability(t *testing.T) {
	// LOF is the one detector without a continuous decision score;
	// the pipeline must see it as a plain Detector.
	var det detectors.Detector = New()
	_, ok := det.(detectors.Scorer)
	assert.False(t, ok)
}

func TestFitPredict(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		_, err := New().FitPredict(nil)
		assert.ErrorIs(t, err, detectors.ErrEmptyData)
	})

	t.Run("single sample is an inlier", func(t *testing.T) {
		labels, err := New().FitPredict([][]float64{{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, []int{detectors.Inlier}, labels)
	})

	t.Run("flags isolated points", func(t *testing.T) {
		data, nCluster := clusterWithStragglers(300, 12, 17)
		l := New(WithNeighbors(35), WithContamination(0.05))

		labels, err := l.FitPredict(data)
		require.NoError(t, err)
		require.Len(t, labels, len(data))

		flagged := 0
		for _, lab := range labels[nCluster:] {
			if lab == detectors.Outlier {
				flagged++
			}
		}
		assert.GreaterOrEqual(t, flagged, 10)
	})

	t.Run("contamination calibrates flag count", func(t *testing.T) {
		data, _ := clusterWithStragglers(400, 20, 2)
		l := New(WithContamination(0.1))

		labels, err := l.FitPredict(data)
		require.NoError(t, err)

		flagged := 0
		for _, lab := range labels {
			if lab == detectors.Outlier {
				flagged++
			}
		}
		assert.InDelta(t, 0.1*float64(len(data)), float64(flagged), 20)
	})

	t.Run("neighborhood capped at n-1", func(t *testing.T) {
		// Fewer samples than the default k must still work.
		data, _ := clusterWithStragglers(10, 2, 4)
		labels, err := New().FitPredict(data)
		require.NoError(t, err)
		assert.Len(t, labels, 12)
	})

	t.Run("duplicate points do not blow up", func(t *testing.T) {
		row := []float64{1, 1}
		data := [][]float64{row, row, row, row, {50, 50}}

		labels, err := New(WithNeighbors(2), WithContamination(0.2)).FitPredict(data)
		require.NoError(t, err)
		assert.Equal(t, detectors.Outlier, labels[4])
	})
}

func TestDeterministic(t *testing.T) {
	data, _ := clusterWithStragglers(200, 10, 8)

	run := func() []int {
		labels, err := New().FitPredict(data)
		require.NoError(t, err)
		return labels
	}

	assert.Equal(t, run(), run())
}

// clusterWithStragglers builds a dense 2D cluster followed by widely
// separated isolated points.
func clusterWithStragglers(n, stragglers int, seed int64) ([][]float64, int) {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, 0, n+stragglers)
	for i := 0; i < n; i++ {
		data = append(data, []float64{rng.NormFloat64() * 0.3, rng.NormFloat64() * 0.3})
	}
	for i := 0; i < stragglers; i++ {
		data = append(data, []float64{
			float64(10 + 10*i),
			float64(-10 - 10*i),
		})
	}
	return data, n
}
