package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		pred    []int
		truth   []int
		want    float64
		wantErr error
	}{
		{"perfect", []int{1, 1, -1}, []int{1, 1, -1}, 1.0, nil},
		{"half", []int{1, -1, 1, -1}, []int{1, 1, -1, -1}, 0.5, nil},
		{"all wrong", []int{-1, -1}, []int{1, 1}, 0.0, nil},
		{"length mismatch", []int{1}, []int{1, 1}, 0, ErrLengthMismatch},
		{"empty", nil, nil, 0, ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.pred, tt.truth)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestROCPerfectSeparation(t *testing.T) {
	scores := []float64{0.9, 0.8, -0.1, -0.2}
	truth := []int{1, 1, -1, -1}

	curve, err := ROC(scores, truth)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, curve.AUC, 1e-12)

	// Starts at (0,0) under threshold +Inf, ends at (1,1).
	assert.True(t, math.IsInf(curve.Thresholds[0], 1))
	assert.Equal(t, 0.0, curve.FPR[0])
	assert.Equal(t, 0.0, curve.TPR[0])
	last := len(curve.FPR) - 1
	assert.Equal(t, 1.0, curve.FPR[last])
	assert.Equal(t, 1.0, curve.TPR[last])

	// Zero-threshold point: -0.1 has the smallest magnitude.
	assert.Equal(t, -0.1, curve.Thresholds[curve.ZeroIndex])
}

func TestROCInvertedScores(t *testing.T) {
	// Scores anti-correlated with the truth give AUC 0.
	scores := []float64{-1, -2, 1, 2}
	truth := []int{1, 1, -1, -1}

	curve, err := ROC(scores, truth)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, curve.AUC, 1e-12)
}

func TestROCMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	scores := make([]float64, 500)
	truth := make([]int, 500)
	for i := range scores {
		scores[i] = rng.NormFloat64()
		if rng.Float64() < 0.7 {
			truth[i] = 1
		} else {
			truth[i] = -1
		}
	}

	curve, err := ROC(scores, truth)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, curve.AUC, 0.0)
	assert.LessOrEqual(t, curve.AUC, 1.0)

	for i := 1; i < len(curve.FPR); i++ {
		assert.GreaterOrEqual(t, curve.FPR[i], curve.FPR[i-1], "fpr at %d", i)
		assert.GreaterOrEqual(t, curve.TPR[i], curve.TPR[i-1], "tpr at %d", i)
		assert.Less(t, curve.Thresholds[i], curve.Thresholds[i-1], "thresholds at %d", i)
	}

	// Random scores hover around chance level.
	assert.InDelta(t, 0.5, curve.AUC, 0.1)
}

func TestROCTiedScores(t *testing.T) {
	scores := []float64{0.5, 0.5, 0.5, -0.5}
	truth := []int{1, 1, -1, -1}

	curve, err := ROC(scores, truth)
	require.NoError(t, err)

	// One curve point per distinct score value, plus the +Inf start.
	assert.Len(t, curve.Thresholds, 3)
	assert.Equal(t, []float64{0, 0.5, 1}, curve.FPR)
	assert.Equal(t, []float64{0, 1, 1}, curve.TPR)
	assert.InDelta(t, 0.75, curve.AUC, 1e-12)
}

func TestROCErrors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := ROC([]float64{1}, []int{1, -1})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ROC(nil, nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("single class", func(t *testing.T) {
		_, err := ROC([]float64{1, 2}, []int{1, 1})
		assert.ErrorIs(t, err, ErrSingleClass)
	})
}
