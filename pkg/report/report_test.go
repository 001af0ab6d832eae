package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/anombench/pkg/bench"
	"github.com/hed1ad/anombench/pkg/dataset"
	"github.com/hed1ad/anombench/pkg/metrics"
)

func sampleReport() *bench.Report {
	ds := &dataset.Dataset{
		Name:        "toy",
		X:           [][]float64{{0, 0}, {1, 1}, {9, 9}},
		Labels:      []int{1, 1, -1},
		NumInliers:  2,
		NumOutliers: 1,
	}

	scored := &bench.Result{
		Dataset:   "toy",
		Algorithm: "scored",
		Elapsed:   250 * time.Millisecond,
		Accuracy:  1.0,
		Predicted: []int{1, 1, -1},
		ROC: &metrics.Curve{
			FPR:        []float64{0, 0, 1},
			TPR:        []float64{0, 1, 1},
			Thresholds: []float64{1e308, 0.5, -0.5},
			AUC:        1.0,
			ZeroIndex:  1,
		},
	}
	failed := &bench.Result{
		Dataset:   "toy",
		Algorithm: "broken",
		Err:       errors.New("singular covariance"),
	}

	return &bench.Report{Datasets: []*bench.DatasetResult{{
		Dataset: ds,
		Order:   []string{"scored", "broken"},
		ByAlgorithm: map[string]*bench.Result{
			"scored": scored,
			"broken": failed,
		},
	}}}
}

func TestRecords(t *testing.T) {
	recs := Records(sampleReport())
	require.Len(t, recs, 2)

	assert.Equal(t, "scored", recs[0].Algorithm)
	assert.Equal(t, 0.25, recs[0].ElapsedSeconds)
	require.NotNil(t, recs[0].AUC)
	assert.Equal(t, 1.0, *recs[0].AUC)
	require.NotNil(t, recs[0].ROC)
	assert.Equal(t, 1, recs[0].ROC.ZeroIndex)
	assert.Empty(t, recs[0].Error)

	assert.Equal(t, "broken", recs[1].Algorithm)
	assert.Nil(t, recs[1].AUC)
	assert.Nil(t, recs[1].ROC)
	assert.Contains(t, recs[1].Error, "singular")
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleReport()))

	var decoded []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "toy", decoded[0].Dataset)
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	Console(&buf, sampleReport())

	out := buf.String()
	assert.Contains(t, out, "toy")
	assert.Contains(t, out, "scored")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "1.000") // accuracy and AUC of the scored pair
	assert.Contains(t, out, "singular covariance")
}
