// Package iforest implements the Isolation Forest algorithm, the
// ensemble-tree detector of the benchmark suite.
package iforest

import (
	"math"
	"math/rand"

	"github.com/hed1ad/anombench/pkg/detectors"
)

// IsolationForest isolates anomalies with randomized binary trees and
// scores points by their average path length across the ensemble.
type IsolationForest struct {
	nTrees        int
	sampleSize    int
	contamination float64
	rng           *rand.Rand

	trees         []*iTree
	maxDepth      int
	avgPathLength float64
	threshold     float64
	fitted        bool
}

// iTree is a single isolation tree.
type iTree struct {
	root *node
}

type node struct {
	splitFeature int
	splitValue   float64

	left  *node
	right *node

	// leaf: number of samples that reached this node
	size int
}

// Option configures an IsolationForest.
type Option func(*IsolationForest)

// WithTrees sets the number of isolation trees.
func WithTrees(n int) Option {
	return func(f *IsolationForest) {
		f.nTrees = n
	}
}

// WithSampleSize sets the subsample size for each tree.
func WithSampleSize(n int) Option {
	return func(f *IsolationForest) {
		f.sampleSize = n
	}
}

// WithContamination sets the expected proportion of outliers.
func WithContamination(c float64) Option {
	return func(f *IsolationForest) {
		f.contamination = c
	}
}

// WithSeed sets the random seed for reproducibility.
func WithSeed(seed int64) Option {
	return func(f *IsolationForest) {
		f.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a new IsolationForest with the given options.
func New(opts ...Option) *IsolationForest {
	cfg := detectors.DefaultConfig()
	f := &IsolationForest{
		nTrees:        100,
		sampleSize:    256,
		contamination: cfg.Contamination,
		rng:           rand.New(rand.NewSource(cfg.RandomSeed)),
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name implements detectors.Detector.
func (f *IsolationForest) Name() string { return "isolation forest" }

// FitPredict builds the ensemble on data, calibrates the anomaly
// threshold at the contamination quantile of the training scores, and
// labels every row.
func (f *IsolationForest) FitPredict(data [][]float64) ([]int, error) {
	if len(data) == 0 {
		return nil, detectors.ErrEmptyData
	}

	nSamples := len(data)
	nFeatures := len(data[0])

	sampleSize := f.sampleSize
	if sampleSize > nSamples {
		sampleSize = nSamples
	}
	f.maxDepth = int(math.Ceil(math.Log2(float64(sampleSize))))

	f.trees = make([]*iTree, f.nTrees)
	for i := 0; i < f.nTrees; i++ {
		// Sample without replacement.
		indices := f.rng.Perm(nSamples)[:sampleSize]
		sample := make([][]float64, sampleSize)
		for j, idx := range indices {
			sample[j] = data[idx]
		}
		f.trees[i] = &iTree{root: f.buildNode(sample, nFeatures, 0)}
	}

	f.avgPathLength = averagePathLength(float64(sampleSize))
	f.fitted = true

	scores := f.anomalyScores(data)
	f.threshold = percentile(scores, 100*(1-f.contamination))

	labels := make([]int, len(scores))
	for i, s := range scores {
		if s > f.threshold {
			labels[i] = detectors.Outlier
		} else {
			labels[i] = detectors.Inlier
		}
	}
	return labels, nil
}

// DecisionScores implements detectors.Scorer. Scores are the signed
// margin to the calibrated threshold: positive inside the boundary.
func (f *IsolationForest) DecisionScores(data [][]float64) ([]float64, error) {
	if !f.fitted {
		return nil, detectors.ErrNotFitted
	}

	scores := f.anomalyScores(data)
	for i, s := range scores {
		scores[i] = f.threshold - s
	}
	return scores, nil
}

func (f *IsolationForest) anomalyScores(data [][]float64) []float64 {
	scores := make([]float64, len(data))
	for i, sample := range data {
		var totalPath float64
		for _, tree := range f.trees {
			totalPath += pathLength(sample, tree.root, 0)
		}
		avgPath := totalPath / float64(len(f.trees))

		// Anomaly score in (0, 1]: 2^(-avgPath / c(n)).
		scores[i] = math.Pow(2, -avgPath/f.avgPathLength)
	}
	return scores
}

func (f *IsolationForest) buildNode(data [][]float64, nFeatures, depth int) *node {
	n := len(data)
	if depth >= f.maxDepth || n <= 1 {
		return &node{size: n}
	}

	feature := f.rng.Intn(nFeatures)

	minVal, maxVal := data[0][feature], data[0][feature]
	for _, row := range data[1:] {
		if row[feature] < minVal {
			minVal = row[feature]
		}
		if row[feature] > maxVal {
			maxVal = row[feature]
		}
	}
	if minVal == maxVal {
		return &node{size: n}
	}

	splitValue := minVal + f.rng.Float64()*(maxVal-minVal)

	var leftData, rightData [][]float64
	for _, row := range data {
		if row[feature] < splitValue {
			leftData = append(leftData, row)
		} else {
			rightData = append(rightData, row)
		}
	}

	return &node{
		splitFeature: feature,
		splitValue:   splitValue,
		left:         f.buildNode(leftData, nFeatures, depth+1),
		right:        f.buildNode(rightData, nFeatures, depth+1),
	}
}

// pathLength walks a sample down a tree, adding the expected remaining
// path at the leaf.
func pathLength(sample []float64, n *node, currentDepth int) float64 {
	if n.left == nil && n.right == nil {
		return float64(currentDepth) + averagePathLength(float64(n.size))
	}

	if sample[n.splitFeature] < n.splitValue {
		return pathLength(sample, n.left, currentDepth+1)
	}
	return pathLength(sample, n.right, currentDepth+1)
}

// averagePathLength returns the average path length of unsuccessful
// search in a BST: c(n) = 2*H(n-1) - 2*(n-1)/n.
func averagePathLength(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+0.5772156649) - 2*(n-1)/n
}

// percentile calculates the p-th percentile of the data.
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}
