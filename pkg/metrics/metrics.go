// Package metrics scores detector predictions against ground truth:
// accuracy, ROC curves over decision scores, and AUC.
package metrics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrLengthMismatch is returned when predictions and ground truth
	// are not aligned.
	ErrLengthMismatch = errors.New("metrics: prediction and truth lengths differ")
	// ErrEmpty is returned for empty inputs.
	ErrEmpty = errors.New("metrics: empty input")
	// ErrSingleClass is returned when an ROC curve is requested for
	// ground truth containing only one class.
	ErrSingleClass = errors.New("metrics: ROC requires both classes in ground truth")
)

// Accuracy returns the fraction of predicted labels equal to the
// ground truth, under the +1 inlier / -1 outlier convention.
func Accuracy(pred, truth []int) (float64, error) {
	if len(pred) != len(truth) {
		return 0, ErrLengthMismatch
	}
	if len(pred) == 0 {
		return 0, ErrEmpty
	}

	var hits int
	for i, p := range pred {
		if p == truth[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(pred)), nil
}

// Curve is an ROC curve: FPR/TPR pairs parameterized by decreasing
// threshold. Thresholds[0] is +Inf so the curve starts at (0, 0);
// the final point is (1, 1). ZeroIndex is the curve point whose
// threshold magnitude is minimal, i.e. the operating point closest to
// the detector's nominal decision boundary.
type Curve struct {
	FPR        []float64
	TPR        []float64
	Thresholds []float64
	AUC        float64
	ZeroIndex  int
}

// ROC builds the ROC curve of the given decision scores against the
// ground truth, treating +1 (inlier) as the positive class and every
// distinct score value as a candidate threshold: a sample is
// classified positive when its score is >= the threshold. AUC is the
// trapezoidal area under the resulting curve.
func ROC(scores []float64, truth []int) (*Curve, error) {
	if len(scores) != len(truth) {
		return nil, ErrLengthMismatch
	}
	if len(scores) == 0 {
		return nil, ErrEmpty
	}

	var pos, neg float64
	for _, t := range truth {
		if t == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, ErrSingleClass
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	curve := &Curve{
		FPR:        []float64{0},
		TPR:        []float64{0},
		Thresholds: []float64{math.Inf(1)},
	}

	var tp, fp float64
	for i, idx := range order {
		if truth[idx] == 1 {
			tp++
		} else {
			fp++
		}
		// Emit a point only after the last sample of a score tie, so
		// every threshold is a distinct score value.
		if i+1 < len(order) && scores[order[i+1]] == scores[idx] {
			continue
		}
		curve.FPR = append(curve.FPR, fp/neg)
		curve.TPR = append(curve.TPR, tp/pos)
		curve.Thresholds = append(curve.Thresholds, scores[idx])
	}

	curve.AUC = integrate.Trapezoidal(curve.FPR, curve.TPR)

	curve.ZeroIndex = 0
	for i, th := range curve.Thresholds {
		if math.Abs(th) < math.Abs(curve.Thresholds[curve.ZeroIndex]) {
			curve.ZeroIndex = i
		}
	}
	return curve, nil
}
