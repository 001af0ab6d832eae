// Package bench runs the evaluation pipeline: every detection
// algorithm against every dataset, timing the fit and scoring the
// predictions.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hed1ad/anombench/pkg/dataset"
	"github.com/hed1ad/anombench/pkg/detectors"
	"github.com/hed1ad/anombench/pkg/metrics"
)

// ErrNoWork is returned when Run is given no datasets or no
// algorithms.
var ErrNoWork = errors.New("bench: nothing to evaluate")

// Algorithm names a detector and constructs fresh instances, so
// concurrent pairs never share model state. Whether the algorithm can
// produce decision scores is probed once, at registration.
type Algorithm struct {
	Name string
	New  func() detectors.Detector
}

// Result is the outcome of one (dataset, algorithm) pair. When the
// pair's fit failed, Err is set and the remaining fields are zero;
// sibling pairs are unaffected. ROC is nil for algorithms without
// decision scores.
type Result struct {
	Dataset   string
	Algorithm string
	Elapsed   time.Duration
	Accuracy  float64
	Predicted []int
	ROC       *metrics.Curve
	Err       error
}

// DatasetResult holds one dataset's results keyed by algorithm name.
// Order preserves the registration order for rendering.
type DatasetResult struct {
	Dataset     *dataset.Dataset
	Order       []string
	ByAlgorithm map[string]*Result
}

// Report is the full benchmark outcome, one entry per dataset.
type Report struct {
	Datasets []*DatasetResult
}

// Runner evaluates the (dataset, algorithm) product.
type Runner struct {
	// Parallel is the worker count; values <= 1 evaluate
	// sequentially. Pairs are independent: each worker owns its
	// detector instance and writes to a pre-allocated slot.
	Parallel int
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Run evaluates every pair. A pair's fit failure is recorded in its
// result and never aborts the rest; Run itself fails only on invalid
// input or context cancellation.
func (r *Runner) Run(ctx context.Context, datasets []*dataset.Dataset, algorithms []Algorithm) (*Report, error) {
	if len(datasets) == 0 || len(algorithms) == 0 {
		return nil, ErrNoWork
	}

	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Probe scoring capability once per algorithm, not per call.
	scorable := make([]bool, len(algorithms))
	for i, algo := range algorithms {
		_, scorable[i] = algo.New().(detectors.Scorer)
	}

	// Result slots indexed (dataset, algorithm): no write races.
	grid := make([][]*Result, len(datasets))
	for i := range grid {
		grid[i] = make([]*Result, len(algorithms))
	}

	if r.Parallel <= 1 {
		for di, ds := range datasets {
			for ai, algo := range algorithms {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				grid[di][ai] = evaluatePair(log, ds, algo, scorable[ai])
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.Parallel)
		for di, ds := range datasets {
			for ai, algo := range algorithms {
				di, ds, ai, algo := di, ds, ai, algo
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					grid[di][ai] = evaluatePair(log, ds, algo, scorable[ai])
					return nil
				})
			}
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	report := &Report{Datasets: make([]*DatasetResult, len(datasets))}
	for di, ds := range datasets {
		dr := &DatasetResult{
			Dataset:     ds,
			Order:       make([]string, len(algorithms)),
			ByAlgorithm: make(map[string]*Result, len(algorithms)),
		}
		for ai, algo := range algorithms {
			dr.Order[ai] = algo.Name
			dr.ByAlgorithm[algo.Name] = grid[di][ai]
		}
		report.Datasets[di] = dr
	}
	return report, nil
}

// evaluatePair fits one fresh detector on one dataset and scores the
// outcome. Wall-clock time covers the fit-and-predict call only and
// is measured here, inside the worker.
func evaluatePair(log *zap.Logger, ds *dataset.Dataset, algo Algorithm, scorable bool) *Result {
	res := &Result{Dataset: ds.Name, Algorithm: algo.Name}
	det := algo.New()

	start := time.Now()
	pred, err := det.FitPredict(ds.X)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("fit %s on %s: %w", algo.Name, ds.Name, err)
		log.Warn("pair failed",
			zap.String("dataset", ds.Name),
			zap.String("algorithm", algo.Name),
			zap.Error(err))
		return res
	}
	res.Predicted = pred

	res.Accuracy, err = metrics.Accuracy(pred, ds.Labels)
	if err != nil {
		res.Err = fmt.Errorf("accuracy %s on %s: %w", algo.Name, ds.Name, err)
		return res
	}

	if scorable {
		scores, err := det.(detectors.Scorer).DecisionScores(ds.X)
		if err != nil {
			res.Err = fmt.Errorf("scores %s on %s: %w", algo.Name, ds.Name, err)
			return res
		}
		res.ROC, err = metrics.ROC(scores, ds.Labels)
		if err != nil {
			res.Err = fmt.Errorf("roc %s on %s: %w", algo.Name, ds.Name, err)
			return res
		}
	}

	log.Debug("pair evaluated",
		zap.String("dataset", ds.Name),
		zap.String("algorithm", algo.Name),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("accuracy", res.Accuracy))
	return res
}

// DefaultAlgorithms returns the four benchmark algorithms configured
// for the given contamination and seed, in the reference order.
func DefaultAlgorithms(contamination float64, seed int64) []Algorithm {
	return []Algorithm{
		{
			Name: "robust covariance",
			New: func() detectors.Detector {
				return defaultRobustCov(contamination, seed)
			},
		},
		{
			Name: "one-class SVM",
			New: func() detectors.Detector {
				return defaultOCSVM(contamination, seed)
			},
		},
		{
			Name: "isolation forest",
			New: func() detectors.Detector {
				return defaultIForest(contamination, seed)
			},
		},
		{
			Name: "local outlier factor",
			New: func() detectors.Detector {
				return defaultLOF(contamination)
			},
		},
	}
}
