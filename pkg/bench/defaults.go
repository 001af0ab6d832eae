package bench

import (
	"github.com/hed1ad/anombench/pkg/detectors"
	"github.com/hed1ad/anombench/pkg/detectors/iforest"
	"github.com/hed1ad/anombench/pkg/detectors/lof"
	"github.com/hed1ad/anombench/pkg/detectors/ocsvm"
	"github.com/hed1ad/anombench/pkg/detectors/robustcov"
)

// Reference hyperparameters for the benchmark suite.
const (
	defaultTrees     = 500
	defaultNeighbors = 35
)

func defaultRobustCov(contamination float64, seed int64) detectors.Detector {
	return robustcov.New(
		robustcov.WithContamination(contamination),
		robustcov.WithSeed(seed),
	)
}

func defaultOCSVM(contamination float64, seed int64) detectors.Detector {
	return ocsvm.New(
		ocsvm.WithNu(contamination),
		ocsvm.WithSeed(seed),
	)
}

func defaultIForest(contamination float64, seed int64) detectors.Detector {
	return iforest.New(
		iforest.WithTrees(defaultTrees),
		iforest.WithContamination(contamination),
		iforest.WithSeed(seed),
	)
}

func defaultLOF(contamination float64) detectors.Detector {
	return lof.New(
		lof.WithNeighbors(defaultNeighbors),
		lof.WithContamination(contamination),
	)
}
