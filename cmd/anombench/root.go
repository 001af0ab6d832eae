package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagSamples   int
	flagFraction  float64
	flagNoiseDims int
	flagSeed      int64
	flagParallel  int
	flagJSON      bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "anombench",
	Short: "Benchmark outlier-detection algorithms",
	Long: `anombench runs four outlier-detection algorithms (robust covariance,
one-class SVM, isolation forest, local outlier factor) against labeled
datasets and reports per-algorithm fit time, accuracy, and ROC/AUC.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagSamples, "samples", 500, "total samples per dataset (inliers + outliers)")
	pf.Float64Var(&flagFraction, "fraction", 0.15, "outlier fraction in (0,1)")
	pf.IntVar(&flagNoiseDims, "noise-dims", 0, "uninformative Gaussian columns appended to every sample")
	pf.Int64Var(&flagSeed, "seed", 42, "random seed")
	pf.IntVar(&flagParallel, "parallel", 1, "worker count; 1 evaluates pairs sequentially")
	pf.BoolVar(&flagJSON, "json", false, "emit JSON records instead of tables")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "per-pair debug logging")
}

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
