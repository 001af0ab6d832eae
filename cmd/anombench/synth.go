package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hed1ad/anombench/pkg/bench"
	"github.com/hed1ad/anombench/pkg/dataset"
	"github.com/hed1ad/anombench/pkg/report"
)

var synth3dCmd = &cobra.Command{
	Use:   "synth3d",
	Short: "Run the 3D suite: line, helix, sphere, Gaussian mixtures",
	Example: `  anombench synth3d
  anombench synth3d --noise-dims 10 --parallel 4 --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSynth(cmd, dataset.Suite3D)
	},
}

var synth2dCmd = &cobra.Command{
	Use:   "synth2d",
	Short: "Run the 2D suite: blobs, moons, uniform square",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSynth(cmd, dataset.Suite2D)
	},
}

func init() {
	rootCmd.AddCommand(synth3dCmd, synth2dCmd)
}

func runSynth(cmd *cobra.Command, suite func(dataset.Config) ([]*dataset.Dataset, error)) error {
	cfg := dataset.DefaultConfig()
	cfg.Samples = flagSamples
	cfg.OutlierFraction = flagFraction
	cfg.NoiseDims = flagNoiseDims
	cfg.Seed = flagSeed
	if err := cfg.Validate(); err != nil {
		return err
	}

	datasets, err := suite(cfg)
	if err != nil {
		return err
	}

	runner := bench.Runner{Parallel: flagParallel, Logger: newLogger()}
	rep, err := runner.Run(cmd.Context(), datasets, bench.DefaultAlgorithms(cfg.OutlierFraction, cfg.Seed))
	if err != nil {
		return err
	}

	if flagJSON {
		return report.JSON(os.Stdout, rep)
	}
	report.Console(os.Stdout, rep)
	return nil
}
