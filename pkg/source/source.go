// Package source provides data-source readers that feed external
// datasets into the benchmark pipeline.
package source

import "context"

// Reader is the interface for reading sample matrices from various
// sources.
type Reader interface {
	// Read returns the complete feature matrix, one sample per row.
	Read() ([][]float64, error)

	// Stream returns a channel of samples for incremental processing.
	Stream(ctx context.Context) (<-chan []float64, error)

	// Close releases resources.
	Close() error
}

// LabeledReader is the optional capability of supplying ground-truth
// labels (+1 inlier / -1 outlier) alongside the feature matrix, so an
// external dataset can run through the full evaluation pipeline.
type LabeledReader interface {
	Reader

	// ReadLabeled returns the feature matrix and aligned labels.
	ReadLabeled() ([][]float64, []int, error)
}
