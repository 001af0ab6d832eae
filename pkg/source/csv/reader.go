// Package csv reads benchmark datasets from CSV files. An optional
// label column lets labeled external datasets run through the same
// evaluation pipeline as the synthetic suites.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hed1ad/anombench/pkg/source"
)

// ErrBadLabel is returned when a label cell is not +1 or -1.
var ErrBadLabel = errors.New("csv: labels must be +1 or -1")

var _ source.LabeledReader = (*Reader)(nil)

// Reader reads data from CSV files.
type Reader struct {
	file      *os.File
	reader    *csv.Reader
	hasHeader bool
	headers   []string
	labelCol  int // -1 when the file carries no labels
}

// Option configures a CSV reader.
type Option func(*Reader)

// WithHeader indicates the CSV has a header row.
func WithHeader(has bool) Option {
	return func(r *Reader) {
		r.hasHeader = has
	}
}

// WithLabelColumn marks one column as the ground-truth label
// (+1 inlier / -1 outlier). Negative disables label extraction.
func WithLabelColumn(col int) Option {
	return func(r *Reader) {
		r.labelCol = col
	}
}

// NewReader creates a new CSV reader.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		file:      file,
		reader:    csv.NewReader(file),
		hasHeader: true,
		labelCol:  -1,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.hasHeader {
		headers, err := r.reader.Read()
		if err != nil {
			file.Close()
			return nil, err
		}
		r.headers = headers
	}

	return r, nil
}

// Headers returns the column headers.
func (r *Reader) Headers() []string {
	return r.headers
}

// Read returns all data as a 2D float slice, the label column (if
// configured) removed.
func (r *Reader) Read() ([][]float64, error) {
	data, _, err := r.read(false)
	return data, err
}

// ReadLabeled returns the feature matrix and the aligned labels from
// the configured label column.
func (r *Reader) ReadLabeled() ([][]float64, []int, error) {
	if r.labelCol < 0 {
		return nil, nil, errors.New("csv: no label column configured")
	}
	return r.read(true)
}

func (r *Reader) read(withLabels bool) ([][]float64, []int, error) {
	var data [][]float64
	var labels []int

	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		row, err := parseRow(record)
		if err != nil {
			continue // skip malformed rows
		}

		if r.labelCol >= 0 {
			if r.labelCol >= len(row) {
				return nil, nil, fmt.Errorf("csv: label column %d out of range for %d columns",
					r.labelCol, len(row))
			}
			label := row[r.labelCol]
			if label != 1 && label != -1 {
				return nil, nil, ErrBadLabel
			}
			if withLabels {
				labels = append(labels, int(label))
			}
			row = append(row[:r.labelCol], row[r.labelCol+1:]...)
		}
		data = append(data, row)
	}

	return data, labels, nil
}

// Stream returns a channel of feature rows for incremental
// processing. The label column, when configured, is dropped.
func (r *Reader) Stream(ctx context.Context) (<-chan []float64, error) {
	out := make(chan []float64, 100)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				record, err := r.reader.Read()
				if err == io.EOF {
					return
				}
				if err != nil {
					continue
				}

				row, err := parseRow(record)
				if err != nil {
					continue
				}
				if r.labelCol >= 0 && r.labelCol < len(row) {
					row = append(row[:r.labelCol], row[r.labelCol+1:]...)
				}

				select {
				case out <- row:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func parseRow(record []string) ([]float64, error) {
	row := make([]float64, len(record))
	for i, cell := range record {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}
