// Package report renders benchmark results: a colored console table
// per dataset and machine-readable JSON records. It is a pure sink;
// it derives nothing from the data it is handed.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/hed1ad/anombench/pkg/bench"
)

// Record is the JSON form of one (dataset, algorithm) result.
type Record struct {
	Dataset        string     `json:"dataset"`
	Algorithm      string     `json:"algorithm"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
	Accuracy       float64    `json:"accuracy"`
	AUC            *float64   `json:"auc,omitempty"`
	ROC            *ROCRecord `json:"roc,omitempty"`
	Predicted      []int      `json:"predicted,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// ROCRecord is the JSON form of an ROC curve.
type ROCRecord struct {
	FPR        []float64 `json:"fpr"`
	TPR        []float64 `json:"tpr"`
	Thresholds []float64 `json:"thresholds"`
	ZeroIndex  int       `json:"zero_index"`
}

// Records flattens a report into JSON-ready records, dataset by
// dataset in algorithm registration order.
func Records(rep *bench.Report) []Record {
	var out []Record
	for _, dr := range rep.Datasets {
		for _, name := range dr.Order {
			res := dr.ByAlgorithm[name]
			rec := Record{
				Dataset:        res.Dataset,
				Algorithm:      res.Algorithm,
				ElapsedSeconds: res.Elapsed.Seconds(),
				Accuracy:       res.Accuracy,
				Predicted:      res.Predicted,
			}
			if res.Err != nil {
				rec.Error = res.Err.Error()
			}
			if res.ROC != nil {
				auc := res.ROC.AUC
				rec.AUC = &auc
				rec.ROC = &ROCRecord{
					FPR:        res.ROC.FPR,
					TPR:        res.ROC.TPR,
					Thresholds: finiteThresholds(res.ROC.Thresholds),
					ZeroIndex:  res.ROC.ZeroIndex,
				}
			}
			out = append(out, rec)
		}
	}
	return out
}

// finiteThresholds clamps the curve's leading +Inf threshold, which
// encoding/json cannot represent.
func finiteThresholds(thresholds []float64) []float64 {
	out := append([]float64(nil), thresholds...)
	for i, th := range out {
		if math.IsInf(th, 1) {
			out[i] = math.MaxFloat64
		}
	}
	return out
}

// JSON writes the full report as indented JSON records.
func JSON(w io.Writer, rep *bench.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(rep))
}

// Console renders one summary table per dataset.
func Console(w io.Writer, rep *bench.Report) {
	title := color.New(color.FgCyan, color.Bold)
	fail := color.New(color.FgRed)

	for _, dr := range rep.Datasets {
		title.Fprintf(w, "dataset: %s  (%d inliers, %d outliers, %d dims)\n",
			dr.Dataset.Name, dr.Dataset.NumInliers, dr.Dataset.NumOutliers,
			len(dr.Dataset.X[0]))

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"algorithm", "accuracy", "fit time", "auc", "status"})
		table.SetBorder(false)

		for _, name := range dr.Order {
			res := dr.ByAlgorithm[name]
			if res.Err != nil {
				table.Append([]string{name, "-", "-", "-", fail.Sprint(res.Err)})
				continue
			}

			auc := "n/a"
			if res.ROC != nil {
				auc = fmt.Sprintf("%.3f", res.ROC.AUC)
			}
			table.Append([]string{
				name,
				fmt.Sprintf("%.3f", res.Accuracy),
				fmt.Sprintf("%.3fs", res.Elapsed.Seconds()),
				auc,
				"ok",
			})
		}
		table.Render()
		fmt.Fprintln(w)
	}
}
