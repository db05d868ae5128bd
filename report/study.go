package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sibexico/pagesim/paging"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample of values
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes the sample summary of values. StdDev is the unbiased
// estimate and is 0 for fewer than two values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

// AlgorithmSummary holds the fault statistics of one algorithm over a study
type AlgorithmSummary struct {
	Algorithm paging.Algorithm
	Faults    Summary
	FaultRate Summary
}

// StudyReport is the outcome of replaying many generated streams
type StudyReport struct {
	Streams     int
	Length      int
	Frames      int
	Algorithms  []AlgorithmSummary
	Compared    bool // Both Optimal and LRU were run
	OptimalWins int  // Streams where Optimal faulted strictly less than LRU
	Ties        int  // Streams where both faulted equally
}

// Study prints per-algorithm fault statistics of a study
func Study(w io.Writer, report StudyReport) error {
	ew := &errWriter{w: w}

	ew.printf("Study: %d streams of %d references, %d frames\n", report.Streams, report.Length, report.Frames)

	tw := table.NewWriter()
	tw.SetOutputMirror(ew)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Algorithm", "Mean faults", "Std dev", "Min", "Max", "Mean fault rate"})
	for _, summary := range report.Algorithms {
		tw.AppendRow(table.Row{
			summary.Algorithm,
			fmt.Sprintf("%.2f", summary.Faults.Mean),
			fmt.Sprintf("%.2f", summary.Faults.StdDev),
			fmt.Sprintf("%.0f", summary.Faults.Min),
			fmt.Sprintf("%.0f", summary.Faults.Max),
			percent(summary.FaultRate.Mean),
		})
	}
	tw.Render()

	if report.Compared {
		ew.printf("Optimal beat LRU on %d of %d streams (%d ties)\n", report.OptimalWins, report.Streams, report.Ties)
	}
	return ew.err
}
