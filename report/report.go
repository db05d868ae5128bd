// Package report renders simulation results for the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sibexico/pagesim/paging"
)

// DefaultTraceWidth is the longest stream printed reference by reference
const DefaultTraceWidth = 60

const (
	hitMark  = "o"
	missMark = "x"
)

// Options controls rendering
type Options struct {
	Color      bool // Colour hit/miss marks
	TraceWidth int  // Longest stream printed with hit/miss rows (0 = DefaultTraceWidth, <0 = always)
}

func (o Options) showTrace(length int) bool {
	switch {
	case o.TraceWidth < 0:
		return true
	case o.TraceWidth == 0:
		return length <= DefaultTraceWidth
	default:
		return length <= o.TraceWidth
	}
}

// errWriter keeps the first write error and drops everything after it
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	var n int
	n, ew.err = ew.w.Write(p)
	return n, ew.err
}

// Results prints the reference string, one hit/miss row and fault count per
// result, then a summary table
func Results(w io.Writer, stream paging.ReferenceStream, results []*paging.Result, opts Options) error {
	ew := &errWriter{w: w}

	ew.printf("Ref String (%d entries):\n", stream.Len())
	ew.printf("   %s\n\n", stream.String())

	if len(results) == 0 {
		return ew.err
	}

	ew.printf("Test results:\n")
	trace := opts.showTrace(stream.Len())
	for _, result := range results {
		ew.printf("   %s Algorithm (%d frames):\n", Title(result.Algorithm), result.Capacity)
		if trace && stream.Len() > 0 {
			pages, marks := TraceRows(stream, result.Trace, opts.Color)
			ew.printf("   %s\n", pages)
			ew.printf("   %s\n", marks)
		}
		ew.printf("      [ %d faults ]\n\n", result.Faults)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(ew)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Algorithm", "Frames", "References", "Hits", "Faults", "Fault rate"})
	for _, result := range results {
		tw.AppendRow(table.Row{
			result.Algorithm,
			result.Capacity,
			len(result.Trace),
			result.Hits,
			result.Faults,
			percent(result.FaultRate()),
		})
	}
	tw.Render()

	return ew.err
}

// TraceRows returns the reference string and the matching hit/miss row. Each
// mark is padded to the width of its page so the rows line up.
func TraceRows(stream paging.ReferenceStream, trace []bool, color bool) (string, string) {
	var pages, marks strings.Builder
	for i := 0; i < stream.Len() && i < len(trace); i++ {
		token := strconv.FormatUint(uint64(stream.At(i)), 10)
		if i > 0 {
			pages.WriteString(", ")
			marks.WriteString("  ")
		}
		pages.WriteString(token)

		mark, colour := missMark, text.FgRed
		if trace[i] {
			mark, colour = hitMark, text.FgGreen
		}
		if color {
			mark = colour.Sprint(mark)
		}
		marks.WriteString(mark)
		marks.WriteString(strings.Repeat(" ", len(token)-1))
	}
	return pages.String(), strings.TrimRight(marks.String(), " ")
}

// Sweep prints faults per capacity for one or more sweeps followed by any
// detected anomalies
func Sweep(w io.Writer, results []*paging.Result, anomalies []paging.Anomaly) error {
	ew := &errWriter{w: w}

	anomalous := make(map[paging.Algorithm]map[int]bool)
	for _, a := range anomalies {
		if anomalous[a.Algorithm] == nil {
			anomalous[a.Algorithm] = make(map[int]bool)
		}
		anomalous[a.Algorithm][a.ToCapacity] = true
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(ew)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Algorithm", "Frames", "Faults", "Hits", "Fault rate", "Anomaly"})
	for _, result := range results {
		mark := ""
		if anomalous[result.Algorithm][result.Capacity] {
			mark = "yes"
		}
		tw.AppendRow(table.Row{
			result.Algorithm,
			result.Capacity,
			result.Faults,
			result.Hits,
			percent(result.FaultRate()),
			mark,
		})
	}
	tw.Render()

	if len(anomalies) == 0 {
		ew.printf("No Belady's anomaly detected\n")
		return ew.err
	}
	for _, a := range anomalies {
		ew.printf("Belady's anomaly: %s %d -> %d frames raised faults %d -> %d\n",
			a.Algorithm, a.FromCapacity, a.ToCapacity, a.FromFaults, a.ToFaults)
	}
	return ew.err
}

// Title returns the display name of an algorithm
func Title(algorithm paging.Algorithm) string {
	switch algorithm {
	case paging.AlgorithmOptimal:
		return "Optimal"
	case paging.AlgorithmLRU:
		return "LRU"
	default:
		return string(algorithm)
	}
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
