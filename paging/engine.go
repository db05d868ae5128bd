package paging

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Eviction records one page replacement
type Eviction struct {
	Position int    // Stream position of the faulting reference
	Slot     int    // Frame slot that was overwritten
	Victim   PageID // Page that was evicted
	Incoming PageID // Page that took its place
}

// Result is the outcome of replaying one stream against one policy
type Result struct {
	Algorithm Algorithm
	Capacity  int
	Faults    int
	Hits      int
	Trace     []bool // One entry per reference, true on hit
	Evictions []Eviction
	Final     []PageID // Frame contents after the last reference
}

// FaultRate returns faults per reference
func (r *Result) FaultRate() float64 {
	if len(r.Trace) == 0 {
		return 0
	}
	return float64(r.Faults) / float64(len(r.Trace))
}

// HitRate returns hits per reference
func (r *Result) HitRate() float64 {
	if len(r.Trace) == 0 {
		return 0
	}
	return float64(r.Hits) / float64(len(r.Trace))
}

// victimScanner is implemented by policies that report how many references
// they inspected to pick a victim
type victimScanner interface {
	chooseVictimScan(stream ReferenceStream, frames *FrameTable, position int) (int, int, error)
}

// Simulator replays reference streams. It holds no per-run state and can be
// shared between goroutines.
type Simulator struct {
	logger  *slog.Logger
	metrics *Metrics
	workers int // Concurrent runs in Compare and Sweep (0 = NumCPU)
}

// NewSimulator creates a simulator. A nil logger uses slog.Default and a nil
// metrics tracker disables metrics.
func NewSimulator(logger *slog.Logger, metrics *Metrics) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		logger:  logger,
		metrics: metrics,
	}
}

// WithWorkers limits the concurrent runs of Compare and Sweep.
// n <= 0 uses runtime.NumCPU.
func (s *Simulator) WithWorkers(n int) *Simulator {
	s.workers = n
	return s
}

func (s *Simulator) workerLimit() int {
	if s.workers <= 0 {
		return runtime.NumCPU()
	}
	return s.workers
}

// Metrics returns the metrics tracker, or nil
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Run replays stream against policy on a fresh frame table of the given capacity
func Run(stream ReferenceStream, capacity int, policy Policy) (*Result, error) {
	return NewSimulator(nil, nil).Run(stream, capacity, policy)
}

// RunAlgorithm is Run with the policy created from algorithm
func (s *Simulator) RunAlgorithm(stream ReferenceStream, capacity int, algorithm Algorithm) (*Result, error) {
	policy, err := NewPolicy(algorithm)
	if err != nil {
		return nil, err
	}
	result, err := s.Run(stream, capacity, policy)
	if err != nil {
		return nil, err
	}
	result.Algorithm = algorithm
	return result, nil
}

// Run replays stream against policy on a fresh frame table of the given
// capacity. Configuration errors are returned before the first reference is
// processed; an invariant violation aborts the run and no result is returned.
func (s *Simulator) Run(stream ReferenceStream, capacity int, policy Policy) (*Result, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity("Simulator.Run", capacity)
	}
	if policy == nil {
		return nil, ErrInvalidPolicy("Simulator.Run")
	}

	start := time.Now()
	result, scans, err := s.replay(stream, capacity, policy)
	if s.metrics != nil {
		s.metrics.RecordRun(time.Since(start), err)
		if err == nil {
			s.metrics.RecordReferences(result.Hits, result.Faults)
			for _, scanned := range scans {
				s.metrics.RecordEviction(scanned)
			}
		}
	}
	if err != nil {
		s.logger.Error("simulation aborted", "capacity", capacity, "references", stream.Len(), "error", err)
		return nil, err
	}

	s.logger.Debug("simulation finished",
		"capacity", capacity,
		"references", stream.Len(),
		"faults", result.Faults,
		"evictions", len(result.Evictions),
	)
	return result, nil
}

// replay runs the reference loop. Scan lengths are only collected when
// metrics are enabled.
func (s *Simulator) replay(stream ReferenceStream, capacity int, policy Policy) (*Result, []int, error) {
	const op = "Simulator.Run"

	frames := NewFrameTable(capacity)
	result := &Result{
		Capacity: capacity,
		Trace:    make([]bool, stream.Len()),
	}
	scanner, _ := policy.(victimScanner)
	var scans []int

	for i := 0; i < stream.Len(); i++ {
		page := stream.At(i)
		if page == EmptyFrame || page > stream.MaxPage() {
			return nil, nil, ErrPageOutOfDomain(op, i, page, stream.MaxPage())
		}

		if _, ok := frames.Lookup(page); ok {
			result.Trace[i] = true
			result.Hits++
			continue
		}

		result.Faults++

		if slot, ok := frames.FirstEmpty(); ok {
			frames.Occupy(slot, page)
			continue
		}

		var slot, scanned int
		var err error
		if scanner != nil {
			slot, scanned, err = scanner.chooseVictimScan(stream, frames, i)
		} else {
			slot, err = policy.ChooseVictim(stream, frames, i)
		}
		if err != nil {
			return nil, nil, err
		}
		if slot < 0 || slot >= capacity || frames.At(slot) == EmptyFrame {
			return nil, nil, ErrInvalidSlot(op, i, slot, frames.Snapshot())
		}

		victim := frames.At(slot)
		frames.Occupy(slot, page)
		result.Evictions = append(result.Evictions, Eviction{
			Position: i,
			Slot:     slot,
			Victim:   victim,
			Incoming: page,
		})
		if s.metrics != nil {
			scans = append(scans, scanned)
		}
		if s.logger.Enabled(context.Background(), slog.LevelDebug) {
			s.logger.Debug("page evicted",
				"position", i,
				"slot", slot,
				"victim", victim,
				"incoming", page,
				"frames", frames.Snapshot(),
			)
		}
	}

	result.Final = frames.Snapshot()
	return result, scans, nil
}
