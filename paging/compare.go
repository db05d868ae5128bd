package paging

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Compare replays stream once per algorithm, each on its own frame table.
// Runs execute concurrently up to the worker limit; results are returned in
// argument order.
// No algorithms means all of them.
func (s *Simulator) Compare(ctx context.Context, stream ReferenceStream, capacity int, algorithms ...Algorithm) ([]*Result, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity("Simulator.Compare", capacity)
	}
	if len(algorithms) == 0 {
		algorithms = Algorithms()
	}

	results := make([]*Result, len(algorithms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit())
	for i, algorithm := range algorithms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.RunAlgorithm(stream, capacity, algorithm)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Sweep replays stream with algorithm for every capacity in
// [minFrames, maxFrames], at most workerLimit runs at a time. Results are
// ordered by capacity.
func (s *Simulator) Sweep(ctx context.Context, stream ReferenceStream, algorithm Algorithm, minFrames, maxFrames int) ([]*Result, error) {
	if minFrames <= 0 || maxFrames < minFrames {
		return nil, ErrInvalidRange("Simulator.Sweep", minFrames, maxFrames)
	}
	if _, err := NewPolicy(algorithm); err != nil {
		return nil, err
	}

	results := make([]*Result, maxFrames-minFrames+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit())
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.RunAlgorithm(stream, minFrames+i, algorithm)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Anomaly is a capacity increase that raised the fault count
type Anomaly struct {
	Algorithm    Algorithm
	FromCapacity int
	ToCapacity   int
	FromFaults   int
	ToFaults     int
}

// DetectAnomalies scans results ordered by capacity for Belady's anomaly
func DetectAnomalies(results []*Result) []Anomaly {
	var anomalies []Anomaly
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if cur.Capacity > prev.Capacity && cur.Faults > prev.Faults {
			anomalies = append(anomalies, Anomaly{
				Algorithm:    cur.Algorithm,
				FromCapacity: prev.Capacity,
				ToCapacity:   cur.Capacity,
				FromFaults:   prev.Faults,
				ToFaults:     cur.Faults,
			})
		}
	}
	return anomalies
}
