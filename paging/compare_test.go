package paging

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_AllAlgorithms(t *testing.T) {
	stream := mustStream(t, 5, beladyString...)

	results, err := NewSimulator(nil, nil).Compare(context.Background(), stream, 3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, AlgorithmOptimal, results[0].Algorithm)
	assert.Equal(t, 7, results[0].Faults)
	assert.Equal(t, AlgorithmLRU, results[1].Algorithm)
	assert.Equal(t, 10, results[1].Faults)
}

func TestCompare_KeepsArgumentOrder(t *testing.T) {
	stream := mustStream(t, 5, beladyString...)

	results, err := NewSimulator(nil, nil).Compare(context.Background(), stream, 4, AlgorithmLRU, AlgorithmOptimal)
	require.NoError(t, err)

	assert.Equal(t, AlgorithmLRU, results[0].Algorithm)
	assert.Equal(t, 8, results[0].Faults)
	assert.Equal(t, AlgorithmOptimal, results[1].Algorithm)
	assert.Equal(t, 6, results[1].Faults)
}

func TestCompare_Errors(t *testing.T) {
	stream := mustStream(t, 5, 1, 2)
	sim := NewSimulator(nil, nil)

	_, err := sim.Compare(context.Background(), stream, 0)
	assert.True(t, IsErrorCode(err, ErrCodeInvalidCapacity))

	_, err = sim.Compare(context.Background(), stream, 2, AlgorithmLRU, "clock")
	assert.True(t, IsErrorCode(err, ErrCodeUnknownAlgorithm))
}

func TestCompare_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(nil, nil).Compare(ctx, mustStream(t, 5, 1, 2), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep(t *testing.T) {
	stream := mustStream(t, 5, beladyString...)

	results, err := NewSimulator(nil, nil).Sweep(context.Background(), stream, AlgorithmLRU, 1, 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	faults := make([]int, len(results))
	for i, result := range results {
		assert.Equal(t, i+1, result.Capacity)
		faults[i] = result.Faults
	}
	assert.Equal(t, []int{12, 12, 10, 8, 5}, faults)
	assert.Empty(t, DetectAnomalies(results))
}

func TestSweep_InvalidRange(t *testing.T) {
	stream := mustStream(t, 5, 1)
	sim := NewSimulator(nil, nil)

	for _, r := range [][2]int{{0, 3}, {3, 2}, {-1, -1}} {
		_, err := sim.Sweep(context.Background(), stream, AlgorithmOptimal, r[0], r[1])
		assert.True(t, IsErrorCode(err, ErrCodeInvalidRange), "range %v", r)
	}

	_, err := sim.Sweep(context.Background(), stream, "fifo", 1, 2)
	assert.True(t, IsErrorCode(err, ErrCodeUnknownAlgorithm))
}

func TestDetectAnomalies(t *testing.T) {
	// FIFO on the Belady string: 3 frames give 9 faults, 4 frames give 10
	results := []*Result{
		{Algorithm: "fifo", Capacity: 2, Faults: 12},
		{Algorithm: "fifo", Capacity: 3, Faults: 9},
		{Algorithm: "fifo", Capacity: 4, Faults: 10},
		{Algorithm: "fifo", Capacity: 5, Faults: 5},
	}

	anomalies := DetectAnomalies(results)
	assert.Equal(t, []Anomaly{{
		Algorithm:    "fifo",
		FromCapacity: 3,
		ToCapacity:   4,
		FromFaults:   9,
		ToFaults:     10,
	}}, anomalies)

	assert.Empty(t, DetectAnomalies(nil))
	assert.Empty(t, DetectAnomalies(results[:1]))
}

func TestSweep_LargeRangeUnderWorkerLimit(t *testing.T) {
	stream := mustStream(t, 5, beladyString...)
	sim := NewSimulator(nil, nil).WithWorkers(2)

	results, err := sim.Sweep(context.Background(), stream, AlgorithmOptimal, 1, 2000)
	require.NoError(t, err)
	require.Len(t, results, 2000)

	for i, result := range results {
		require.Equal(t, i+1, result.Capacity)
		if result.Capacity >= 5 {
			assert.Equal(t, 5, result.Faults, "capacity %d", result.Capacity)
		}
	}
	assert.Empty(t, DetectAnomalies(results))
}

func TestSimulator_WorkerLimit(t *testing.T) {
	sim := NewSimulator(nil, nil)
	assert.Equal(t, runtime.NumCPU(), sim.workerLimit())

	assert.Same(t, sim, sim.WithWorkers(3))
	assert.Equal(t, 3, sim.workerLimit())

	sim.WithWorkers(-1)
	assert.Equal(t, runtime.NumCPU(), sim.workerLimit())
}
