package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sibexico/pagesim/paging"
	"github.com/sibexico/pagesim/tracefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const beladyString = "1 2 3 4 1 2 5 1 2 3 4 5"

// runApp runs the simulator with args and returns its standard output
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := cli.NewApp()
	app.Commands = []*cli.Command{&RunCommand, &SweepCommand, &GenerateCommand, &StudyCommand}
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"pagesim"}, args...))
	return out.String(), err
}

func TestCmd_Run(t *testing.T) {
	out, err := runApp(t, "", RunCommand.Name, "--frames", "3", "--no-color", beladyString)
	require.NoError(t, err)

	assert.Contains(t, out, "Ref String (12 entries):")
	assert.Contains(t, out, "Optimal Algorithm (3 frames):")
	assert.Contains(t, out, "[ 7 faults ]")
	assert.Contains(t, out, "LRU Algorithm (3 frames):")
	assert.Contains(t, out, "[ 10 faults ]")
}

func TestCmd_RunSingleAlgorithm(t *testing.T) {
	out, err := runApp(t, "", RunCommand.Name, "-f", "4", "-a", "lru", "--no-color", beladyString)
	require.NoError(t, err)

	assert.Contains(t, out, "LRU Algorithm (4 frames):")
	assert.Contains(t, out, "[ 8 faults ]")
	assert.NotContains(t, out, "Optimal Algorithm")
}

func TestCmd_RunCompactInput(t *testing.T) {
	out, err := runApp(t, "", RunCommand.Name, "--frames", "3", "--no-color", "123123")
	require.NoError(t, err)

	assert.Contains(t, out, "x  x  x  o  o  o")
	assert.Contains(t, out, "[ 3 faults ]")
}

func TestCmd_RunPrompt(t *testing.T) {
	out, err := runApp(t, "1 2 3 1 2 3\n3\n", RunCommand.Name, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Enter up to 30 page indices [1 - 5]")
	assert.Contains(t, out, "Enter number of frames:")
	assert.Contains(t, out, "Optimal Algorithm (3 frames):")
	assert.Contains(t, out, "[ 3 faults ]")
}

func TestCmd_RunPromptInvalidFrames(t *testing.T) {
	_, err := runApp(t, "1 2 3\nmany\n", RunCommand.Name)
	assert.ErrorContains(t, err, "invalid frame count")
}

func TestCmd_RunEnvironmentConfig(t *testing.T) {
	t.Setenv("PAGESIM_FRAMES", "4")
	t.Setenv("PAGESIM_COLOR", "false")

	out, err := runApp(t, "", RunCommand.Name, beladyString)
	require.NoError(t, err)
	assert.Contains(t, out, "Optimal Algorithm (4 frames):")
	assert.Contains(t, out, "[ 6 faults ]")
}

func TestCmd_RunConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"frames": 5, "algorithms": ["optimal"], "color": false}`), 0644))

	out, err := runApp(t, "", RunCommand.Name, "--config", cfg, beladyString)
	require.NoError(t, err)
	assert.Contains(t, out, "Optimal Algorithm (5 frames):")
	assert.Contains(t, out, "[ 5 faults ]")
}

func TestCmd_RunErrors(t *testing.T) {
	_, err := runApp(t, "", RunCommand.Name, "--frames", "0", beladyString)
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = runApp(t, "", RunCommand.Name, "--frames", "3", "1 9")
	assert.True(t, paging.IsErrorCode(err, paging.ErrCodeInvalidPage), "got %v", err)

	_, err = runApp(t, "", RunCommand.Name, "--frames", "3", "-a", "fifo", "1 2")
	assert.Error(t, err)
}

func TestCmd_GenerateAndRunTrace(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "stream.trace")

	_, err := runApp(t, "", GenerateCommand.Name,
		"--output", trace,
		"--length", "200",
		"--max-page", "20",
		"--locality", "0.8",
		"--seed", "42",
		"--compression", "lz4")
	require.NoError(t, err)

	stream, err := tracefile.Read(trace)
	require.NoError(t, err)
	assert.Equal(t, 200, stream.Len())
	assert.Equal(t, paging.PageID(20), stream.MaxPage())

	out, err := runApp(t, "", RunCommand.Name, "--frames", "4", "--trace-file", trace)
	require.NoError(t, err)
	assert.Contains(t, out, "Ref String (200 entries):")
	assert.Contains(t, out, "Optimal Algorithm (4 frames):")
}

func TestCmd_GenerateIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.trace")
	second := filepath.Join(dir, "second.trace")

	for _, path := range []string{first, second} {
		_, err := runApp(t, "", GenerateCommand.Name, "-o", path, "--length", "50", "--seed", "7")
		require.NoError(t, err)
	}

	a, err := tracefile.Read(first)
	require.NoError(t, err)
	b, err := tracefile.Read(second)
	require.NoError(t, err)
	assert.Equal(t, a.Pages(), b.Pages())
}

func TestCmd_GenerateRequiresOutput(t *testing.T) {
	_, err := runApp(t, "", GenerateCommand.Name, "--length", "10")
	assert.Error(t, err)
}

func TestCmd_Sweep(t *testing.T) {
	out, err := runApp(t, "", SweepCommand.Name, "--algorithm", "lru", beladyString)
	require.NoError(t, err)

	assert.Contains(t, out, "No Belady's anomaly detected")
	assert.Contains(t, out, "lru")
}

func TestCmd_SweepWideRangeWithWorkers(t *testing.T) {
	out, err := runApp(t, "", SweepCommand.Name, "-a", "optimal", "--max-frames", "500", "--workers", "2", beladyString)
	require.NoError(t, err)
	assert.Contains(t, out, "No Belady's anomaly detected")
}

func TestCmd_SweepRequiresStream(t *testing.T) {
	_, err := runApp(t, "", SweepCommand.Name)
	assert.ErrorContains(t, err, "requires a reference string")

	_, err = runApp(t, "", SweepCommand.Name, "--min-frames", "4", "--max-frames", "2", beladyString)
	assert.True(t, paging.IsErrorCode(err, paging.ErrCodeInvalidRange), "got %v", err)
}

func TestCmd_Study(t *testing.T) {
	out, err := runApp(t, "", StudyCommand.Name,
		"--streams", "8",
		"--length", "60",
		"--frames", "3",
		"--max-page", "8",
		"--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Study: 8 streams of 60 references, 3 frames")
	assert.Contains(t, out, "Optimal beat LRU on")
}

func TestCmd_StudyRejectsNoStreams(t *testing.T) {
	_, err := runApp(t, "", StudyCommand.Name, "--streams", "0")
	assert.ErrorContains(t, err, "streams must be greater than 0")
}

func TestSummarizeStudy(t *testing.T) {
	result := func(algorithm paging.Algorithm, faults int) *paging.Result {
		return &paging.Result{Algorithm: algorithm, Faults: faults, Trace: make([]bool, 10)}
	}
	algorithms := []paging.Algorithm{paging.AlgorithmOptimal, paging.AlgorithmLRU}
	results := [][]*paging.Result{
		{result(paging.AlgorithmOptimal, 4), result(paging.AlgorithmLRU, 6)},
		{result(paging.AlgorithmOptimal, 5), result(paging.AlgorithmLRU, 5)},
		{result(paging.AlgorithmOptimal, 3), result(paging.AlgorithmLRU, 7)},
	}

	summary := summarizeStudy(results, algorithms)

	require.Len(t, summary.Algorithms, 2)
	assert.Equal(t, paging.AlgorithmOptimal, summary.Algorithms[0].Algorithm)
	assert.InDelta(t, 4.0, summary.Algorithms[0].Faults.Mean, 1e-9)
	assert.InDelta(t, 6.0, summary.Algorithms[1].Faults.Mean, 1e-9)
	assert.InDelta(t, 0.6, summary.Algorithms[1].FaultRate.Mean, 1e-9)
	assert.True(t, summary.Compared)
	assert.Equal(t, 2, summary.OptimalWins)
	assert.Equal(t, 1, summary.Ties)
}

func TestSummarizeStudy_SingleAlgorithm(t *testing.T) {
	results := [][]*paging.Result{{{Algorithm: paging.AlgorithmLRU, Faults: 3}}}

	summary := summarizeStudy(results, []paging.Algorithm{paging.AlgorithmLRU})
	assert.False(t, summary.Compared)
	assert.Zero(t, summary.OptimalWins)
}
