package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sibexico/pagesim/config"
	"github.com/sibexico/pagesim/logger"
	"github.com/sibexico/pagesim/paging"
	"github.com/sibexico/pagesim/tracefile"
	"github.com/sibexico/pagesim/workload"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the configuration file, or the environment when none is
// given, and applies the command line overrides
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := ctx.Path(ConfigFlag.Name); path != "" {
		var err error
		cfg, err = config.LoadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.LoadConfigFromEnv()
	}

	if ctx.IsSet(FramesFlag.Name) {
		cfg.Frames = ctx.Int(FramesFlag.Name)
	}
	if ctx.IsSet(AlgorithmFlag.Name) {
		cfg.Algorithms = ctx.StringSlice(AlgorithmFlag.Name)
	}
	if ctx.IsSet(MaxPageFlag.Name) {
		cfg.MaxPage = ctx.Int(MaxPageFlag.Name)
	}
	if ctx.IsSet(CompressionFlag.Name) {
		cfg.TraceCompression = ctx.String(CompressionFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		cfg.Workers = ctx.Int(WorkersFlag.Name)
	}
	if ctx.IsSet(logger.LogLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logger.LogLevelFlag.Name)
	}
	if ctx.Bool(NoColorFlag.Name) {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// newSimulator builds the logger and simulator for cfg. Metrics are nil when
// disabled. Concurrent runs are limited to cfg.Workers.
func newSimulator(ctx *cli.Context, cfg *config.Config) (*slog.Logger, *paging.Simulator) {
	log := logger.New(cfg.LogLevel, ctx.App.ErrWriter)

	var metrics *paging.Metrics
	if cfg.EnableMetrics {
		metrics = paging.NewMetrics()
	}
	return log, paging.NewSimulator(log, metrics).WithWorkers(cfg.Workers)
}

// logMetrics reports the simulator metrics if they are enabled
func logMetrics(sim *paging.Simulator, log *slog.Logger) {
	if metrics := sim.Metrics(); metrics != nil {
		metrics.LogMetrics(log)
	}
}

// loadStream returns the stream from --trace-file or the command arguments.
// ok is false when neither was given.
func loadStream(ctx *cli.Context, cfg *config.Config) (stream paging.ReferenceStream, ok bool, err error) {
	if path := ctx.Path(TraceFileFlag.Name); path != "" {
		stream, err = tracefile.Read(path)
		return stream, err == nil, err
	}
	if ctx.Args().Present() {
		input := strings.Join(ctx.Args().Slice(), " ")
		stream, err = tracefile.ParseReferenceString(input, cfg.PageDomain(), cfg.MaxReferences)
		return stream, err == nil, err
	}
	return paging.ReferenceStream{}, false, nil
}

// prompt asks for a reference string and, unless askFrames is false, a frame
// count on r
func prompt(r *bufio.Reader, w io.Writer, cfg *config.Config, askFrames bool) (paging.ReferenceStream, error) {
	if cfg.MaxReferences > 0 {
		fmt.Fprintf(w, "Enter up to %d page indices [1 - %d]\n > ", cfg.MaxReferences, cfg.MaxPage)
	} else {
		fmt.Fprintf(w, "Enter page indices [1 - %d]\n > ", cfg.MaxPage)
	}
	line, err := readLine(r)
	if err != nil {
		return paging.ReferenceStream{}, err
	}
	stream, err := tracefile.ParseReferenceString(line, cfg.PageDomain(), cfg.MaxReferences)
	if err != nil {
		return paging.ReferenceStream{}, err
	}

	if askFrames {
		fmt.Fprintf(w, "Enter number of frames:\n > ")
		line, err = readLine(r)
		if err != nil {
			return paging.ReferenceStream{}, err
		}
		frames, err := strconv.Atoi(line)
		if err != nil {
			return paging.ReferenceStream{}, errors.Wrapf(err, "invalid frame count %q", line)
		}
		cfg.Frames = frames
	}
	fmt.Fprintln(w)
	return stream, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "cannot read input")
	}
	return strings.TrimSpace(line), nil
}

// workloadSpec describes generated streams from the command line flags
func workloadSpec(ctx *cli.Context, cfg *config.Config) workload.Spec {
	spec := workload.Spec{
		Kind:    workload.KindUniform,
		Length:  ctx.Int(LengthFlag.Name),
		MaxPage: cfg.PageDomain(),
	}
	if reuse := ctx.Float64(LocalityFlag.Name); reuse > 0 {
		spec.Kind = workload.KindLocality
		spec.WorkingSet = ctx.Int(WorkingSetFlag.Name)
		spec.Reuse = reuse
	}
	return spec
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
