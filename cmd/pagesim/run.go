package main

import (
	"bufio"

	"github.com/sibexico/pagesim/logger"
	"github.com/sibexico/pagesim/paging"
	"github.com/sibexico/pagesim/report"
	"github.com/urfave/cli/v2"
)

// RunCommand replays one reference string against the selected policies
var RunCommand = cli.Command{
	Action:    runAction,
	Name:      "run",
	Usage:     "replay a reference string against each replacement policy",
	ArgsUsage: "[REFSTRING]",
	Flags: []cli.Flag{
		&ConfigFlag,
		&FramesFlag,
		&AlgorithmFlag,
		&MaxPageFlag,
		&TraceFileFlag,
		&NoColorFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Prints the hit/miss trace and fault count of every policy for REFSTRING.
Without REFSTRING or --trace-file the reference string and frame count
are read from standard input.`,
}

func runAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	stream, ok, err := loadStream(ctx, cfg)
	if err != nil {
		return err
	}
	if !ok {
		stream, err = prompt(bufio.NewReader(ctx.App.Reader), ctx.App.Writer, cfg, !ctx.IsSet(FramesFlag.Name))
		if err != nil {
			return err
		}
	}

	algorithms, err := paging.ParseAlgorithms(cfg.Algorithms)
	if err != nil {
		return err
	}

	log, sim := newSimulator(ctx, cfg)
	log.Debug("Replaying reference stream", "references", stream.Len(), "frames", cfg.Frames, "algorithms", algorithms)

	results, err := sim.Compare(ctx.Context, stream, cfg.Frames, algorithms...)
	if err != nil {
		return err
	}

	if err := report.Results(ctx.App.Writer, stream, results, report.Options{Color: cfg.Color}); err != nil {
		return err
	}
	logMetrics(sim, log)
	return nil
}
