package main

import (
	"github.com/cockroachdb/errors"
	"github.com/sibexico/pagesim/logger"
	"github.com/sibexico/pagesim/paging"
	"github.com/sibexico/pagesim/report"
	"github.com/urfave/cli/v2"
)

// SweepCommand replays one reference string over a range of frame counts
var SweepCommand = cli.Command{
	Action:    sweepAction,
	Name:      "sweep",
	Usage:     "replay a reference string for every frame count in a range and report Belady's anomaly",
	ArgsUsage: "REFSTRING",
	Flags: []cli.Flag{
		&ConfigFlag,
		&AlgorithmFlag,
		&MaxPageFlag,
		&TraceFileFlag,
		&MinFramesFlag,
		&MaxFramesFlag,
		&WorkersFlag,
		&logger.LogLevelFlag,
	},
}

func sweepAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	stream, ok, err := loadStream(ctx, cfg)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("sweep requires a reference string or --trace-file")
	}

	algorithms, err := paging.ParseAlgorithms(cfg.Algorithms)
	if err != nil {
		return err
	}

	minFrames := ctx.Int(MinFramesFlag.Name)
	maxFrames := ctx.Int(MaxFramesFlag.Name)
	if maxFrames == 0 {
		maxFrames = max(stream.Distinct(), minFrames)
	}

	log, sim := newSimulator(ctx, cfg)

	var (
		all       []*paging.Result
		anomalies []paging.Anomaly
	)
	for _, algorithm := range algorithms {
		results, err := sim.Sweep(ctx.Context, stream, algorithm, minFrames, maxFrames)
		if err != nil {
			return err
		}
		found := paging.DetectAnomalies(results)
		if len(found) > 0 {
			log.Warn("Belady's anomaly detected", "algorithm", algorithm, "count", len(found))
		}
		all = append(all, results...)
		anomalies = append(anomalies, found...)
	}

	if err := report.Sweep(ctx.App.Writer, all, anomalies); err != nil {
		return err
	}
	logMetrics(sim, log)
	return nil
}
