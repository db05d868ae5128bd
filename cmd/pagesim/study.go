package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sibexico/pagesim/logger"
	"github.com/sibexico/pagesim/paging"
	"github.com/sibexico/pagesim/report"
	"github.com/sibexico/pagesim/workload"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// StudyCommand compares the policies over many generated streams
var StudyCommand = cli.Command{
	Action: studyAction,
	Name:   "study",
	Usage:  "compare replacement policies over many generated reference streams",
	Flags: []cli.Flag{
		&ConfigFlag,
		&StreamsFlag,
		&LengthFlag,
		&FramesFlag,
		&AlgorithmFlag,
		&MaxPageFlag,
		&SeedFlag,
		&LocalityFlag,
		&WorkingSetFlag,
		&WorkersFlag,
		&logger.LogLevelFlag,
	},
	Description: "Stream i is generated from seed+i, so a study is reproducible for a given seed.",
}

func studyAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	algorithms, err := paging.ParseAlgorithms(cfg.Algorithms)
	if err != nil {
		return err
	}

	streams := ctx.Int(StreamsFlag.Name)
	if streams <= 0 {
		return fmt.Errorf("streams must be greater than 0, got %d", streams)
	}
	spec := workloadSpec(ctx, cfg)
	seed := ctx.Int64(SeedFlag.Name)

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	log, sim := newSimulator(ctx, cfg)
	log.Info("Starting study", "streams", streams, "length", spec.Length, "frames", cfg.Frames, "workers", workers)
	start := time.Now()

	results := make([][]*paging.Result, streams)
	g, gctx := errgroup.WithContext(ctx.Context)
	g.SetLimit(workers)
	for i := range results {
		g.Go(func() error {
			stream, err := workload.Generate(newRand(seed+int64(i)), spec)
			if err != nil {
				return err
			}
			results[i], err = sim.Compare(gctx, stream, cfg.Frames, algorithms...)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summary := summarizeStudy(results, algorithms)
	summary.Streams = streams
	summary.Length = spec.Length
	summary.Frames = cfg.Frames

	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Info("Study finished", "elapsed", fmt.Sprintf("%vh %vm %vs", hours, minutes, seconds))

	if err := report.Study(ctx.App.Writer, summary); err != nil {
		return err
	}
	logMetrics(sim, log)
	return nil
}

// summarizeStudy aggregates per-stream results, each ordered like algorithms
func summarizeStudy(results [][]*paging.Result, algorithms []paging.Algorithm) report.StudyReport {
	var summary report.StudyReport

	optimal, lru := -1, -1
	for j, algorithm := range algorithms {
		faults := make([]float64, len(results))
		rates := make([]float64, len(results))
		for i, run := range results {
			faults[i] = float64(run[j].Faults)
			rates[i] = run[j].FaultRate()
		}
		summary.Algorithms = append(summary.Algorithms, report.AlgorithmSummary{
			Algorithm: algorithm,
			Faults:    report.Summarize(faults),
			FaultRate: report.Summarize(rates),
		})

		switch algorithm {
		case paging.AlgorithmOptimal:
			optimal = j
		case paging.AlgorithmLRU:
			lru = j
		}
	}

	if optimal >= 0 && lru >= 0 {
		summary.Compared = true
		for _, run := range results {
			switch {
			case run[optimal].Faults < run[lru].Faults:
				summary.OptimalWins++
			case run[optimal].Faults == run[lru].Faults:
				summary.Ties++
			}
		}
	}
	return summary
}
