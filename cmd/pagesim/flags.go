package main

import (
	"github.com/urfave/cli/v2"
)

var (
	ConfigFlag = cli.PathFlag{
		Name:  "config",
		Usage: "JSON configuration file (defaults and PAGESIM_* environment otherwise)",
	}
	FramesFlag = cli.IntFlag{
		Name:    "frames",
		Aliases: []string{"f"},
		Usage:   "number of physical frames",
	}
	AlgorithmFlag = cli.StringSliceFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "replacement policy to run (\"optimal\", \"lru\"); repeatable",
	}
	MaxPageFlag = cli.IntFlag{
		Name:  "max-page",
		Usage: "largest valid page id",
	}
	TraceFileFlag = cli.PathFlag{
		Name:  "trace-file",
		Usage: "read the reference stream from a trace file",
	}
	NoColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable coloured hit/miss marks",
	}
	MinFramesFlag = cli.IntFlag{
		Name:  "min-frames",
		Usage: "smallest frame count of the sweep",
		Value: 1,
	}
	MaxFramesFlag = cli.IntFlag{
		Name:  "max-frames",
		Usage: "largest frame count of the sweep (0 = number of distinct pages)",
	}
	OutputFlag = cli.PathFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "trace file to write",
		Required: true,
	}
	LengthFlag = cli.IntFlag{
		Name:  "length",
		Usage: "number of references per generated stream",
		Value: 100,
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed of the generator",
		Value: 1,
	}
	LocalityFlag = cli.Float64Flag{
		Name:  "locality",
		Usage: "probability of reusing a recently referenced page (0 = uniform)",
	}
	WorkingSetFlag = cli.IntFlag{
		Name:  "working-set",
		Usage: "number of recent pages eligible for reuse",
		Value: 4,
	}
	CompressionFlag = cli.StringFlag{
		Name:  "compression",
		Usage: "trace payload compression (\"none\", \"lz4\", \"snappy\")",
	}
	StreamsFlag = cli.IntFlag{
		Name:  "streams",
		Usage: "number of generated streams",
		Value: 100,
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of concurrent replays (0 = number of CPUs)",
	}
)
