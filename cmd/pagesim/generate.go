package main

import (
	"github.com/sibexico/pagesim/logger"
	"github.com/sibexico/pagesim/tracefile"
	"github.com/sibexico/pagesim/workload"
	"github.com/urfave/cli/v2"
)

// GenerateCommand writes a generated reference stream to a trace file
var GenerateCommand = cli.Command{
	Action: generateAction,
	Name:   "generate",
	Usage:  "generate a random reference stream and write it as a trace file",
	Flags: []cli.Flag{
		&ConfigFlag,
		&OutputFlag,
		&LengthFlag,
		&SeedFlag,
		&MaxPageFlag,
		&LocalityFlag,
		&WorkingSetFlag,
		&CompressionFlag,
		&logger.LogLevelFlag,
	},
	Description: "Streams are uniform unless --locality is set; the same seed yields the same stream.",
}

func generateAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, ctx.App.ErrWriter)

	compression, err := tracefile.ParseCompression(cfg.TraceCompression)
	if err != nil {
		return err
	}

	spec := workloadSpec(ctx, cfg)
	stream, err := workload.Generate(newRand(ctx.Int64(SeedFlag.Name)), spec)
	if err != nil {
		return err
	}

	output := ctx.Path(OutputFlag.Name)
	if err := tracefile.Write(output, stream, compression); err != nil {
		return err
	}
	log.Info("Trace written",
		"path", output,
		"kind", spec.Kind,
		"references", stream.Len(),
		"distinct", stream.Distinct(),
		"compression", compression)
	return nil
}
