package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// PageSimApp data structure
var PageSimApp = cli.App{
	Name:     "Page Replacement Simulator",
	HelpName: "pagesim",
	Usage:    "replay page reference strings against Optimal and LRU replacement",
	Commands: []*cli.Command{
		&RunCommand,
		&SweepCommand,
		&GenerateCommand,
		&StudyCommand,
	},
}

func main() {
	if err := PageSimApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
