package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	inputFlag   = "input"
	outputFlag  = "output"
	seedFlag    = "seed"
	formatFlag  = "format"
	verboseFlag = "verbose"
	copyFlag    = "copy"
	tuningFlag  = "tuning"
	gamesFlag   = "games"
	workersFlag = "workers"
	dbFlag      = "db"
	playersFlag = "players"

	stdoutCLIName = "-"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func main() {
	var opts simulateOptions
	app := &cli.App{
		Name:    "football-sim-cli",
		Usage:   "Simulate American football games from rated rosters",
		Version: semanticVersion,
		Commands: []*cli.Command{
			{
				Name:  "simulate",
				Usage: "Play one game, or a batch of games, and print the box score",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        inputFlag,
						Aliases:     []string{"i"},
						Usage:       "The URL or path to a JSON or YAML roster file with two teams",
						Destination: &opts.input,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        outputFlag,
						Aliases:     []string{"o"},
						Usage:       "Where to write the result. Can be a file path or \"-\" (for stdout).",
						Value:       stdoutCLIName,
						Destination: &opts.output,
					},
					&cli.Int64Flag{
						Name:  seedFlag,
						Usage: "Seed for reproducible games. Batches use seed, seed+1, ...",
					},
					&cli.StringFlag{
						Name:        formatFlag,
						Aliases:     []string{"f"},
						Usage:       "Output format: table, json or yaml",
						Value:       formatTable,
						Destination: &opts.format,
					},
					&cli.BoolFlag{
						Name:        verboseFlag,
						Aliases:     []string{"v"},
						Usage:       "Log play-by-play to stderr",
						Destination: &opts.verbose,
					},
					&cli.BoolFlag{
						Name:        copyFlag,
						Usage:       "Also copy the result to the clipboard",
						Destination: &opts.copy,
					},
					&cli.StringFlag{
						Name:        tuningFlag,
						Usage:       "YAML file overriding engine tuning tables",
						Destination: &opts.tuning,
						EnvVars:     []string{"TUNING_FILE"},
					},
					&cli.IntFlag{
						Name:        gamesFlag,
						Aliases:     []string{"n"},
						Usage:       "Number of games to play",
						Value:       1,
						Destination: &opts.games,
					},
					&cli.IntFlag{
						Name:        workersFlag,
						Usage:       "Games played in parallel when --games > 1",
						Value:       4,
						Destination: &opts.workers,
						EnvVars:     []string{"SIM_WORKERS"},
					},
					&cli.StringFlag{
						Name:        dbFlag,
						Usage:       "SQLite file to record every simulated game in",
						Destination: &opts.db,
					},
					&cli.BoolFlag{
						Name:        playersFlag,
						Usage:       "List per-player stats under the table output",
						Destination: &opts.players,
					},
				},
				Action: func(cCtx *cli.Context) error {
					if cCtx.IsSet(seedFlag) {
						seed := cCtx.Int64(seedFlag)
						opts.seed = &seed
					}
					return runSimulate(cCtx.Context, opts, os.Stdout)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
