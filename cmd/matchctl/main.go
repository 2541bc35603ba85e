package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "matchctl",
		Usage: "Operate the candidate/job matching engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides STORAGE_PATH)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: applyGlobalFlags,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import jobs and candidates from a JSON fixture",
				ArgsUsage: "<file>",
				Action:    importCommand,
			},
			{
				Name:   "embed",
				Usage:  "Generate embeddings for stored records that lack one",
				Action: embedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Records to embed: jobs, candidates or all",
						Value: "all",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum records per kind, 0 for all",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Rank candidates for one job",
				Action: matchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "job",
						Aliases:  []string{"j"},
						Usage:    "Job id",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force-refresh",
						Usage: "Bypass cached results",
					},
				}, optionFlags()...),
			},
			{
				Name:   "batch",
				Usage:  "Rank candidates for several jobs",
				Action: batchCommand,
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:     "job",
						Aliases:  []string{"j"},
						Usage:    "Job id, repeatable",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-concurrent",
						Usage: "Jobs matched in parallel, 0 for the configured default",
					},
				}, optionFlags()...),
			},
			{
				Name:   "jobs",
				Usage:  "List jobs similar to a candidate",
				Action: jobsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "candidate",
						Aliases:  []string{"c"},
						Usage:    "Candidate id",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum jobs returned",
						Value: 20,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum cosine similarity",
						Value: 0.3,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show embedding coverage and cache counters",
				Action: statsCommand,
			},
			{
				Name:   "invalidate",
				Usage:  "Drop cached results for a job or a candidate",
				Action: invalidateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "job",
						Usage: "Job id",
					},
					&cli.StringFlag{
						Name:  "candidate",
						Usage: "Candidate id",
					},
				},
			},
		},
	}
}

func optionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "vector-top-k",
			Usage: "Candidates kept after vector search",
		},
		&cli.IntFlag{
			Name:  "ai-top-k",
			Usage: "Candidates sent to the model",
		},
		&cli.Float64Flag{
			Name:  "min-ai-score",
			Usage: "Drop results scored below this",
		},
		&cli.Float64Flag{
			Name:  "min-similarity",
			Usage: "Minimum cosine similarity for the shortlist",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Candidate id never shortlisted, repeatable",
		},
		&cli.StringFlag{
			Name:  "language",
			Usage: "Language of the model reasoning",
		},
		&cli.StringFlag{
			Name:  "location",
			Usage: "Only consider candidates in this location",
		},
	}
}

// applyGlobalFlags maps global flags onto the environment read by config.Load.
func applyGlobalFlags(c *cli.Context) error {
	if c.IsSet("db") {
		if err := os.Setenv("STORAGE_PATH", c.String("db")); err != nil {
			return err
		}
	}
	if c.IsSet("log-level") {
		if err := os.Setenv("LOG_LEVEL", c.String("log-level")); err != nil {
			return err
		}
	}
	return nil
}
