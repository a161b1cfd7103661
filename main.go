package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cohortviz/internal/analyze"
	"github.com/dtnitsch/cohortviz/internal/choropleth"
	"github.com/dtnitsch/cohortviz/internal/db"
	"github.com/dtnitsch/cohortviz/internal/wordcloud"
	"github.com/dtnitsch/cohortviz/pkg/help"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "cohortviz",
		Usage: "Name statistics and regional charts for cohort rosters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "cohortviz.yaml",
				Usage:   "YAML file with chart presets",
				EnvVars: []string{"COHORTVIZ_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record the run in the history database",
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "History database path (default: next to the binary)",
				EnvVars: []string{"COHORTVIZ_DB"},
			},
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Write a YAML summary next to the output image",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "repeats",
				Usage:     "Count substrings shared across names and draw a bar chart",
				ArgsUsage: "<names.csv|xlsx|html>",
				Flags: append(barFlags(),
					&cli.IntFlag{
						Name:  "min-length",
						Value: 2,
						Usage: "Shortest substring to count",
					},
				),
				Action: analyze.RepeatsAction,
			},
			{
				Name:      "suffixes",
				Usage:     "Find two-character name endings shared across categories",
				ArgsUsage: "<names.csv|xlsx|html>",
				Flags: append(barFlags(),
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Column that groups names",
						Required: true,
					},
				),
				Action: analyze.SuffixesAction,
			},
			{
				Name:      "wordcloud",
				Usage:     "Draw surname, character or value frequencies as a word cloud",
				ArgsUsage: "<names.csv|xlsx|html>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "preset",
						Value: "surnames",
						Usage: "Word cloud preset from the config",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output PNG path",
					},
					&cli.StringFlag{
						Name:  "column",
						Usage: "Read words from this column instead of the name column",
					},
				},
				Action: wordcloud.WordCloudAction,
			},
			{
				Name:      "choropleth",
				Usage:     "Draw per-region counts on a boundary map",
				ArgsUsage: "<values.csv|xlsx|html>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "preset",
						Value: "china",
						Usage: "Map preset from the config (china, shandong, ...)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output PNG path",
					},
					&cli.StringFlag{
						Name:  "region-column",
						Usage: "Column holding region names",
					},
					&cli.StringFlag{
						Name:  "value-column",
						Usage: "Column holding values",
					},
					&cli.StringFlag{
						Name:  "url-template",
						Usage: "Boundary URL with {adcode} for the administrative code",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: ".cohortviz-cache",
						Usage: "Directory for downloaded boundaries (empty disables caching)",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "720h",
						Usage: "How long cached boundaries stay fresh (0 keeps them forever)",
					},
				},
				Action: choropleth.ChoroplethAction,
			},
			{
				Name:  "runs",
				Usage: "Inspect recorded runs",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List recorded runs, newest first",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "Maximum number of runs to show",
							},
							formatFlag(),
						},
						Action: db.RunsAction,
					},
					{
						Name:      "show",
						Usage:     "Show a run and its entries (defaults to the latest)",
						ArgsUsage: "[run-id]",
						Flags:     []cli.Flag{formatFlag()},
						Action:    db.RunAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML overview of commands and configuration",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func barFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of bars to draw (overrides the config)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output PNG path",
		},
		formatFlag(),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "table",
		Usage:   "Terminal output: table or yaml",
	}
}
