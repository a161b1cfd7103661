package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/cohortviz/internal/common"
	dbpkg "github.com/dtnitsch/cohortviz/pkg/db"
)

// RunsAction lists recorded runs, newest first
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs found. Record one with 'cohortviz --record repeats <file>'")
		return nil
	}

	if c.String("format") == "yaml" {
		return common.PrintYAML(os.Stdout, runs)
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			strconv.FormatInt(r.RunID, 10),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Command,
			r.InputPath,
			r.OutputPath,
			strconv.Itoa(r.EntryCount),
		}
	}
	common.PrintTable(os.Stdout, []string{"ID", "Created", "Command", "Input", "Output", "Entries"}, rows)

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'cohortviz runs show <id>' to see entries\n")
	return nil
}

// RunAction shows one run and its entries
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	entries, err := database.GetRunEntries(runID)
	if err != nil {
		return err
	}

	if c.String("format") == "yaml" {
		return common.PrintYAML(os.Stdout, struct {
			Run     *dbpkg.Run       `yaml:"run"`
			Entries []dbpkg.RunEntry `yaml:"entries"`
		}{run, entries})
	}

	color.Cyan("Run %d: %s", run.RunID, run.Command)
	fmt.Printf("Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Input:    %s\n", run.InputPath)
	fmt.Printf("Output:   %s\n", run.OutputPath)
	fmt.Printf("Entries:  %d\n\n", run.EntryCount)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.Rank), e.Key, e.Category, common.FormatCount(e.Count)})
	}
	common.PrintTable(os.Stdout, []string{"Rank", "Key", "Category", "Count"}, rows)
	return nil
}
