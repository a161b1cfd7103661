package manifest

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/cohortviz/pkg/mapreduce"
	"github.com/dtnitsch/cohortviz/pkg/storage"
)

// TopN is how many entries the manifest lists.
const TopN = 25

// RunResult is what one command produced.
type RunResult struct {
	Command    string
	InputPath  string
	OutputPath string
	Entries    []mapreduce.Entry
	Unmatched  []string
}

// Path returns the manifest path for an output image.
func Path(outputPath string) string {
	return outputPath + ".summary.yaml"
}

// GenerateSummary writes the manifest for result next to its output image.
// Returns the path to the generated manifest file.
func GenerateSummary(result RunResult) (string, error) {
	manifest := SummaryManifest{
		GeneratedAt:  time.Now().Format(time.RFC3339),
		Command:      result.Command,
		Input:        result.InputPath,
		Output:       result.OutputPath,
		TotalEntries: len(result.Entries),
		TopEntries:   mapreduce.TopKeywords(result.Entries, TopN),
		Unmatched:    result.Unmatched,
	}

	if stats, err := storage.GetFileStats(result.OutputPath); err == nil {
		manifest.OutputSizeBytes = stats.SizeBytes
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	manifestPath := Path(result.OutputPath)
	if err := storage.SaveFile(manifestPath, data); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
