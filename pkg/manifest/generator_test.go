package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/cohortviz/pkg/mapreduce"
)

func TestGenerateSummary(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "china.png")
	if err := os.WriteFile(output, []byte("png!"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	path, err := GenerateSummary(RunResult{
		Command:    "choropleth",
		InputPath:  "provinces.csv",
		OutputPath: output,
		Entries:    []mapreduce.Entry{{Key: "山东", Count: 112}, {Key: "河北", Count: 16}},
		Unmatched:  []string{"火星省"},
	})
	if err != nil {
		t.Fatalf("GenerateSummary() error = %v", err)
	}
	if path != output+".summary.yaml" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var got SummaryManifest
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	if got.Command != "choropleth" || got.Input != "provinces.csv" {
		t.Errorf("manifest = %+v", got)
	}
	if got.OutputSizeBytes != 4 {
		t.Errorf("OutputSizeBytes = %d, want 4", got.OutputSizeBytes)
	}
	if got.TotalEntries != 2 || len(got.TopEntries) != 2 || got.TopEntries[0] != "山东:112" {
		t.Errorf("TopEntries = %v (total %d)", got.TopEntries, got.TotalEntries)
	}
	if len(got.Unmatched) != 1 || got.Unmatched[0] != "火星省" {
		t.Errorf("Unmatched = %v", got.Unmatched)
	}
	if got.GeneratedAt == "" {
		t.Error("GeneratedAt not set")
	}
}

func TestGenerateSummary_MissingImage(t *testing.T) {
	output := filepath.Join(t.TempDir(), "none.png")

	path, err := GenerateSummary(RunResult{Command: "repeats", OutputPath: output})
	if err != nil {
		t.Fatalf("GenerateSummary() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("manifest not written: %v", err)
	}
}
