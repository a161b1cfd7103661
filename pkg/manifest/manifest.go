// Package manifest writes a YAML summary next to a generated image.
package manifest

// SummaryManifest is the structure of the <output>.summary.yaml file.
// It records what a command read, what it wrote and its top results,
// so a run can be checked without opening the image.
type SummaryManifest struct {
	GeneratedAt     string   `yaml:"generated_at"`
	Command         string   `yaml:"command"`
	Input           string   `yaml:"input"`
	Output          string   `yaml:"output"`
	OutputSizeBytes int64    `yaml:"output_size_bytes,omitempty"`
	TotalEntries    int      `yaml:"total_entries"`
	TopEntries      []string `yaml:"top_entries"`
	Unmatched       []string `yaml:"unmatched_regions,omitempty"`
}
