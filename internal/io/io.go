package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/idlab-discover/drivescore-cli/internal/classify"
	"github.com/idlab-discover/drivescore-cli/internal/partition"
	"github.com/idlab-discover/drivescore-cli/internal/render"
)

// Summary is the exported form of a successful classification.
type Summary struct {
	File                 string              `json:"file" yaml:"file"`
	AggressivePercentage string              `json:"aggressive_percentage" yaml:"aggressive_percentage"`
	Contributions        map[string]float64  `json:"contributions" yaml:"contributions"`
	Partition            []SummarySlice      `json:"partition" yaml:"partition"`
	TotalRows            int                 `json:"total_rows" yaml:"total_rows"`
	Preview              []map[string]string `json:"preview" yaml:"preview"`
}

// SummarySlice is one partition bucket.
type SummarySlice struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Shown string  `json:"shown" yaml:"shown"`
	Color string  `json:"color" yaml:"color"`
}

// NewSummary builds a Summary for the outcome of uploading fileName.
func NewSummary(fileName string, s classify.Success) Summary {
	contrib := make(map[string]float64, len(s.Contributions))
	for f, v := range s.Contributions {
		contrib[string(f)] = v
	}

	series := partition.Compute(s.AggressivePercentage, s.Contributions)
	slices := make([]SummarySlice, 0, len(series))
	for _, sl := range series {
		slices = append(slices, SummarySlice{
			Label: sl.Label,
			Value: sl.Value,
			Shown: partition.FormatPercent(sl.Value),
			Color: sl.Color.Hex(),
		})
	}

	n := len(s.Rows)
	if n > render.PreviewRows {
		n = render.PreviewRows
	}
	preview := make([]map[string]string, 0, n)
	for _, r := range s.Rows[:n] {
		row := make(map[string]string, len(classify.ColumnNames))
		for i, v := range r.Columns() {
			row[classify.ColumnNames[i]] = v
		}
		preview = append(preview, row)
	}

	return Summary{
		File:                 fileName,
		AggressivePercentage: partition.FormatPercent(s.AggressivePercentage),
		Contributions:        contrib,
		Partition:            slices,
		TotalRows:            len(s.Rows),
		Preview:              preview,
	}
}

// resolveFormat maps "auto" (or "") to a format based on the file extension.
func resolveFormat(path, format string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return "json", nil
		}
		return "yaml", nil
	case "yaml", "yml":
		return "yaml", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported summary format: %q", format)
	}
}

// WriteSummary writes summary to path as YAML or JSON.
// The format parameter can be "yaml", "json", or "auto" (default).
// If "auto", the format is determined from the file extension.
func WriteSummary(summary Summary, path string, format string) error {
	actual, err := resolveFormat(path, format)
	if err != nil {
		return err
	}

	var data []byte
	if actual == "json" {
		data, err = json.MarshalIndent(summary, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(summary)
	}
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
