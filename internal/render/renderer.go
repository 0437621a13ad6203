// Package render turns a classification outcome into region content: a
// bounded table preview, the contribution partition chart and error text.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/idlab-discover/drivescore-cli/internal/classify"
	"github.com/idlab-discover/drivescore-cli/internal/display"
	"github.com/idlab-discover/drivescore-cli/internal/partition"
	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

// Renderer writes results into the result, chart and error regions. It owns
// at most one live chart; drawing a new chart disposes the previous one first.
type Renderer struct {
	regions display.Regions
	surface ChartSurface

	mu    sync.Mutex
	chart ChartHandle
}

// NewRenderer creates a renderer. A nil surface keeps charts in memory.
func NewRenderer(regions display.Regions, surface ChartSurface) *Renderer {
	if surface == nil {
		surface = &MemorySurface{}
	}
	return &Renderer{regions: regions, surface: surface}
}

// RenderTable replaces the result region with the first PreviewRows rows and
// the aggregate percentage, then shows the region.
func (r *Renderer) RenderTable(rows []classify.Row, aggressivePercentage float64) error {
	var sb strings.Builder
	sb.WriteString(SectionTitle("Classification preview"))
	sb.WriteString("\n")
	if err := writeTable(&sb, classify.ColumnNames, previewCells(rows)); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if len(rows) > PreviewRows {
		sb.WriteString(ui.Dim.Render(fmt.Sprintf("showing %d of %d rows", PreviewRows, len(rows))))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(ui.FormatKeyValue(AggregateLabel, ui.Highlight.Render(partition.FormatPercent(aggressivePercentage))))

	r.regions.Result.SetContent(sb.String())
	r.regions.Result.Show()
	return nil
}

// AggregateLabel prefixes the aggregate percentage in the result region.
const AggregateLabel = "Aggressive driving"

// SectionTitle renders a region heading.
func SectionTitle(s string) string { return ui.SectionHeader.Render(s) }

// RenderPartition computes the six-way partition, replaces the current chart
// with a freshly drawn one and writes the legend to the chart region.
func (r *Renderer) RenderPartition(aggressivePercentage float64, contributions map[partition.Factor]float64) error {
	series := partition.Compute(aggressivePercentage, contributions)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.disposeLocked()

	h, err := r.surface.Draw(series, partition.FormatPercent)
	if err != nil {
		return fmt.Errorf("draw partition chart: %w", err)
	}
	r.chart = h

	r.regions.Chart.SetContent(legend(series, h))
	r.regions.Chart.Show()
	return nil
}

// RenderError writes message verbatim to the error region and shows it.
func (r *Renderer) RenderError(message string) {
	r.regions.Error.SetContent(message)
	r.regions.Error.Show()
}

// Chart returns the live chart, or nil.
func (r *Renderer) Chart() ChartHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chart
}

// Close disposes the live chart, if any.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.chart
	r.chart = nil
	if h == nil {
		return nil
	}
	return h.Dispose()
}

func (r *Renderer) disposeLocked() {
	if r.chart == nil {
		return
	}
	if err := r.chart.Dispose(); err != nil {
		logf("", "dispose chart %s: %v", r.chart.ID(), err)
	}
	r.chart = nil
}

func legend(series partition.Series, h ChartHandle) string {
	var sb strings.Builder
	sb.WriteString(SectionTitle("Behavior categories"))
	sb.WriteString("\n")
	for _, sl := range series {
		sb.WriteString(ui.Swatch(sl.Color.Hex()))
		sb.WriteString(" ")
		sb.WriteString(sl.Tooltip())
		sb.WriteString("\n")
	}
	if loc := h.Location(); loc != "" {
		sb.WriteString("\n")
		sb.WriteString(ui.FormatKeyValue("Chart", ui.Secondary.Render(loc)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
