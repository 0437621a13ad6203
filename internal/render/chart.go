package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/idlab-discover/drivescore-cli/internal/partition"
)

// Formatter renders a slice value for display.
type Formatter func(v float64) string

// ChartHandle is a drawn partition chart. Dispose releases whatever backs it;
// a disposed handle must not be used again.
type ChartHandle interface {
	ID() string
	Location() string
	Dispose() error
}

// ChartSurface draws a partition series and hands back a disposable handle.
type ChartSurface interface {
	Draw(series partition.Series, format Formatter) (ChartHandle, error)
}

// Supported image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ImageSurface renders pie charts to image files in Dir.
type ImageSurface struct {
	Dir    string
	Format string // png (default) or svg
	Width  int
	Height int
}

// ParseImageFormat normalizes an image format name.
func ParseImageFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (expected png|svg)", s)
	}
}

// Draw writes the series as a pie chart to a new file named after a fresh id.
func (s *ImageSurface) Draw(series partition.Series, format Formatter) (ChartHandle, error) {
	imgFormat, err := ParseImageFormat(s.Format)
	if err != nil {
		return nil, err
	}
	provider := chart.PNG
	if imgFormat == FormatSVG {
		provider = chart.SVG
	}

	dir := strings.TrimSpace(s.Dir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path := filepath.Join(dir, "partition-"+id+"."+imgFormat)

	pie := chart.PieChart{
		Title:  "Behavior Categories",
		Width:  orDefault(s.Width, 640),
		Height: orDefault(s.Height, 640),
		Values: pieValues(series, format),
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pie.Render(provider, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	logf("", "chart %s written to %s", id, path)
	return &fileHandle{id: id, path: path}, nil
}

func pieValues(series partition.Series, format Formatter) []chart.Value {
	if format == nil {
		format = partition.FormatPercent
	}
	values := make([]chart.Value, 0, len(series))
	for _, sl := range series {
		c := drawing.Color{R: sl.Color.R, G: sl.Color.G, B: sl.Color.B, A: 255}
		values = append(values, chart.Value{
			Label: sl.Label + ": " + format(sl.Value),
			Value: sl.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
		})
	}
	return values
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type fileHandle struct {
	id   string
	path string

	once sync.Once
	err  error
}

func (h *fileHandle) ID() string       { return h.id }
func (h *fileHandle) Location() string { return h.path }

func (h *fileHandle) Dispose() error {
	h.once.Do(func() {
		err := os.Remove(h.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.err = err
		}
	})
	return h.err
}

// MemorySurface keeps drawn charts in memory. It backs --no-chart and tests.
type MemorySurface struct {
	mu   sync.Mutex
	live map[string]*MemoryChart
	// Err, when set, is returned by Draw.
	Err error
}

// MemoryChart is a chart held by a MemorySurface.
type MemoryChart struct {
	id      string
	Series  partition.Series
	Labels  []string
	surface *MemorySurface
}

func (c *MemoryChart) ID() string       { return c.id }
func (c *MemoryChart) Location() string { return "" }

func (c *MemoryChart) Dispose() error {
	c.surface.mu.Lock()
	defer c.surface.mu.Unlock()
	delete(c.surface.live, c.id)
	return nil
}

// Draw records the series and its formatted labels.
func (m *MemorySurface) Draw(series partition.Series, format Formatter) (ChartHandle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	values := pieValues(series, format)
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = v.Label
	}

	c := &MemoryChart{id: uuid.NewString(), Series: series, Labels: labels, surface: m}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live == nil {
		m.live = map[string]*MemoryChart{}
	}
	m.live[c.id] = c
	return c, nil
}

// Live returns the ids of charts drawn and not yet disposed.
func (m *MemorySurface) Live() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.live))
	for id := range m.live {
		out = append(out, id)
	}
	return out
}
