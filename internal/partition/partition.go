// Package partition splits an aggregate aggressiveness score into the six
// mutually exclusive categories shown in the behavior pie chart: one normal
// bucket and one bucket per contributing factor.
package partition

import (
	"fmt"
	"math"
)

// Factor names a feature the classifier attributes aggressive intervals to.
// The string value is the key used in the service's contributions map.
type Factor string

const (
	SPD           Factor = "SPD"
	Acceleration  Factor = "acceleration"
	Deceleration  Factor = "deceleration"
	StopFrequency Factor = "stop_frequency"
	IdleTime      Factor = "idle_time"
)

var factors = [...]Factor{SPD, Acceleration, Deceleration, StopFrequency, IdleTime}

// Factors returns the five factors in their declared order.
func Factors() []Factor {
	out := make([]Factor, len(factors))
	copy(out, factors[:])
	return out
}

// Valid reports whether f is one of the five known factors.
func (f Factor) Valid() bool {
	for _, k := range factors {
		if k == f {
			return true
		}
	}
	return false
}

// DisplayName is the human readable factor name used in chart labels.
func (f Factor) DisplayName() string {
	switch f {
	case SPD:
		return "SPD"
	case Acceleration:
		return "Acceleration"
	case Deceleration:
		return "Deceleration"
	case StopFrequency:
		return "Stop Frequency"
	case IdleTime:
		return "Idle Time"
	}
	return string(f)
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

// NormalKey identifies the normal slice in a Series.
const NormalKey = "normal"

// NormalLabel is the chart label of the normal slice.
const NormalLabel = "Normal"

// Colors are fixed per category so the same bucket keeps its color across renders.
var (
	NormalColor = Color{54, 162, 235}

	factorColors = map[Factor]Color{
		SPD:           {255, 99, 132},
		Acceleration:  {255, 159, 64},
		Deceleration:  {75, 192, 192},
		StopFrequency: {153, 102, 255},
		IdleTime:      {255, 205, 86},
	}
)

// ColorOf returns the fixed color of a factor's slice.
func ColorOf(f Factor) Color { return factorColors[f] }

// LabelOf returns the chart label of a factor's slice, e.g. "Aggressive (Idle Time)".
func LabelOf(f Factor) string { return "Aggressive (" + f.DisplayName() + ")" }

// Slice is one labeled value of the partition.
type Slice struct {
	Key   string
	Label string
	Value float64
	Color Color
}

// Tooltip renders the slice the way the chart shows it on interaction.
func (s Slice) Tooltip() string { return s.Label + ": " + FormatPercent(s.Value) }

// Series is the ordered six-way partition: Normal first, then the factors in
// declared order.
type Series []Slice

// Compute builds the partition for an aggregate aggressive percentage p
// (0..100) and per-factor fractions of the aggressive share. A factor missing
// from contributions counts as zero. Values are not renormalized, so the
// total is 100 only when the fractions sum to 1.
func Compute(p float64, contributions map[Factor]float64) Series {
	s := make(Series, 0, len(factors)+1)
	s = append(s, Slice{Key: NormalKey, Label: NormalLabel, Value: 100 - p, Color: NormalColor})
	for _, f := range factors {
		s = append(s, Slice{
			Key:   string(f),
			Label: LabelOf(f),
			Value: contributions[f] * p,
			Color: ColorOf(f),
		})
	}
	return s
}

// Total sums the slice values.
func (s Series) Total() float64 {
	var t float64
	for _, sl := range s {
		t += sl.Value
	}
	return t
}

// Values returns the slice values in series order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, sl := range s {
		out[i] = sl.Value
	}
	return out
}

// Labels returns the slice labels in series order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, sl := range s {
		out[i] = sl.Label
	}
	return out
}

// Equal reports whether two series hold the same slices within tol.
func (s Series) Equal(o Series, tol float64) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Key != o[i].Key || s[i].Label != o[i].Label || s[i].Color != o[i].Color {
			return false
		}
		if math.Abs(s[i].Value-o[i].Value) > tol {
			return false
		}
	}
	return true
}

// FormatPercent renders v with exactly two decimals and a trailing "%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
