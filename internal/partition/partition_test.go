package partition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ScenarioValues(t *testing.T) {
	s := Compute(42.5, map[Factor]float64{
		SPD:           0.3,
		Acceleration:  0.2,
		Deceleration:  0.2,
		StopFrequency: 0.2,
		IdleTime:      0.1,
	})

	require.Len(t, s, 6)
	want := []float64{57.5, 12.75, 8.5, 8.5, 8.5, 4.25}
	for i, v := range want {
		assert.InDelta(t, v, s[i].Value, 1e-9, "slice %d (%s)", i, s[i].Label)
	}
	assert.InDelta(t, 100, s.Total(), 1e-9)
}

func TestCompute_OrderLabelsAndColors(t *testing.T) {
	s := Compute(10, map[Factor]float64{SPD: 1})

	assert.Equal(t, []string{
		"Normal",
		"Aggressive (SPD)",
		"Aggressive (Acceleration)",
		"Aggressive (Deceleration)",
		"Aggressive (Stop Frequency)",
		"Aggressive (Idle Time)",
	}, s.Labels())

	assert.Equal(t, "#36A2EB", s[0].Color.Hex())
	assert.Equal(t, "#FF6384", s[1].Color.Hex())
	assert.Equal(t, "#FF9F40", s[2].Color.Hex())
	assert.Equal(t, "#4BC0C0", s[3].Color.Hex())
	assert.Equal(t, "#9966FF", s[4].Color.Hex())
	assert.Equal(t, "#FFCD56", s[5].Color.Hex())

	assert.Equal(t, NormalKey, s[0].Key)
	for i, f := range Factors() {
		assert.Equal(t, string(f), s[i+1].Key)
	}
}

func TestCompute_SumsToHundred(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		p := rng.Float64() * 100
		raw := make([]float64, len(factors))
		var sum float64
		for j := range raw {
			raw[j] = rng.Float64()
			sum += raw[j]
		}
		contrib := map[Factor]float64{}
		for j, f := range factors {
			contrib[f] = raw[j] / sum
		}

		s := Compute(p, contrib)
		require.InDelta(t, 100, s.Total(), 1e-9, "p=%v contributions=%v", p, contrib)
		for _, sl := range s {
			require.GreaterOrEqual(t, sl.Value, 0.0)
		}
	}
}

func TestCompute_Bounds(t *testing.T) {
	all := map[Factor]float64{SPD: 0.2, Acceleration: 0.2, Deceleration: 0.2, StopFrequency: 0.2, IdleTime: 0.2}

	none := Compute(0, all)
	assert.Equal(t, 100.0, none[0].Value)
	for _, sl := range none[1:] {
		assert.Zero(t, sl.Value)
	}

	full := Compute(100, all)
	assert.Zero(t, full[0].Value)
	assert.InDelta(t, 100, full.Total(), 1e-9)
}

func TestCompute_NotRenormalized(t *testing.T) {
	s := Compute(50, map[Factor]float64{SPD: 0.5, Acceleration: 0.25})
	assert.InDelta(t, 87.5, s.Total(), 1e-9)
	assert.Zero(t, s[3].Value, "missing factor counts as zero")
}

func TestCompute_Idempotent(t *testing.T) {
	c := map[Factor]float64{SPD: 0.3, Acceleration: 0.2, Deceleration: 0.2, StopFrequency: 0.2, IdleTime: 0.1}
	assert.True(t, Compute(42.5, c).Equal(Compute(42.5, c), 0))
	assert.False(t, Compute(42.5, c).Equal(Compute(40, c), 1e-9))
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42.5, "42.50%"},
		{0, "0.00%"},
		{100, "100.00%"},
		{12.754, "12.75%"},
		{4.256, "4.26%"},
		{1.0 / 3.0, "0.33%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPercent(tt.in))
	}
}

func TestSliceTooltip(t *testing.T) {
	s := Compute(42.5, map[Factor]float64{IdleTime: 0.1})
	assert.Equal(t, "Aggressive (Idle Time): 4.25%", s[5].Tooltip())
	assert.Equal(t, "Normal: 57.50%", s[0].Tooltip())
}

func TestFactorValid(t *testing.T) {
	for _, f := range Factors() {
		assert.True(t, f.Valid())
	}
	assert.False(t, Factor("hour").Valid())
}
