package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/idlab-discover/drivescore-cli/internal/partition"
)

// StatusSuccess is the only status value that carries a result.
const StatusSuccess = "success"

// contributionTolerance bounds how far the contribution fractions may drift
// from summing to 1.
const contributionTolerance = 1e-6

// Cell holds a scalar JSON value as the text the service sent. Strings are
// unquoted, numbers and booleans keep their literal form, null is empty.
type Cell string

func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}

	// Reject objects and arrays; everything else is a literal.
	if b[0] == '{' || b[0] == '[' {
		return fmt.Errorf("cell must be a scalar, got %s", b[:1])
	}
	*c = Cell(b)
	return nil
}

func (c Cell) String() string { return string(c) }

// Row is one classified time interval.
type Row struct {
	Time             Cell `json:"time"`
	SPD              Cell `json:"SPD"`
	Acceleration     Cell `json:"acceleration"`
	Deceleration     Cell `json:"deceleration"`
	StopFrequency    Cell `json:"stop_frequency"`
	IdleTime         Cell `json:"idle_time"`
	BehaviorCategory Cell `json:"behavior_category"`
}

// Columns returns the row's fields in table order.
func (r Row) Columns() []string {
	return []string{
		r.Time.String(),
		r.SPD.String(),
		r.Acceleration.String(),
		r.Deceleration.String(),
		r.StopFrequency.String(),
		r.IdleTime.String(),
		r.BehaviorCategory.String(),
	}
}

// ColumnNames are the table headers matching Row.Columns.
var ColumnNames = []string{"time", "SPD", "acceleration", "deceleration", "stop_frequency", "idle_time", "behavior_category"}

// Response is the JSON body returned by POST /upload.
type Response struct {
	Status               string              `json:"status"`
	Message              string              `json:"message"`
	Result               []Row               `json:"result"`
	AggressivePercentage *float64            `json:"aggressive_percentage"`
	Contributions        map[string]*float64 `json:"contributions"`
}

// Outcome is either a Success or a Failure.
type Outcome interface {
	outcome()
}

// Success is a validated classification result.
type Success struct {
	Rows                 []Row
	AggressivePercentage float64
	Contributions        map[partition.Factor]float64
}

// Failure is an application-level error reported by the service.
type Failure struct {
	Message string
}

func (Success) outcome() {}
func (Failure) outcome() {}

// Decode reads a Response body and converts it to an Outcome.
func Decode(r io.Reader) (Outcome, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, err
	}
	return resp.Outcome()
}

// Outcome validates the response and converts it to the sum type. Any status
// other than "success" becomes a Failure carrying Message verbatim.
func (r Response) Outcome() (Outcome, error) {
	if strings.TrimSpace(r.Status) != StatusSuccess {
		return Failure{Message: r.Message}, nil
	}

	if r.AggressivePercentage == nil {
		return nil, invalidf("aggressive_percentage is missing")
	}
	p := *r.AggressivePercentage
	if math.IsNaN(p) || p < 0 || p > 100 {
		return nil, invalidf("aggressive_percentage %v is outside [0, 100]", p)
	}

	contrib := make(map[partition.Factor]float64, len(r.Contributions))
	var sum float64
	for _, f := range partition.Factors() {
		v, ok := r.Contributions[string(f)]
		if !ok || v == nil {
			return nil, invalidf("contribution %q is missing", f)
		}
		if math.IsNaN(*v) || *v < 0 || *v > 1 {
			return nil, invalidf("contribution %q = %v is outside [0, 1]", f, *v)
		}
		contrib[f] = *v
		sum += *v
	}
	if p > 0 && math.Abs(sum-1) > contributionTolerance {
		return nil, invalidf("contributions sum to %v, expected 1", sum)
	}

	rows := r.Result
	if rows == nil {
		rows = []Row{}
	}
	return Success{Rows: rows, AggressivePercentage: p, Contributions: contrib}, nil
}
