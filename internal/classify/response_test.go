package classify

import (
	"strings"
	"testing"
)

func TestCell_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{`"08:00"`, "08:00", false},
		{`1.50`, "1.50", false},
		{`-3`, "-3", false},
		{`true`, "true", false},
		{`null`, "", false},
		{``, "", false},
		{`"unterminated`, "", true},
		{`{"a":1}`, "", true},
		{`[1]`, "", true},
	}
	for _, tt := range tests {
		var c Cell
		err := c.UnmarshalJSON([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Fatalf("UnmarshalJSON(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && c.String() != tt.want {
			t.Fatalf("UnmarshalJSON(%q) = %q, want %q", tt.in, c, tt.want)
		}
	}
}

func TestDecode_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSuccess bool
		wantFailure string
		wantInvalid string
	}{
		{
			name:        "success",
			body:        successBody,
			wantSuccess: true,
		},
		{
			name:        "error status keeps message verbatim",
			body:        `{"status":"error","message":"  Invalid file type "}`,
			wantFailure: "  Invalid file type ",
		},
		{
			name:        "unknown status is a failure",
			body:        `{"status":"pending","message":"later"}`,
			wantFailure: "later",
		},
		{
			name:        "missing percentage",
			body:        `{"status":"success","contributions":{}}`,
			wantInvalid: "aggressive_percentage is missing",
		},
		{
			name:        "percentage out of range",
			body:        `{"status":"success","aggressive_percentage":120,"contributions":{}}`,
			wantInvalid: "outside [0, 100]",
		},
		{
			name:        "missing factor",
			body:        `{"status":"success","aggressive_percentage":10,"contributions":{"SPD":0.5,"acceleration":0.5,"deceleration":0,"stop_frequency":0}}`,
			wantInvalid: `"idle_time" is missing`,
		},
		{
			name:        "negative fraction",
			body:        `{"status":"success","aggressive_percentage":10,"contributions":{"SPD":1.2,"acceleration":-0.2,"deceleration":0,"stop_frequency":0,"idle_time":0}}`,
			wantInvalid: "outside [0, 1]",
		},
		{
			name:        "fractions do not sum to one",
			body:        `{"status":"success","aggressive_percentage":10,"contributions":{"SPD":0.5,"acceleration":0.2,"deceleration":0,"stop_frequency":0,"idle_time":0}}`,
			wantInvalid: "sum to",
		},
		{
			name:        "zero percentage ignores sum",
			body:        `{"status":"success","aggressive_percentage":0,"result":[],"contributions":{"SPD":0,"acceleration":0,"deceleration":0,"stop_frequency":0,"idle_time":0}}`,
			wantSuccess: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decode(strings.NewReader(tt.body))
			switch {
			case tt.wantInvalid != "":
				if !IsInvalidResult(err) || !strings.Contains(err.Error(), tt.wantInvalid) {
					t.Fatalf("err = %v, want invalid result containing %q", err, tt.wantInvalid)
				}
			case tt.wantFailure != "":
				if err != nil {
					t.Fatalf("err = %v", err)
				}
				f, ok := out.(Failure)
				if !ok || f.Message != tt.wantFailure {
					t.Fatalf("outcome = %#v, want Failure %q", out, tt.wantFailure)
				}
			default:
				if err != nil {
					t.Fatalf("err = %v", err)
				}
				s, ok := out.(Success)
				if !ok {
					t.Fatalf("outcome = %#v, want Success", out)
				}
				if s.Rows == nil {
					t.Fatalf("rows should never be nil")
				}
			}
		})
	}
}
