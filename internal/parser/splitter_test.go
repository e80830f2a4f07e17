package parser

import (
	"strings"
	"testing"
)

func TestSplitTransmissions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"no boundary",
			"Hawg one-one established overhead",
			[]string{"Hawg one-one established overhead"},
		},
		{
			"break break",
			"first call break break second call",
			[]string{"first call", "second call"},
		},
		{
			"double break break",
			"alpha break break bravo break break charlie",
			[]string{"alpha", "bravo", "charlie"},
		},
		{
			"split after over with new content",
			"say again last, over requesting situation update now",
			[]string{"say again last, over", "requesting situation update now"},
		},
		{
			"no split after trailing out",
			"copy all, out",
			[]string{"copy all, out"},
		},
		{
			"callsign readdress",
			"good effects on target Wardog five one, new tasking to follow",
			[]string{"good effects on target", "Wardog five one, new tasking to follow"},
		},
		{
			"line label is not a callsign",
			"target is a technical line one, IP hammer",
			[]string{"target is a technical line one, IP hammer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTransmissions(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitTransmissions(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("piece %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Concatenating the output pieces must preserve every non-whitespace
// character of the input, except the dropped break markers.
func TestSplitTransmissionsCoverage(t *testing.T) {
	inputs := []string{
		"alpha break break bravo",
		"one two over three four five six",
		"Hawg one-one checking in, Wardog five one, copy your check in",
		"no separators at all in this one",
	}
	for _, in := range inputs {
		pieces := SplitTransmissions(in)
		if len(pieces) == 0 {
			t.Fatalf("SplitTransmissions(%q) returned no pieces", in)
		}
		joined := strings.Join(pieces, " ")
		squash := func(s string) string {
			s = strings.ReplaceAll(s, "break break", "")
			fields := strings.FieldsFunc(s, func(r rune) bool {
				return r == ' ' || r == ',' || r == '.'
			})
			return strings.Join(fields, "")
		}
		if squash(joined) != squash(in) {
			t.Errorf("content not preserved for %q: got %q", in, joined)
		}
	}
}

func TestSplitTransmissionsEmpty(t *testing.T) {
	if got := SplitTransmissions("   "); got != nil {
		t.Errorf("SplitTransmissions(blank) = %q, want nil", got)
	}
}
