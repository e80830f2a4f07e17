package report

import (
	"strings"
	"testing"
)

func TestNineLineSetAndAppend(t *testing.T) {
	nl := &NineLine{}

	nl.SetLine(3, "six miles")
	nl.SetLine(3, "eight miles")
	if nl.Distance != "eight miles" {
		t.Errorf("explicit assignment must overwrite, got %q", nl.Distance)
	}

	nl.AppendLine(5, "two technicals")
	nl.AppendLine(5, "near the bridge")
	if nl.Target != "two technicals near the bridge" {
		t.Errorf("append path must accumulate, got %q", nl.Target)
	}

	if got := nl.Line(10); got != "" {
		t.Errorf("out-of-range line = %q, want empty", got)
	}
}

func TestAppendHelpers(t *testing.T) {
	if got := AppendText("", "alpha"); got != "alpha" {
		t.Errorf("AppendText empty base = %q", got)
	}
	if got := AppendText("alpha", "  bravo "); got != "alpha bravo" {
		t.Errorf("AppendText = %q", got)
	}
	if got := AppendText("alpha", "   "); got != "alpha" {
		t.Errorf("AppendText blank addition = %q", got)
	}

	if got := AppendList("", "GBU-12"); got != "GBU-12" {
		t.Errorf("AppendList empty base = %q", got)
	}
	if got := AppendList("2x GBU-12", "Mk-82"); got != "2x GBU-12, Mk-82" {
		t.Errorf("AppendList = %q", got)
	}
	if got := AppendList("2x GBU-12", "GBU-12"); got != "2x GBU-12" {
		t.Errorf("AppendList must skip items already present, got %q", got)
	}
	// A longer designator sharing a prefix is a different weapon, not a repeat.
	if got := AppendList("GBU-120", "GBU-12"); got != "GBU-120, GBU-12" {
		t.Errorf("AppendList dropped a distinct item: %q", got)
	}
	if got := AppendList("2x GBU-12, Mk-82", "Mk-82"); got != "2x GBU-12, Mk-82" {
		t.Errorf("AppendList re-added a listed item: %q", got)
	}
}

func TestSetIfEmpty(t *testing.T) {
	var field string
	SetIfEmpty(&field, "first")
	SetIfEmpty(&field, "second")
	if field != "first" {
		t.Errorf("field = %q, want the first assignment to stick", field)
	}
}

func TestReportIsEmptyAndClone(t *testing.T) {
	r := &Report{}
	if !r.IsEmpty() {
		t.Error("new report should be empty")
	}

	r.CheckIn = &CASCheckIn{Callsign: "Hawg one-one"}
	r.Remarks = "winds calm"
	if r.IsEmpty() {
		t.Error("populated report reported empty")
	}

	c := r.Clone()
	c.CheckIn.Callsign = "changed"
	c.Remarks = "changed"
	if r.CheckIn.Callsign != "Hawg one-one" || r.Remarks != "winds calm" {
		t.Error("clone is not independent of the original")
	}
}

func TestContentRendering(t *testing.T) {
	r := &Report{
		CheckIn: &CASCheckIn{
			Callsign: "Hawg one-one",
			Ordnance: "2x GBU-12",
		},
		NineLine: &NineLine{IP: "Hammer", Heading: "two seven zero"},
	}

	cas := r.Content("cas")
	if !strings.Contains(cas, "Callsign: Hawg one-one") {
		t.Errorf("cas content missing callsign: %q", cas)
	}
	if !strings.Contains(cas, "Playtime: -") {
		t.Errorf("cas content missing placeholder: %q", cas)
	}

	nine := r.Content("nine-line")
	if !strings.Contains(nine, "1 IP: Hammer") || !strings.Contains(nine, "2 Heading: two seven zero") {
		t.Errorf("nine-line content = %q", nine)
	}

	if r.Content("situation-update") != "" {
		t.Error("unobserved sitrep should render empty")
	}
	if r.Content("no-such-category") != "" {
		t.Error("unknown category should render empty")
	}
}

func TestCategoryAliases(t *testing.T) {
	r := &Report{NineLine: &NineLine{IP: "Hammer"}}
	for _, alias := range []string{"nine-line", "nineline", "9-line", "Nine Line"} {
		if !r.HasData(alias) {
			t.Errorf("HasData(%q) = false, want alias accepted", alias)
		}
	}
}

func TestSafetyOfFlight(t *testing.T) {
	r := &Report{
		CheckIn:      &CASCheckIn{AbortCode: "thunder"},
		NineLine:     &NineLine{Friendlies: "300 meters south"},
		Restrictions: "final attack heading 270 to 300",
	}
	sof := r.Content("safety-of-flight")
	for _, want := range []string{"thunder", "300 meters south", "270 to 300"} {
		if !strings.Contains(sof, want) {
			t.Errorf("safety-of-flight missing %q: %q", want, sof)
		}
	}

	empty := &Report{}
	if empty.HasData("safety-of-flight") {
		t.Error("empty report should have no safety-of-flight data")
	}
}
