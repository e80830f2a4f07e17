package report

import (
	"fmt"
	"strings"
)

// Category names accepted by Content and HasData.
const (
	CategoryCAS            = "cas"
	CategorySitrep         = "situation-update"
	CategoryNineLine       = "nine-line"
	CategoryRemarks        = "remarks"
	CategoryRestrictions   = "restrictions"
	CategoryBDA            = "bda"
	CategoryGamePlan       = "game-plan"
	CategorySafetyOfFlight = "safety-of-flight"
)

// Categories lists every renderable report category in display order.
var Categories = []string{
	CategoryCAS,
	CategorySitrep,
	CategoryNineLine,
	CategoryRemarks,
	CategoryRestrictions,
	CategoryBDA,
	CategoryGamePlan,
	CategorySafetyOfFlight,
}

// placeholder marks a field that has not been observed yet.
const placeholder = "-"

// Content renders one report category as a human-readable string with a
// stable per-field label layout. Unknown categories and categories with no
// data render as the empty string.
func (r *Report) Content(category string) string {
	switch normalizeCategory(category) {
	case CategoryCAS:
		return r.casContent()
	case CategorySitrep:
		return r.sitrepContent()
	case CategoryNineLine:
		return r.nineLineContent()
	case CategoryRemarks:
		return r.Remarks
	case CategoryRestrictions:
		return r.Restrictions
	case CategoryBDA:
		return r.BDA
	case CategoryGamePlan:
		return r.GamePlan
	case CategorySafetyOfFlight:
		return r.safetyOfFlightContent()
	}
	return ""
}

// HasData reports whether a category has any content to show.
func (r *Report) HasData(category string) bool {
	return r.Content(category) != ""
}

// normalizeCategory maps accepted spellings onto the canonical category names.
func normalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	c = strings.ReplaceAll(c, "_", "-")
	c = strings.ReplaceAll(c, " ", "-")
	switch c {
	case "cas", "check-in", "checkin":
		return CategoryCAS
	case "situation-update", "sitrep", "situation":
		return CategorySitrep
	case "nine-line", "nineline", "9-line":
		return CategoryNineLine
	case "game-plan", "gameplan":
		return CategoryGamePlan
	}
	return c
}

func (r *Report) casContent() string {
	if r.CheckIn == nil {
		return ""
	}
	ci := r.CheckIn
	var b strings.Builder
	writeField(&b, "Callsign", ci.Callsign)
	writeField(&b, "Mission", ci.MissionID)
	writeField(&b, "Aircraft", ci.Aircraft)
	writeField(&b, "Position", ci.Position)
	writeField(&b, "Ordnance", ci.Ordnance)
	writeField(&b, "Playtime", ci.Playtime)
	writeField(&b, "Capabilities", ci.Capabilities)
	writeField(&b, "Laser code", ci.LaserCode)
	writeField(&b, "VDL", ci.VDLCode)
	writeField(&b, "Abort code", ci.AbortCode)
	writeField(&b, "Control", ci.ControlLabel)
	return strings.TrimRight(b.String(), "\n")
}

func (r *Report) sitrepContent() string {
	if r.Sitrep == nil || r.Sitrep.IsEmpty() {
		return ""
	}
	su := r.Sitrep
	var b strings.Builder
	writeField(&b, "Threats", su.Threats)
	writeField(&b, "Targets", su.Targets)
	writeField(&b, "Friendlies", su.Friendlies)
	writeField(&b, "Artillery", su.Artillery)
	writeField(&b, "Clearance", su.ClearanceAuthority)
	writeField(&b, "Ordnance", su.Ordnance)
	writeField(&b, "Remarks", su.Remarks)
	return strings.TrimRight(b.String(), "\n")
}

var nineLineLabels = [9]string{
	"1 IP", "2 Heading", "3 Distance", "4 Elevation", "5 Target",
	"6 Mark", "7 Friendlies", "8 Egress", "9 Remarks",
}

func (r *Report) nineLineContent() string {
	if r.NineLine == nil {
		return ""
	}
	var b strings.Builder
	for i := 1; i <= 9; i++ {
		writeField(&b, nineLineLabels[i-1], r.NineLine.Line(i))
	}
	return strings.TrimRight(b.String(), "\n")
}

// safetyOfFlightContent is the condensed safety readout: the abort code,
// friendlies location and any standing restrictions in one block.
func (r *Report) safetyOfFlightContent() string {
	var b strings.Builder
	if r.CheckIn != nil && r.CheckIn.AbortCode != "" {
		writeField(&b, "Abort code", r.CheckIn.AbortCode)
	}
	if r.NineLine != nil && r.NineLine.Friendlies != "" {
		writeField(&b, "Friendlies", r.NineLine.Friendlies)
	}
	if r.Sitrep != nil && r.Sitrep.Friendlies != "" {
		writeField(&b, "Friendly pos", r.Sitrep.Friendlies)
	}
	if r.Restrictions != "" {
		writeField(&b, "Restrictions", r.Restrictions)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = placeholder
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
