package parser

import (
	"regexp"
	"strings"

	"github.com/mkoval/casbrief/internal/report"
)

var (
	// Explicit-label patterns run first; the domain-vocabulary fallbacks only
	// fire when no label was spoken.
	threatsLabelRe    = regexp.MustCompile(`(?i)\bthreats?(?:\s+(?:are|is|in the area))?[:,]?\s+([^,.]+)`)
	targetsLabelRe    = regexp.MustCompile(`(?i)\btargets?(?:\s+(?:are|is))?[:,]?\s+([^,.]+)`)
	friendliesLabelRe = regexp.MustCompile(`(?i)\bfriendl(?:ies|y)(?:\s+(?:are|at|location))?[:,]?\s+([^,.]+)`)
	artilleryLabelRe  = regexp.MustCompile(`(?i)\b(?:artillery|arty)(?:\s+is)?[:,]?\s+(cold|hot|active|silent|[^,.]+)`)
	clearanceLabelRe  = regexp.MustCompile(`(?i)\bclearance(?:\s+authority)?(?:\s+is)?[:,]?\s+([^,.]+)`)
	sitrepOrdnanceRe  = regexp.MustCompile(`(?i)\b(?:ordnance|weapons)(?:\s+(?:requested|desired|is))?[:,]?\s+([^,.]+)`)

	// Fallbacks: enemy vehicle and contact phrasing without a label word, and
	// a bare cold/hot artillery status.
	enemyContactRe = regexp.MustCompile(`(?i)\b((?:enemy|hostile)?\s*(?:\d+x?\s+)?(?:bmp|btr|tank|technical|truck|infantry|dismounts|squad|platoon)s?[^,.]*)`)
	smallArmsRe    = regexp.MustCompile(`(?i)\b((?:small arms|machine gun|rpg|mortar|sniper)[^,.]*)`)
	artyStatusRe   = regexp.MustCompile(`(?i)\bguns?\s+(?:are\s+)?(cold|hot)\b`)
)

// extractSitrep populates the situation-update record. Targets, friendlies
// and remarks accumulate across calls; other fields are set-once.
func extractSitrep(rep *report.Report, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if rep.Sitrep == nil {
		rep.Sitrep = &report.SituationUpdate{}
	}
	su := rep.Sitrep

	if m := threatsLabelRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&su.Threats, m[1])
	}
	if m := targetsLabelRe.FindStringSubmatch(text); m != nil {
		su.Targets = report.AppendText(su.Targets, strings.TrimSpace(m[1]))
	}
	if m := friendliesLabelRe.FindStringSubmatch(text); m != nil {
		su.Friendlies = report.AppendText(su.Friendlies, strings.TrimSpace(m[1]))
	}
	if m := artilleryLabelRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&su.Artillery, m[1])
	} else if m := artyStatusRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&su.Artillery, m[1])
	}
	if m := clearanceLabelRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&su.ClearanceAuthority, m[1])
	}
	if m := sitrepOrdnanceRe.FindStringSubmatch(text); m != nil {
		report.SetIfEmpty(&su.Ordnance, m[1])
	}

	// Vocabulary fallbacks, only for fields the labels left empty.
	if su.Targets == "" {
		if m := enemyContactRe.FindStringSubmatch(text); m != nil {
			su.Targets = strings.TrimSpace(m[1])
		}
	}
	if su.Threats == "" {
		if m := smallArmsRe.FindStringSubmatch(text); m != nil {
			su.Threats = strings.TrimSpace(m[1])
		}
	}

	// Anything with troops-in-contact urgency goes to remarks too, so the
	// display never loses the call even when field extraction was partial.
	if containsWord(strings.ToLower(text), "troops in contact") &&
		!strings.Contains(su.Remarks, "troops in contact") {
		su.Remarks = report.AppendText(su.Remarks, "troops in contact")
	}
}
