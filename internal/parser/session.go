package parser

import (
	"strings"

	"github.com/mkoval/casbrief/internal/report"
	"github.com/mkoval/casbrief/pkg/logger"
)

// Session runs the full transcript pipeline and owns the report being built
// plus the current-section continuation state. It is single-threaded and
// synchronous: callers serialize access.
type Session struct {
	rep     *report.Report
	current Section
	log     *logger.Logger
}

// NewSession creates an empty parsing session.
func NewSession(log *logger.Logger) *Session {
	return &Session{
		rep: &report.Report{},
		log: log.Named("parser"),
	}
}

// Process ingests one transcript segment incrementally: normalize, split into
// transmissions, classify chunks and route them to the extractors. Empty or
// whitespace-only input is ignored before any stage runs.
func (s *Session) Process(segment string) {
	if strings.TrimSpace(segment) == "" {
		return
	}
	normalized := Normalize(segment)
	for _, tx := range SplitTransmissions(normalized) {
		s.processTransmission(tx)
	}
}

// Reparse clears all state and reprocesses the full transcript from scratch.
// This is the canonical ingestion path: the caller hands over a complete
// session snapshot on every commit and gets an atomically rebuilt report, so
// order-of-arrival ambiguity never accumulates.
func (s *Session) Reparse(fullText string) {
	s.Reset()
	s.Process(fullText)
}

// Reset clears the report and the current-section state for a new session.
func (s *Session) Reset() {
	s.log.Debug("Session reset")
	s.rep = &report.Report{}
	s.current = SectionUnknown
}

// Report returns a deep copy of the current report for read-only consumers.
func (s *Session) Report() *report.Report {
	return s.rep.Clone()
}

// Content renders one report category; see report.Content.
func (s *Session) Content(category string) string {
	return s.rep.Content(category)
}

// HasData reports whether a category has content.
func (s *Session) HasData(category string) bool {
	return s.rep.HasData(category)
}

func (s *Session) processTransmission(tx string) {
	chunks := chunkTransmission(tx)

	lastResolved := true
	for _, c := range chunks {
		section := c.section
		if section == SectionUnknown {
			section = inferSection(c.text, s.current)
		}

		switch {
		case section != SectionUnknown:
			if section != s.current {
				s.log.Debug("Section change",
					logger.String("from", s.current.String()),
					logger.String("to", section.String()))
			}
			s.current = section
			s.route(section, c)
			lastResolved = true
		case s.current != SectionUnknown:
			// Plain continuation of whatever section is running.
			s.route(s.current, chunk{section: s.current, text: c.text, trailing: c.text})
			lastResolved = false
		default:
			lastResolved = false
		}
	}

	// A transmission that trails off unresolved must not bleed its section
	// into the next, unrelated transmission.
	if !lastResolved {
		s.current = SectionUnknown
	}
}

// route hands a chunk to its section's extractor. Structured sections get the
// full chunk text (their own label parsing needs the keyword context);
// free-text sections get only the trailing content for keyword chunks, so the
// trigger phrase itself never lands in the report.
func (s *Session) route(section Section, c chunk) {
	text := c.text
	trailing := c.text
	if c.hasKeyword {
		trailing = c.trailing
	}

	switch section {
	case SectionCAS:
		extractCAS(s.rep, text)
	case SectionSitrep:
		extractSitrep(s.rep, text)
	case SectionNineLine:
		extractNineLine(s.rep, nineLineBody(c))
	case SectionRemarks:
		s.rep.Remarks = report.AppendText(s.rep.Remarks, trailing)
	case SectionRestrictions:
		s.rep.Restrictions = report.AppendText(s.rep.Restrictions, restrictionsBody(c))
	case SectionBDA:
		s.rep.BDA = report.AppendText(s.rep.BDA, trailing)
	case SectionGamePlan:
		s.rep.GamePlan = report.AppendText(s.rep.GamePlan, trailing)
	}
}

// nineLineBody drops the "nine line" trigger so the extractor sees only the
// line labels and values; an inferred (label-free) chunk passes whole.
func nineLineBody(c chunk) string {
	if c.hasKeyword {
		return c.trailing
	}
	return c.text
}

// restrictionsBody keeps the "final attack heading" trigger inline, because
// for that phrase the trigger is part of the restriction itself.
func restrictionsBody(c chunk) string {
	if c.hasKeyword && strings.HasPrefix(strings.ToLower(c.text), "final attack heading") {
		return c.text
	}
	if c.hasKeyword {
		return c.trailing
	}
	return c.text
}
