package session

import (
	"strings"
	"testing"
	"time"

	"github.com/mkoval/casbrief/internal/asr"
	"github.com/mkoval/casbrief/pkg/logger"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	reviewer := asr.NewReviewer(0.6, 2, []string{"Hawg", "Axeman"}, logger.Nop())
	cfg := Config{IncrementalProcess: true, MaxIdle: time.Hour}
	return NewManager(cfg, nil, nil, nil, reviewer, logger.Nop())
}

func TestSessionLifecycle(t *testing.T) {
	m := newTestManager(t)

	id := m.Create()
	if id == "" {
		t.Fatal("empty session id")
	}
	if m.ActiveSessions() != 1 {
		t.Errorf("active = %d, want 1", m.ActiveSessions())
	}

	if err := m.End(id); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := m.End(id); err != ErrSessionNotFound {
		t.Errorf("End on gone session = %v, want ErrSessionNotFound", err)
	}
}

func TestProcessAndReport(t *testing.T) {
	m := newTestManager(t)
	id := m.Create()

	if err := m.ProcessSegment(id, "this is Hawg one-one checking in, playtime twenty."); err != nil {
		t.Fatalf("ProcessSegment: %v", err)
	}

	rep, err := m.Report(id)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.CheckIn == nil || rep.CheckIn.Callsign != "Hawg one-one" {
		t.Errorf("check-in = %+v, want callsign Hawg one-one", rep.CheckIn)
	}

	has, err := m.HasData(id, "cas")
	if err != nil || !has {
		t.Errorf("HasData(cas) = (%v, %v), want (true, nil)", has, err)
	}
	content, err := m.Content(id, "cas")
	if err != nil || !strings.Contains(content, "Hawg one-one") {
		t.Errorf("Content(cas) = (%q, %v)", content, err)
	}
}

func TestReparseSupersedesProcess(t *testing.T) {
	m := newTestManager(t)
	id := m.Create()

	if err := m.ProcessSegment(id, "checking in with 2x GBU-12."); err != nil {
		t.Fatalf("ProcessSegment: %v", err)
	}
	if err := m.ReparseTranscript(id, "checking in with 4x Mk-82."); err != nil {
		t.Fatalf("ReparseTranscript: %v", err)
	}

	rep, err := m.Report(id)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if strings.Contains(rep.CheckIn.Ordnance, "GBU-12") {
		t.Errorf("ordnance = %q, reparse must drop pre-snapshot state", rep.CheckIn.Ordnance)
	}
	if !strings.Contains(rep.CheckIn.Ordnance, "Mk-82") {
		t.Errorf("ordnance = %q, want the reparsed weapon", rep.CheckIn.Ordnance)
	}
}

func TestResetClearsReport(t *testing.T) {
	m := newTestManager(t)
	id := m.Create()

	if err := m.ProcessSegment(id, "checking in with 2x GBU-12."); err != nil {
		t.Fatalf("ProcessSegment: %v", err)
	}
	if err := m.Reset(id); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	rep, err := m.Report(id)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !rep.IsEmpty() {
		t.Errorf("report not empty after reset: %+v", rep)
	}
}

func TestIncrementalDisabled(t *testing.T) {
	reviewer := asr.NewReviewer(0.6, 2, nil, logger.Nop())
	m := NewManager(Config{IncrementalProcess: false, MaxIdle: time.Hour}, nil, nil, nil, reviewer, logger.Nop())
	id := m.Create()

	if err := m.ProcessSegment(id, "checking in."); err != ErrIncrementalDisabled {
		t.Errorf("ProcessSegment = %v, want ErrIncrementalDisabled", err)
	}
	// Reparse stays available regardless.
	if err := m.ReparseTranscript(id, "checking in with 2x GBU-12."); err != nil {
		t.Errorf("ReparseTranscript: %v", err)
	}
}

func TestReviewTokens(t *testing.T) {
	m := newTestManager(t)
	id := m.Create()

	review, err := m.ReviewTokens(id, []asr.Token{{Text: "cleared hot", Confidence: 0.4}})
	if err != nil {
		t.Fatalf("ReviewTokens: %v", err)
	}
	if !review.Critical {
		t.Error("low-confidence cleared hot must flag critical")
	}

	if _, err := m.ReviewTokens("nope", nil); err != ErrSessionNotFound {
		t.Errorf("ReviewTokens on unknown session = %v, want ErrSessionNotFound", err)
	}
}

func TestUnknownSessionOperations(t *testing.T) {
	m := newTestManager(t)
	if err := m.ProcessSegment("nope", "x"); err != ErrSessionNotFound {
		t.Errorf("ProcessSegment = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.Report("nope"); err != ErrSessionNotFound {
		t.Errorf("Report = %v, want ErrSessionNotFound", err)
	}
	if err := m.Reset("nope"); err != ErrSessionNotFound {
		t.Errorf("Reset = %v, want ErrSessionNotFound", err)
	}
}
