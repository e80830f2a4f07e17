package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mkoval/casbrief/internal/asr"
	"github.com/mkoval/casbrief/internal/config"
	"github.com/mkoval/casbrief/internal/session"
	"github.com/mkoval/casbrief/internal/websocket"
	"github.com/mkoval/casbrief/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	log := logger.Nop()
	ws := websocket.NewServer(func(r *http.Request) bool { return true }, log)
	reviewer := asr.NewReviewer(0.6, 2, nil, log)
	sessions := session.NewManager(
		session.Config{IncrementalProcess: true, MaxIdle: time.Hour},
		nil, nil, ws, reviewer, log,
	)

	router := NewRouter(sessions, cfg, log, ws)
	srv := httptest.NewServer(router.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["session_id"] == "" {
		t.Fatal("empty session_id")
	}
	return body["session_id"]
}

func TestSessionEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	// Ingest a segment.
	resp, err := http.Post(
		srv.URL+"/api/v1/sessions/"+id+"/segments",
		"application/json",
		strings.NewReader(`{"text":"this is Hawg one-one checking in, playtime twenty."}`),
	)
	if err != nil {
		t.Fatalf("post segment: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post segment status = %d", resp.StatusCode)
	}
	var rep struct {
		CheckIn *struct {
			Callsign string `json:"callsign"`
		} `json:"check_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.CheckIn == nil || rep.CheckIn.Callsign != "Hawg one-one" {
		t.Errorf("report check_in = %+v, want callsign Hawg one-one", rep.CheckIn)
	}

	// Category rendering.
	resp2, err := http.Get(srv.URL + "/api/v1/sessions/" + id + "/report/cas")
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	defer resp2.Body.Close()
	var cat struct {
		Content string `json:"content"`
		HasData bool   `json:"has_data"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&cat); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	if !cat.HasData || !strings.Contains(cat.Content, "Hawg one-one") {
		t.Errorf("category = %+v", cat)
	}
}

func TestReparseEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	req, err := http.NewRequest(http.MethodPut,
		srv.URL+"/api/v1/sessions/"+id+"/transcript",
		strings.NewReader(`{"text":"checking in with 2x GBU-12."}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put transcript: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put transcript status = %d", resp.StatusCode)
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/sessions/nope/report")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestReviewEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp, err := http.Post(
		srv.URL+"/api/v1/sessions/"+id+"/review",
		"application/json",
		strings.NewReader(`{"tokens":[{"text":"cleared hot","confidence":0.4}]}`),
	)
	if err != nil {
		t.Fatalf("post review: %v", err)
	}
	defer resp.Body.Close()
	var review struct {
		Critical bool `json:"critical"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&review); err != nil {
		t.Fatalf("decode review: %v", err)
	}
	if !review.Critical {
		t.Error("critical flag not set for low-confidence cleared hot")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health = %+v", body)
	}
}
