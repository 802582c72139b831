package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kyoko-docs/kanban/internal/config"
	"github.com/kyoko-docs/kanban/internal/serverapp"
)

func newTestServer(t *testing.T, dataDir string) *httptest.Server {
	t.Helper()

	var cfg config.Config
	cfg.ApplyDefaults()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:  &cfg,
		DataDir: dataDir,
		Logger:  log.New(os.Stderr, "it ", 0),
	})
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postCmd(t *testing.T, srv *httptest.Server, cmd string, args map[string]any) map[string]any {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"cmd": cmd, "args": args})
	resp, err := http.Post(srv.URL+"/api/board/cmd", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("%s: %v", cmd, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s: decode: %v", cmd, err)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("%s: not ok: %v", cmd, out["error"])
	}
	return out
}

func fetchState(t *testing.T, srv *httptest.Server) map[string]any {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/board/state")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("state: decode: %v", err)
	}
	return out
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestServer_BoardPageAndStatic(t *testing.T) {
	srv := newTestServer(t, t.TempDir())

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("board page: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("board page: expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/static/js/board.js")
	if err != nil {
		t.Fatalf("static: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static: expected 200, got %d", resp.StatusCode)
	}
}

func TestServer_StateSurvivesRestart(t *testing.T) {
	dataDir := t.TempDir()

	srv := newTestServer(t, dataDir)
	postCmd(t, srv, "task.create", map[string]any{
		"title":    "carry me over",
		"workload": float64(3),
		"status":   "Doing",
	})
	postCmd(t, srv, "iteration.set_work_limit", map[string]any{"value": "24"})
	srv.Close()

	// A fresh process over the same data dir loads the saved board.
	srv2 := newTestServer(t, dataDir)
	state := fetchState(t, srv2)

	tasks := state["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task after restart, got %d", len(tasks))
	}
	first := tasks[0].(map[string]any)
	if first["title"] != "carry me over" || first["status"] != "Doing" {
		t.Fatalf("unexpected task after restart: %v", first)
	}
	iter := state["iteration"].(map[string]any)
	if iter["workLimit"] != float64(24) {
		t.Fatalf("work limit lost across restart: %v", iter["workLimit"])
	}
}
