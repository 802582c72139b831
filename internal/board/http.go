// Package board exposes the task board over HTTP. Every UI gesture maps to
// exactly one command dispatched through POST /api/board/cmd; the handlers
// know nothing about visual elements.
package board

import (
	"encoding/json"
	"net/http"

	"github.com/kyoko-docs/kanban/internal/iteration"
	"github.com/kyoko-docs/kanban/internal/model"
	"github.com/kyoko-docs/kanban/internal/storage"
	"github.com/kyoko-docs/kanban/internal/task"
	"github.com/kyoko-docs/kanban/internal/workload"
)

// Handler handles board-related HTTP requests.
type Handler struct {
	tasks *task.Store
	iter  *iteration.Settings
	store *storage.Adapter
}

func NewHandler(tasks *task.Store, iter *iteration.Settings, store *storage.Adapter) *Handler {
	return &Handler{tasks: tasks, iter: iter, store: store}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

// StateResponse is the response for GET /api/board/state.
type StateResponse struct {
	Columns   []model.Status   `json:"columns"`
	Tasks     []model.Task     `json:"tasks"`
	Iteration model.Iteration  `json:"iteration"`
	Workload  workload.Summary `json:"workload"`
}

// GET /api/board/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *Handler) snapshot() StateResponse {
	tasks := h.tasks.List()
	iter := h.iter.Current()
	total := workload.Total(tasks, iter.ID)
	return StateResponse{
		Columns:   model.Columns(),
		Tasks:     tasks,
		Iteration: iter,
		Workload:  workload.Summarize(total, iter.WorkLimit),
	}
}

// CommandRequest is the request body for POST /api/board/cmd.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is the response for POST /api/board/cmd. Warning carries
// a non-fatal persistence failure: the mutation stood, the save did not.
type CommandResponse struct {
	OK      bool   `json:"ok"`
	Patch   any    `json:"patch,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// POST /api/board/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	patch, err := h.executeCommand(req.Cmd, req.Args)
	if err != nil {
		writeJSON(w, statusFor(err), CommandResponse{
			OK:    false,
			Error: err.Error(),
		})
		return
	}

	resp := CommandResponse{OK: true, Patch: patch}
	if mutates(req.Cmd) {
		if err := h.persist(); err != nil {
			resp.Warning = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) persist() error {
	return h.store.Save(h.tasks.List(), h.iter.Current())
}
