package board

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kyoko-docs/kanban/internal/iteration"
	"github.com/kyoko-docs/kanban/internal/model"
	"github.com/kyoko-docs/kanban/internal/storage"
	"github.com/kyoko-docs/kanban/internal/task"
)

// executeCommand dispatches the command to the appropriate handler.
func (h *Handler) executeCommand(cmd string, args map[string]any) (any, error) {
	switch cmd {
	case "task.create":
		return h.cmdTaskCreate(args)
	case "task.update":
		return h.cmdTaskUpdate(args)
	case "task.delete":
		return h.cmdTaskDelete(args)
	case "task.move":
		return h.cmdTaskMove(args)
	case "iteration.set_start_date":
		return h.cmdIterationSetStartDate(args)
	case "iteration.set_end_date":
		return h.cmdIterationSetEndDate(args)
	case "iteration.set_work_limit":
		return h.cmdIterationSetWorkLimit(args)
	case "iteration.add_holiday":
		return h.cmdIterationAddHoliday(args)
	case "iteration.remove_holiday":
		return h.cmdIterationRemoveHoliday(args)
	case "board.save":
		return h.cmdBoardSave()
	case "board.load":
		return h.cmdBoardLoad()
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

// mutates reports whether a command changes board state and therefore
// triggers a save. board.save/board.load manage persistence themselves.
func mutates(cmd string) bool {
	switch cmd {
	case "task.create", "task.update", "task.delete", "task.move",
		"iteration.set_start_date", "iteration.set_end_date",
		"iteration.set_work_limit",
		"iteration.add_holiday", "iteration.remove_holiday":
		return true
	}
	return false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, task.ErrInvalid),
		errors.Is(err, iteration.ErrEmptyHoliday),
		errors.Is(err, iteration.ErrDuplicateHoliday):
		return http.StatusBadRequest
	}
	return http.StatusBadRequest
}

// Helper to get string from args.
func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}

// Helper to get optional string.
func getStringOr(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}

// Helper to get a number from args (JSON numbers are float64).
func getNumber(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required field: %s", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %s must be a number", key)
	}
	return f, nil
}

// task.create { title, details, workload, status? }
func (h *Handler) cmdTaskCreate(args map[string]any) (any, error) {
	title, err := getString(args, "title")
	if err != nil {
		return nil, err
	}
	details, err := getStringOr(args, "details", "")
	if err != nil {
		return nil, err
	}
	load, err := getNumber(args, "workload")
	if err != nil {
		return nil, err
	}
	status, err := getStringOr(args, "status", string(model.StatusBacklog))
	if err != nil {
		return nil, err
	}

	t, err := h.tasks.Create(title, details, load, model.Status(status), h.iter.Current().ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": t}, nil
}

// task.update { taskId, title, details, workload }
func (h *Handler) cmdTaskUpdate(args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	title, err := getString(args, "title")
	if err != nil {
		return nil, err
	}
	details, err := getStringOr(args, "details", "")
	if err != nil {
		return nil, err
	}
	load, err := getNumber(args, "workload")
	if err != nil {
		return nil, err
	}

	t, err := h.tasks.Update(model.TaskID(id), title, details, load)
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": t}, nil
}

// task.delete { taskId }
func (h *Handler) cmdTaskDelete(args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	h.tasks.Delete(model.TaskID(id))
	return map[string]any{"deletedTaskId": id}, nil
}

// task.move { taskId, column }
//
// Produced by the drag-and-drop layer when a task is released over a
// column. A stale payload referencing a deleted task is tolerated as a
// no-op so it cannot take the session down.
func (h *Handler) cmdTaskMove(args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	column, err := getString(args, "column")
	if err != nil {
		return nil, err
	}

	if _, ok := h.tasks.Get(model.TaskID(id)); !ok {
		return map[string]any{"moved": false, "taskId": id}, nil
	}
	if err := h.tasks.SetStatus(model.TaskID(id), model.Status(column)); err != nil {
		return nil, err
	}
	return map[string]any{"moved": true, "taskId": id, "column": column}, nil
}

// iteration.set_start_date { date }
func (h *Handler) cmdIterationSetStartDate(args map[string]any) (any, error) {
	date, err := getStringOr(args, "date", "")
	if err != nil {
		return nil, err
	}
	h.iter.SetStartDate(date)
	return map[string]any{"startDate": date}, nil
}

// iteration.set_end_date { date }
func (h *Handler) cmdIterationSetEndDate(args map[string]any) (any, error) {
	date, err := getStringOr(args, "date", "")
	if err != nil {
		return nil, err
	}
	h.iter.SetEndDate(date)
	return map[string]any{"endDate": date}, nil
}

// iteration.set_work_limit { value }
//
// Accepts whatever the input field held; the leading integer wins and
// anything else resolves to 0 (no limit enforced). A JSON number is
// rendered verbatim so 7.5 truncates to 7 rather than rounding.
func (h *Handler) cmdIterationSetWorkLimit(args map[string]any) (any, error) {
	var raw string
	if v, ok := args["value"]; ok {
		switch val := v.(type) {
		case string:
			raw = val
		case float64:
			raw = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	limit := h.iter.SetWorkLimit(raw)
	return map[string]any{"workLimit": limit}, nil
}

// iteration.add_holiday { date }
func (h *Handler) cmdIterationAddHoliday(args map[string]any) (any, error) {
	date, err := getString(args, "date")
	if err != nil {
		return nil, err
	}
	if err := h.iter.AddHoliday(date); err != nil {
		return nil, err
	}
	return map[string]any{"holidays": h.iter.Current().Holidays}, nil
}

// iteration.remove_holiday { date }
func (h *Handler) cmdIterationRemoveHoliday(args map[string]any) (any, error) {
	date, err := getString(args, "date")
	if err != nil {
		return nil, err
	}
	h.iter.RemoveHoliday(date)
	return map[string]any{"holidays": h.iter.Current().Holidays}, nil
}

// board.save {}
func (h *Handler) cmdBoardSave() (any, error) {
	if err := h.persist(); err != nil {
		return nil, err
	}
	return map[string]any{"saved": true}, nil
}

// board.load {}
//
// Replaces tasks and iteration from the durable slot. Absent or corrupt
// data degrades to the default empty state; the session stays usable.
func (h *Handler) cmdBoardLoad() (any, error) {
	tasks, iter := h.store.Load()
	h.tasks.Replace(tasks)
	h.iter.ReplaceAll(iter)
	return h.snapshot(), nil
}
