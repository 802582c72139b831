package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/kyoko-docs/kanban/internal/model"
)

// BoardKey is the single well-known slot the whole board state lives under.
const BoardKey = "kanbanBoardData"

var ErrPersistence = errors.New("persistence failure")

// Snapshot is the persisted shape: the task list plus the active iteration.
type Snapshot struct {
	Tasks            []model.Task    `json:"tasks"`
	CurrentIteration model.Iteration `json:"currentIteration"`
}

// Adapter serializes board state to and from the KV slot. It reads tasks
// and iteration to save them and replaces both on load, but owns neither.
type Adapter struct {
	kv     KV
	logger *log.Logger
}

func NewAdapter(kv KV, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{kv: kv, logger: logger}
}

// Save writes the snapshot as one JSON blob. Failures are logged and
// returned wrapped so the caller can surface them; Save never panics.
func (a *Adapter) Save(tasks []model.Task, iter model.Iteration) error {
	snap := Snapshot{Tasks: tasks, CurrentIteration: iter}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	if snap.CurrentIteration.Holidays == nil {
		snap.CurrentIteration.Holidays = []string{}
	}

	b, err := json.Marshal(snap)
	if err != nil {
		a.logger.Printf("save board state: marshal: %v", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := a.kv.Set(BoardKey, b); err != nil {
		a.logger.Printf("save board state: write: %v", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Load reads the snapshot back. An absent key is the expected cold-start
// state and yields the defaults. A malformed blob is logged and treated
// the same way; the corrupted value is left in place.
func (a *Adapter) Load() (tasks []model.Task, iter model.Iteration) {
	tasks = []model.Task{}
	iter = model.DefaultIteration()

	b, ok, err := a.kv.Get(BoardKey)
	if err != nil {
		a.logger.Printf("load board state: read: %v", err)
		return tasks, iter
	}
	if !ok {
		return tasks, iter
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		a.logger.Printf("load board state: corrupt blob, starting fresh: %v", err)
		return tasks, iter
	}

	if snap.Tasks != nil {
		tasks = snap.Tasks
	}
	iter = model.MergeIteration(snap.CurrentIteration)
	return tasks, iter
}
