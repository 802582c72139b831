package task

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kyoko-docs/kanban/internal/model"
)

var (
	ErrNotFound = errors.New("task not found")
	ErrInvalid  = errors.New("invalid task")
)

// lastID holds the most recently issued id so that two creates landing in
// the same clock tick still get distinct, increasing values.
var lastID atomic.Int64

func nextID() model.TaskID {
	now := time.Now().UnixMilli()
	for {
		prev := lastID.Load()
		if now <= prev {
			now = prev + 1
		}
		if lastID.CompareAndSwap(prev, now) {
			return model.TaskID(strconv.FormatInt(now, 10))
		}
	}
}

// Store owns the ordered task collection. All mutations go through it.
type Store struct {
	mu    sync.RWMutex
	tasks []model.Task
	index map[model.TaskID]int
}

func NewStore() *Store {
	return &Store{index: map[model.TaskID]int{}}
}

func validate(title string, workload float64) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if math.IsNaN(workload) || math.IsInf(workload, 0) || workload < 0 {
		return "", fmt.Errorf("%w: workload must be a non-negative number", ErrInvalid)
	}
	return title, nil
}

// Create validates the input, assigns a fresh id and appends the task.
// The iteration binding is fixed at creation and never changes afterwards.
func (s *Store) Create(title, details string, workload float64, status model.Status, iterationID string) (model.Task, error) {
	title, err := validate(title, workload)
	if err != nil {
		return model.Task{}, err
	}
	if !model.ValidStatus(status) {
		return model.Task{}, fmt.Errorf("%w: unknown column %q", ErrInvalid, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ID:          nextID(),
		Title:       title,
		Details:     details,
		Workload:    workload,
		Status:      status,
		IterationID: iterationID,
	}
	s.index[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Update mutates title/details/workload in place. Status and iteration
// binding are immutable through edit.
func (s *Store) Update(id model.TaskID, title, details string, workload float64) (model.Task, error) {
	title, err := validate(title, workload)
	if err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	s.tasks[i].Title = title
	s.tasks[i].Details = details
	s.tasks[i].Workload = workload
	return s.tasks[i], nil
}

// Delete removes the task with the given id. Deleting a missing id is a
// no-op so the operation stays idempotent.
func (s *Store) Delete(id model.TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.tasks); j++ {
		s.index[s.tasks[j].ID] = j
	}
}

func (s *Store) Get(id model.TaskID) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// List returns the tasks in insertion order.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// SetStatus moves a task to another column. This is the operation the
// drag-and-drop layer drives.
func (s *Store) SetStatus(id model.TaskID, status model.Status) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: unknown column %q", ErrInvalid, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	s.tasks[i].Status = status
	return nil
}

// Replace swaps the whole collection, used when loading persisted state.
// Tasks with unknown columns or duplicate ids are dropped rather than
// letting a bad blob corrupt the store invariants.
func (s *Store) Replace(tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = s.tasks[:0]
	s.index = map[model.TaskID]int{}
	for _, t := range tasks {
		if t.ID == "" || !model.ValidStatus(t.Status) {
			continue
		}
		if _, dup := s.index[t.ID]; dup {
			continue
		}
		if math.IsNaN(t.Workload) || math.IsInf(t.Workload, 0) || t.Workload < 0 {
			t.Workload = 0
		}
		s.index[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t)
	}
}
