package model

// Status is one of the fixed workflow columns a task occupies.
type Status string

const (
	StatusBacklog Status = "Backlog"
	StatusToDo    Status = "To Do"
	StatusDoing   Status = "Doing"
	StatusDone    Status = "Done"
)

// Columns returns the workflow columns in board order.
func Columns() []Status {
	return []Status{StatusBacklog, StatusToDo, StatusDoing, StatusDone}
}

// ValidStatus reports whether s names one of the fixed columns.
func ValidStatus(s Status) bool {
	switch s {
	case StatusBacklog, StatusToDo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type TaskID string

// Task is a unit of work on the board, bound to one column and one iteration.
type Task struct {
	ID          TaskID  `json:"id"`
	Title       string  `json:"title"`
	Details     string  `json:"details"`
	Workload    float64 `json:"workload"`
	Status      Status  `json:"status"`
	IterationID string  `json:"iterationId"`
}
