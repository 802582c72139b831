package workload

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kyoko-docs/kanban/internal/model"
)

func TestTotal_ScopedToIteration(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Workload: 5, IterationID: "A"},
		{ID: "2", Workload: 10, IterationID: "B"},
		{ID: "3", Workload: 3, IterationID: "A"},
	}
	assert.Equal(t, float64(8), Total(tasks, "A"))
	assert.Equal(t, float64(10), Total(tasks, "B"))
	assert.Equal(t, float64(0), Total(tasks, "C"))
	assert.Equal(t, float64(0), Total(nil, "A"))
}

func TestTotal_BadWorkloadCountsAsZero(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Workload: 4, IterationID: "A"},
		{ID: "2", Workload: math.NaN(), IterationID: "A"},
		{ID: "3", Workload: math.Inf(1), IterationID: "A"},
		{ID: "4", Workload: -2, IterationID: "A"},
	}
	total := Total(tasks, "A")
	assert.Equal(t, float64(4), total)
	assert.False(t, math.IsNaN(total))
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name       string
		total      float64
		limit      int
		percentage float64
		bar        float64
		over       bool
	}{
		{"under budget", 20, 40, 50, 50, false},
		{"at budget", 40, 40, 100, 100, false},
		{"over budget", 60, 40, 150, 100, true},
		{"no limit suppresses warning", 60, 0, 0, 0, false},
		{"empty board", 0, 40, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.total, tc.limit)
			assert.Equal(t, tc.total, s.Total)
			assert.Equal(t, tc.limit, s.WorkLimit)
			assert.InDelta(t, tc.percentage, s.Percentage, 1e-9)
			assert.InDelta(t, tc.bar, s.BarFraction, 1e-9, "bar is capped at 100")
			assert.Equal(t, tc.over, s.OverBudget)
		})
	}
}
