// Package workload derives the committed-workload figures for the active
// iteration. Everything here is a pure function of its inputs so capacity
// accounting stays isolated from rendering and persistence.
package workload

import (
	"math"

	"github.com/kyoko-docs/kanban/internal/model"
)

// Total sums the workload of every task scoped to the given iteration.
// A task with a missing or non-numeric workload contributes 0; the result
// is never NaN.
func Total(tasks []model.Task, iterationID string) float64 {
	var total float64
	for _, t := range tasks {
		if t.IterationID != iterationID {
			continue
		}
		w := t.Workload
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			continue
		}
		total += w
	}
	return total
}

// Summary carries the display quantities derived from a total and a work
// limit. A workLimit of 0 means unbounded: the percentage stays 0 and the
// over-budget flag never trips, even when the total is positive.
type Summary struct {
	Total       float64 `json:"total"`
	WorkLimit   int     `json:"workLimit"`
	Percentage  float64 `json:"percentage"`
	BarFraction float64 `json:"barFraction"`
	OverBudget  bool    `json:"overBudget"`
}

func Summarize(total float64, workLimit int) Summary {
	s := Summary{Total: total, WorkLimit: workLimit}
	if workLimit > 0 {
		s.Percentage = total / float64(workLimit) * 100
		s.OverBudget = total > float64(workLimit)
	}
	s.BarFraction = math.Min(s.Percentage, 100)
	return s
}
