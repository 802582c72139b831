package iteration

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/kyoko-docs/kanban/internal/model"
)

var (
	ErrEmptyHoliday     = errors.New("holiday date is required")
	ErrDuplicateHoliday = errors.New("holiday already added")
)

// Settings owns the single active iteration. There is no history; loading
// saved state overwrites the iteration wholesale.
type Settings struct {
	mu  sync.RWMutex
	cur model.Iteration
}

func NewSettings() *Settings {
	return &Settings{cur: model.DefaultIteration()}
}

// Current returns a snapshot of the active iteration.
func (s *Settings) Current() model.Iteration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.cur
	out.Holidays = append([]string{}, s.cur.Holidays...)
	return out
}

func (s *Settings) SetStartDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.StartDate = date
}

func (s *Settings) SetEndDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.EndDate = date
}

// SetWorkLimit parses the raw input to a non-negative integer. Only the
// leading integer counts, so "12.5" sets 12 and "40h" sets 40; input with
// no leading digits, or a negative value, resolves to 0, meaning no limit
// is enforced.
func (s *Settings) SetWorkLimit(value string) int {
	n := parseLimit(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.WorkLimit = n
	return n
}

func parseLimit(value string) int {
	value = strings.TrimSpace(value)
	i := 0
	neg := false
	if i < len(value) && (value[i] == '+' || value[i] == '-') {
		neg = value[i] == '-'
		i++
	}
	start := i
	for i < len(value) && value[i] >= '0' && value[i] <= '9' {
		i++
	}
	if i == start || neg {
		return 0
	}
	n, err := strconv.Atoi(value[start:i])
	if err != nil {
		return 0
	}
	return n
}

// AddHoliday inserts a date into the holiday set, keeping it sorted
// ascending. ISO dates sort lexically, so string order is date order.
func (s *Settings) AddHoliday(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return ErrEmptyHoliday
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.cur.Holidays {
		if h == date {
			return ErrDuplicateHoliday
		}
	}
	s.cur.Holidays = append(s.cur.Holidays, date)
	sort.Strings(s.cur.Holidays)
	return nil
}

// RemoveHoliday removes by exact match; removing an absent date is a no-op.
func (s *Settings) RemoveHoliday(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.cur.Holidays[:0]
	for _, h := range s.cur.Holidays {
		if h != date {
			out = append(out, h)
		}
	}
	s.cur.Holidays = out
}

// ReplaceAll overwrites the iteration with the supplied fields merged over
// the defaults, so a partial save still yields a fully populated iteration.
func (s *Settings) ReplaceAll(in model.Iteration) {
	merged := model.MergeIteration(in)
	sort.Strings(merged.Holidays)
	merged.Holidays = dedupeSorted(merged.Holidays)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = merged
}

func dedupeSorted(in []string) []string {
	out := in[:0]
	for i, v := range in {
		if v == "" {
			continue
		}
		if i > 0 && v == in[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}
