package model

// Iteration is the single active sprint against which workload is budgeted.
type Iteration struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Holidays  []string `json:"holidays"`
	WorkLimit int      `json:"workLimit"`
}

// DefaultIteration is the iteration the board starts with when no saved
// state exists.
func DefaultIteration() Iteration {
	return Iteration{
		ID:        "current_sprint",
		Title:     "Current Sprint",
		StartDate: "",
		EndDate:   "",
		Holidays:  []string{},
		WorkLimit: 0,
	}
}

// MergeIteration lays the supplied fields over the defaults so a partially
// specified iteration (legacy saves included) still comes back fully
// populated. Zero values for ID/Title fall back to the defaults; dates and
// workLimit take the supplied value as-is, empty meaning "unset".
func MergeIteration(in Iteration) Iteration {
	out := DefaultIteration()
	if in.ID != "" {
		out.ID = in.ID
	}
	if in.Title != "" {
		out.Title = in.Title
	}
	out.StartDate = in.StartDate
	out.EndDate = in.EndDate
	if in.Holidays != nil {
		out.Holidays = append([]string{}, in.Holidays...)
	}
	if in.WorkLimit > 0 {
		out.WorkLimit = in.WorkLimit
	}
	return out
}
