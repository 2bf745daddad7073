package household

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// FilterMode selects which tasks are shown.
type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterMine    FilterMode = "mine"
	FilterPending FilterMode = "pending"
)

// SortMode selects the task ordering.
type SortMode string

const (
	SortUrgencyDesc     SortMode = "urgency-desc"
	SortUrgencyAsc      SortMode = "urgency-asc"
	SortDueDesc         SortMode = "due-desc"
	SortDueAsc          SortMode = "due-asc"
	SortCompletedFirst  SortMode = "completed-first"
	SortIncompleteFirst SortMode = "incomplete-first"
)

// Defaults match the "reset filters" state.
const (
	DefaultFilter = FilterAll
	DefaultSort   = SortDueDesc
)

// sortAliases maps the short picker names to sort modes.
var sortAliases = map[string]SortMode{
	"urgencyhigh": SortUrgencyDesc,
	"urgencylow":  SortUrgencyAsc,
	"recent":      SortDueDesc,
	"oldest":      SortDueAsc,
	"completed":   SortCompletedFirst,
	"incomplete":  SortIncompleteFirst,
}

// SortModes lists every sort mode in picker order.
var SortModes = []SortMode{
	SortUrgencyDesc,
	SortUrgencyAsc,
	SortDueDesc,
	SortDueAsc,
	SortCompletedFirst,
	SortIncompleteFirst,
}

// ParseFilter parses a filter mode name.
func ParseFilter(s string) (FilterMode, error) {
	switch m := FilterMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FilterAll, FilterMine, FilterPending:
		return m, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// ParseSort parses a sort mode name or one of its short aliases
// (urgencyHigh, urgencyLow, recent, oldest, completed, incomplete).
func ParseSort(s string) (SortMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if m, ok := sortAliases[key]; ok {
		return m, nil
	}
	m := SortMode(key)
	if slices.Contains(SortModes, m) {
		return m, nil
	}
	return "", fmt.Errorf("invalid sort: %s", s)
}

// Matches reports whether t passes the filter for currentUser.
func (m FilterMode) Matches(t Task, currentUser string) bool {
	switch m {
	case FilterMine:
		return t.Assignee == currentUser && !t.Completed
	case FilterPending:
		return !t.Completed
	}
	return true
}

// compare returns the comparator for the sort mode, or nil for an
// unknown mode (input order is kept).
func (m SortMode) compare() func(a, b Task) int {
	switch m {
	case SortUrgencyDesc:
		return func(a, b Task) int { return cmp.Compare(b.Urgency.Rank(), a.Urgency.Rank()) }
	case SortUrgencyAsc:
		return func(a, b Task) int { return cmp.Compare(a.Urgency.Rank(), b.Urgency.Rank()) }
	case SortDueDesc:
		return func(a, b Task) int { return b.DueDate.Compare(a.DueDate) }
	case SortDueAsc:
		return func(a, b Task) int { return a.DueDate.Compare(b.DueDate) }
	case SortCompletedFirst:
		return func(a, b Task) int { return cmp.Compare(boolRank(b.Completed), boolRank(a.Completed)) }
	case SortIncompleteFirst:
		return func(a, b Task) int { return cmp.Compare(boolRank(a.Completed), boolRank(b.Completed)) }
	}
	return nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Filter returns the tasks matching mode, in input order.
// The input slice is not modified.
func Filter(tasks []Task, mode FilterMode, currentUser string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.Matches(t, currentUser) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a stably sorted copy of tasks. Tasks with equal keys keep
// their input order.
func Sort(tasks []Task, mode SortMode) []Task {
	out := slices.Clone(tasks)
	if c := mode.compare(); c != nil {
		slices.SortStableFunc(out, c)
	}
	return out
}

// Query is a filter and sort selection for the task list.
type Query struct {
	Filter      FilterMode
	Sort        SortMode
	CurrentUser string
}

// Apply filters then sorts tasks.
func Apply(tasks []Task, q Query) []Task {
	return Sort(Filter(tasks, q.Filter, q.CurrentUser), q.Sort)
}

// ToggleCompletion returns a copy of tasks with the completion flag of
// the task with the given id flipped. The second result is false when no
// task has that id, in which case the copy equals the input.
func ToggleCompletion(tasks []Task, id string) ([]Task, bool) {
	out := slices.Clone(tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			return out, true
		}
	}
	return out, false
}
