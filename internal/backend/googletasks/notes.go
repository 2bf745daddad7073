package googletasks

import (
	"strings"
	"time"

	tasks "google.golang.org/api/tasks/v1"

	"household/internal/household"
)

// Household fields ride in the task notes as "key: value" header lines,
// followed by a blank line and the free-text description:
//
//	assignee: Alex
//	urgency: high
//
//	Empty all bins and replace bags
const (
	keyAssignee = "assignee"
	keyUrgency  = "urgency"
)

// defaultUrgency applies to tasks created outside household.
const defaultUrgency = household.UrgencyMedium

// fromAPI converts an API task.
func fromAPI(t *tasks.Task) household.Task {
	assignee, urgency, description := decodeNotes(t.Notes)
	return household.Task{
		ID:          t.Id,
		Title:       t.Title,
		Assignee:    assignee,
		Urgency:     urgency,
		Completed:   t.Status == statusCompleted,
		DueDate:     parseDue(t.Due),
		Description: description,
	}
}

// encodeNotes renders the household fields into notes.
func encodeNotes(t household.Task) string {
	var b strings.Builder
	if t.Assignee != "" {
		b.WriteString(keyAssignee + ": " + t.Assignee + "\n")
	}
	if t.Urgency != "" {
		b.WriteString(keyUrgency + ": " + string(t.Urgency) + "\n")
	}
	if t.Description != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Description)
	}
	return b.String()
}

// decodeNotes reads header lines until the first line that is not a known
// "key: value" pair, or an urgency line naming no level. The rest is the
// description.
func decodeNotes(notes string) (assignee string, urgency household.Urgency, description string) {
	urgency = defaultUrgency
	lines := strings.Split(strings.ReplaceAll(notes, "\r\n", "\n"), "\n")

	i := 0
header:
	for ; i < len(lines); i++ {
		key, value, ok := strings.Cut(lines[i], ":")
		if !ok {
			break
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case keyAssignee:
			assignee = value
		case keyUrgency:
			u, err := household.ParseUrgency(value)
			if err != nil {
				break header
			}
			urgency = u
		default:
			break header
		}
	}

	rest := lines[i:]
	if len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
		rest = rest[1:]
	}
	description = strings.TrimSpace(strings.Join(rest, "\n"))
	return assignee, urgency, description
}

// parseDue reads the RFC 3339 due timestamp as a calendar date. Google
// Tasks drops the time of day, so only the date part is kept.
func parseDue(due string) time.Time {
	if due == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return time.Time{}
	}
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// formatDue renders a calendar date as the API's due timestamp.
func formatDue(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(household.DateLayout) + "T00:00:00.000Z"
}

// toAPI converts a household task for insertion.
func toAPI(t household.Task) *tasks.Task {
	status := statusNeedsAction
	if t.Completed {
		status = statusCompleted
	}
	return &tasks.Task{
		Title:  t.Title,
		Notes:  encodeNotes(t),
		Due:    formatDue(t.DueDate),
		Status: status,
	}
}
