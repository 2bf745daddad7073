// Package household holds the household records (tasks, payments, polls,
// notifications, profile) and the pure transformations applied to them
// before rendering.
package household

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for due dates and deadlines.
const DateLayout = "2006-01-02"

// Urgency is the urgency level of a task.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Rank returns the ordinal used when comparing urgencies:
// low=1, medium=2, high=3. Unknown values rank 0.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	}
	return 0
}

// ParseUrgency parses an urgency level (case-insensitive, trimmed).
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if u.Rank() == 0 {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return u, nil
}

// Task is a household chore assigned to one member.
type Task struct {
	ID          string
	Title       string
	Assignee    string
	Urgency     Urgency
	Completed   bool
	DueDate     time.Time
	Description string
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s", s)
	}
	return d, nil
}

// mustDate is used for the seed data only.
func mustDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
