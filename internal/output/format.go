// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"household/internal/household"
)

const (
	// Separator is the separator line around screen headers.
	Separator = "------------"

	// detailIndent aligns detail lines under the row title.
	detailIndent = "       "

	// EmptyTasks is printed when no task passes the filter.
	EmptyTasks = "no tasks match this filter"
)

// FormatHeader formats a screen or section header.
func FormatHeader(w io.Writer, title string) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, Separator)
}

// FormatTask formats a task row.
// Format:
//
//	[x] {ID:>3}  {TITLE} ({URGENCY})
//	       {ASSIGNEE}, due {DATE}
//	       {DESCRIPTION}
func FormatTask(w io.Writer, t household.Task) {
	fmt.Fprintf(w, "%s %3s  %s (%s)\n", checkbox(t.Completed), t.ID, normalizeTitle(t.Title), urgencyLabel(t.Urgency))
	fmt.Fprintf(w, "%s%s, %s\n", detailIndent, assigneeLabel(t.Assignee), dueLabel(t.DueDate))
	if d := normalizeTitle(t.Description); t.Description != "" {
		fmt.Fprintf(w, "%s%s\n", detailIndent, d)
	}
}

// FormatTaskLine formats a compact single-line task row.
func FormatTaskLine(w io.Writer, t household.Task) {
	fmt.Fprintf(w, "%s %3s  %s (%s, %s)\n", checkbox(t.Completed), t.ID, normalizeTitle(t.Title), assigneeLabel(t.Assignee), urgencyLabel(t.Urgency))
}

// FormatTasks formats tasks, or the empty state when there are none.
func FormatTasks(w io.Writer, tasks []household.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyTasks)
		return
	}
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatPayment formats a payment row. Unsettled payments carry a
// "pay now" hint.
func FormatPayment(w io.Writer, p household.Payment) {
	fmt.Fprintf(w, "%s  %s  [%s]\n", normalizeTitle(p.Title), p.Amount, p.Status)
	fmt.Fprintf(w, "%s%s, %s\n", detailIndent, dueLabel(p.DueDate), p.Category)
	if p.Outstanding() {
		fmt.Fprintf(w, "%spaid by %s (pay now)\n", detailIndent, p.PaidBy)
	} else {
		fmt.Fprintf(w, "%spaid by %s\n", detailIndent, p.PaidBy)
	}
}

// FormatPoll formats a poll row.
func FormatPoll(w io.Writer, p household.Poll) {
	fmt.Fprintf(w, "%s\n", normalizeTitle(p.Title))
	fmt.Fprintf(w, "%sends %s, %s\n", detailIndent, dateLabel(p.Deadline), plural(p.VotesCount, "vote"))
}

// FormatNotification formats a feed entry. Unread entries are starred.
func FormatNotification(w io.Writer, n household.Notification, now time.Time) {
	mark := " "
	if !n.Read {
		mark = "*"
	}
	fmt.Fprintf(w, "%s [%s] %s  %s\n", mark, n.Type, normalizeTitle(n.Title), Ago(now, n.At))
	fmt.Fprintf(w, "%s%s\n", detailIndent, n.Message)
}

// FormatProfile formats the profile card with its stats.
func FormatProfile(w io.Writer, p household.Profile) {
	fmt.Fprintln(w, p.Name)
	fmt.Fprintln(w, p.Email)
	fmt.Fprintf(w, "Tasks %d | Balance %s | Complete %d%%\n", p.Stats.Tasks, p.Stats.Balance, p.Stats.CompletePercent)
}

// FormatMenuItem formats a profile menu entry.
func FormatMenuItem(w io.Writer, m household.MenuItem) {
	fmt.Fprintf(w, "%s >\n", m.Title)
	if m.Subtitle != "" {
		fmt.Fprintf(w, "%s%s\n", detailIndent, m.Subtitle)
	}
}

// Ago renders t relative to now: "just now", "5m ago", "2h ago", "1d ago".
func Ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
	return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func urgencyLabel(u household.Urgency) string {
	if u == "" {
		return "no urgency"
	}
	return string(u)
}

func assigneeLabel(a string) string {
	if strings.TrimSpace(a) == "" {
		return "unassigned"
	}
	return a
}

func dueLabel(d time.Time) string {
	if d.IsZero() {
		return "no due date"
	}
	return "due " + dateLabel(d)
}

func dateLabel(d time.Time) string {
	return d.Format(household.DateLayout)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
