package output

import (
	"bytes"
	"testing"
	"time"

	"household/internal/household"
	"household/internal/testutil"
)

func TestFormatTasks_Golden(t *testing.T) {
	seed := household.Seed(time.Now()).Tasks
	var buf bytes.Buffer
	FormatTasks(&buf, household.Sort(seed, household.SortDueDesc))
	testutil.Golden(t, "tasks_due_desc", buf.Bytes())
}

func TestFormatTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, nil)
	if buf.String() != "no tasks match this filter\n" {
		t.Errorf("unexpected empty state %q", buf.String())
	}
}

func TestFormatTask_MissingFields(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, household.Task{ID: "7", Title: "  "})
	want := "[ ]   7  (untitled) (no urgency)\n       unassigned, no due date\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTaskLine(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskLine(&buf, household.Task{ID: "2", Title: "Take out trash", Assignee: "Alex", Urgency: household.UrgencyMedium, Completed: true})
	want := "[x]   2  Take out trash (Alex, medium)\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatPayment(t *testing.T) {
	due := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		payment household.Payment
		want    string
	}{
		{
			name:    "pending shows pay now",
			payment: household.Payment{Title: "Electricity Bill", Amount: 12000, DueDate: due, PaidBy: "Alex", Category: "Utilities", Status: household.PaymentPending},
			want:    "Electricity Bill  $120  [pending]\n       due 2025-05-10, Utilities\n       paid by Alex (pay now)\n",
		},
		{
			name:    "paid has no hint",
			payment: household.Payment{Title: "Internet Bill", Amount: 8050, DueDate: due, PaidBy: "You", Category: "Utilities", Status: household.PaymentPaid},
			want:    "Internet Bill  $80.50  [paid]\n       due 2025-05-10, Utilities\n       paid by You\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatPayment(&buf, tt.payment)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatPoll(t *testing.T) {
	var buf bytes.Buffer
	FormatPoll(&buf, household.Poll{Title: "Movie Night Theme", Deadline: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), VotesCount: 1})
	want := "Movie Night Theme\n       ends 2025-05-09, 1 vote\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatNotification(t *testing.T) {
	now := time.Date(2025, 5, 7, 12, 0, 0, 0, time.UTC)
	n := household.Notification{
		Type:    household.NotificationTask,
		Title:   "New Task Assigned",
		Message: "Alex assigned you to clean the kitchen",
		At:      now.Add(-2 * time.Hour),
	}

	var buf bytes.Buffer
	FormatNotification(&buf, n, now)
	want := "* [task] New Task Assigned  2h ago\n       Alex assigned you to clean the kitchen\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	n.Read = true
	buf.Reset()
	FormatNotification(&buf, n, now)
	if buf.String()[0] != ' ' {
		t.Errorf("read notification should not be starred: %q", buf.String())
	}
}

func TestFormatProfile(t *testing.T) {
	var buf bytes.Buffer
	FormatProfile(&buf, household.Profile{
		Name:  "Alex Johnson",
		Email: "alex.johnson@example.com",
		Stats: household.Stats{Tasks: 2, Balance: 33500, CompletePercent: 50},
	})
	want := "Alex Johnson\nalex.johnson@example.com\nTasks 2 | Balance $335 | Complete 50%\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2025, 5, 7, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-5 * time.Hour), "5h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{now.Add(time.Hour), "just now"},
	}
	for _, tt := range tests {
		if got := Ago(now, tt.at); got != tt.want {
			t.Errorf("Ago(%v): expected %q, got %q", now.Sub(tt.at), tt.want, got)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Buy milk", "Buy milk"},
		{"", "(untitled)"},
		{"   ", "(untitled)"},
		{"line1\nline2", "line1 line2"},
		{"a\r\nb", "a  b"},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
