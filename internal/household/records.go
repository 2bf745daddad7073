package household

import (
	"fmt"
	"strings"
	"time"
)

// Cents is a money amount in hundredths of the currency unit.
type Cents int64

// String formats the amount as "$120" or "$12.50".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	if c%100 == 0 {
		return fmt.Sprintf("%s$%d", sign, c/100)
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// PaymentStatus is the settlement state of a shared payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Payment is a shared household expense.
type Payment struct {
	ID       string
	Title    string
	Amount   Cents
	DueDate  time.Time
	PaidBy   string
	Category string
	Status   PaymentStatus
}

// Outstanding reports whether the payment still has to be settled.
func (p Payment) Outstanding() bool {
	return p.Status != PaymentPaid
}

// PaymentFilter selects which payments are shown.
type PaymentFilter string

const (
	PaymentFilterAll     PaymentFilter = "all"
	PaymentFilterPending PaymentFilter = "pending"
	PaymentFilterPaid    PaymentFilter = "paid"
)

// ParsePaymentFilter parses a payment filter name.
func ParsePaymentFilter(s string) (PaymentFilter, error) {
	switch f := PaymentFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case PaymentFilterAll, PaymentFilterPending, PaymentFilterPaid:
		return f, nil
	}
	return "", fmt.Errorf("invalid payment filter: %s", s)
}

// FilterPayments returns the payments matching f. Pending includes
// overdue payments.
func FilterPayments(payments []Payment, f PaymentFilter) []Payment {
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		switch f {
		case PaymentFilterPending:
			if !p.Outstanding() {
				continue
			}
		case PaymentFilterPaid:
			if p.Outstanding() {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Poll is an open household vote.
type Poll struct {
	ID         string
	Title      string
	Deadline   time.Time
	VotesCount int
}

// NotificationType categorizes a notification.
type NotificationType string

const (
	NotificationTask    NotificationType = "task"
	NotificationPayment NotificationType = "payment"
	NotificationPoll    NotificationType = "poll"
	NotificationGeneral NotificationType = "general"
)

// Notification is an entry in the household activity feed.
type Notification struct {
	ID      string
	Type    NotificationType
	Title   string
	Message string
	At      time.Time
	Read    bool
}

// Unread returns the notifications not yet read, in input order.
func Unread(ns []Notification) []Notification {
	var out []Notification
	for _, n := range ns {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// MenuItem is an entry of the profile menu.
type MenuItem struct {
	ID       string
	Icon     string
	Title    string
	Subtitle string
}

// Stats are the profile counters.
type Stats struct {
	Tasks           int // open tasks assigned to the member
	Balance         Cents
	CompletePercent int
}

// Profile is the signed-in member's card.
type Profile struct {
	Name  string
	Email string
	Stats Stats
}

// Summarize computes profile stats for currentUser: the number of their
// open tasks, the outstanding balance of unsettled payments and the share
// of their assigned tasks already completed.
func Summarize(tasks []Task, payments []Payment, currentUser string) Stats {
	var s Stats
	assigned, done := 0, 0
	for _, t := range tasks {
		if t.Assignee != currentUser {
			continue
		}
		assigned++
		if t.Completed {
			done++
		} else {
			s.Tasks++
		}
	}
	if assigned > 0 {
		s.CompletePercent = done * 100 / assigned
	}
	for _, p := range payments {
		if p.Outstanding() {
			s.Balance += p.Amount
		}
	}
	return s
}
