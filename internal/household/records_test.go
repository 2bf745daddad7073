package household_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"household/internal/household"
)

func paymentIDs(ps []household.Payment) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestFilterPayments(t *testing.T) {
	payments := household.Seed(time.Now()).Payments

	assert.Equal(t, []string{"1", "2", "3", "4"}, paymentIDs(household.FilterPayments(payments, household.PaymentFilterAll)))
	// Overdue payments count as pending.
	assert.Equal(t, []string{"1", "3", "4"}, paymentIDs(household.FilterPayments(payments, household.PaymentFilterPending)))
	assert.Equal(t, []string{"2"}, paymentIDs(household.FilterPayments(payments, household.PaymentFilterPaid)))
}

func TestParsePaymentFilter(t *testing.T) {
	f, err := household.ParsePaymentFilter("PAID")
	require.NoError(t, err)
	assert.Equal(t, household.PaymentFilterPaid, f)

	_, err = household.ParsePaymentFilter("overdue")
	assert.Error(t, err)
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "$120", household.Cents(12000).String())
	assert.Equal(t, "$12.05", household.Cents(1205).String())
	assert.Equal(t, "$0", household.Cents(0).String())
	assert.Equal(t, "-$3.50", household.Cents(-350).String())
}

func TestSummarize(t *testing.T) {
	data := household.Seed(time.Now())

	stats := household.Summarize(data.Tasks, data.Payments, "You")
	assert.Equal(t, 2, stats.Tasks)
	assert.Equal(t, 0, stats.CompletePercent)
	assert.Equal(t, household.Cents(33500), stats.Balance)

	// Alex's only task is done: nothing open, fully complete.
	stats = household.Summarize(data.Tasks, data.Payments, "Alex")
	assert.Equal(t, 0, stats.Tasks)
	assert.Equal(t, 100, stats.CompletePercent)

	mixed := []household.Task{
		{ID: "a", Assignee: "Sam", Completed: true},
		{ID: "b", Assignee: "Sam"},
		{ID: "c", Assignee: "Sam"},
		{ID: "d", Assignee: "Sam", Completed: true},
		{ID: "e", Assignee: "Alex"},
	}
	stats = household.Summarize(mixed, nil, "Sam")
	assert.Equal(t, 2, stats.Tasks, "completed tasks are not counted as open")
	assert.Equal(t, 50, stats.CompletePercent)

	stats = household.Summarize(nil, nil, "Nobody")
	assert.Equal(t, household.Stats{}, stats)
}

func TestUnread(t *testing.T) {
	ns := household.Seed(time.Now()).Notifications
	unread := household.Unread(ns)
	require.Len(t, unread, 2)
	assert.Equal(t, "1", unread[0].ID)
	assert.Equal(t, "2", unread[1].ID)
}

func TestParseUrgency(t *testing.T) {
	u, err := household.ParseUrgency(" High ")
	require.NoError(t, err)
	assert.Equal(t, household.UrgencyHigh, u)
	assert.Equal(t, 3, u.Rank())

	_, err = household.ParseUrgency("urgent")
	assert.EqualError(t, err, "invalid urgency: urgent")
}
