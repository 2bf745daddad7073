package household

import "time"

// DefaultUser is the assignee label of the signed-in member in the seed data.
const DefaultUser = "You"

// Data is a complete set of household records.
type Data struct {
	Tasks         []Task
	Payments      []Payment
	Polls         []Poll
	Notifications []Notification
	Menu          []MenuItem
	Profile       Profile
}

// Seed returns the sample household. Notification times are relative
// to now.
func Seed(now time.Time) Data {
	return Data{
		Tasks: []Task{
			{
				ID:          "1",
				Title:       "Clean kitchen",
				Assignee:    "You",
				Urgency:     UrgencyHigh,
				DueDate:     mustDate("2025-05-07"),
				Description: "Deep clean all surfaces and organize cabinets",
			},
			{
				ID:          "2",
				Title:       "Take out trash",
				Assignee:    "Alex",
				Urgency:     UrgencyMedium,
				Completed:   true,
				DueDate:     mustDate("2025-05-06"),
				Description: "Empty all bins and replace bags",
			},
			{
				ID:          "3",
				Title:       "Buy groceries",
				Assignee:    "Sarah",
				Urgency:     UrgencyLow,
				DueDate:     mustDate("2025-05-08"),
				Description: "Get items from the shared shopping list",
			},
			{
				ID:          "4",
				Title:       "Fix bathroom light",
				Assignee:    "You",
				Urgency:     UrgencyMedium,
				DueDate:     mustDate("2025-05-07"),
				Description: "Replace broken bulb in main bathroom",
			},
		},
		Payments: []Payment{
			{ID: "1", Title: "Electricity Bill", Amount: 12000, DueDate: mustDate("2025-05-10"), PaidBy: "Alex", Category: "Utilities", Status: PaymentPending},
			{ID: "2", Title: "Internet Bill", Amount: 8000, DueDate: mustDate("2025-05-15"), PaidBy: "You", Category: "Utilities", Status: PaymentPaid},
			{ID: "3", Title: "Groceries", Amount: 20000, DueDate: mustDate("2025-05-05"), PaidBy: "Sarah", Category: "Food", Status: PaymentOverdue},
			{ID: "4", Title: "Netflix", Amount: 1500, DueDate: mustDate("2025-05-20"), PaidBy: "You", Category: "Entertainment", Status: PaymentPending},
		},
		Polls: []Poll{
			{ID: "1", Title: "New Cleaning Schedule", Deadline: mustDate("2025-05-08"), VotesCount: 3},
			{ID: "2", Title: "Movie Night Theme", Deadline: mustDate("2025-05-09"), VotesCount: 2},
		},
		Notifications: []Notification{
			{ID: "1", Type: NotificationTask, Title: "New Task Assigned", Message: "Alex assigned you to clean the kitchen", At: now.Add(-2 * time.Hour)},
			{ID: "2", Type: NotificationPayment, Title: "Payment Reminder", Message: "Electricity bill payment is due tomorrow", At: now.Add(-5 * time.Hour)},
			{ID: "3", Type: NotificationPoll, Title: "New Poll", Message: "Sarah created a poll for weekend activities", At: now.Add(-24 * time.Hour), Read: true},
			{ID: "4", Type: NotificationGeneral, Title: "Welcome!", Message: "Welcome to your new home management app", At: now.Add(-48 * time.Hour), Read: true},
		},
		Menu: []MenuItem{
			{ID: "1", Icon: "person", Title: "Personal Information", Subtitle: "Update your profile details"},
			{ID: "2", Icon: "home", Title: "Household Settings", Subtitle: "Manage your home and roommates"},
			{ID: "3", Icon: "notifications", Title: "Notification Preferences", Subtitle: "Choose what you want to be notified about"},
			{ID: "4", Icon: "card", Title: "Payment Methods", Subtitle: "Manage your payment options"},
			{ID: "5", Icon: "shield", Title: "Privacy Settings", Subtitle: "Control your data and privacy"},
			{ID: "6", Icon: "help", Title: "Help & Support", Subtitle: "Get help with using the app"},
		},
		Profile: Profile{
			Name:  "Alex Johnson",
			Email: "alex.johnson@example.com",
		},
	}
}
