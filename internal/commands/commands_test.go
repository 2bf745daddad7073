package commands_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"household/internal/commands"
	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/household"
	"household/internal/service"
	"household/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:     t.TempDir(),
		Quiet:   quiet,
		User:    household.DefaultUser,
		Backend: config.BackendMemory,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func seeded() *testutil.FakeService {
	return testutil.NewSeededFakeService(time.Now())
}

// taskIDs extracts the ids from task rows.
func taskIDs(out string) []string {
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "[") {
			ids = append(ids, strings.Fields(line[3:])[0])
		}
	}
	return ids
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if want := "household 0.1.0 (memory backend, " + runtime.Version() + ")\n"; stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	for _, name := range []string{"tasks", "toggle", "payments", "shell", "login"} {
		if !strings.Contains(stdout, "household "+name) {
			t.Errorf("help output should mention %s", name)
		}
	}
}

func TestHelpCommand_ListsRegistry(t *testing.T) {
	r := commands.NewRegistry()
	for _, c := range []commands.Command{&commands.TasksCmd{}, &commands.PollsCmd{}, &commands.VersionCmd{}} {
		if err := r.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stdout, _, code := runCommand(t, &commands.HelpCmd{Registry: r}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{"household tasks", "(alias: ls)", "household polls", "household version", "Switch to a tab: polls, tasks\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q, got:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "household payments") {
		t.Error("help output should only list registered commands")
	}
	if strings.Index(stdout, "household polls") > strings.Index(stdout, "household tasks") {
		t.Error("expected commands sorted by name")
	}
}

// Tests for tasks command
func TestTasksCommand_DefaultOrder(t *testing.T) {
	cmd := &commands.TasksCmd{}
	stdout, stderr, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	got := strings.Join(taskIDs(stdout), ",")
	if got != "3,1,4,2" {
		t.Errorf("expected due-desc order 3,1,4,2, got %s", got)
	}
}

func TestTasksCommand_FilterAndSort(t *testing.T) {
	tests := []struct {
		filter, sort string
		want         string
	}{
		{"mine", "urgencyHigh", "1,4"},
		{"pending", "oldest", "1,4,3"},
		{"all", "completed", "2,1,3,4"},
		{"all", "incomplete-first", "1,3,4,2"},
		{"pending", "urgency-asc", "3,4,1"},
	}
	for _, tt := range tests {
		t.Run(tt.filter+"/"+tt.sort, func(t *testing.T) {
			cmd := &commands.TasksCmd{}
			cmd.SetQuery(tt.filter, tt.sort)
			stdout, stderr, code := runCommand(t, cmd, seeded(), nil, false)
			if code != exitcode.Success {
				t.Fatalf("expected success, got %d: %s", code, stderr)
			}
			if got := strings.Join(taskIDs(stdout), ","); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTasksCommand_EmptyFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(household.Task{ID: "1", Title: "Done already", Assignee: "You", Completed: true})

	cmd := &commands.TasksCmd{}
	cmd.SetQuery("mine", "")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks match this filter\n" {
		t.Errorf("expected empty state, got %q", stdout)
	}
}

func TestTasksCommand_InvalidSort(t *testing.T) {
	cmd := &commands.TasksCmd{}
	cmd.SetQuery("", "alphabetical")
	_, stderr, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid sort: alphabetical\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestTasksCommand_BackendError(t *testing.T) {
	svc := seeded()
	svc.ListTasksErr = errors.New("connection refused")

	cmd := &commands.TasksCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestTasksCommand_Unauthorized(t *testing.T) {
	svc := seeded()
	svc.ListTasksErr = service.ErrUnauthorized

	_, _, code := runCommand(t, &commands.TasksCmd{}, svc, nil, false)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

// Tests for toggle command
func TestToggleCommand(t *testing.T) {
	svc := seeded()
	cmd := &commands.ToggleCmd{}

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "[x]   1  Clean kitchen (You, high)\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	stdout, _, _ = runCommand(t, cmd, svc, []string{"1"}, false)
	if stdout != "[ ]   1  Clean kitchen (You, high)\n" {
		t.Errorf("expected task reopened, got %q", stdout)
	}

	for _, task := range svc.Tasks() {
		if task.ID == "2" && !task.Completed {
			t.Error("other tasks must not change")
		}
	}
}

func TestToggleCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, seeded(), []string{"3"}, true)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestToggleCommand_UnknownID(t *testing.T) {
	svc := seeded()
	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"99"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task 99: not found\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Toggled) != 0 {
		t.Errorf("expected no toggles, got %v", svc.Toggled)
	}
}

func TestToggleCommand_MissingID(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, seeded(), nil, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task id required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for payments command
func TestPaymentsCommand_Pending(t *testing.T) {
	cmd := &commands.PaymentsCmd{}
	cmd.SetFilter("pending")
	stdout, _, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, title := range []string{"Electricity Bill", "Groceries", "Netflix"} {
		if !strings.Contains(stdout, title) {
			t.Errorf("expected %s in pending payments", title)
		}
	}
	if strings.Contains(stdout, "Internet Bill") {
		t.Error("paid payment should be filtered out")
	}
	if strings.Count(stdout, "(pay now)") != 3 {
		t.Errorf("expected a pay now hint per unpaid payment:\n%s", stdout)
	}
}

func TestPaymentsCommand_InvalidFilter(t *testing.T) {
	cmd := &commands.PaymentsCmd{}
	cmd.SetFilter("late")
	_, stderr, code := runCommand(t, cmd, seeded(), nil, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid payment filter: late\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for polls command
func TestPollsCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.PollsCmd{}, seeded(), nil, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	want := "New Cleaning Schedule\n       ends 2025-05-08, 3 votes\n" +
		"Movie Night Theme\n       ends 2025-05-09, 2 votes\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestPollsCommand_Empty(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.PollsCmd{}, testutil.NewFakeService(), nil, false)
	if stdout != "no active polls\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

// Tests for notifications command
func TestNotificationsCommand_Unread(t *testing.T) {
	cmd := &commands.NotificationsCmd{}
	cmd.SetUnread(true)
	stdout, _, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "2 unread\n") {
		t.Errorf("expected unread count first, got %q", stdout)
	}
	if !strings.Contains(stdout, "* [task] New Task Assigned  2h ago") {
		t.Errorf("expected relative time on task notification:\n%s", stdout)
	}
	if strings.Contains(stdout, "Welcome!") {
		t.Error("read notifications should be hidden with --unread")
	}
}

// Tests for profile command
func TestProfileCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ProfileCmd{}, seeded(), nil, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Alex Johnson\nalex.johnson@example.com\nTasks 2 | Balance $335 | Complete 0%\n") {
		t.Errorf("unexpected profile header:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Help & Support >\n") {
		t.Errorf("expected menu items:\n%s", stdout)
	}
}

// Tests for home command
func TestHomeCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HomeCmd{}, seeded(), nil, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Home Sweet Home (2 unread)\n") {
		t.Errorf("expected unread badge in title, got %q", strings.SplitN(stdout, "\n", 2)[0])
	}
	for _, section := range []string{"Today's Tasks", "Pending Payments", "Active Polls"} {
		if !strings.Contains(stdout, "\n"+section+"\n") {
			t.Errorf("missing section %s", section)
		}
	}
	if strings.Contains(stdout, "Internet Bill") {
		t.Error("home should only list pending payments")
	}
}

func TestHomeCommand_NoUnread(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.HomeCmd{}, testutil.NewFakeService(), nil, false)
	if !strings.HasPrefix(stdout, "Home Sweet Home\n") {
		t.Errorf("expected plain title, got %q", stdout)
	}
	if !strings.Contains(stdout, "no tasks match this filter\n") {
		t.Errorf("expected empty task state:\n%s", stdout)
	}
}

// Tests for setup command
func TestSetupCommand_MemoryBackend(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.SetupCmd{}, seeded(), nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "nothing to set up for the memory backend\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

type fakeProvisioner struct {
	*testutil.FakeService
	created bool
	got     []household.Task
}

func (p *fakeProvisioner) Provision(ctx context.Context, tasks []household.Task) (bool, error) {
	p.got = tasks
	return p.created, nil
}

func TestSetupCommand_Provisions(t *testing.T) {
	p := &fakeProvisioner{FakeService: testutil.NewFakeService(), created: true}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Backend: config.BackendGoogle, GoogleList: "Household"}
	code := (&commands.SetupCmd{}).Run(context.Background(), cfg, p, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "created list: Household\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
	if len(p.got) != 4 {
		t.Errorf("expected the 4 sample tasks, got %d", len(p.got))
	}
}

func TestRegistry_Tabs(t *testing.T) {
	want := []string{"home", "notifications", "payments", "polls", "profile", "tasks"}
	got := commands.DefaultRegistry.Tabs()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected tabs %v, got %v", want, got)
	}
	if _, ok := commands.DefaultRegistry.Find("done"); !ok {
		t.Error("expected done alias for toggle")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.HelpCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.HelpCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}
