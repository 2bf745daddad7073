package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"household/internal/config"
	"household/internal/exitcode"
	"household/internal/household"
	"household/internal/output"
	"household/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks screen.
type TasksCmd struct {
	filter string
	sort   string
}

// SetQuery sets the filter and sort names (for testing).
func (c *TasksCmd) SetQuery(filter, sort string) {
	c.filter = filter
	c.sort = sort
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"ls"} }
func (c *TasksCmd) Synopsis() string  { return "List household tasks" }
func (c *TasksCmd) Usage() string {
	return "household tasks [--filter all|mine|pending] [--sort <mode>]"
}
func (c *TasksCmd) NeedsAuth() bool { return true }
func (c *TasksCmd) Tab() bool       { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(household.DefaultFilter), "")
	fs.StringVar(&c.filter, "f", string(household.DefaultFilter), "")
	fs.StringVar(&c.sort, "sort", string(household.DefaultSort), "")
	fs.StringVar(&c.sort, "s", string(household.DefaultSort), "")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	q, err := c.query(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatTasks(out, household.Apply(tasks, q))
	return exitcode.Success
}

func (c *TasksCmd) query(cfg *config.Config) (household.Query, error) {
	q := household.Query{
		Filter:      household.DefaultFilter,
		Sort:        household.DefaultSort,
		CurrentUser: cfg.User,
	}
	if c.filter != "" {
		f, err := household.ParseFilter(c.filter)
		if err != nil {
			return q, err
		}
		q.Filter = f
	}
	if c.sort != "" {
		s, err := household.ParseSort(c.sort)
		if err != nil {
			return q, err
		}
		q.Sort = s
	}
	return q, nil
}
