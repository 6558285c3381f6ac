package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/output"
	"taskdash/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command.
type TasksCmd struct {
	status   string
	priority string
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"list", "ls"} }
func (c *TasksCmd) Synopsis() string  { return "List tasks" }
func (c *TasksCmd) Usage() string {
	return "taskdash tasks [--status pending|in_progress|completed] [--priority low|medium|high]"
}
func (c *TasksCmd) NeedsAuth() bool    { return true }
func (c *TasksCmd) NeedsService() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	c.status, c.priority = "", ""
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var keep []func(service.Task) bool
	if c.status != "" {
		st, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		keep = append(keep, func(t service.Task) bool { return t.Status == st })
	}
	if c.priority != "" {
		p, err := service.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		keep = append(keep, func(t service.Task) bool { return t.Priority == p })
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportFetchError(errOut, err)
	}
	tasks = filterTasks(tasks, keep)

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, t := range tasks {
		output.FormatTask(out, t, displayLocation)
	}
	return exitcode.Success
}

// filterTasks keeps the tasks that pass every predicate.
func filterTasks(tasks []service.Task, keep []func(service.Task) bool) []service.Task {
	if len(keep) == 0 {
		return tasks
	}
	var out []service.Task
next:
	for _, t := range tasks {
		for _, k := range keep {
			if !k(t) {
				continue next
			}
		}
		out = append(out, t)
	}
	return out
}
