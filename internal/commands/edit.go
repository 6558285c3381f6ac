package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// Fields not given on the command line keep the task's current values.
type EditCmd struct {
	form taskForm
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskdash edit [--title <text>] [--description <text>] [--priority <p>] [--status <s>] [--due <date>] <id>"
}
func (c *EditCmd) NeedsAuth() bool    { return true }
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.form.register(fs, true)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Load the current task to pre-fill the form
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportFetchError(errOut, err)
	}
	task, ok := findTask(tasks, id)
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	input, err := c.form.apply(editTaskInput(task))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := svc.UpdateTask(ctx, id, input); err != nil {
		return reportSaveError(errOut, err)
	}

	return refreshTasks(ctx, cfg, svc, out, errOut)
}
