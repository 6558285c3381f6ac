package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/output"
	"taskdash/internal/service"
)

// errTitleRequired is returned when the form has no title.
var errTitleRequired = errors.New("title required")

// displayLocation is the zone due dates are shown in.
var displayLocation = time.Local

// optString is a string flag that remembers whether it was given.
// This tells "--due ''" (clear the date) apart from no --due at all.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// taskForm holds the create/edit form fields given on the command line.
type taskForm struct {
	title       optString
	description optString
	priority    optString
	status      optString
	due         optString
}

func (f *taskForm) register(fs *flag.FlagSet, withTitle bool) {
	*f = taskForm{}
	if withTitle {
		fs.Var(&f.title, "title", "")
		fs.Var(&f.title, "t", "")
	}
	fs.Var(&f.description, "description", "")
	fs.Var(&f.description, "d", "")
	fs.Var(&f.priority, "priority", "")
	fs.Var(&f.priority, "p", "")
	fs.Var(&f.status, "status", "")
	fs.Var(&f.status, "s", "")
	fs.Var(&f.due, "due", "")
}

// apply overlays the given fields on base and returns the payload to send.
// Empty optional fields become nil so they are sent as null.
func (f *taskForm) apply(base service.TaskInput) (service.TaskInput, error) {
	in := base
	if f.title.set {
		in.Title = f.title.value
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return service.TaskInput{}, errTitleRequired
	}

	if f.description.set {
		in.Description = service.OptionalString(f.description.value)
	}
	in.Description = service.OptionalString(service.StringValue(in.Description))

	if f.due.set {
		in.DueDate = service.OptionalString(strings.TrimSpace(f.due.value))
	}
	in.DueDate = service.OptionalString(service.StringValue(in.DueDate))

	if f.priority.set {
		p, err := service.ParsePriority(f.priority.value)
		if err != nil {
			return service.TaskInput{}, err
		}
		in.Priority = p
	}
	if f.status.set {
		s, err := service.ParseStatus(f.status.value)
		if err != nil {
			return service.TaskInput{}, err
		}
		in.Status = s
	}
	return in, nil
}

// newTaskInput is the form state for a new task.
func newTaskInput(title string) service.TaskInput {
	return service.TaskInput{
		Title:    title,
		Priority: service.PriorityMedium,
		Status:   service.StatusPending,
	}
}

// editTaskInput pre-fills the form from an existing task.
func editTaskInput(t service.Task) service.TaskInput {
	return service.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}

// refreshTasks refetches the task list after a change and prints it.
func refreshTasks(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportFetchError(errOut, err)
	}
	if cfg.Quiet {
		return exitcode.Success
	}
	fmt.Fprintln(out, "ok")
	printTaskList(out, tasks)
	return exitcode.Success
}

// printTaskList prints tasks, or "no tasks found" for an empty list.
func printTaskList(out io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "no tasks found")
		return
	}
	output.FormatTasks(out, tasks, displayLocation)
}
