package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/auth"
	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/logger"
	"taskdash/internal/nav"
	"taskdash/internal/output"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&HomeCmd{})
}

// HomeCmd implements the home dashboard.
// It is also what `taskdash` with no arguments runs once logged in.
type HomeCmd struct{}

func (c *HomeCmd) Name() string       { return nav.Home }
func (c *HomeCmd) Aliases() []string  { return []string{"dashboard"} }
func (c *HomeCmd) Synopsis() string   { return "Show task counts and recent tasks" }
func (c *HomeCmd) Usage() string      { return "taskdash home" }
func (c *HomeCmd) NeedsAuth() bool    { return true }
func (c *HomeCmd) NeedsService() bool { return true }

func (c *HomeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HomeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportFetchError(errOut, err)
	}

	// A missing or unreadable user only loses the name in the greeting
	user, err := auth.CurrentUser(session.NewStore(cfg))
	if err != nil {
		logger.Warn("could not read stored user", "err", err)
	}
	if user != nil && user.Name != "" {
		fmt.Fprintf(out, "Welcome, %s\n", user.Name)
	} else {
		fmt.Fprintln(out, "Welcome")
	}
	fmt.Fprintln(out)

	output.FormatStats(out, service.ComputeStats(tasks))
	fmt.Fprintln(out)

	output.FormatSectionHeader(out, "Recent tasks")
	printTaskList(out, tasks)
	return exitcode.Success
}
