package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/nav"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskdash help" }
func (c *HelpCmd) NeedsAuth() bool    { return false }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n      %s\n", "taskdash [common flags]", "Show the dashboard (or this help when logged out)")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %s\n      %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)

	loggedIn := session.NewStore(cfg).HasToken()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Pages:")
	for _, l := range nav.Visible(loggedIn) {
		fmt.Fprintf(out, "  %-10s %s\n", l.Command, l.Description)
	}
	if !loggedIn {
		fmt.Fprintln(out, "  (log in to see all pages: taskdash login)")
	}
	return exitcode.Success
}

const helpFooter = `
Priorities: low, medium, high
Statuses:   pending, in_progress, completed

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
