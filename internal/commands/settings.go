package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskdash/internal/auth"
	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&SettingsCmd{})
}

// SettingsCmd implements the settings command.
// Without flags it shows the stored profile; with any of them it updates it.
type SettingsCmd struct {
	name     optString
	email    optString
	password optString
}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return []string{"profile"} }
func (c *SettingsCmd) Synopsis() string  { return "View or edit your profile" }
func (c *SettingsCmd) Usage() string {
	return "taskdash settings [--name <name>] [--email <email>] [--password <password>]"
}
func (c *SettingsCmd) NeedsAuth() bool    { return true }
func (c *SettingsCmd) NeedsService() bool { return true }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {
	c.name, c.email, c.password = optString{}, optString{}, optString{}
	fs.Var(&c.name, "name", "")
	fs.Var(&c.email, "email", "")
	fs.Var(&c.password, "password", "")
}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	store := session.NewStore(cfg)
	user, err := auth.CurrentUser(store)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read profile: %v\n", err)
		return exitcode.AuthError
	}
	if user == nil {
		user = &service.User{}
	}

	if !c.name.set && !c.email.set && !c.password.set {
		c.show(store, *user, out)
		return exitcode.Success
	}

	name, email := user.Name, user.Email
	if c.name.set {
		name = c.name.value
	}
	if c.email.set {
		email = c.email.value
	}

	password := c.password.value
	if !c.password.set {
		p := newPrompter(in, errOut)
		password, err = p.secret("New password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}

	updated, err := auth.Update(ctx, svc, store, name, email, password)
	if err != nil {
		return reportProfileError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
		c.show(store, updated, out)
	}
	return exitcode.Success
}

func (c *SettingsCmd) show(store *session.Store, u service.User, out io.Writer) {
	fmt.Fprintf(out, "Name:  %s\n", u.Name)
	fmt.Fprintf(out, "Email: %s\n", u.Email)

	tok, err := auth.Token(store)
	if err != nil || tok == "" {
		return
	}
	if exp, ok := session.TokenExpiry(tok); ok {
		fmt.Fprintf(out, "Session expires: %s\n", exp.Local().Format(time.RFC1123))
	}
}
