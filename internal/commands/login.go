package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/auth"
	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Log in to the task API" }
func (c *LoginCmd) Usage() string      { return "taskdash login [--email <email>] [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool    { return false }
func (c *LoginCmd) NeedsService() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.email, c.password = "", ""
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	store := session.NewStore(cfg)
	if store.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	p := newPrompter(in, errOut)
	email, err := p.ask(c.email, "Email: ", false)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read email: %v\n", err)
		return exitcode.UserError
	}
	password, err := p.ask(c.password, "Password: ", true)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
		return exitcode.UserError
	}
	if email == "" || password == "" {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}

	res, err := auth.Login(ctx, svc, store, email, password)
	if err != nil {
		return reportAuthError(errOut, err, "login failed")
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", displayName(res.User))
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskdash register [--name <name>] [--email <email>] [--password <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool    { return false }
func (c *RegisterCmd) NeedsService() bool { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	c.name, c.email, c.password = "", "", ""
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	p := newPrompter(in, errOut)
	name, err := p.ask(c.name, "Name: ", false)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read name: %v\n", err)
		return exitcode.UserError
	}
	email, err := p.ask(c.email, "Email: ", false)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read email: %v\n", err)
		return exitcode.UserError
	}
	password, err := p.ask(c.password, "Password: ", true)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
		return exitcode.UserError
	}

	res, err := auth.Register(ctx, svc, session.NewStore(cfg), name, email, password)
	if err != nil {
		return reportAuthError(errOut, err, "registration failed")
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", displayName(res.User))
	}
	return exitcode.Success
}

// displayName prefers the user's name and falls back to the email.
func displayName(u service.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
