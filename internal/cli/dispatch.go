// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdash/internal/commands"
	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/logger"
	"taskdash/internal/nav"
	"taskdash/internal/service"
	"taskdash/internal/session"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	// No args -> the home page once logged in, help otherwise
	if len(args) == 0 {
		return d.dispatch(ctx, "", nil, in, out, errOut)
	}

	cmdName := args[0]

	// Common flags may come before the command name. With no command
	// after them they apply to the default page.
	if strings.HasPrefix(cmdName, "-") {
		if name, rest, ok := splitLeadingFlags(args); ok {
			return d.dispatch(ctx, name, rest, in, out, errOut)
		}
		return d.dispatch(ctx, "", args, in, out, errOut)
	}

	return d.dispatch(ctx, cmdName, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)

	var cmd commands.Command
	if cmdName != "" {
		var ok bool
		cmd, ok = d.registry.Find(cmdName)
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
			return exitcode.UserError
		}
		// Register command-specific flags
		cmd.RegisterFlags(fs)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	// Create config
	cfg, err := config.New(common.configDir, common.apiURL)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	logger.Init(errOut, common.debug)

	store := session.NewStore(cfg)

	// Resolve the default page now that the config dir is known
	if cmd == nil {
		if len(positionalArgs) > 0 {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", positionalArgs[0])
			return exitcode.UserError
		}
		name := "help"
		if store.HasToken() {
			name = nav.Home
		}
		cmd, _ = d.registry.Find(name)
		if cmd == nil {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
			return exitcode.UserError
		}
	}

	// Check auth requirements
	if requiresSession(cmd) && !store.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: taskdash login)")
		return exitcode.AuthError
	}

	var svc service.Service
	if cmd.NeedsService() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: backend error: no service configured")
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			// Check if it's an auth error
			if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	logger.Debug("dispatch", "command", cmd.Name(), "api", cfg.APIURL, "config", cfg.Dir)

	// Run command
	return cmd.Run(ctx, cfg, svc, positionalArgs, in, out, errOut)
}

// requiresSession reports whether cmd may only run with a stored token.
// Protected pages in the nav table are gated even if the command does not ask.
func requiresSession(cmd commands.Command) bool {
	if l, ok := nav.Find(cmd.Name()); ok && l.Protected {
		return true
	}
	return cmd.NeedsAuth()
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	apiURL    string
	quiet     bool
	debug     bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configDir, "config", "", "")
	fs.StringVar(&c.apiURL, "api", "", "")
	fs.BoolVar(&c.quiet, "quiet", false, "")
	fs.BoolVar(&c.debug, "debug", false, "")
}

// splitLeadingFlags handles "taskdash --config X tasks ...". It returns the
// command name and the arguments to parse for it, with the leading common
// flags kept in front. ok is false when the flags are malformed or no
// command follows them.
func splitLeadingFlags(args []string) (name string, rest []string, ok bool) {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return "", nil, false
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return "", nil, false
	}
	leading := args[:len(args)-len(remaining)]
	rest = make([]string, 0, len(args)-1)
	rest = append(rest, leading...)
	rest = append(rest, remaining[1:]...)
	return remaining[0], rest, true
}

// flagError rewrites flag package errors into the CLI's message style.
func flagError(err error) string {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagPart := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagPart
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + flagName
	}

	return errStr
}
