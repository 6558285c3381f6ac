package cli_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"taskdash/internal/cli"
	"taskdash/internal/commands"
	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/session"
	"taskdash/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args through the default registry.
func run(t *testing.T, factory cli.ServiceFactory, args []string, stdin string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, strings.NewReader(stdin), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// loginDir returns a config dir holding a session for Ana.
func loginDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := session.NewStore(&config.Config{Dir: dir})
	if err := store.SaveToken("1|test-token"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := store.SaveUser(service.User{ID: 1, Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	return dir
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), []string{"unknowncmd"}, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), []string{"tasks", "--config", t.TempDir(), "--bogus"}, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown flag: -bogus\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), []string{"tasks", "--status"}, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: flag needs an argument: -status\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, testFactory(svc), []string{"help", "--config", t.TempDir()}, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, nil, []string{"version", "--config", t.TempDir()}, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "taskdash 0.1.0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_NoArgsLoggedOutShowsHelp(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := run(t, testFactory(svc), []string{"--config", t.TempDir()}, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Errorf("expected help output, got %q", stdout)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

func TestDispatcher_NoArgsLoggedInShowsHome(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusPending, service.PriorityLow)

	stdout, stderr, code := run(t, testFactory(svc), []string{"--config", loginDir(t)}, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.HasPrefix(stdout, "Welcome, Ana\n") {
		t.Errorf("expected dashboard, got %q", stdout)
	}
	if !strings.Contains(stdout, "Buy milk") {
		t.Errorf("expected recent tasks, got %q", stdout)
	}
}

func TestDispatcher_ProtectedPageRequiresLogin(t *testing.T) {
	svc := testutil.NewFakeService()

	for _, name := range []string{"home", "tasks", "add", "edit", "rm", "settings"} {
		stdout, stderr, code := run(t, testFactory(svc), []string{name, "--config", t.TempDir()}, "")

		if code != exitcode.AuthError {
			t.Errorf("%s: expected exit code %d, got %d", name, exitcode.AuthError, code)
		}
		if stdout != "" {
			t.Errorf("%s: expected no stdout, got %q", name, stdout)
		}
		if stderr != "error: not logged in (run: taskdash login)\n" {
			t.Errorf("%s: unexpected stderr %q", name, stderr)
		}
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

func TestDispatcher_RmThroughAlias(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Old", service.StatusPending, service.PriorityLow)

	_, stderr, code := run(t, testFactory(svc), []string{"delete", "--config", loginDir(t), "--quiet", "1"}, "yes\n")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if svc.CallCount("DeleteTask 1") != 1 || svc.CallCount("ListTasks") != 1 {
		t.Errorf("expected one delete and one refetch, got %v", svc.Calls)
	}
}

func TestDispatcher_UnexpectedPositionalFlag(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), []string{"rm", "--config", loginDir(t), "1", "-x"}, "")

	// Flags after a positional argument are not parsed; rm rejects the extra arg
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: -x\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	dir := loginDir(t)

	authFactory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("failed to read token: unexpected end of JSON input")
	}
	_, stderr, code := run(t, authFactory, []string{"tasks", "--config", dir}, "")
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: auth error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	backendFactory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("connection refused")
	}
	_, stderr, code = run(t, backendFactory, []string{"tasks", "--config", dir}, "")
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NilFactory(t *testing.T) {
	_, stderr, code := run(t, nil, []string{"tasks", "--config", loginDir(t)}, "")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: no service configured\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_CommonFlagsBeforeCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, []string{"--config", t.TempDir(), "version"}, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "taskdash 0.1.0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_CommonFlagsBeforeCommandWithCommandFlags(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", service.StatusPending, service.PriorityLow)
	svc.AddTask("b", service.StatusCompleted, service.PriorityLow)

	stdout, stderr, code := run(t, testFactory(svc), []string{"--quiet", "--config", loginDir(t), "tasks", "--status", "completed"}, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "[x] b") || strings.Contains(stdout, "[ ] a") {
		t.Errorf("expected only completed tasks, got %q", stdout)
	}
}

func TestDispatcher_LeadingFlagsUnknownCommand(t *testing.T) {
	_, stderr, code := run(t, nil, []string{"--config", t.TempDir(), "nope"}, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown command: nope\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// pageCmd stands in for a page command that does not ask for a session itself.
type pageCmd struct {
	name string
	ran  bool
}

func (c *pageCmd) Name() string                   { return c.name }
func (c *pageCmd) Aliases() []string              { return nil }
func (c *pageCmd) Synopsis() string               { return "" }
func (c *pageCmd) Usage() string                  { return "" }
func (c *pageCmd) NeedsAuth() bool                { return false }
func (c *pageCmd) NeedsService() bool             { return false }
func (c *pageCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *pageCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	c.ran = true
	return exitcode.Success
}

func TestDispatcher_ProtectedNavPageGatedByRouteTable(t *testing.T) {
	settings := &pageCmd{name: "settings"}
	other := &pageCmd{name: "about"}
	registry := commands.NewRegistry()
	for _, c := range []commands.Command{settings, other} {
		if err := registry.Register(c); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	dispatcher := cli.NewDispatcher(registry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"settings", "--config", t.TempDir()}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if settings.ran {
		t.Error("protected page must not run without a session")
	}

	stderr.Reset()
	code = dispatcher.Run(context.Background(), []string{"about", "--config", t.TempDir()}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.Success || !other.ran {
		t.Errorf("unprotected command should run, got %d %q", code, stderr.String())
	}

	// With a session the protected page runs
	code = dispatcher.Run(context.Background(), []string{"settings", "--config", loginDir(t)}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.Success || !settings.ran {
		t.Errorf("expected protected page to run when logged in, got %d", code)
	}
}
