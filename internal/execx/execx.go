// Package execx runs external commands and captures their output as text.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/go-ports/poetry-bootstrap/internal/searchpath"
)

// ErrNotFound matches any NotFoundError.
var ErrNotFound = errors.New("command not found")

// Command describes one invocation.
type Command struct {
	Args  []string
	Stdin io.Reader
	// Env is the environment for the child. Args[0] is resolved against its
	// PATH rather than the real process environment.
	Env *searchpath.Env
	Dir string
}

// String renders the command line for messages.
func (c Command) String() string { return strings.Join(c.Args, " ") }

// Output is the captured result of a finished command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs a command to completion and captures its output.
// Implementations return *NotFoundError when the executable cannot be
// resolved and *ExitError when it exits non-zero; Output is populated in the
// latter case.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// NotFoundError reports an executable missing from the search path.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Name)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ExitError reports a command that ran and exited with a non-zero status.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by real processes.
func NewExecRunner() *ExecRunner { return &ExecRunner{} }

// Run implements Runner. It blocks until the child exits; there is no timeout.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	if len(cmd.Args) == 0 {
		return Output{}, errors.New("execx: empty command")
	}
	env := cmd.Env
	if env == nil {
		env = searchpath.FromOS()
	}

	name := cmd.Args[0]
	path, err := env.LookPath(name)
	if err != nil {
		return Output{}, &NotFoundError{Name: name}
	}

	c := exec.CommandContext(ctx, path, cmd.Args[1:]...) // #nosec G204 -- commands are fixed by the bootstrapper, only the interpreter/tool names are configurable
	c.Env = env.Environ()
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	runErr := c.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, &ExitError{Args: cmd.Args, ExitCode: out.ExitCode, Stderr: out.Stderr}
	}
	if errors.Is(runErr, exec.ErrNotFound) {
		return out, &NotFoundError{Name: name}
	}
	return out, fmt.Errorf("execx: run %s: %w", name, runErr)
}
