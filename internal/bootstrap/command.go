package bootstrap

import (
	"context"
	"errors"

	"github.com/go-ports/poetry-bootstrap/internal/execx"
	"github.com/go-ports/poetry-bootstrap/internal/logging"
)

// RunCommand runs args synchronously in the working directory with the session
// environment. Captured stdout is printed on success. A missing executable, or
// a non-zero exit when mustSucceed is set, is reported and yields false; the
// error never propagates further.
//
//revive:disable-next-line:flag-parameter
func (b *Bootstrapper) RunCommand(ctx context.Context, args []string, mustSucceed bool) bool {
	return b.run(ctx, execx.Command{Args: args}, mustSucceed)
}

//revive:disable-next-line:flag-parameter
func (b *Bootstrapper) run(ctx context.Context, cmd execx.Command, mustSucceed bool) bool {
	if len(cmd.Args) == 0 {
		return false
	}
	cmd.Env = b.env
	if cmd.Dir == "" {
		cmd.Dir = b.workDir
	}

	done := logging.LogOperationStart(b.log, cmd.String())
	stop := b.out.Spin(cmd.String())
	out, err := b.runner.Run(ctx, cmd)
	stop()
	done()
	b.log.Debug().Strs("args", cmd.Args).Int("exit_code", out.ExitCode).Err(err).Msg("command finished")

	if err == nil {
		b.out.Raw(out.Stdout)
		return true
	}
	if errors.Is(err, execx.ErrNotFound) {
		b.out.Error("Command not found: %s. Check that it is installed and on PATH.", cmd.Args[0])
		return false
	}

	var exitErr *execx.ExitError
	if errors.As(err, &exitErr) {
		if !mustSucceed {
			b.out.Raw(out.Stdout)
			return true
		}
		b.out.Error("Error running %s:", cmd)
		b.out.Raw(exitErr.Stderr)
		return false
	}

	b.out.Error("Error running %s: %v", cmd, err)
	return false
}
