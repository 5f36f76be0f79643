// Package doctorcmd implements the `poetry-bootstrap doctor` command.
package doctorcmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/shared"
	"github.com/go-ports/poetry-bootstrap/internal/execx"
	"github.com/go-ports/poetry-bootstrap/internal/health"
)

// Command implements `poetry-bootstrap doctor`.
type Command struct {
	ctx     *shared.Context
	cmd     *cobra.Command
	jsonOut bool
}

// New creates the doctor command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "doctor",
		Short: "Check the bootstrap prerequisites without changing anything",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.jsonOut, "json", false, "Print the report as JSON")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	session, err := c.ctx.Open()
	if err != nil {
		return err
	}

	checker := &health.Checker{
		Config:  session.Config,
		Env:     session.Env,
		Runner:  execx.NewExecRunner(),
		WorkDir: session.WorkDir,
		BinDir:  shared.BinDir(session.Config),
	}
	report := checker.Run(cmd.Context())

	out := cmd.OutOrStdout()
	if c.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("doctor: %w", err)
		}
	} else {
		fmt.Fprint(out, health.FormatReport(report))
	}

	if !report.Passed {
		return health.ErrChecksFailed
	}
	return nil
}
