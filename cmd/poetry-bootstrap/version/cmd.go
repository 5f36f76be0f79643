// Package versioncmd implements the `poetry-bootstrap version` command.
package versioncmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/shared"
	"github.com/go-ports/poetry-bootstrap/internal/buildinfo"
)

// Command implements `poetry-bootstrap version`.
type Command struct {
	cmd *cobra.Command
}

// New creates the version command.
func New(_ *shared.Context) *Command {
	c := &Command{}
	c.cmd = &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "poetry-bootstrap %s\n", buildinfo.String())
	return nil
}
