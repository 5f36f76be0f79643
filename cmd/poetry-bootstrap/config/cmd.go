// Package configcmd implements the `poetry-bootstrap config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/shared"
	"github.com/go-ports/poetry-bootstrap/internal/config"
	"github.com/go-ports/poetry-bootstrap/internal/redaction"
)

const configTemplate = `# poetry-bootstrap configuration
# Every key is optional. Environment variables POETRY_BOOTSTRAP_<KEY>
# (e.g. POETRY_BOOTSTRAP_MIN_VERSION) override this file.

# Dependency manager executable looked up on PATH.
tool: poetry

# Manifest whose presence selects "install" over "init".
manifest: pyproject.toml

# Python interpreter used to run the installer (default: python3, then python).
# interpreter: python3

# Official installer script, piped to the interpreter's stdin.
# installer_url: https://install.python-poetry.org

# Shown when automatic installation fails.
# docs_url: https://python-poetry.org/docs/#installation

# Directory the installer puts executables in (default: ~/.local/bin).
# bin_dir: ~/.local/bin

# Name shown in the banner (default: the directory name).
# project_name: my-project

# Minimum tool version accepted by "poetry-bootstrap doctor".
# min_version: 1.8.0
`

// Command implements `poetry-bootstrap config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(newConfigInit(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	session, err := c.ctx.Open()
	if err != nil {
		return err
	}
	shown := *session.Config
	shown.InstallerURL = redaction.Text(shown.InstallerURL)
	shown.DocsURL = redaction.Text(shown.DocsURL)
	data := struct {
		config.Config `yaml:",inline"`
		WorkDir       string   `yaml:"work_dir"`
		Sources       []string `yaml:"sources"`
	}{
		Config:  shown,
		WorkDir: session.WorkDir,
		Sources: session.Config.Sources,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter " + config.ProjectFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := ctx.Dir
			if dir == "" {
				dir = "."
			}
			cfgPath := config.ProjectPath(dir)
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			fmt.Fprintln(out, "Uncomment and edit the keys you want to change.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}
