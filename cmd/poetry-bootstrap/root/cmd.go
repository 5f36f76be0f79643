// Package rootcmd wires the root cobra.Command for the poetry-bootstrap binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/config"
	doctorcmd "github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/doctor"
	"github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/shared"
	versioncmd "github.com/go-ports/poetry-bootstrap/cmd/poetry-bootstrap/version"
	"github.com/go-ports/poetry-bootstrap/internal/bootstrap"
	"github.com/go-ports/poetry-bootstrap/internal/ui"
)

// New creates and returns the root cobra.Command. Run without a subcommand it
// bootstraps Poetry and the project in the working directory.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:   "poetry-bootstrap",
		Short: "Install Poetry if needed and set up the Python project",
		Long: `poetry-bootstrap makes sure the Poetry dependency manager is installed,
installing it with the official installer (or pip --user as a fallback), then
runs "poetry install" when pyproject.toml exists or "poetry init
--no-interaction" when it does not.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBootstrap(cmd, ctx)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&ctx.Dir, "dir", "", "Project directory (default: current directory)")
	flags.StringVar(&ctx.ConfigFile, "config", "",
		"Config file (default: $XDG_CONFIG_HOME/poetry-bootstrap/config.yaml then ./.poetry-bootstrap.yaml)")
	flags.CountVarP(&ctx.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	flags.BoolVar(&ctx.NoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		doctorcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}

func runBootstrap(cmd *cobra.Command, ctx *shared.Context) error {
	session, err := ctx.Open()
	if err != nil {
		return err
	}
	logger := ctx.Logger(cmd.ErrOrStderr())
	logger.Info().Str("dir", session.WorkDir).Strs("config_sources", session.Config.Sources).Msg("bootstrap starting")

	b := bootstrap.New(bootstrap.Options{
		Config:   session.Config,
		Env:      session.Env,
		Reporter: ui.NewReporter(cmd.OutOrStdout(), ctx.NoColor),
		Logger:   logger,
		WorkDir:  session.WorkDir,
		BinDir:   shared.BinDir(session.Config),
	})
	return b.Run(cmd.Context())
}
