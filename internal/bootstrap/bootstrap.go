// Package bootstrap makes sure the Poetry dependency manager is installed and
// then installs or initializes the Python project in the working directory.
//
// The run is a linear state machine:
//
//	Start ──tool on PATH──────────────────────────▶ ToolReady ──▶ Done
//	  │                                               ▲
//	  └─missing─▶ NeedInstall ──installed and found───┘
//	                 │
//	                 └─install failed / still missing─▶ fatal (exit 1)
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/go-ports/poetry-bootstrap/internal/config"
	"github.com/go-ports/poetry-bootstrap/internal/execx"
	"github.com/go-ports/poetry-bootstrap/internal/installer"
	"github.com/go-ports/poetry-bootstrap/internal/searchpath"
	"github.com/go-ports/poetry-bootstrap/internal/ui"
)

// Fatal outcomes of Run. Both map to exit status 1.
var (
	// ErrSetupFailed means neither installation method succeeded.
	ErrSetupFailed = errors.New("could not install the dependency manager")
	// ErrToolUnavailable means installation reported success but the tool is
	// still not on the search path.
	ErrToolUnavailable = errors.New("dependency manager installed but not found on PATH")
)

// State is a step of the bootstrap state machine.
type State int

// States in the order they are visited.
const (
	StateStart State = iota
	StateNeedInstall
	StateToolReady
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateNeedInstall:
		return "need-install"
	case StateToolReady:
		return "tool-ready"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a Bootstrapper. Zero values fall back to real
// implementations and the current directory.
type Options struct {
	Config   *config.Config
	Runner   execx.Runner
	Fetcher  installer.Fetcher
	Env      *searchpath.Env
	Reporter *ui.Reporter
	Logger   zerolog.Logger
	// WorkDir is where the manifest is looked up and tool commands run.
	WorkDir string
	// BinDir overrides the user-local executable directory.
	BinDir string
}

// Bootstrapper drives one bootstrap run.
type Bootstrapper struct {
	cfg     *config.Config
	runner  execx.Runner
	fetcher installer.Fetcher
	env     *searchpath.Env
	out     *ui.Reporter
	log     zerolog.Logger
	workDir string
	binDir  string
}

// New builds a Bootstrapper from opts.
func New(opts Options) *Bootstrapper {
	b := &Bootstrapper{
		cfg:     opts.Config,
		runner:  opts.Runner,
		fetcher: opts.Fetcher,
		env:     opts.Env,
		out:     opts.Reporter,
		log:     opts.Logger,
		workDir: opts.WorkDir,
		binDir:  opts.BinDir,
	}
	if b.cfg == nil {
		b.cfg = config.Default()
	}
	if b.runner == nil {
		b.runner = execx.NewExecRunner()
	}
	if b.fetcher == nil {
		b.fetcher = installer.NewHTTPFetcher(nil)
	}
	if b.env == nil {
		b.env = searchpath.FromOS()
	}
	if b.out == nil {
		b.out = ui.NewReporter(os.Stdout, false)
	}
	if b.workDir == "" {
		b.workDir = "."
	}
	if b.binDir == "" {
		b.binDir = b.cfg.BinDir
	}
	if b.binDir == "" {
		b.binDir = searchpath.UserBinDir()
	}
	return b
}

// Run walks the state machine to completion. It returns ErrSetupFailed or
// ErrToolUnavailable for the two fatal outcomes; every other path, including
// a failing install/init sub-command, returns nil.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.out.Header(fmt.Sprintf("Initializing %s with %s", b.cfg.ProjectNameFor(b.workDir), toolTitle(b.cfg.Tool)))

	state := StateStart
	for state != StateDone {
		b.log.Debug().Stringer("state", state).Msg("bootstrap state")
		next, err := b.step(ctx, state)
		if err != nil {
			b.log.Debug().Stringer("state", state).Err(err).Msg("bootstrap aborted")
			return err
		}
		state = next
	}

	b.printNextSteps()
	return nil
}

func (b *Bootstrapper) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateStart:
		if b.IsToolInstalled() {
			return StateToolReady, nil
		}
		return StateNeedInstall, nil

	case StateNeedInstall:
		if !b.InstallTool(ctx) {
			b.out.Println()
			b.out.Error("Could not install %s. Install it manually from:", toolTitle(b.cfg.Tool))
			b.out.Println(b.cfg.DocsURL)
			return state, ErrSetupFailed
		}
		if !b.IsToolInstalled() {
			b.out.Error("%s was installed but is not on PATH. Restart your terminal or add %s to PATH.", toolTitle(b.cfg.Tool), b.binDir)
			return state, ErrToolUnavailable
		}
		return StateToolReady, nil

	case StateToolReady:
		b.prepareProject(ctx)
		return StateDone, nil

	default:
		return state, fmt.Errorf("bootstrap: unexpected state %s", state)
	}
}

// prepareProject installs dependencies for an existing project or creates a
// new one. Failures are reported but never abort the run.
func (b *Bootstrapper) prepareProject(ctx context.Context) {
	b.out.Success("%s is available and ready to use.", toolTitle(b.cfg.Tool))
	b.out.Println()

	if b.ManifestExists() {
		b.out.Step("Existing %s project detected (%s found).", toolTitle(b.cfg.Tool), b.cfg.Manifest)
		b.out.Step("Installing dependencies...")
		b.out.Println()
		if !b.RunCommand(ctx, []string{b.cfg.Tool, "install"}, true) {
			b.log.Warn().Msg("dependency install failed")
		}
		return
	}

	b.out.Step("No %s found. Initializing a new %s project non-interactively...", b.cfg.Manifest, toolTitle(b.cfg.Tool))
	b.out.Println()
	// --no-interaction keeps init from waiting on stdin.
	if !b.RunCommand(ctx, []string{b.cfg.Tool, "init", "--no-interaction"}, true) {
		b.log.Warn().Msg("project init failed")
	}
	b.out.Println()
	b.out.Println(b.cfg.Manifest + " created with default values.")
	b.out.Println("Edit it by hand if you need to change the name, version, authors, etc.")
	b.out.Printf("Then run '%s install' to create the virtual environment.\n", b.cfg.Tool)
}

func (b *Bootstrapper) printNextSteps() {
	tool := b.cfg.Tool
	steps := [][2]string{
		{tool + " shell", "activate the virtual environment"},
		{tool + " add <package>", "add new dependencies"},
		{tool + " run python your_script.py", "run scripts inside the environment"},
	}
	width := 0
	for _, s := range steps {
		width = max(width, len(s[0]))
	}

	b.out.Println()
	b.out.Success("%s initialized successfully!", b.cfg.ProjectNameFor(b.workDir))
	b.out.Println("Recommended next steps:")
	for _, s := range steps {
		b.out.Bullet(width, s[0], s[1])
	}
}

// IsToolInstalled reports whether the tool resolves on the session PATH.
func (b *Bootstrapper) IsToolInstalled() bool {
	found := b.env.Has(b.cfg.Tool)
	b.log.Debug().Str("tool", b.cfg.Tool).Bool("found", found).Msg("tool lookup")
	return found
}

// ManifestExists reports whether the project manifest is present right now.
func (b *Bootstrapper) ManifestExists() bool {
	_, err := os.Stat(filepath.Join(b.workDir, b.cfg.Manifest))
	return err == nil
}

func toolTitle(tool string) string {
	if tool == "" {
		return tool
	}
	if tool[0] >= 'a' && tool[0] <= 'z' {
		return string(tool[0]-'a'+'A') + tool[1:]
	}
	return tool
}
