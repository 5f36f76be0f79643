package bootstrap

import (
	"bytes"
	"context"

	"github.com/go-ports/poetry-bootstrap/internal/config"
	"github.com/go-ports/poetry-bootstrap/internal/execx"
	"github.com/go-ports/poetry-bootstrap/internal/redaction"
	"github.com/go-ports/poetry-bootstrap/internal/searchpath"
)

// interpreterCandidates are tried in order when no interpreter is configured.
var interpreterCandidates = []string{"python3", "python"}

// Interpreter returns the Python interpreter used to run the installers.
func (b *Bootstrapper) Interpreter() string {
	return ResolveInterpreter(b.cfg, b.env)
}

// ResolveInterpreter returns cfg.Interpreter, else the first of python3 and
// python found on env's PATH, else python3.
func ResolveInterpreter(cfg *config.Config, env *searchpath.Env) string {
	if cfg.Interpreter != "" {
		return cfg.Interpreter
	}
	for _, name := range interpreterCandidates {
		if env.Has(name) {
			return name
		}
	}
	return interpreterCandidates[0]
}

// InstallTool installs the tool with the official installer, falling back to
// pip --user. On success the user-local bin directory is added to the session
// PATH. Reports whether either method succeeded.
func (b *Bootstrapper) InstallTool(ctx context.Context) bool {
	tool := b.cfg.Tool
	b.out.Step("%s not detected. Installing it with the official installer...", toolTitle(tool))

	if b.installOfficial(ctx) {
		b.out.Success("Official installation completed.")
	} else {
		b.out.Warn("Fallback: installing %s with pip...", toolTitle(tool))
		args := []string{b.Interpreter(), "-m", "pip", "install", "--user", tool}
		if !b.RunCommand(ctx, args, true) {
			b.out.Error("Could not install %s automatically.", toolTitle(tool))
			return false
		}
	}

	b.ExtendPath()
	return true
}

// installOfficial downloads the installer script and pipes it into the
// interpreter, like `curl -sSL <url> | python3 -`.
func (b *Bootstrapper) installOfficial(ctx context.Context) bool {
	script, err := b.fetcher.Fetch(ctx, b.cfg.InstallerURL)
	if err != nil {
		url, reason := redaction.Text(b.cfg.InstallerURL), redaction.Text(err.Error())
		b.log.Debug().Str("error", reason).Str("url", url).Msg("installer download failed")
		b.out.Error("Could not download the installer from %s: %s", url, reason)
		return false
	}
	return b.run(ctx, execx.Command{
		Args:  []string{b.Interpreter(), "-"},
		Stdin: bytes.NewReader(script),
	}, true)
}

// ExtendPath appends the user-local bin directory to the session PATH unless
// it is already there. Reports whether PATH changed.
func (b *Bootstrapper) ExtendPath() bool {
	if !b.env.AppendPath(b.binDir) {
		b.log.Debug().Str("dir", b.binDir).Msg("bin dir already on PATH")
		return false
	}
	b.out.Printf("Added %s to PATH for this session.\n", b.binDir)
	return true
}
