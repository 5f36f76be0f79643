// Package shared holds the context passed to all CLI commands.
package shared

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/go-ports/poetry-bootstrap/internal/config"
	"github.com/go-ports/poetry-bootstrap/internal/logging"
	"github.com/go-ports/poetry-bootstrap/internal/searchpath"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Dir is the project working directory. Empty means the current directory.
	Dir string
	// ConfigFile replaces the global and project config files when set.
	ConfigFile string
	// Verbose is the number of -v flags.
	Verbose int
	// NoColor disables styled output.
	NoColor bool
}

// Session is the state a command works against: an absolute working
// directory, a snapshot of the process environment and the resolved config.
type Session struct {
	WorkDir string
	Env     *searchpath.Env
	Config  *config.Config
}

// Open resolves the working directory and configuration.
func (c *Context) Open() (*Session, error) {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}

	env := searchpath.FromOS()
	cfg, err := config.Resolve(config.Options{
		Dir:     abs,
		File:    c.ConfigFile,
		Environ: env.Map(),
	})
	if err != nil {
		return nil, err
	}
	return &Session{WorkDir: abs, Env: env, Config: cfg}, nil
}

// Logger returns the diagnostic logger for the configured verbosity.
func (c *Context) Logger(w io.Writer) zerolog.Logger {
	return logging.New(w, c.Verbose, c.NoColor)
}

// BinDir returns the user-local executable directory for cfg.
func BinDir(cfg *config.Config) string {
	if cfg.BinDir != "" {
		return cfg.BinDir
	}
	return searchpath.UserBinDir()
}
