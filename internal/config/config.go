// Package config handles bootstrapper configuration loading.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/poetry-bootstrap/internal/installer"
)

// ProjectFileName is the per-project config file looked up in the working directory.
const ProjectFileName = ".poetry-bootstrap.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "POETRY_BOOTSTRAP_"

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// Config is the effective bootstrapper configuration.
type Config struct {
	Tool         string `yaml:"tool"          env:"TOOL"`
	Interpreter  string `yaml:"interpreter"   env:"INTERPRETER"` // "" = python3, then python
	InstallerURL string `yaml:"installer_url" env:"INSTALLER_URL"`
	DocsURL      string `yaml:"docs_url"      env:"DOCS_URL"`
	Manifest     string `yaml:"manifest"      env:"MANIFEST"`
	BinDir       string `yaml:"bin_dir"       env:"BIN_DIR"`      // "" = xdg.BinHome
	ProjectName  string `yaml:"project_name"  env:"PROJECT_NAME"` // "" = working directory name
	MinVersion   string `yaml:"min_version"   env:"MIN_VERSION"`

	// Sources lists the config files that contributed, lowest priority first.
	Sources []string `yaml:"-"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Tool:         "poetry",
		InstallerURL: installer.DefaultURL,
		DocsURL:      "https://python-poetry.org/docs/#installation",
		Manifest:     "pyproject.toml",
	}
}

// Load reads a config.yaml from path on top of Default().
// If the file does not exist it returns Default() with no error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := overlayFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile applies the non-empty keys of the YAML file at path to cfg.
// Reports whether the file existed.
func overlayFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is chosen by the user
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return true, fmt.Errorf("config %s: %w", path, err)
	}
	merge(cfg, &file)
	cfg.Sources = append(cfg.Sources, path)
	return true, nil
}

// merge copies every non-empty field of src into dst.
func merge(dst, src *Config) {
	set := func(d *string, s string) {
		if s = strings.TrimSpace(s); s != "" {
			*d = s
		}
	}
	set(&dst.Tool, src.Tool)
	set(&dst.Interpreter, src.Interpreter)
	set(&dst.InstallerURL, src.InstallerURL)
	set(&dst.DocsURL, src.DocsURL)
	set(&dst.Manifest, src.Manifest)
	set(&dst.BinDir, src.BinDir)
	set(&dst.ProjectName, src.ProjectName)
	set(&dst.MinVersion, src.MinVersion)
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Options selects where configuration is read from.
type Options struct {
	// Dir is the project working directory.
	Dir string
	// File, when set, replaces the global and project files.
	File string
	// Environ supplies environment overrides (POETRY_BOOTSTRAP_*).
	Environ map[string]string
}

// GlobalPath returns the per-user config file path.
func GlobalPath() string {
	return filepath.Join(xdg.ConfigHome, "poetry-bootstrap", "config.yaml")
}

// ProjectPath returns the project config file path inside dir.
func ProjectPath(dir string) string {
	return filepath.Join(dir, ProjectFileName)
}

// Resolve builds the effective Config.
// Priority: environment → explicit file, or project file → global file → defaults.
func Resolve(opts Options) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		found, err := overlayFile(cfg, opts.File)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("config file %s: %w", opts.File, os.ErrNotExist)
		}
	} else {
		for _, p := range []string{GlobalPath(), ProjectPath(opts.Dir)} {
			if _, err := overlayFile(cfg, p); err != nil {
				return nil, err
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: opts.Environ,
	}); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that would otherwise fail late.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tool) == "" {
		return errors.New("config: tool must not be empty")
	}
	if strings.TrimSpace(c.Manifest) == "" {
		return errors.New("config: manifest must not be empty")
	}
	u, err := url.Parse(c.InstallerURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("config: installer_url %q must be an http(s) URL", c.InstallerURL)
	}
	if c.MinVersion != "" {
		if _, err := semver.NewVersion(c.MinVersion); err != nil {
			return fmt.Errorf("config: min_version %q: %w", c.MinVersion, err)
		}
	}
	return nil
}

// ProjectNameFor returns ProjectName, or the base name of dir when unset.
func (c *Config) ProjectNameFor(dir string) string {
	if c.ProjectName != "" {
		return c.ProjectName
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}
