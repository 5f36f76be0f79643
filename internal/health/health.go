// Package health checks that the bootstrap prerequisites are in place without
// changing anything. It backs the `poetry-bootstrap doctor` command.
package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/go-ports/poetry-bootstrap/internal/bootstrap"
	"github.com/go-ports/poetry-bootstrap/internal/config"
	"github.com/go-ports/poetry-bootstrap/internal/execx"
	"github.com/go-ports/poetry-bootstrap/internal/searchpath"
)

// ErrChecksFailed is returned when a required check did not pass.
var ErrChecksFailed = errors.New("health checks failed")

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	// Required checks decide Report.Passed; the others are informational.
	Required bool `json:"required"`
}

// Report contains all health check results.
type Report struct {
	Checks      []CheckResult `json:"checks"`
	ToolVersion string        `json:"tool_version,omitempty"`
	Passed      bool          `json:"passed"`
}

// Checker runs the checks against a session environment.
type Checker struct {
	Config  *config.Config
	Env     *searchpath.Env
	Runner  execx.Runner
	WorkDir string
	BinDir  string
}

// Run runs all checks and returns the report.
func (c *Checker) Run(ctx context.Context) *Report {
	report := &Report{Passed: true}

	report.add(c.CheckInterpreter())
	toolCheck, version := c.CheckTool(ctx)
	report.add(toolCheck)
	if version != nil {
		report.ToolVersion = version.String()
	}
	report.add(c.CheckManifest())
	report.add(c.CheckBinDir())

	return report
}

func (r *Report) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if check.Required && !check.Passed {
		r.Passed = false
	}
}

// CheckInterpreter checks that the Python interpreter is on PATH.
func (c *Checker) CheckInterpreter() CheckResult {
	name := bootstrap.ResolveInterpreter(c.Config, c.Env)
	path, err := c.Env.LookPath(name)
	if err != nil {
		return CheckResult{
			Name:     "Python interpreter",
			Required: true,
			Message:  fmt.Sprintf("%s not found in PATH", name),
		}
	}
	return CheckResult{
		Name:     "Python interpreter",
		Passed:   true,
		Required: true,
		Message:  fmt.Sprintf("%s found at %s", name, path),
	}
}

// CheckTool checks that the tool is on PATH and, when min_version is set,
// recent enough. The parsed version is returned when available.
func (c *Checker) CheckTool(ctx context.Context) (CheckResult, *semver.Version) {
	name := c.Config.Tool
	result := CheckResult{Name: name, Required: true}

	if !c.Env.Has(name) {
		result.Message = fmt.Sprintf("%s not found in PATH", name)
		return result, nil
	}

	out, err := c.Runner.Run(ctx, execx.Command{Args: []string{name, "--version"}, Env: c.Env, Dir: c.WorkDir})
	if err != nil {
		result.Message = fmt.Sprintf("%s found but --version failed: %v", name, err)
		return result, nil
	}
	version, err := ParseVersion(out.Stdout)
	if err != nil {
		// Found and runnable; an unknown version format only fails a min_version requirement.
		if c.Config.MinVersion != "" {
			result.Message = fmt.Sprintf("%s found but its version is unknown, so min_version %s cannot be verified", name, c.Config.MinVersion)
			return result, nil
		}
		result.Passed = true
		result.Message = fmt.Sprintf("%s found (version unknown)", name)
		return result, nil
	}

	if c.Config.MinVersion != "" {
		constraint, err := semver.NewConstraint(">= " + c.Config.MinVersion)
		if err != nil {
			result.Message = fmt.Sprintf("invalid min_version %q: %v", c.Config.MinVersion, err)
			return result, version
		}
		if !constraint.Check(version) {
			result.Message = fmt.Sprintf("%s %s is older than required %s", name, version, c.Config.MinVersion)
			return result, version
		}
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%s %s found", name, version)
	return result, version
}

// CheckManifest reports whether the project manifest exists. Informational:
// a missing manifest means the bootstrap will create one.
func (c *Checker) CheckManifest() CheckResult {
	path := filepath.Join(c.WorkDir, c.Config.Manifest)
	if _, err := os.Stat(path); err != nil {
		return CheckResult{
			Name:    "Manifest",
			Message: fmt.Sprintf("%s not found (bootstrap will run init)", c.Config.Manifest),
		}
	}
	return CheckResult{
		Name:    "Manifest",
		Passed:  true,
		Message: fmt.Sprintf("%s found (bootstrap will run install)", c.Config.Manifest),
	}
}

// CheckBinDir reports whether the user-local bin directory is on PATH.
func (c *Checker) CheckBinDir() CheckResult {
	if c.Env.HasDir(c.BinDir) {
		return CheckResult{Name: "User bin directory", Passed: true, Message: fmt.Sprintf("%s is on PATH", c.BinDir)}
	}
	return CheckResult{
		Name:    "User bin directory",
		Message: fmt.Sprintf("%s is not on PATH; tools installed with --user will not be found", c.BinDir),
	}
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.+-]+)?`)

// ParseVersion extracts a semantic version from `<tool> --version` output,
// e.g. "Poetry (version 1.8.3)".
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version in %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(match)
}

// FormatReport formats the report for console output.
func FormatReport(report *Report) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		switch {
		case check.Passed:
			sb.WriteString("✓ ")
		case check.Required:
			sb.WriteString("✗ ")
		default:
			sb.WriteString("○ ")
		}
		fmt.Fprintf(&sb, "%s: %s\n", check.Name, check.Message)
	}
	return sb.String()
}
