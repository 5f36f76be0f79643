// Package searchpath models the environment handed to child processes,
// including the executable search path, without touching the real process
// environment.
package searchpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathKey is the canonical name of the executable search path variable.
const PathKey = "PATH"

// Env is an in-memory snapshot of a process environment.
// It is passed explicitly to every child process, so appending to its PATH
// affects the current session and its children only.
type Env struct {
	vars []string
}

// FromOS snapshots the current process environment.
func FromOS() *Env {
	return New(os.Environ())
}

// New builds an Env from KEY=VALUE pairs. The slice is copied.
func New(environ []string) *Env {
	vars := make([]string, len(environ))
	copy(vars, environ)
	return &Env{vars: vars}
}

// Environ returns a copy of the KEY=VALUE pairs, suitable for exec.Cmd.Env.
func (e *Env) Environ() []string {
	out := make([]string, len(e.vars))
	copy(out, e.vars)
	return out
}

// Get returns the value of key, or "" when unset.
func (e *Env) Get(key string) string {
	if i := e.index(key); i >= 0 {
		_, v, _ := strings.Cut(e.vars[i], "=")
		return v
	}
	return ""
}

// Set assigns key=value, replacing any existing entry.
func (e *Env) Set(key, value string) {
	if i := e.index(key); i >= 0 {
		name, _, _ := strings.Cut(e.vars[i], "=")
		e.vars[i] = name + "=" + value
		return
	}
	e.vars = append(e.vars, key+"="+value)
}

// Path returns the current search path value.
func (e *Env) Path() string { return e.Get(PathKey) }

// Dirs returns the search path split into its directories.
func (e *Env) Dirs() []string { return filepath.SplitList(e.Path()) }

// AppendPath appends dir to the search path unless the current value already
// contains it as a substring. Reports whether the value changed.
func (e *Env) AppendPath(dir string) bool {
	current := e.Path()
	if dir == "" || strings.Contains(current, dir) {
		return false
	}
	if current == "" {
		e.Set(PathKey, dir)
		return true
	}
	e.Set(PathKey, current+string(os.PathListSeparator)+dir)
	return true
}

// HasDir reports whether dir is one of the search path entries.
func (e *Env) HasDir(dir string) bool {
	want := filepath.Clean(dir)
	for _, d := range e.Dirs() {
		if d == "" {
			continue
		}
		if sameName(filepath.Clean(d), want) {
			return true
		}
	}
	return false
}

func (e *Env) index(key string) int {
	for i, kv := range e.vars {
		name, _, ok := strings.Cut(kv, "=")
		if ok && sameName(name, key) {
			return i
		}
	}
	return -1
}

// Windows treats environment names and paths case-insensitively.
func sameName(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Map returns the variables as a map, as expected by env parsers.
// Later duplicates win.
func (e *Env) Map() map[string]string {
	m := make(map[string]string, len(e.vars))
	for _, kv := range e.vars {
		if name, value, ok := strings.Cut(kv, "="); ok {
			m[name] = value
		}
	}
	return m
}
