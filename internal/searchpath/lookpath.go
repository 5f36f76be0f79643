package searchpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by LookPath when no executable matches.
var ErrNotFound = errors.New("executable file not found in search path")

// LookPath searches the Env's PATH for an executable named file.
// Names containing a path separator are checked directly. The result is
// always absolute; relative PATH entries, including "." and empty ones,
// resolve against the current directory.
func (e *Env) LookPath(file string) (string, error) {
	if strings.ContainsRune(file, '/') || strings.ContainsRune(file, filepath.Separator) {
		if p, ok := findExecutable(file, e.Get("PATHEXT")); ok {
			return filepath.Abs(p)
		}
		return "", fmt.Errorf("%s: %w", file, ErrNotFound)
	}
	for _, dir := range e.Dirs() {
		if dir == "" {
			dir = "."
		}
		if p, ok := findExecutable(filepath.Join(dir, file), e.Get("PATHEXT")); ok {
			return filepath.Abs(p)
		}
	}
	return "", fmt.Errorf("%s: %w", file, ErrNotFound)
}

// Has reports whether file resolves on the Env's PATH.
func (e *Env) Has(file string) bool {
	_, err := e.LookPath(file)
	return err == nil
}

func isRegular(path string) (os.FileMode, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Mode(), true
}
