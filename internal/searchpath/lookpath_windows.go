//go:build windows

package searchpath

import (
	"path/filepath"
	"strings"
)

var defaultPathExt = []string{".com", ".exe", ".bat", ".cmd"}

func findExecutable(path, pathExt string) (string, bool) {
	exts := defaultPathExt
	if pathExt != "" {
		exts = nil
		for _, e := range strings.Split(strings.ToLower(pathExt), ";") {
			if e == "" {
				continue
			}
			if e[0] != '.' {
				e = "." + e
			}
			exts = append(exts, e)
		}
	}
	if filepath.Ext(path) != "" {
		if _, ok := isRegular(path); ok {
			return path, true
		}
	}
	for _, ext := range exts {
		if _, ok := isRegular(path + ext); ok {
			return path + ext, true
		}
	}
	return "", false
}
