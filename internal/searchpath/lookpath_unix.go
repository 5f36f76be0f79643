//go:build !windows

package searchpath

func findExecutable(path, _ string) (string, bool) {
	mode, ok := isRegular(path)
	if !ok || mode&0o111 == 0 {
		return "", false
	}
	return path, true
}
