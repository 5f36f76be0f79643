// Package redaction masks credentials in text before it reaches the terminal
// or the logs. Installer URLs may point at private mirrors with embedded
// credentials, and network errors echo those URLs back.
package redaction

import "regexp"

const replacement = "[REDACTED]"

// userinfoRe matches the user:password@ part of a URL inside free text.
var userinfoRe = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://[^/@\s:]+):[^/@\s]+@`)

// tokenPatterns are access tokens commonly used for package indexes and mirrors.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`pypi-[A-Za-z0-9_-]{16,}`),      // PyPI API tokens
	regexp.MustCompile(`ghp_[a-zA-Z0-9]+`),             // GitHub PATs
	regexp.MustCompile(`github_pat_[a-zA-Z0-9_]+`),     // GitHub fine-grained PATs
	regexp.MustCompile(`glpat-[a-zA-Z0-9_-]+`),         // GitLab PATs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),             // AWS access key IDs
	regexp.MustCompile(`(?i)(token|password)=[^&\s]+`), // query-string secrets
}

// Text masks URL passwords and known token formats in s.
func Text(s string) string {
	s = userinfoRe.ReplaceAllString(s, "${1}:"+replacement+"@")
	for _, re := range tokenPatterns {
		s = re.ReplaceAllString(s, replacement)
	}
	return s
}
