package server

import (
	"regexp"
)

type redaction struct {
	regex       *regexp.Regexp
	replacement string
}

var credentialPatterns = []redaction{
	{regex: regexp.MustCompile(`(?i)(aws_|gcp_|azure_)?(access|secret|session)_key[^\s=]*=\S+`), replacement: "$1$2_key=[redacted]"},
	{regex: regexp.MustCompile(`(?i)refresh_token=\S+`), replacement: "refresh_token=[redacted]"},
	{regex: regexp.MustCompile(`(?i)\b(password|api_key|secret|token|key)=\S+`), replacement: "$1=[redacted]"},
	{regex: regexp.MustCompile(`(?i)authorization:\s*bearer\s+[a-z0-9\-._~+/=]+`), replacement: "authorization: Bearer [redacted]"},
	{regex: regexp.MustCompile(`(?i)-----BEGIN( RSA)? PRIVATE KEY-----[\s\S]+?-----END( RSA)? PRIVATE KEY-----`), replacement: "[redacted private key]"},
	{regex: regexp.MustCompile(`(?i)(https?)://[^:@\s/]+:[^@\s]+@`), replacement: "$1://[redacted]:[redacted]@"},
	{regex: regexp.MustCompile(`(?i)email=\S+`), replacement: "email=[redacted]"},
	{regex: regexp.MustCompile(`(?i)(client\s+id|client\s+secret)[:=]\s*\S+`), replacement: "$1=[redacted]"},
	{regex: regexp.MustCompile(`(?i)(password|secret|token)\s*"[^"]+"`), replacement: "$1\"[redacted]\""},
	{regex: regexp.MustCompile(`(?i)(password|secret|token)\s*'[^']+'`), replacement: "$1'[redacted]'"},
}

// SanitizeLogLines redacts credentials from log lines before they are exposed
// through a resource. The input slice is left untouched.
func SanitizeLogLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		for _, pattern := range credentialPatterns {
			l = pattern.regex.ReplaceAllString(l, pattern.replacement)
		}
		out[i] = l
	}
	return out
}
