package task

import "strings"

const maxLogValueLength = 100

var logReplacer = strings.NewReplacer("\r", "_", "\n", "_")

// SanitizeForLog makes a user-supplied value safe to embed in a log line:
// line breaks are replaced and long values are truncated.
func SanitizeForLog(s string) string {
	clean := logReplacer.Replace(s)
	if r := []rune(clean); len(r) > maxLogValueLength {
		clean = string(r[:maxLogValueLength]) + "..."
	}
	return clean
}
