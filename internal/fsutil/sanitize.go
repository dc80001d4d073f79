package fsutil

import "regexp"

const maxNameLen = 100

var unsafeNameRunes = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeName maps every character outside [a-zA-Z0-9_-] to '_' and caps the
// result so that generated file names stay well under filesystem limits.
func SanitizeName(s string) string {
	clean := unsafeNameRunes.ReplaceAllString(s, "_")
	if clean == "" {
		return "untitled"
	}
	if len(clean) > maxNameLen {
		clean = clean[:maxNameLen]
	}
	return clean
}
