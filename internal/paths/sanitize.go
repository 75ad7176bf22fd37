package paths

import (
	"regexp"
	"strings"
)

// MaxFilenameLength caps sanitized filenames so stored project files stay
// comfortably short.
const MaxFilenameLength = 50

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// SanitizeFilename converts an arbitrary project name into a safe
// filename stem. Characters Windows rejects become underscores; names
// that sanitize to nothing fall back to a placeholder.
func SanitizeFilename(name string) string {
	s := illegalFilenameChars.ReplaceAllString(name, "_")
	s = strings.Trim(s, " .")
	if len(s) > MaxFilenameLength {
		s = s[:MaxFilenameLength]
	}
	if strings.Trim(s, "_") == "" {
		return "unnamed_project"
	}
	return s
}
