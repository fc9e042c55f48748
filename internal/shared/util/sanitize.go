package util

import (
	"errors"
	"regexp"
	"strings"
)

// Report handles are flat names like fraud_analysis_<id>.txt.
var safeFileName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// SanitizeFileName validates a client-supplied report handle before it
// becomes an object store key. Anything with path separators, traversal
// sequences or a non-alphanumeric leading character is rejected.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") || !safeFileName.MatchString(s) {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
