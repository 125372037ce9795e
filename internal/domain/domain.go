package domain

import (
	"errors"
	"strings"
)

// ErrInvalid is returned when the input does not look like a domain.
var ErrInvalid = errors.New("invalid domain")

// Valid reports whether s looks like a domain. Only the presence of a dot is
// checked; anything malformed beyond that fails later when it is resolved.
func Valid(s string) bool {
	return strings.Contains(s, ".")
}

// DirName returns the name of the directory that holds the downloaded
// sitemaps of d.
func DirName(d string) string {
	return strings.ReplaceAll(d, ".", "_")
}
