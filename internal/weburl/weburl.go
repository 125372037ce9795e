// Package weburl wraps the WHATWG URL parser for the comparisons and
// resolutions the pipeline needs.
package weburl

import (
	"fmt"
	"net/url"
	"strings"

	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

var parser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// Resolve resolves ref against base. Absolute refs are returned normalized.
func Resolve(base, ref string) (string, error) {
	u, err := parser.ParseRef(base, strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("resolving %q against %q: %w", ref, base, err)
	}
	return u.Href(false), nil
}

// Normalize parses rawURL and returns its serialized form.
func Normalize(rawURL string) (string, error) {
	u, err := parser.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", rawURL, err)
	}
	return u.Href(false), nil
}

// Hostname returns the host of rawURL without port.
func Hostname(rawURL string) (string, error) {
	u, err := parser.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}

// SameHost reports whether a and b name the same host, ignoring case and
// port. Unparseable URLs never match.
func SameHost(a, b string) bool {
	ha, err := Hostname(a)
	if err != nil || ha == "" {
		return false
	}
	hb, err := Hostname(b)
	if err != nil || hb == "" {
		return false
	}
	return strings.EqualFold(ha, hb)
}

// JoinPath appends p to the path of base with exactly one slash between
// them. Query and fragment of base are dropped.
func JoinPath(base, p string) (string, error) {
	normalized, err := parser.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", base, err)
	}
	u, err := url.Parse(normalized.Href(true))
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", base, err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(p, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
