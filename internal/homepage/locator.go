// Package homepage finds the canonical homepage URL of a domain by probing
// its bare HTTPS and HTTP URLs and reading a single redirect.
package homepage

import (
	"context"
	"errors"
	"net/http"

	"github.com/Devon-White/sitemap-harvester/internal/fetcher"
	"github.com/Devon-White/sitemap-harvester/internal/report"
	"github.com/Devon-White/sitemap-harvester/internal/weburl"
)

// ErrNotFound is returned when no scheme produced a homepage.
var ErrNotFound = errors.New("no homepage found")

// Schemes are probed in this order.
var Schemes = []string{"https", "http"}

// Prober issues a request without following redirects.
type Prober interface {
	Probe(ctx context.Context, url string) (*http.Response, error)
}

// Locator finds a domain's homepage.
type Locator struct {
	prober Prober
	rep    *report.Reporter

	// AcceptDirect treats a 2xx answer on the bare URL as the homepage
	// itself. When false, only an explicit redirect yields a homepage.
	AcceptDirect bool
}

// NewLocator creates a Locator.
func NewLocator(p Prober, rep *report.Reporter) *Locator {
	return &Locator{prober: p, rep: rep}
}

// Locate returns the homepage URL of domain or ErrNotFound. Only one redirect
// hop is read; the Location target is not probed again.
func (l *Locator) Locate(ctx context.Context, domain string) (string, error) {
	for _, scheme := range Schemes {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if home, ok := l.try(ctx, scheme+"://"+domain); ok {
			return home, nil
		}
	}
	return "", ErrNotFound
}

func (l *Locator) try(ctx context.Context, target string) (string, bool) {
	resp, err := l.prober.Probe(ctx, target)
	if err != nil {
		if fetcher.IsUnresolvable(err) {
			l.rep.Error("Domain could not be resolved: %v", err)
		} else {
			l.rep.Error("Probe of %s failed: %v", target, err)
		}
		return "", false
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		location := resp.Header.Get("Location")
		if location == "" {
			l.rep.Debugf("%s answered %d without Location", target, resp.StatusCode)
			return "", false
		}
		home, err := weburl.Resolve(target, location)
		if err != nil {
			l.rep.Error("Unusable redirect from %s: %v", target, err)
			return "", false
		}
		return home, true
	}

	if l.AcceptDirect && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		home, err := weburl.Normalize(target)
		if err != nil {
			return "", false
		}
		return home, true
	}

	l.rep.Debugf("%s answered %d, no redirect", target, resp.StatusCode)
	return "", false
}
