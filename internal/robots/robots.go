// Package robots turns a homepage's robots.txt into the ordered list of
// sitemap URLs to resolve.
package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/temoto/robotstxt"

	"github.com/Devon-White/sitemap-harvester/internal/report"
	"github.com/Devon-White/sitemap-harvester/internal/weburl"
)

const (
	robotsTxtPath      = "/robots.txt"
	defaultSitemapPath = "/sitemap.xml"

	// maxRobotsBodyBytes limits the size of robots.txt responses we will read.
	maxRobotsBodyBytes = 512 * 1024
)

// Getter performs a GET and returns the response whatever its status.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Result is the outcome of reading robots.txt.
type Result struct {
	Candidates   []string
	FallbackUsed bool
	// Present is true when robots.txt answered 200.
	Present bool
}

// Resolver reads Sitemap directives from robots.txt.
type Resolver struct {
	getter Getter
	rep    *report.Reporter
}

// NewResolver creates a Resolver.
func NewResolver(g Getter, rep *report.Reporter) *Resolver {
	return &Resolver{getter: g, rep: rep}
}

// Resolve returns the sitemap candidates for homepageURL. Sitemap entries on
// a different host than the homepage are dropped. If robots.txt is missing,
// unreachable, or has no usable entry, the single candidate
// {homepageURL}/sitemap.xml is returned instead. Entries keep file order and
// are not deduplicated.
func (r *Resolver) Resolve(ctx context.Context, homepageURL string) (Result, error) {
	fallback, err := DefaultSitemap(homepageURL)
	if err != nil {
		return Result{}, fmt.Errorf("building default sitemap URL: %w", err)
	}
	robotsURL, err := weburl.Resolve(homepageURL, robotsTxtPath)
	if err != nil {
		return Result{}, fmt.Errorf("building robots.txt URL: %w", err)
	}

	declared, present := r.fetch(ctx, robotsURL)

	var kept []string
	for _, loc := range declared {
		if !weburl.SameHost(homepageURL, loc) {
			r.rep.Debugf("Ignoring sitemap on another host: %s", loc)
			continue
		}
		r.rep.Robots("Sitemap: %s", loc)
		kept = append(kept, loc)
	}

	if len(kept) == 0 {
		if present {
			r.rep.Error("No sitemaps found in robots.txt.")
		}
		return Result{Candidates: []string{fallback}, FallbackUsed: true, Present: present}, nil
	}
	return Result{Candidates: kept, Present: present}, nil
}

// DefaultSitemap returns the well-known sitemap URL for homepageURL.
func DefaultSitemap(homepageURL string) (string, error) {
	return weburl.JoinPath(homepageURL, defaultSitemapPath)
}

// fetch returns the declared sitemap URLs and whether robots.txt exists.
func (r *Resolver) fetch(ctx context.Context, robotsURL string) ([]string, bool) {
	resp, err := r.getter.Get(ctx, robotsURL)
	if err != nil {
		r.rep.Error("Fetching robots.txt failed: %v", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.rep.Warn("robots.txt does not exist (HTTP %d).", resp.StatusCode)
		return nil, false
	}
	r.rep.Robots("robots.txt exists.")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		r.rep.Error("Reading robots.txt failed: %v", err)
		return nil, true
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		r.rep.Error("Parsing robots.txt failed: %v", err)
		return nil, true
	}
	return fullValues(data.Sitemaps, sitemapLines(body)), true
}

// sitemapLines returns the value of every Sitemap line in body, up to the end
// of the line or a " #" comment.
func sitemapLines(body []byte) []string {
	var values []string
	for _, line := range strings.Split(string(body), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if i := strings.Index(value, " #"); i >= 0 {
			value = value[:i]
		}
		values = append(values, strings.TrimSpace(value))
	}
	return values
}

// fullValues replaces each parsed entry with the raw line value it was cut
// from, so a URL containing spaces is kept whole. Lines are consumed in order.
func fullValues(parsed, lines []string) []string {
	out := make([]string, 0, len(parsed))
	next := 0
	for _, loc := range parsed {
		full := loc
		for i := next; i < len(lines); i++ {
			if strings.HasPrefix(lines[i], loc) {
				full = lines[i]
				next = i + 1
				break
			}
		}
		out = append(out, full)
	}
	return out
}
