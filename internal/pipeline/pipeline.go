package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Devon-White/sitemap-harvester/internal/config"
	"github.com/Devon-White/sitemap-harvester/internal/domain"
	"github.com/Devon-White/sitemap-harvester/internal/fetcher"
	"github.com/Devon-White/sitemap-harvester/internal/homepage"
	"github.com/Devon-White/sitemap-harvester/internal/notfound"
	"github.com/Devon-White/sitemap-harvester/internal/report"
	"github.com/Devon-White/sitemap-harvester/internal/robots"
	"github.com/Devon-White/sitemap-harvester/internal/sitemap"
	"github.com/Devon-White/sitemap-harvester/internal/writer"
)

// Summary describes what one run produced.
type Summary struct {
	Homepage   string
	Candidates []string
	Stored     []string
	Failures   int
}

// Harvester resolves and downloads the sitemaps of a domain. It processes
// one request at a time.
type Harvester struct {
	cfg        *config.Config
	fetcher    *fetcher.Fetcher
	locator    *homepage.Locator
	robots     *robots.Resolver
	downloader *writer.Downloader
	recorder   *notfound.Recorder
	rep        *report.Reporter

	summary Summary
}

// New wires a Harvester from cfg. A nil transport uses the default one.
func New(cfg *config.Config, transport http.RoundTripper, rep *report.Reporter) *Harvester {
	f := fetcher.New(cfg.UserAgent, cfg.Timeout, transport)

	locator := homepage.NewLocator(f, rep)
	locator.AcceptDirect = cfg.AcceptDirectHomepage

	return &Harvester{
		cfg:        cfg,
		fetcher:    f,
		locator:    locator,
		robots:     robots.NewResolver(f, rep),
		downloader: writer.NewDownloader(f, cfg.OutputDir, &writer.Sequence{}),
		recorder:   notfound.NewRecorder(cfg.NotFoundFile),
		rep:        rep,
	}
}

// Run executes the full pipeline for cfg.Domain, printing status lines to
// stdout. Only an invalid domain or cancellation is returned as an error.
func Run(ctx context.Context, cfg *config.Config) error {
	rep := report.New(os.Stdout, cfg.NoColor, cfg.Verbose)
	_, err := New(cfg, nil, rep).Run(ctx, cfg.Domain)
	return err
}

// Run locates the homepage of dom, reads its robots.txt, and resolves every
// sitemap candidate. Failures are recorded and the run carries on with the
// next candidate.
func (h *Harvester) Run(ctx context.Context, dom string) (Summary, error) {
	h.summary = Summary{}

	if !domain.Valid(dom) {
		h.rep.Warn("Invalid domain: %s", dom)
		return h.summary, fmt.Errorf("%w: %q", domain.ErrInvalid, dom)
	}

	home, err := h.locator.Locate(ctx, dom)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return h.summary, ctxErr
		}
		h.rep.Homepage("No homepage found for domain: %s", dom)
		h.recordFailure(dom)
		return h.summary, nil
	}
	h.rep.Homepage("Homepage found: %s", home)
	h.summary.Homepage = home

	res, err := h.robots.Resolve(ctx, home)
	if err != nil {
		h.rep.Error("An error occurred: %v", err)
		h.recordFailure(dom)
		return h.summary, nil
	}

	candidates := res.Candidates
	if h.cfg.ProbeDefaultSitemap && !res.FallbackUsed {
		if def, err := robots.DefaultSitemap(home); err == nil {
			candidates = append(candidates, def)
		}
	}
	h.summary.Candidates = candidates

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return h.summary, err
		}
		h.ResolveSitemap(ctx, candidate, dom)
	}

	h.rep.Infof("Done. %d sitemaps stored, %d failures recorded.", len(h.summary.Stored), h.summary.Failures)
	return h.summary, ctx.Err()
}

// ResolveSitemap fetches candidate and downloads it, or each of its children
// when it is a sitemap index. Children are not classified again; an empty
// child <loc> counts as a failed download. It returns the leaf URLs a
// download was attempted for.
func (h *Harvester) ResolveSitemap(ctx context.Context, candidate, dom string) []string {
	h.rep.Sitemap("Checking sitemap: %s", candidate)

	body, err := h.fetcher.Fetch(ctx, candidate)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		var statusErr *fetcher.StatusError
		if errors.As(err, &statusErr) {
			h.rep.Error("Server returned error with code %d", statusErr.Code)
		} else {
			h.rep.Error("An error occurred: %v", err)
		}
		h.recordFailure(dom)
		return nil
	}

	entry, err := sitemap.Parse(bytes.NewReader(body))
	if err != nil {
		h.rep.Error("An error occurred: %v", err)
		h.recordFailure(dom)
		return nil
	}

	if entry.Kind == sitemap.Leaf {
		h.rep.Infof("This is a regular sitemap.")
		h.download(ctx, candidate, dom)
		return []string{candidate}
	}

	h.rep.Infof("This is a sitemap index with %d sitemaps.", len(entry.Children))
	var attempted []string
	for _, child := range entry.Children {
		if ctx.Err() != nil {
			break
		}
		attempted = append(attempted, child)
		if child == "" {
			h.rep.Error("Sitemap index entry has an empty <loc>")
			h.recordFailure(dom)
			continue
		}
		h.rep.Infof("XML sitemap: %s", child)
		h.download(ctx, child, dom)
	}
	return attempted
}

func (h *Harvester) download(ctx context.Context, sitemapURL, dom string) {
	stored, err := h.downloader.Download(ctx, sitemapURL, dom)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, writer.ErrMissingExtension) {
			h.rep.Warn("Skipping sitemap without file extension: %s", sitemapURL)
		} else {
			h.rep.Error("An error occurred while downloading the sitemap: %v", err)
		}
		h.recordFailure(dom)
		return
	}
	h.rep.Success("Sitemap downloaded: %s", stored)
	h.summary.Stored = append(h.summary.Stored, stored)
}

func (h *Harvester) recordFailure(dom string) {
	h.summary.Failures++
	if err := h.recorder.Record(dom); err != nil {
		h.rep.Error("An error occurred while saving the domain: %v", err)
		return
	}
	h.rep.Warn("Domain saved to %s: %s", h.recorder.Path(), dom)
}
