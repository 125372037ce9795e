package writer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Devon-White/sitemap-harvester/internal/domain"
)

// ErrMissingExtension is returned when the last path segment of a sitemap
// URL has no extension to number the stored file against.
var ErrMissingExtension = errors.New("sitemap file name has no extension")

// Sequence hands out increasing numbers starting at 1. It is safe for
// concurrent use and is never reset during a run.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// Next returns the next number.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Opener returns the raw body of a successful GET.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// Downloader stores leaf sitemaps under one directory per domain.
type Downloader struct {
	opener    Opener
	outputDir string
	seq       *Sequence
}

// NewDownloader creates a Downloader writing below outputDir and numbering
// files with seq.
func NewDownloader(o Opener, outputDir string, seq *Sequence) *Downloader {
	return &Downloader{opener: o, outputDir: outputDir, seq: seq}
}

// Download fetches sitemapURL and writes it to
// {outputDir}/{domain dir}/{prefix}_{n}.{ext}, replacing any file of the same
// name. It returns the stored path.
func (d *Downloader) Download(ctx context.Context, sitemapURL, dom string) (string, error) {
	prefix, ext, err := SplitName(sitemapURL)
	if err != nil {
		return "", err
	}

	body, err := d.opener.Open(ctx, sitemapURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	dir := filepath.Join(d.outputDir, domain.DirName(dom))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%d.%s", prefix, d.seq.Next(), ext)
	dest := filepath.Join(dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}

	return dest, nil
}

// SplitName splits the last path segment of rawURL on its last dot.
func SplitName(rawURL string) (prefix, ext string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}

	base := path.Base(u.Path)
	dot := strings.LastIndex(base, ".")
	if base == "/" || base == "." || dot < 0 {
		return "", "", fmt.Errorf("%w: %s", ErrMissingExtension, rawURL)
	}
	return base[:dot], base[dot+1:], nil
}
