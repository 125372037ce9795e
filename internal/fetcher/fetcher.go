package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// StatusError is returned when a server answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

// IsUnresolvable reports whether err was caused by a failed DNS lookup.
func IsUnresolvable(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// Fetcher wraps an HTTP client with a User-Agent, timeout, and gzip support.
type Fetcher struct {
	client    *http.Client
	probe     *http.Client
	userAgent string
}

// New creates a Fetcher. A nil transport uses http.DefaultTransport.
func New(userAgent string, timeout time.Duration, transport http.RoundTripper) *Fetcher {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		probe: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: userAgent,
	}
}

// Probe issues a single GET without following redirects. The caller gets the
// response status and headers; the body is already drained and closed.
func (f *Fetcher) Probe(ctx context.Context, url string) (*http.Response, error) {
	req, err := f.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := f.probe.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", url, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	return resp, nil
}

// Get performs a GET following redirects and returns the response with its
// body open, whatever the status. The caller must close the body.
func (f *Fetcher) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := f.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return resp, nil
}

// Open returns the raw body of a 2xx response. Non-2xx statuses yield a
// *StatusError. The caller must close the returned reader.
func (f *Fetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}
	return resp.Body, nil
}

// Fetch retrieves the body of the given URL. It automatically decompresses
// gzip responses and URLs ending in .gz.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := f.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	var reader io.Reader = resp.Body

	// Decompress if gzip content-encoding or .gz URL
	if resp.Header.Get("Content-Encoding") == "gzip" || strings.HasSuffix(url, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decompressing gzip response from %s: %w", url, err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body from %s: %w", url, err)
	}

	return body, nil
}

func (f *Fetcher) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	return req, nil
}
