// Package notfound keeps the append-only list of domains for which no
// sitemap could be obtained.
package notfound

import (
	"fmt"
	"os"
	"sync"
)

// DefaultFile is the record kept in the working directory.
const DefaultFile = "sitemapNotFound.txt"

// Recorder appends failed domains to a text file, one per line. Entries are
// never deduplicated: each failing step adds its own line.
type Recorder struct {
	mu   sync.Mutex
	path string
}

// NewRecorder creates a Recorder appending to path.
func NewRecorder(path string) *Recorder {
	if path == "" {
		path = DefaultFile
	}
	return &Recorder{path: path}
}

// Path returns the file the recorder appends to.
func (r *Recorder) Path() string {
	return r.path
}

// Record appends domain to the file, creating it if needed.
func (r *Recorder) Record(domain string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", r.path, err)
	}
	if _, err := fmt.Fprintln(f, domain); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", r.path, err)
	}
	return f.Close()
}
