package sitemap

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrParse is returned when a document is not usable XML.
var ErrParse = errors.New("sitemap XML parse failure")

// Kind tells a sitemap index from a leaf sitemap.
type Kind int

const (
	Leaf Kind = iota
	Index
)

func (k Kind) String() string {
	if k == Index {
		return "index"
	}
	return "leaf"
}

// Entry is the classification of one sitemap document.
type Entry struct {
	Kind Kind
	// Children holds the trimmed <loc> of every <sitemap> element of an
	// index, in document order. A blank <loc> yields an empty string.
	Children []string
}

// Parse reads an XML document and classifies it. A document with at least
// one <sitemap> element is an index; anything else is a leaf. Only the
// first <loc> child of each <sitemap> is used.
func Parse(r io.Reader) (*Entry, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if !hasElement(doc) {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}

	entry := &Entry{Kind: Leaf}
	walk(doc, func(n *xmlquery.Node) {
		if n.Data != "sitemap" {
			return
		}
		entry.Kind = Index
		if loc, ok := firstLoc(n); ok {
			entry.Children = append(entry.Children, loc)
		}
	})
	return entry, nil
}

func firstLoc(n *xmlquery.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "loc" {
			return strings.TrimSpace(c.InnerText()), true
		}
	}
	return "", false
}

// walk visits every element below n in document order.
func walk(n *xmlquery.Node, fn func(*xmlquery.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			fn(c)
		}
		walk(c, fn)
	}
}

func hasElement(doc *xmlquery.Node) bool {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}
