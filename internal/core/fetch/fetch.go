package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher obtains a rendered representation of a target URL. Implementations
// must release any underlying browser resources before returning, on every
// exit path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*RenderedPage, error)
}

// RenderedPage is the captured document of one fetch attempt. The browser
// session that produced it is already closed, so the page is inert and safe
// to hand to extraction without any native dependency.
type RenderedPage struct {
	URL       string
	Title     string
	HTML      string
	FetchedAt time.Time

	doc *goquery.Document
}

// Document parses the captured HTML on first use and caches the result.
func (p *RenderedPage) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse rendered page: %w", err)
	}
	p.doc = doc
	return doc, nil
}

type ErrorKind string

const (
	KindTimeout        ErrorKind = "timeout"
	KindAuthRejected   ErrorKind = "auth_rejected"
	KindNetworkFailure ErrorKind = "network_failure"
)

// Error classifies a failed fetch attempt.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }
