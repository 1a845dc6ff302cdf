package fonts

import (
	"slices"
	"sync"
)

// Links collects the stylesheet URLs needed by the contents rendered on one page.
// Each distinct URL is kept once, in the order it was first added.
type Links struct {
	baseURL string

	mu   sync.Mutex
	seen map[string]struct{}
	urls []string
}

func NewLinks(baseURL string) *Links {
	return &Links{
		baseURL: baseURL,
		seen:    map[string]struct{}{},
	}
}

// Add records the stylesheet for families and reports whether it was new to the page.
func (l *Links) Add(families []string) (string, bool) {
	u := StylesheetURL(l.baseURL, families)
	if u == "" {
		return "", false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[u]; ok {
		return u, false
	}
	l.seen[u] = struct{}{}
	l.urls = append(l.urls, u)
	return u, true
}

func (l *Links) URLs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.urls)
}
