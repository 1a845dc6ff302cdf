package fonts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/oeuvres/version"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://fonts.googleapis.com/css2"

var userAgent = "oeuvres/" + version.Version + " (+https://github.com/k1LoW/oeuvres)"

// StylesheetURL returns the URL of a single stylesheet covering all families.
// It returns an empty string when families is empty.
func StylesheetURL(base string, families []string) string {
	if len(families) == 0 {
		return ""
	}
	if base == "" {
		base = DefaultBaseURL
	}
	params := make([]string, 0, len(families)+1)
	for _, f := range families {
		params = append(params, "family="+url.QueryEscape(f))
	}
	params = append(params, "display=swap")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(params, "&")
}

// Loader requests font stylesheets at most once per URL for the lifetime of the process.
// Requests are fire-and-forget: they never block the caller and failures are only logged.
type Loader struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	issued  sync.Map
	g       errgroup.Group
}

type Option func(*Loader) error

func WithBaseURL(u string) Option {
	return func(l *Loader) error {
		if u == "" {
			return nil
		}
		if _, err := url.Parse(u); err != nil {
			return err
		}
		l.baseURL = u
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		l.logger = logger
		return nil
	}
}

// WithHTTPClient sets the client used as the transport of the loader.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) error {
		l.client = c
		return nil
	}
}

func New(opts ...Option) (_ *Loader, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	l := &Loader{
		baseURL: DefaultBaseURL,
		client:  http.DefaultClient,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	rc := retryablehttp.NewClient()
	rc.HTTPClient = l.client
	rc.RetryMax = 0
	rc.Logger = newHTTPLogger(l.logger)
	l.client = rc.StandardClient()
	l.client.Timeout = 30 * time.Second
	return l, nil
}

// URL returns the stylesheet URL for families using the loader's base URL.
func (l *Loader) URL(families []string) string {
	return StylesheetURL(l.baseURL, families)
}

// Load schedules a request for the stylesheet covering families.
// issued is false when families is empty or the URL has already been requested.
func (l *Loader) Load(ctx context.Context, families []string) (u string, issued bool) {
	u = l.URL(families)
	if u == "" {
		return "", false
	}
	if _, loaded := l.issued.LoadOrStore(u, struct{}{}); loaded {
		return u, false
	}
	l.logger.Info("font stylesheet requested", slog.String("url", u), slog.Any("families", families))
	ctx = context.WithoutCancel(ctx)
	l.g.Go(func() error {
		if err := l.fetch(ctx, u); err != nil {
			l.logger.Debug("font stylesheet not loaded", slog.String("url", u), slog.String("error", err.Error()))
		}
		return nil
	})
	return u, true
}

// Issued reports whether the stylesheet at u has been requested.
func (l *Loader) Issued(u string) bool {
	_, ok := l.issued.Load(u)
	return ok
}

// Wait blocks until all scheduled requests have finished.
func (l *Loader) Wait() {
	_ = l.g.Wait()
}

// Check requests the stylesheet for families and waits for the response.
// It does not mark the URL as issued.
func (l *Loader) Check(ctx context.Context, families []string) error {
	u := l.URL(families)
	if u == "" {
		return fmt.Errorf("no font families to check")
	}
	return l.fetch(ctx, u)
}

func (l *Loader) fetch(ctx context.Context, u string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/css")
	res, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}
	l.logger.Debug("font stylesheet loaded", slog.String("url", u))
	return nil
}
