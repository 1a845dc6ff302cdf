package oeuvres

import (
	"context"
	"io"
	"log/slog"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/content"
	"github.com/k1LoW/oeuvres/fonts"
	"github.com/k1LoW/oeuvres/markup"
)

type Renderer struct {
	parser   *markup.Parser
	catalog  *markup.FontCatalog
	fontsURL string
	class    string
	sanitize bool
	loader   *fonts.Loader
	logger   *slog.Logger
}

type Option func(*Renderer) error

// WithConfig applies the font sets, container class, sanitizing and font service of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(r *Renderer) error {
		if cfg == nil {
			return nil
		}
		if len(cfg.SystemFonts) > 0 || len(cfg.AllowedFonts) > 0 {
			r.catalog = markup.NewFontCatalog(cfg.SystemFonts, cfg.AllowedFonts)
		}
		if cfg.Class != "" {
			r.class = cfg.Class
		}
		if cfg.FontsURL != "" {
			r.fontsURL = cfg.FontsURL
		}
		r.sanitize = cfg.SanitizeEnabled()
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) error {
		r.logger = logger
		return nil
	}
}

// WithFontLoader makes Render schedule a stylesheet request for the custom fonts it finds.
func WithFontLoader(l *fonts.Loader) Option {
	return func(r *Renderer) error {
		r.loader = l
		return nil
	}
}

// WithSanitize overrides whether rendered HTML is sanitized.
func WithSanitize(enable bool) Option {
	return func(r *Renderer) error {
		r.sanitize = enable
		return nil
	}
}

// Result is the output of rendering one content string.
type Result struct {
	Document      *markup.Document `json:"document"`
	HTML          string           `json:"html"`
	Fonts         []string         `json:"fonts,omitempty"`
	StylesheetURL string           `json:"stylesheetURL,omitempty"`
}

// New creates a new Renderer.
func New(opts ...Option) (_ *Renderer, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	r := &Renderer{
		catalog:  markup.DefaultFonts,
		fontsURL: fonts.DefaultBaseURL,
		class:    markup.DefaultClass,
		sanitize: true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.parser = markup.New(markup.WithResolver(markup.NewResolver(r.catalog)))
	return r, nil
}

// FontsURL returns the base URL of the font stylesheet service.
func (r *Renderer) FontsURL() string {
	return r.fontsURL
}

// Fonts returns the custom font families referenced by s.
func (r *Renderer) Fonts(s string) []string {
	return r.catalog.Discover(s)
}

// Render parses s and renders it as an HTML fragment.
// The font stylesheet request, if any, runs in the background.
func (r *Renderer) Render(ctx context.Context, s string) (_ *Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	doc := r.parser.Parse(s)
	h, err := markup.RenderHTML(doc, markup.WithClass(r.class))
	if err != nil {
		return nil, err
	}
	if r.sanitize {
		h = markup.Sanitize(h)
	}
	res := &Result{
		Document: doc,
		HTML:     h,
		Fonts:    r.Fonts(s),
	}
	res.StylesheetURL = fonts.StylesheetURL(r.fontsURL, res.Fonts)
	if r.loader != nil && len(res.Fonts) > 0 {
		r.loader.Load(ctx, res.Fonts)
	}
	return res, nil
}

// RenderFile parses a poem file and renders its body.
func (r *Renderer) RenderFile(ctx context.Context, f string) (_ *Result, _ *content.Content, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	c, err := content.ParseFile(f)
	if err != nil {
		return nil, nil, err
	}
	res, err := r.Render(ctx, c.Markup())
	if err != nil {
		return nil, nil, err
	}
	return res, c, nil
}
