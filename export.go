package oeuvres

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/oeuvres/content"
	"github.com/k1LoW/oeuvres/logger/dot"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	manifestFile       = "index.json"
)

// PoemExts are the extensions of files picked up by Export.
var PoemExts = []string{".poem", ".txt"}

type ExportOption func(*exportOptions)

type exportOptions struct {
	cond        string
	concurrency int
}

// WithCondition skips files whose frontmatter does not satisfy the CEL condition cond.
func WithCondition(cond string) ExportOption {
	return func(o *exportOptions) {
		o.cond = cond
	}
}

func WithConcurrency(n int) ExportOption {
	return func(o *exportOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Entry describes one exported poem in the manifest.
type Entry struct {
	Source        string   `json:"source"`
	Output        string   `json:"output"`
	Title         string   `json:"title,omitempty"`
	Chapter       string   `json:"chapter,omitempty"`
	Fonts         []string `json:"fonts,omitempty"`
	StylesheetURL string   `json:"stylesheetURL,omitempty"`
}

// Manifest is written as index.json next to the exported fragments.
type Manifest struct {
	Entries []*Entry `json:"entries"`
	Skipped []string `json:"skipped,omitempty"`
}

// Export renders every poem file under src into an HTML fragment under dest,
// keeping the relative layout, and writes a manifest of the exported files.
func (r *Renderer) Export(ctx context.Context, src, dest string, opts ...ExportOption) (_ *Manifest, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	o := &exportOptions{concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(o)
	}
	files, err := poemFiles(src)
	if err != nil {
		return nil, err
	}
	if err := checkOutputs(files); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, err
	}

	var (
		mu sync.Mutex
		m  = &Manifest{Entries: []*Entry{}}
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := r.exportFile(ctx, src, dest, rel, o.cond)
			if err != nil {
				r.logger.Error("failed to render file", slog.String("file", rel), slog.String("error", err.Error()))
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if e == nil {
				m.Skipped = append(m.Skipped, filepath.ToSlash(rel))
				r.logger.Info(dot.MsgSkipped, slog.String("file", rel))
				return nil
			}
			m.Entries = append(m.Entries, e)
			r.logger.Info(dot.MsgRendered, slog.String("file", rel), slog.Int("fonts", len(e.Fonts)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(m.Entries, func(a, b *Entry) int {
		return strings.Compare(a.Source, b.Source)
	})
	slices.Sort(m.Skipped)
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dest, manifestFile), b, 0o600); err != nil {
		return nil, err
	}

	if r.loader != nil {
		r.logger.Info(dot.MsgWaitingFonts)
		r.loader.Wait()
	}
	r.logger.Info(dot.MsgCompleted, slog.Int("rendered", len(m.Entries)), slog.Int("skipped", len(m.Skipped)))
	return m, nil
}

// exportFile returns a nil Entry when the file is skipped by cond.
func (r *Renderer) exportFile(ctx context.Context, src, dest, rel, cond string) (*Entry, error) {
	b, err := os.ReadFile(filepath.Join(src, rel))
	if err != nil {
		return nil, err
	}
	c, err := content.Parse(b)
	if err != nil {
		return nil, err
	}
	ok, err := content.Match(cond, c.Store())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	res, err := r.Render(ctx, c.Markup())
	if err != nil {
		return nil, err
	}
	out := outputName(rel)
	p := filepath.Join(dest, out)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p, []byte(res.HTML+"\n"), 0o600); err != nil {
		return nil, err
	}
	return &Entry{
		Source:        filepath.ToSlash(rel),
		Output:        filepath.ToSlash(out),
		Title:         c.Frontmatter.Title,
		Chapter:       c.Frontmatter.Chapter,
		Fonts:         res.Fonts,
		StylesheetURL: res.StylesheetURL,
	}, nil
}

func outputName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
}

// checkOutputs fails when two sources would be written to the same fragment.
func checkOutputs(files []string) error {
	sources := map[string]string{}
	for _, rel := range files {
		out := strings.ToLower(filepath.ToSlash(outputName(rel)))
		if prev, ok := sources[out]; ok {
			return fmt.Errorf("%s and %s would both be exported to %s", filepath.ToSlash(prev), filepath.ToSlash(rel), filepath.ToSlash(outputName(rel)))
		}
		sources[out] = rel
	}
	return nil
}

// poemFiles returns the poem files under root as paths relative to root.
func poemFiles(root string) ([]string, error) {
	var files []string
	if err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(PoemExts, strings.ToLower(filepath.Ext(p))) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	}); err != nil {
		return nil, err
	}
	return files, nil
}
