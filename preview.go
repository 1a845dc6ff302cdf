package oeuvres

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/oeuvres/fonts"
)

const (
	eventsPath       = "/_sse"
	reloadMsg        = "reload"
	debounceInterval = 200 * time.Millisecond
)

var previewTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
<script>
var es = new EventSource('{{.Events}}');
es.onmessage = function(e) { if (e.data === '{{.Reload}}') window.location.reload(); };
</script>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Preview serves a single poem file and reloads connected browsers when it changes.
type Preview struct {
	r    *Renderer
	file string

	mu      sync.Mutex
	clients map[string]chan string
}

// NewPreview returns a Preview of file rendered by r.
func (r *Renderer) NewPreview(file string) *Preview {
	return &Preview{
		r:       r,
		file:    file,
		clients: map[string]chan string{},
	}
}

// Handler returns the HTTP handler serving the page and its event stream.
func (p *Preview) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", p.servePage)
	mux.HandleFunc(eventsPath, p.serveEvents)
	return mux
}

func (p *Preview) servePage(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	res, c, err := p.r.RenderFile(req.Context(), p.file)
	if err != nil {
		p.r.logger.Error("failed to render file", slog.String("file", p.file), slog.String("error", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	links := fonts.NewLinks(p.r.fontsURL)
	links.Add(res.Fonts)
	title := c.Frontmatter.Title
	if title == "" {
		title = filepath.Base(p.file)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := previewTmpl.Execute(w, map[string]any{
		"Title":       title,
		"Stylesheets": links.URLs(),
		"Events":      eventsPath,
		"Reload":      reloadMsg,
		"Body":        template.HTML(res.HTML), //nolint:gosec
	}); err != nil {
		p.r.logger.Error("failed to write preview", slog.String("error", err.Error()))
	}
}

func (p *Preview) serveEvents(w http.ResponseWriter, req *http.Request) {
	f, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	f.Flush()

	id, ch := p.subscribe()
	defer p.unsubscribe(id)
	p.r.logger.Debug("preview client connected", slog.String("client", id))
	for {
		select {
		case <-req.Context().Done():
			p.r.logger.Debug("preview client disconnected", slog.String("client", id))
			return
		case msg := <-ch:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return
			}
			f.Flush()
		}
	}
}

func (p *Preview) subscribe() (string, chan string) {
	id := uuid.New().String()
	ch := make(chan string, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients[id] = ch
	return id, ch
}

func (p *Preview) unsubscribe(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.clients, id)
}

// Clients returns the number of connected browsers.
func (p *Preview) Clients() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

// Broadcast asks every connected browser to reload.
func (p *Preview) Broadcast() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.clients {
		select {
		case ch <- reloadMsg:
		default:
		}
	}
}

// Watch broadcasts a reload whenever the previewed file changes, until ctx is done.
// The parent directory is watched so that editors replacing the file are seen.
func (p *Preview) Watch(ctx context.Context) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	abs, err := filepath.Abs(p.file)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				p.r.logger.Info("file changed", slog.String("file", p.file))
				p.Broadcast()
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.r.logger.Error("failed to watch file", slog.String("error", err.Error()))
		}
	}
}
