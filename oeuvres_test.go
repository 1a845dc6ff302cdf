package oeuvres

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/fonts"
)

func newTestFontServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte("@font-face {}"))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		in        string
		wantHTML  string
		wantFonts []string
	}{
		{
			name:     "plain",
			in:       "Sous le pont",
			wantHTML: `<div class="poem"><p class="poem-line" style="margin: 0.15em 0">Sous le pont</p></div>`,
		},
		{
			name:     "class from config",
			opts:     []Option{WithConfig(&config.Config{Class: "verse"})},
			in:       "{b}Mirabeau{/b}",
			wantHTML: `<div class="verse"><p class="poem-line" style="margin: 0.15em 0"><span style="font-weight: bold">Mirabeau</span></p></div>`,
		},
		{
			name:      "custom font",
			in:        "{font:Pacifico}Seine{/font}",
			wantHTML:  `<div class="poem"><p class="poem-line" style="margin: 0.15em 0"><span style="font-family: &#39;Pacifico&#39;, serif">Seine</span></p></div>`,
			wantFonts: []string{"Pacifico"},
		},
		{
			name:     "system font from config is not discovered",
			opts:     []Option{WithConfig(&config.Config{SystemFonts: []string{"Pacifico"}})},
			in:       "{font:Pacifico}Seine{/font}",
			wantHTML: `<div class="poem"><p class="poem-line" style="margin: 0.15em 0"><span style="font-family: &#39;Pacifico&#39;, serif">Seine</span></p></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(append(tt.opts, WithSanitize(false))...)
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.Render(context.Background(), tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.wantHTML, got.HTML); diff != "" {
				t.Errorf("HTML mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantFonts, got.Fonts); diff != "" {
				t.Errorf("Fonts mismatch (-want +got):\n%s", diff)
			}
			if len(tt.wantFonts) == 0 && got.StylesheetURL != "" {
				t.Errorf("unexpected stylesheet URL %q", got.StylesheetURL)
			}
		})
	}
}

func TestRenderSanitize(t *testing.T) {
	in := "{color:rgb(1,2,3);background:url(x)}a{/color}"
	sanitized, err := New()
	if err != nil {
		t.Fatal(err)
	}
	raw, err := New(WithSanitize(false))
	if err != nil {
		t.Fatal(err)
	}
	got, err := sanitized.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got.HTML, "url(") {
		t.Errorf("sanitized output kept the injected declaration: %s", got.HTML)
	}
	got, err = raw.Render(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.HTML, "url(x)") {
		t.Errorf("raw output lost the color param: %s", got.HTML)
	}
}

func TestRenderLoadsFontsOnce(t *testing.T) {
	ts, hits := newTestFontServer(t)
	l, err := fonts.New(fonts.WithBaseURL(ts.URL))
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(WithConfig(&config.Config{FontsURL: ts.URL}), WithFontLoader(l))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, in := range []string{
		"{font:Lora}a{/font}",
		"{police:Lora}b{/police}",
		"{font:Arial}c{/font}",
		"{font:Lora}{font:Pacifico}d{/font}{/font}",
	} {
		if _, err := r.Render(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	l.Wait()
	if got := hits.Load(); got != 2 {
		t.Errorf("got %d requests, want 2", got)
	}
	if !l.Issued(fonts.StylesheetURL(ts.URL, []string{"Lora", "Pacifico"})) {
		t.Error("combined stylesheet was not requested")
	}
}
