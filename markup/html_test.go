package markup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tenntenn/golden"
)

func TestRenderHTMLGolden(t *testing.T) {
	tests := []string{
		"mirabeau",
		"malformed",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join("testdata", name+".txt"))
			if err != nil {
				t.Fatal(err)
			}
			got, err := RenderHTML(Parse(string(b)))
			if err != nil {
				t.Fatal(err)
			}
			if os.Getenv("UPDATE_GOLDEN") != "" {
				golden.Update(t, "testdata", name+".html", got)
				return
			}
			if diff := golden.Diff(t, "testdata", name+".html", got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []HTMLOption
		want string
	}{
		{
			"empty content",
			"",
			nil,
			`<div class="poem"></div>`,
		},
		{
			"blank line",
			" ",
			nil,
			`<div class="poem"><br/></div>`,
		},
		{
			"text is escaped",
			"<script>alert(1)</script> & co",
			nil,
			`<div class="poem"><p class="poem-line" style="margin: 0.15em 0">&lt;script&gt;alert(1)&lt;/script&gt; &amp; co</p></div>`,
		},
		{
			"custom class",
			"{u}x{/u}",
			[]HTMLOption{WithClass("lyrics")},
			`<div class="lyrics"><p class="poem-line" style="margin: 0.15em 0"><span style="text-decoration: underline">x</span></p></div>`,
		},
		{
			"parameter cannot break out of the style attribute",
			`{color:rgb(1,2,3)" onclick="x()}a{/color}`,
			nil,
			`<div class="poem"><p class="poem-line" style="margin: 0.15em 0"><span style="color: rgb(1,2,3)&#34; onclick=&#34;x()">a</span></p></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(Parse(tt.in), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("RenderHTML()\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	in := "{b}{color:#1a2b3c}x{/color}{/b}\n" +
		"{i}{u}{font:Pacifico}{size:18px}y{/size}{/font}{/u}{/i}\n" +
		"{uppercase}{smallcaps}{spacing:2px}{center}z{/center}{/spacing}{/smallcaps}{/uppercase}\n" +
		"{right}w{/right}"
	got, err := RenderHTML(Parse(in))
	if err != nil {
		t.Fatal(err)
	}
	clean := Sanitize(got)
	want := []string{`class="poem"`, `class="poem-line"`, "margin", "Pacifico", "#1a2b3c", "18px", "2px", ">x<", ">y<", ">z<", ">w<"}
	for _, prop := range Properties {
		want = append(want, string(prop)+":")
	}
	for _, w := range want {
		if !strings.Contains(clean, w) {
			t.Errorf("Sanitize() dropped %q: %s", w, clean)
		}
	}

	dirty := `<div class="poem"><script>alert(1)</script><span style="font-weight: bold; position: fixed" onclick="x()">z</span><img src="x"></div>`
	clean = Sanitize(dirty)
	for _, unwanted := range []string{"script", "alert", "position", "onclick", "img"} {
		if strings.Contains(clean, unwanted) {
			t.Errorf("Sanitize() kept %q: %s", unwanted, clean)
		}
	}
	if !strings.Contains(clean, "font-weight") {
		t.Errorf("Sanitize() dropped an allowed property: %s", clean)
	}
}
