package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *Content
		wantErr bool
	}{
		{
			name: "body only",
			in:   "{b}Le Lac{/b}\nAinsi...",
			want: &Content{Frontmatter: &Frontmatter{}, Body: "{b}Le Lac{/b}\nAinsi..."},
		},
		{
			name: "frontmatter",
			in:   "---\ntitle: Le Lac\nchapter: Méditations\nstatus: draft\ntags:\n  - lac\n  - temps\n---\nAinsi, toujours poussés\n",
			want: &Content{
				Frontmatter: &Frontmatter{Title: "Le Lac", Chapter: "Méditations", Status: StatusDraft, Tags: []string{"lac", "temps"}},
				Body:        "Ainsi, toujours poussés\n",
			},
		},
		{
			name: "crlf",
			in:   "---\r\ntitle: Nuit\r\n---\r\na\r\nb",
			want: &Content{Frontmatter: &Frontmatter{Title: "Nuit"}, Body: "a\nb"},
		},
		{
			name: "unterminated frontmatter is body",
			in:   "---\ntitle: x\n",
			want: &Content{Frontmatter: &Frontmatter{}, Body: "---\ntitle: x\n"},
		},
		{
			name:    "invalid frontmatter",
			in:      "---\ntags: [\n---\nbody",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	c, err := Parse([]byte("---\ntitle: Le Lac\nstatus: draft\ntags: [lac]\n---\nun\n\ndeux\n"))
	if err != nil {
		t.Fatal(err)
	}
	untagged, err := Parse([]byte("seul"))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		content *Content
		cond    string
		want    bool
		wantErr bool
	}{
		{"empty condition", c, "", true, false},
		{"status", c, `status != "` + StatusDraft + `"`, false, false},
		{"default status", untagged, `status == "` + StatusPublished + `"`, true, false},
		{"tags", c, `"lac" in tags`, true, false},
		{"no tags", untagged, `size(tags) == 0`, true, false},
		{"lines", c, `lines == 2`, true, false},
		{"title", c, `title.startsWith("Le")`, true, false},
		{"not bool", c, `title`, false, true},
		{"unknown variable", c, `author == "x"`, false, true},
		{"syntax error", c, `status ==`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.cond, tt.content.Store())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Match() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkup(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"a\nb\n", "a\nb"},
		{"a\n\n", "a\n"},
		{"a", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		c := &Content{Frontmatter: &Frontmatter{}, Body: tt.body}
		if got := c.Markup(); got != tt.want {
			t.Errorf("Markup(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
