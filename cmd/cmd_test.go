package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/k1LoW/oeuvres/markup"
)

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(closeLogFile)
	f := filepath.Join(t.TempDir(), "pont.poem")
	if err := os.WriteFile(f, []byte("---\ntitle: Le Pont Mirabeau\n---\n{b}Sous{/b} le pont\n\nMirabeau\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	const line = `<p class="poem-line" style="margin: 0.15em 0">`
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			"html",
			[]string{"render", "--no-sanitize", f},
			`<div class="poem">` + line + `<span style="font-weight: bold">Sous</span> le pont</p><br/>` + line + `Mirabeau</p></div>` + "\n",
		},
		{
			"lines",
			[]string{"render", "--no-sanitize", "-l", "3", f},
			`<div class="poem">` + line + `Mirabeau</p></div>` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRenderFlags()
			got := execute(t, tt.args...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("segments", func(t *testing.T) {
		resetRenderFlags()
		var got []markup.Segment
		if err := json.Unmarshal([]byte(execute(t, "render", "-f", "segments", "-l", "1-2", f)), &got); err != nil {
			t.Fatal(err)
		}
		want := []markup.Segment{
			{Line: 0, Text: "Sous", Style: markup.Style{{Property: markup.PropFontWeight, Value: "bold"}}},
			{Line: 0, Text: " le pont"},
			{Line: 1, Break: true},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("segments mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("out", func(t *testing.T) {
		resetRenderFlags()
		o := filepath.Join(t.TempDir(), "pont.html")
		if got := execute(t, "render", "-o", o, f); got != "" {
			t.Errorf("unexpected stdout: %q", got)
		}
		b, err := os.ReadFile(o)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(b, []byte("Mirabeau")) {
			t.Errorf("output file does not contain the poem: %s", b)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		resetRenderFlags()
		rootCmd.SetArgs([]string{"render", "-f", "pdf", f})
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		if err := rootCmd.Execute(); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestCheckWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	if err := checkWritable(dir); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("checkWritable left %d files behind", len(entries))
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var stdout bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	return stdout.String()
}

func resetRenderFlags() {
	format = formatHTML
	out = ""
	noSanitize = false
	lines = ""
}
