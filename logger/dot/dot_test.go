package dot

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
)

func TestHandle(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	h, err := NewWithWriter(slog.NewTextHandler(io.Discard, nil), &buf)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Stop)
	logger := slog.New(h).With(slog.String("cmd", "export"))

	logger.Info(MsgRendered, slog.String("file", "a.poem"))
	logger.Info(MsgSkipped, slog.String("file", "b.poem"))
	logger.WithGroup("fonts").Info(MsgFontRequest)
	logger.Error("failed to render file")
	logger.Info("something else")
	logger.Info(MsgRendered)
	logger.Info(MsgCompleted)

	if got, want := buf.String(), ".-f!.\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
