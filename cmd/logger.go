/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/logger/dot"
	slogmulti "github.com/samber/slog-multi"
)

const logFileName = "oeuvres.log"

var logFile *os.File

func logFilePath() string {
	return filepath.Join(config.StateHomePath(), logFileName)
}

// newLogger returns a logger writing JSON records to the log file in the state directory.
// With progress, records are also shown as dots on the console.
func newLogger(progress bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(config.StateHomePath(), 0o700); err != nil {
		return nil, nil, err
	}
	if logFile == nil {
		f, err := os.OpenFile(logFilePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		logFile = f
	}
	handlers := []slog.Handler{
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	stop := func() {}
	if progress {
		h, err := dot.New(slog.NewTextHandler(os.Stderr, nil))
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, h)
		stop = h.Stop
	}
	return slog.New(slogmulti.Fanout(handlers...)), stop, nil
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
