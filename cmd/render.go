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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/k1LoW/oeuvres"
	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/content"
	"github.com/k1LoW/oeuvres/markup"
	"github.com/spf13/cobra"
)

const (
	formatHTML     = "html"
	formatJSON     = "json"
	formatSegments = "segments"
)

var (
	format     string
	out        string
	noSanitize bool
	lines      string
)

var renderCmd = &cobra.Command{
	Use:   "render [POEM_FILE]",
	Short: "render poem written in brace markup",
	Long:  `render poem written in brace markup to HTML, JSON render tree or styled segments.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := args[0]
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()
		opts := []oeuvres.Option{
			oeuvres.WithConfig(cfg),
			oeuvres.WithLogger(logger),
		}
		if noSanitize {
			opts = append(opts, oeuvres.WithSanitize(false))
		}
		r, err := oeuvres.New(opts...)
		if err != nil {
			return err
		}
		c, err := content.ParseFile(f)
		if err != nil {
			return err
		}
		body := c.Markup()
		if lines != "" {
			body, err = selectLines(body, lines)
			if err != nil {
				return err
			}
		}
		res, err := r.Render(ctx, body)
		if err != nil {
			return err
		}

		var b []byte
		switch format {
		case formatHTML:
			b = []byte(res.HTML + "\n")
		case formatJSON:
			b, err = json.MarshalIndent(res, "", "  ")
		case formatSegments:
			b, err = json.MarshalIndent(markup.Segments(res.Document), "", "  ")
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			of, err := os.Create(out)
			if err != nil {
				return err
			}
			defer of.Close()
			w = of
		}
		if format != formatHTML {
			b = append(b, '\n')
		}
		_, err = w.Write(b)
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format (html, json, segments)")
	renderCmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	renderCmd.Flags().BoolVarP(&noSanitize, "no-sanitize", "", false, "do not sanitize rendered HTML")
	renderCmd.Flags().StringVarP(&lines, "lines", "l", "", "lines to render (e.g. 1-4,6)")
}

// selectLines keeps the lines of body listed in sel, in the order they appear in sel.
func selectLines(body, sel string) (string, error) {
	all := strings.Split(body, "\n")
	nums, err := lineToLines(sel, len(all))
	if err != nil {
		return "", err
	}
	selected := make([]string, 0, len(nums))
	for _, n := range nums {
		selected = append(selected, all[n-1])
	}
	return strings.Join(selected, "\n"), nil
}

// lineToLines expands a selection such as "1-4,6" or "3-" into 1-based line numbers.
// Open bounds extend to the first or last of total lines.
func lineToLines(sel string, total int) ([]int, error) {
	var result []int
	for _, part := range strings.Split(sel, ",") {
		if part == "" {
			return nil, fmt.Errorf("empty line selection in %q", sel)
		}
		from, to, isRange := strings.Cut(part, "-")
		if !isRange {
			to = from
		}
		first, err := lineBound(from, 1)
		if err != nil {
			return nil, err
		}
		last, err := lineBound(to, total)
		if err != nil {
			return nil, err
		}
		if first < 1 || last > total || first > last {
			return nil, fmt.Errorf("line selection %q out of range (total lines: %d)", part, total)
		}
		for n := first; n <= last; n++ {
			result = append(result, n)
		}
	}
	return result, nil
}

func lineBound(s string, open int) (int, error) {
	if s == "" {
		return open, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid line number: %q", s)
	}
	return n, nil
}
