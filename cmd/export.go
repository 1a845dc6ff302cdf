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
	"github.com/k1LoW/oeuvres"
	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/fonts"
	"github.com/spf13/cobra"
)

var (
	cond        string
	concurrency int
	noFonts     bool
)

var exportCmd = &cobra.Command{
	Use:   "export [SRC_DIR] [DEST_DIR]",
	Short: "export poems as HTML fragments",
	Long:  `export every poem file under SRC_DIR as an HTML fragment under DEST_DIR, with an index.json manifest.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src, dest := args[0], args[1]
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		logger, stop, err := newLogger(true)
		if err != nil {
			return err
		}
		defer stop()
		opts := []oeuvres.Option{
			oeuvres.WithConfig(cfg),
			oeuvres.WithLogger(logger),
		}
		if !noFonts {
			l, err := fonts.New(fonts.WithBaseURL(cfg.FontsURL), fonts.WithLogger(logger))
			if err != nil {
				return err
			}
			opts = append(opts, oeuvres.WithFontLoader(l))
		}
		r, err := oeuvres.New(opts...)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("if") {
			cond = cfg.Export.If
		}
		if !cmd.Flags().Changed("concurrency") && cfg.Export.Concurrency > 0 {
			concurrency = cfg.Export.Concurrency
		}
		m, err := r.Export(ctx, src, dest, oeuvres.WithCondition(cond), oeuvres.WithConcurrency(concurrency))
		if err != nil {
			return err
		}
		cmd.Printf("%d exported, %d skipped\n", len(m.Entries), len(m.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&cond, "if", "", "", "condition a poem must satisfy to be exported (CEL)")
	exportCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "number of poems rendered in parallel")
	exportCmd.Flags().BoolVarP(&noFonts, "no-fonts", "", false, "do not request font stylesheets")
}
