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
	"strings"

	"github.com/fatih/color"
	"github.com/k1LoW/oeuvres"
	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/content"
	"github.com/k1LoW/oeuvres/fonts"
	"github.com/k1LoW/oeuvres/logger/dot"
	"github.com/spf13/cobra"
)

var load bool

var fontsCmd = &cobra.Command{
	Use:   "fonts [POEM_FILE...]",
	Short: "list custom fonts used by poems",
	Long:  `list custom fonts used by poems and the stylesheet URL loading them.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		logger, stop, err := newLogger(load)
		if err != nil {
			return err
		}
		defer stop()
		opts := []oeuvres.Option{
			oeuvres.WithConfig(cfg),
			oeuvres.WithLogger(logger),
		}
		var l *fonts.Loader
		if load {
			l, err = fonts.New(fonts.WithBaseURL(cfg.FontsURL), fonts.WithLogger(logger))
			if err != nil {
				return err
			}
		}
		r, err := oeuvres.New(opts...)
		if err != nil {
			return err
		}
		bold := color.New(color.Bold)
		for _, f := range args {
			c, err := content.ParseFile(f)
			if err != nil {
				return err
			}
			families := r.Fonts(c.Markup())
			if len(families) == 0 {
				cmd.Printf("%s: %s\n", bold.Sprint(f), color.HiBlackString("no custom fonts"))
				continue
			}
			cmd.Printf("%s: %s\n", bold.Sprint(f), strings.Join(families, ", "))
			cmd.Printf("  %s\n", color.CyanString(fonts.StylesheetURL(r.FontsURL(), families)))
			if l != nil {
				l.Load(ctx, families)
			}
		}
		if l != nil {
			logger.Info(dot.MsgWaitingFonts)
			l.Wait()
			logger.Info(dot.MsgCompleted)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fontsCmd)
	fontsCmd.Flags().BoolVarP(&load, "load", "", false, "request the font stylesheets")
}
