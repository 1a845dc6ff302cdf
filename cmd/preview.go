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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/k1LoW/oeuvres"
	"github.com/k1LoW/oeuvres/config"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	addr        string
	openBrowser bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [POEM_FILE]",
	Short: "preview poem in browser",
	Long:  `preview poem in browser, reloading the page whenever the file changes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := args[0]
		if _, err := os.Stat(f); err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()
		r, err := oeuvres.New(oeuvres.WithConfig(cfg), oeuvres.WithLogger(logger))
		if err != nil {
			return err
		}
		p := r.NewPreview(f)

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		u := fmt.Sprintf("http://%s/", ln.Addr().String())
		cmd.Printf("Previewing %s at %s\n", f, u)
		logger.Info("preview started", slog.String("file", f), slog.String("url", u))

		eg, ctx := errgroup.WithContext(ctx)
		// Event streams end with ctx so that Shutdown does not wait for them.
		srv := &http.Server{
			Handler:           p.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		}
		eg.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			return p.Watch(ctx)
		})
		eg.Go(func() error {
			<-ctx.Done()
			sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer scancel()
			return srv.Shutdown(sctx)
		})
		if openBrowser {
			if err := browser.OpenURL(u); err != nil {
				logger.Error("failed to open browser", slog.String("error", err.Error()))
			}
		}
		return eg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:7878", "address to listen on")
	previewCmd.Flags().BoolVarP(&openBrowser, "open", "", false, "open the preview in browser")
}
