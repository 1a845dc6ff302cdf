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
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/k1LoW/oeuvres/config"
	"github.com/k1LoW/oeuvres/fonts"
	"github.com/spf13/cobra"
)

// doctorFamily is requested to check that the font service answers.
const doctorFamily = "Lora"

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "check environment for oeuvres",
	Long:  `check configuration, state directory and font service for oeuvres.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Color setup
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file (optional)
		cmd.Print("🔧 Checking configuration file ... ")

		cfg, err := config.Load(profile)
		switch {
		case err != nil:
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			cfg = &config.Config{}
			allOK = false
		case config.Path(profile) == "":
			yellow.Println("⚠️ NOT FOUND")
			cmd.Println("   Using built-in defaults")
		default:
			green.Println("✓ OK")
			cmd.Printf("   Configuration file: %s\n", config.Path(profile))
		}

		// 2. Check state directory
		cmd.Print("📁 Checking state directory ... ")

		stateDir := config.StateHomePath()
		if err := checkWritable(stateDir); err != nil {
			red.Println("✗ NOT WRITABLE")
			cmd.Printf("   Error: %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   State directory: %s\n", stateDir)
		}

		// 3. Check font service
		cmd.Print("🔤 Checking font service ... ")

		l, err := fonts.New(fonts.WithBaseURL(cfg.FontsURL))
		if err != nil {
			return err
		}
		if err := l.Check(ctx, []string{doctorFamily}); err != nil {
			yellow.Println("⚠️ UNREACHABLE")
			cmd.Printf("   Error: %v\n", err)
			cmd.Println("   Poems still render; custom fonts fall back to serif")
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   Font service: %s\n", l.URL([]string{doctorFamily}))
		}

		// Final message
		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use oeuvres")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try rendering a poem:")
			yellow.Println("  oeuvres render poem.txt")
		} else {
			red.Println("⚠️  Some checks failed.")
			cmd.Println("\nPlease fix the issues above to use oeuvres properly.")
		}

		return nil
	},
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(filepath.Clean(name))
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
