// seehuhn.de/go/canvas - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command gmrender renders the registered GMs to PNG files.
//
// Usage:
//
//	gmrender [-o dir] [-run regexp] [-v]
//
// Each GM is written to <dir>/<name>.png.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"seehuhn.de/go/canvas"
	"seehuhn.de/go/canvas/gm"
)

func main() {
	outDir := flag.String("o", "out", "output directory")
	run := flag.String("run", "", "render only GMs whose names match this regular expression")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	canvas.SetLogger(logger)

	if err := renderAll(logger, *outDir, *run); err != nil {
		logger.Error("gmrender failed", "error", err)
		os.Exit(1)
	}
}

func renderAll(logger *slog.Logger, outDir, run string) error {
	pat, err := regexp.Compile(run)
	if err != nil {
		return fmt.Errorf("invalid -run pattern: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	count := 0
	for _, g := range gm.All() {
		if !pat.MatchString(g.Name) {
			continue
		}
		fname := filepath.Join(outDir, g.Name+".png")
		if err := renderPNG(g, fname); err != nil {
			return fmt.Errorf("%s: %w", g.Name, err)
		}
		logger.Info("rendered", "gm", g.Name, "file", fname)
		count++
	}
	if count == 0 {
		return fmt.Errorf("no GM matches %q", run)
	}
	return nil
}

func renderPNG(g gm.GM, fname string) (err error) {
	c := canvas.New(g.Width, g.Height)
	gm.Render(g, c)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, c.Image())
}
