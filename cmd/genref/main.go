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

// Command genref generates reference images for the registered GMs.
//
// Each GM is drawn onto a PDF page, which is then rendered to a grayscale
// PNG using Ghostscript.  This gives an independent rendering of the same
// scene.  The files are written to <dir>/<name>.pdf and <dir>/<name>.png.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"

	"seehuhn.de/go/canvas"
	"seehuhn.de/go/canvas/gm"
)

func main() {
	refDir := flag.String("o", filepath.Join("testdata", "reference"), "output directory")
	run := flag.String("run", "", "process only GMs whose names match this regular expression")
	gs := flag.String("gs", "gs", "Ghostscript executable")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	canvas.SetLogger(logger)

	if err := generateAll(logger, *refDir, *run, *gs); err != nil {
		logger.Error("genref failed", "error", err)
		os.Exit(1)
	}
}

func generateAll(logger *slog.Logger, refDir, run, gs string) error {
	pat, err := regexp.Compile(run)
	if err != nil {
		return fmt.Errorf("invalid -run pattern: %w", err)
	}
	if err := os.MkdirAll(refDir, 0755); err != nil {
		return err
	}

	for _, g := range gm.All() {
		if !pat.MatchString(g.Name) {
			continue
		}
		pdfPath := filepath.Join(refDir, g.Name+".pdf")
		pngPath := filepath.Join(refDir, g.Name+".png")

		if err := generatePDF(g, pdfPath); err != nil {
			return fmt.Errorf("%s: %w", g.Name, err)
		}
		if err := renderPNG(gs, pdfPath, pngPath); err != nil {
			return fmt.Errorf("%s: %w", g.Name, err)
		}
		logger.Info("generated", "gm", g.Name, "file", pngPath)
	}
	return nil
}

func generatePDF(g gm.GM, pdfPath string) error {
	// 1 point = 1 pixel at 72 DPI
	paper := &pdf.Rectangle{
		URx: float64(g.Width),
		URy: float64(g.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	gm.Render(g, newPDFCanvas(page, g.Width, g.Height))

	return page.Close()
}

func renderPNG(gs, pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		gs, "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
