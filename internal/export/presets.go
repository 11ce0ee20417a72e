/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

// Package export writes finished books to disk: a multi-page PDF, per-page
// PNG rasters, and per-page SVG files. Every exporter reads the same
// resolved page configs the on-screen preview uses, so the files match
// what the reader saw.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storycanvas/internal/compose"
)

// Quality presets. Page sizes are defined in pixels at 72 dpi, so the
// scale factor doubles as the dpi/72 ratio.
const (
	scaleStandard = 1.0 // 72 dpi, screen reading
	scaleHigh     = 2.0 // 144 dpi, tablets and retina
	scalePrint    = 300.0 / 72.0
)

// ScaleFor maps an export quality to the raster scale factor.
func ScaleFor(q compose.ExportQuality) float64 {
	switch q {
	case compose.QualityHigh:
		return scaleHigh
	case compose.QualityPrint:
		return scalePrint
	default:
		return scaleStandard
	}
}

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - OutDir is the base directory for all outputs; it is created if
//     missing.
//   - The PDF is a single book.pdf in OutDir.
//   - PNG/SVG per-page outputs go to png/ and svg/ subfolders, named
//     page-<n>.(png|svg).
//
// Pages applies to per-page exporters; the PDF always carries the whole
// book so page numbering stays meaningful.
type BatchOptions struct {
	Quality   compose.ExportQuality
	Formats   []string // allowed: pdf, png, svg; empty means all three
	Pages     []int    // zero-based indices; empty means all pages
	OutDir    string   // base directory for outputs (required)
	AssetRoot string   // directory relative image URLs resolve against
}

// Batch runs exports according to the given options.
func Batch(store *compose.Store, opt BatchOptions) error {
	if store == nil {
		return fmt.Errorf("store is nil")
	}
	if store.PageCount() == 0 {
		return fmt.Errorf("book has no pages")
	}
	if strings.TrimSpace(opt.OutDir) == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = []string{"pdf", "png", "svg"}
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	for _, f := range formats {
		switch f {
		case "pdf":
			out := filepath.Join(opt.OutDir, "book.pdf")
			if err := ExportPDF(store, out, PDFOptions{AssetRoot: opt.AssetRoot}); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "png":
			outDir := filepath.Join(opt.OutDir, "png")
			po := PNGOptions{Scale: ScaleFor(opt.Quality), Pages: opt.Pages, AssetRoot: opt.AssetRoot}
			if err := ExportPNGPages(store, outDir, po); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		case "svg":
			outDir := filepath.Join(opt.OutDir, "svg")
			if err := ExportSVGPages(store, outDir, SVGOptions{Pages: opt.Pages}); err != nil {
				return fmt.Errorf("svg: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func pageIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}
