/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
	"storycanvas/internal/render"
	"storycanvas/internal/textlayout"
)

// PDFOptions controls PDF export behavior.
//
// Units are points. Page sizes are defined in pixels at 72 dpi, which maps
// 1:1 onto points, so every coordinate the renderer computes carries over
// unchanged.
//
// Text stays vector via the PDF base-14 fonts named in the font registry;
// embedding decorative TTFs is a later phase. Shaped frames (hearts,
// clouds) export as their rectangular clip region; SVG output keeps the
// exact silhouette.
type PDFOptions struct {
	Title     string
	AssetRoot string // directory relative image URLs resolve against
	Pages     []int  // if empty, export all pages
}

// ExportPDF exports the whole book to a single multi-page PDF at outPath.
func ExportPDF(store *compose.Store, outPath string, opt PDFOptions) error {
	if store == nil {
		return fmt.Errorf("store is nil")
	}
	book := store.Book()
	if book.PageCount() == 0 {
		return fmt.Errorf("book has no pages")
	}
	size := store.PageSize()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.W, Ht: size.H},
		OrientationStr: "",
	})
	title := opt.Title
	if title == "" {
		title = book.Title
	}
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, 0)

	for _, i := range pageIndexes(book.PageCount(), opt.Pages) {
		page, ok := book.PageAt(i)
		if !ok {
			continue
		}
		rp := store.Resolve(i)
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: size.W, Ht: size.H})
		drawPDFPage(pdf, page, rp, size.W, size.H, opt.AssetRoot)
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// drawPDFPage mirrors the scene renderer's draw order: background, frame,
// text block, page number. Decorative backdrop patterns are skipped; print
// output stays clean.
func drawPDFPage(pdf *gofpdf.Fpdf, page domain.Page, rp compose.ResolvedPage, w, h float64, assetRoot string) {
	pal := rp.Palette

	setFillColor(pdf, pal.Background)
	pdf.Rect(0, 0, w, h, "F")

	// framed illustration
	frame := render.RegionRect(rp.ImageRegion, w, h)
	if rp.ImagePadding > 0 {
		frame = frame.Inset(float32(rp.ImagePadding)*frame.W, float32(rp.ImagePadding)*frame.H)
	}
	if frame.W > 0 && frame.H > 0 {
		fx, fy := float64(frame.X), float64(frame.Y)
		fw, fh := float64(frame.W), float64(frame.H)

		if img := resolveAsset(assetRoot, page.ImageURL); img != "" {
			// Clip to the frame, then place the image scaled by the crop
			// zoom with the crop anchor at the frame center.
			pdf.ClipRect(fx, fy, fw, fh, false)
			iw := fw * rp.Crop.Zoom
			ih := fh * rp.Crop.Zoom
			ix := fx + fw/2 - rp.Crop.X*iw
			iy := fy + fh/2 - rp.Crop.Y*ih
			pdf.ImageOptions(img, ix, iy, iw, ih, false, gofpdf.ImageOptions{ReadDpi: false}, 0, "")
			pdf.ClipEnd()
		} else {
			// placeholder wash where the illustration would sit
			setFillColor(pdf, pal.Secondary)
			pdf.SetAlpha(0.25, "Normal")
			pdf.Rect(fx, fy, fw, fh, "F")
			pdf.SetAlpha(1, "Normal")
		}
		if rp.Border != nil && rp.Border.Width > 0 {
			setDrawColor(pdf, rp.Border.Color)
			pdf.SetLineWidth(rp.Border.Width)
			pdf.Rect(fx, fy, fw, fh, "D")
		}
	}

	drawPDFText(pdf, page.Text, rp, w, h)

	if rp.ShowPageNumbers {
		pdf.SetFont(rp.Font.PDFName, "", pageNumberSizePt)
		setTextColor(pdf, pal.Text)
		num := strconv.Itoa(page.Number)
		nw := pdf.GetStringWidth(num)
		pdf.Text(w/2-nw/2, h-pageNumberSizePt/2, num)
	}
}

const pageNumberSizePt = 12

func drawPDFText(pdf *gofpdf.Fpdf, text string, rp compose.ResolvedPage, w, h float64) {
	region := render.RegionRect(rp.TextRegion, w, h)
	if region.W <= 0 || region.H <= 0 {
		return
	}
	pad := 0.0
	if rp.TextBG != nil {
		pad = rp.TextBG.Padding
	}
	inner := region.Inset(float32(pad), float32(pad))

	fit := textlayout.Fit(text, float64(inner.W), float64(inner.H), rp.FontSizePx, rp.LineHeight)
	if len(fit.Lines) == 0 {
		return
	}

	if rp.TextBG != nil {
		setFillColor(pdf, rp.TextBG.Color)
		pdf.RoundedRect(float64(region.X), float64(region.Y), float64(region.W), float64(region.H),
			rp.TextBG.CornerRadius, "1234", "F")
	}

	style := ""
	if rp.FontWeight >= 600 {
		style = "B"
	}
	size := float64(fit.SizePx)
	pdf.SetFont(rp.Font.PDFName, style, size)
	setTextColor(pdf, rp.Palette.Text)

	lineH := size * rp.LineHeight
	stack := float64(len(fit.Lines)) * lineH

	var top float64
	switch rp.VAlign {
	case "center":
		top = float64(inner.Y) + (float64(inner.H)-stack)/2
	case "bottom":
		top = float64(inner.Y) + float64(inner.H) - stack
	default:
		top = float64(inner.Y)
	}

	for i, line := range fit.Lines {
		lw := pdf.GetStringWidth(line)
		var x float64
		switch rp.HAlign {
		case "left":
			x = float64(inner.X)
		case "right":
			x = float64(inner.X) + float64(inner.W) - lw
		default:
			x = float64(inner.X) + float64(inner.W)/2 - lw/2
		}
		pdf.Text(x, top+float64(i)*lineH+size, line)
	}
}

// resolveAsset returns a local file path for href if it points at an
// existing raster file, or "" when the image cannot be embedded (remote
// URLs, missing files).
func resolveAsset(assetRoot, href string) string {
	if href == "" || strings.Contains(href, "://") {
		return ""
	}
	path := href
	if !filepath.IsAbs(path) {
		if assetRoot == "" {
			return ""
		}
		path = filepath.Join(assetRoot, filepath.FromSlash(href))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func setDrawColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c domain.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
