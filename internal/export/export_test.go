/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
)

func newStore(pages int) *compose.Store {
	b := domain.Book{Title: "Little Fox"}
	for i := 1; i <= pages; i++ {
		b.Pages = append(b.Pages, domain.Page{Number: i, Text: "The fox ran over the hill and far away."})
	}
	return compose.NewStore(b, nil, compose.Hooks{})
}

func TestScaleForQuality(t *testing.T) {
	if got := ScaleFor(compose.QualityStandard); got != 1 {
		t.Fatalf("standard: %g", got)
	}
	if got := ScaleFor(compose.QualityHigh); got != 2 {
		t.Fatalf("high: %g", got)
	}
	if got := ScaleFor(compose.QualityPrint); got != 300.0/72.0 {
		t.Fatalf("print: %g", got)
	}
}

func TestExportSVGPagesWritesOneFilePerPage(t *testing.T) {
	store := newStore(3)
	dir := t.TempDir()
	if err := ExportSVGPages(store, dir, SVGOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	for i := 1; i <= 3; i++ {
		data, err := os.ReadFile(filepath.Join(dir, "page-"+strconv.Itoa(i)+".svg"))
		if err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		s := string(data)
		if !strings.Contains(s, "<svg") || !strings.Contains(s, "viewBox=\"0 0 576 576\"") {
			t.Fatalf("page %d is not an 8x8 svg document", i)
		}
	}
}

func TestExportSVGSubsetOfPages(t *testing.T) {
	store := newStore(4)
	dir := t.TempDir()
	if err := ExportSVGPages(store, dir, SVGOptions{Pages: []int{1}}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "page-2.svg")); err != nil {
		t.Fatalf("requested page missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "page-1.svg")); err == nil {
		t.Fatalf("unrequested page was written")
	}
}

func TestExportPNGPagesProducesDecodableRaster(t *testing.T) {
	store := newStore(1)
	dir := t.TempDir()
	if err := ExportPNGPages(store, dir, PNGOptions{Scale: 1}); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "page-1.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 576 || img.Bounds().Dy() != 576 {
		t.Fatalf("8x8 page must raster at 576px, got %v", img.Bounds())
	}
	// the corner pixel carries the theme background, never zero-value black
	r, g, b, _ := img.At(2, 2).RGBA()
	if r == 0 && g == 0 && b == 0 {
		t.Fatalf("background was not painted")
	}
}

func TestExportPNGHighQualityDoublesPixels(t *testing.T) {
	store := newStore(1)
	dir := t.TempDir()
	if err := ExportPNGPages(store, dir, PNGOptions{Scale: ScaleFor(compose.QualityHigh)}); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "page-1.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 1152 || cfg.Height != 1152 {
		t.Fatalf("high quality must double: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestExportPDFWritesDocument(t *testing.T) {
	store := newStore(2)
	out := filepath.Join(t.TempDir(), "book.pdf")
	if err := ExportPDF(store, out, PDFOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a pdf: %q", data[:8])
	}
}

func TestBatchDispatchesFormats(t *testing.T) {
	store := newStore(2)
	dir := t.TempDir()
	err := Batch(store, BatchOptions{OutDir: dir, Formats: []string{"pdf", "svg"}})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "book.pdf")); err != nil {
		t.Fatalf("pdf missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "svg", "page-1.svg")); err != nil {
		t.Fatalf("svg missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "png")); err == nil {
		t.Fatalf("png was not requested")
	}
}

func TestBatchRejectsUnknownFormat(t *testing.T) {
	store := newStore(1)
	err := Batch(store, BatchOptions{OutDir: t.TempDir(), Formats: []string{"docx"}})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("got %v", err)
	}
}

func TestResolveAssetRejectsRemoteAndMissing(t *testing.T) {
	if resolveAsset("", "https://cdn.example.com/a.png") != "" {
		t.Fatalf("remote URLs cannot be embedded")
	}
	if resolveAsset(t.TempDir(), "missing.png") != "" {
		t.Fatalf("missing files cannot be embedded")
	}
	root := t.TempDir()
	path := filepath.Join(root, "a.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := resolveAsset(root, "a.png"); got != path {
		t.Fatalf("got %q", got)
	}
	if resolveAsset(root, "a.txt") != "" {
		t.Fatalf("non-raster extensions are skipped")
	}
}
