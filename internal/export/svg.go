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

	"storycanvas/internal/compose"
	"storycanvas/internal/render"
)

// SVGOptions controls SVG export behavior.
// SVG output is vector; quality presets do not apply.
type SVGOptions struct {
	Pages []int // if empty, export all pages
}

// ExportSVGPages writes each page as a separate SVG file named
// page-<n>.svg under outDir. The files are byte-identical across runs for
// unchanged state.
func ExportSVGPages(store *compose.Store, outDir string, opt SVGOptions) error {
	if store == nil {
		return fmt.Errorf("store is nil")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	size := store.PageSize()
	book := store.Book()

	for _, i := range pageIndexes(book.PageCount(), opt.Pages) {
		page, ok := book.PageAt(i)
		if !ok {
			continue
		}
		scene := render.Page(page, store.Resolve(i), size.W, size.H, render.Options{})
		name := filepath.Join(outDir, fmt.Sprintf("page-%d.svg", i+1))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create svg: %w", err)
		}
		if err := render.WriteSVG(f, scene); err != nil {
			_ = f.Close()
			return fmt.Errorf("write svg page %d: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close svg: %w", err)
		}
	}
	return nil
}
