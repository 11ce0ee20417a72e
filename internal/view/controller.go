/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package view picks the presentation: which pages are rendered, at what
// size, and how navigation, zoom and the keyboard contract behave per view
// mode. The renderer always draws whole pages; the controller only decides
// which ones and where.
package view

import (
	"storycanvas/internal/compose"
	"storycanvas/internal/render"
	"storycanvas/internal/textlayout"
	"storycanvas/internal/vector"
)

// fitPaddingPx is the breathing room fit-to-screen keeps around the page.
const fitPaddingPx = 40

// excerptChars caps the text excerpt beside each list-view preview.
const excerptChars = 90

// zoomStepFactor is the multiplier for keyboard/wheel zoom steps.
const zoomStepFactor = 1.25

// Controller drives the renderer for one or many pages at once.
type Controller struct {
	store *compose.Store

	// viewport of the preview area in pixels, for fit-to-screen
	availW, availH float64
}

func NewController(store *compose.Store) *Controller {
	return &Controller{store: store}
}

// SetViewport records the available preview area for fit-to-screen.
func (c *Controller) SetViewport(w, h float64) {
	c.availW, c.availH = w, h
}

// Mode returns the active view mode.
func (c *Controller) Mode() compose.ViewMode { return c.store.State().ViewMode }

// SetMode switches the presentation.
func (c *Controller) SetMode(m compose.ViewMode) { c.store.SetViewMode(m) }

// VisiblePages returns the zero-based indices the active mode presents.
// Spread pairs pages as (2k, 2k+1); a trailing single page shows as the
// left leaf alone. Grid and list show every page.
func (c *Controller) VisiblePages() []int {
	st := c.store.State()
	n := c.store.PageCount()
	if n == 0 {
		return nil
	}
	switch st.ViewMode {
	case compose.ViewSpread:
		left := st.CurrentPage - st.CurrentPage%2
		if left+1 < n {
			return []int{left, left + 1}
		}
		return []int{left}
	case compose.ViewGrid, compose.ViewList:
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	default:
		return []int{st.CurrentPage}
	}
}

// Next navigates forward: by one page, or by a pair in spread view.
func (c *Controller) Next() { c.navigate(+1) }

// Prev navigates backward.
func (c *Controller) Prev() { c.navigate(-1) }

func (c *Controller) navigate(dir int) {
	step := 1
	if c.store.State().ViewMode == compose.ViewSpread {
		step = 2
	}
	c.store.SetCurrentPage(c.store.State().CurrentPage + dir*step)
}

// ClickThumbnail jumps to the page. In grid view a click also switches to
// single view.
func (c *Controller) ClickThumbnail(i int) {
	if c.store.State().ViewMode == compose.ViewGrid {
		c.store.SetViewMode(compose.ViewSingle)
	}
	c.store.SetCurrentPage(i)
}

// RenderPage draws page i at the active page size with the current
// resolved config.
func (c *Controller) RenderPage(i int, opts render.Options) *vector.Scene {
	page, ok := c.store.Book().PageAt(i)
	if !ok {
		return nil
	}
	size := c.store.PageSize()
	return render.Page(page, c.store.Resolve(i), size.W, size.H, opts)
}

// RenderThumbnail draws page i scaled so its longer edge is maxEdgePx.
// Thumbnails use the same resolved config as the main view, so every
// override shows up in the strip.
func (c *Controller) RenderThumbnail(i int, maxEdgePx float64) *vector.Scene {
	page, ok := c.store.Book().PageAt(i)
	if !ok {
		return nil
	}
	size := c.store.PageSize()
	k := maxEdgePx / size.W
	if size.H > size.W {
		k = maxEdgePx / size.H
	}
	return render.Page(page, c.store.Resolve(i), size.W*k, size.H*k, render.Options{})
}

// ListRow is one entry of the list view: a page index plus the excerpt
// shown beside the preview.
type ListRow struct {
	Index   int
	Excerpt string
}

// ListRows builds the list view rows for the whole book.
func (c *Controller) ListRows() []ListRow {
	book := c.store.Book()
	rows := make([]ListRow, 0, book.PageCount())
	for i, p := range book.Pages {
		rows = append(rows, ListRow{Index: i, Excerpt: textlayout.Excerpt(p.Text, excerptChars)})
	}
	return rows
}

// FitToScreen sets the canvas zoom so the page fits the recorded viewport
// with padding on both axes, never enlarging past 100%.
func (c *Controller) FitToScreen() {
	if c.availW <= 0 || c.availH <= 0 {
		return
	}
	size := c.store.PageSize()
	zw := (c.availW - fitPaddingPx) / size.W
	zh := (c.availH - fitPaddingPx) / size.H
	z := zw
	if zh < z {
		z = zh
	}
	if z > 1 {
		z = 1
	}
	c.store.SetCanvasZoom(z)
}

// ZoomIn steps the canvas zoom up.
func (c *Controller) ZoomIn() {
	c.store.SetCanvasZoom(c.store.State().CanvasZoom * zoomStepFactor)
}

// ZoomOut steps the canvas zoom down.
func (c *Controller) ZoomOut() {
	c.store.SetCanvasZoom(c.store.State().CanvasZoom / zoomStepFactor)
}

// ResetZoom returns the canvas zoom to 100%.
func (c *Controller) ResetZoom() { c.store.SetCanvasZoom(1) }

// Key is a normalized keyboard event.
type Key struct {
	Name        string // "ArrowLeft", "z", "+", ...
	Ctrl        bool   // Ctrl or Cmd
	Shift       bool
	InTextField bool // focus sits in a text input; navigation is off
}

// HandleKey implements the keyboard contract. It reports whether the key
// was consumed.
func (c *Controller) HandleKey(k Key) bool {
	switch {
	case k.Name == "ArrowLeft" && !k.Ctrl && !k.InTextField:
		c.Prev()
	case k.Name == "ArrowRight" && !k.Ctrl && !k.InTextField:
		c.Next()
	case k.Ctrl && k.Name == "z" && !k.Shift:
		c.store.Undo()
	case k.Ctrl && (k.Name == "y" || (k.Name == "z" && k.Shift)):
		c.store.Redo()
	case k.Ctrl && (k.Name == "+" || k.Name == "="):
		c.ZoomIn()
	case k.Ctrl && k.Name == "-":
		c.ZoomOut()
	case k.Ctrl && k.Name == "0":
		c.ResetZoom()
	case k.Ctrl && k.Name == "1":
		c.FitToScreen()
	default:
		return false
	}
	return true
}
