//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"storycanvas/internal/vector"
)

// PageCanvas shows one rasterized page scene and forwards pointer gestures
// in scene coordinates. The edit surface owns all gesture semantics; this
// widget only maps widget points onto page pixels.
type PageCanvas struct {
	widget.BaseWidget

	img  *canvas.Image
	zoom float64

	sceneW float32
	sceneH float32

	dragging bool

	OnDragStart func(p vector.Pt)
	OnDrag      func(p vector.Pt)
	OnDragEnd   func()
	OnTap       func(p vector.Pt)
}

// NewPageCanvas creates an empty page canvas at the default overview zoom.
func NewPageCanvas() *PageCanvas {
	pc := &PageCanvas{
		img:  canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		zoom: 0.5,
	}
	pc.img.FillMode = canvas.ImageFillContain
	pc.ExtendBaseWidget(pc)
	return pc
}

// Zoom reports the widget-side display zoom.
func (pc *PageCanvas) Zoom() float64 { return pc.zoom }

// SetZoom changes the display zoom and relayouts.
func (pc *PageCanvas) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	pc.zoom = z
	pc.Refresh()
}

// SetScene swaps in a freshly rasterized scene.
func (pc *PageCanvas) SetScene(scene *vector.Scene, raster image.Image) {
	if scene == nil || raster == nil {
		return
	}
	pc.sceneW, pc.sceneH = scene.W, scene.H
	pc.img.Image = raster
	pc.img.Refresh()
	pc.Refresh()
}

// PreferredSize is the canvas pane's initial size inside the window split.
func (pc *PageCanvas) PreferredSize() fyne.Size {
	return fyne.NewSize(800, 600)
}

func (pc *PageCanvas) MinSize() fyne.Size {
	if pc.sceneW <= 0 || pc.sceneH <= 0 {
		return pc.PreferredSize()
	}
	return fyne.NewSize(pc.sceneW*float32(pc.zoom), pc.sceneH*float32(pc.zoom))
}

// CreateRenderer implements fyne.Widget.
func (pc *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.img)
}

// scenePoint maps a widget-local position onto scene pixels.
func (pc *PageCanvas) scenePoint(pos fyne.Position) vector.Pt {
	sz := pc.Size()
	if sz.Width <= 0 || sz.Height <= 0 || pc.sceneW <= 0 {
		return vector.Pt{X: pos.X, Y: pos.Y}
	}
	// ImageFillContain letterboxes; use the dominant axis scale
	kx := pc.sceneW / sz.Width
	ky := pc.sceneH / sz.Height
	k := kx
	if ky > k {
		k = ky
	}
	return vector.Pt{X: pos.X * k, Y: pos.Y * k}
}

// Tapped implements fyne.Tappable.
func (pc *PageCanvas) Tapped(ev *fyne.PointEvent) {
	if pc.OnTap != nil {
		pc.OnTap(pc.scenePoint(ev.Position))
	}
}

// Dragged implements fyne.Draggable.
func (pc *PageCanvas) Dragged(ev *fyne.DragEvent) {
	p := pc.scenePoint(ev.Position)
	if !pc.dragging {
		pc.dragging = true
		if pc.OnDragStart != nil {
			pc.OnDragStart(p)
		}
		return
	}
	if pc.OnDrag != nil {
		pc.OnDrag(p)
	}
}

// DragEnd implements fyne.Draggable.
func (pc *PageCanvas) DragEnd() {
	if !pc.dragging {
		return
	}
	pc.dragging = false
	if pc.OnDragEnd != nil {
		pc.OnDragEnd()
	}
}
