/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns (page, resolved config, page size) into a vector
// scene. It is pure: the same inputs always build the same node list, back
// to front, so thumbnails and view-mode re-renders stay consistent.
package render

import (
	"strconv"

	"storycanvas/internal/backdrop"
	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
	"storycanvas/internal/shapes"
	"storycanvas/internal/textlayout"
	"storycanvas/internal/vector"
)

// pageNumberSizePx is the fixed size of the footer page number.
const pageNumberSizePx = 12

// pageBorderInsetPx is the inset of the decorative page border.
const pageBorderInsetPx = 12

// Options tweak a single render call.
type Options struct {
	// Cropping adds the translucent visible-region overlay inside the
	// frame so the edit surface can composite crop handles on top.
	Cropping bool
}

// RegionRect maps a normalized region onto page pixels.
func RegionRect(r domain.RectN, w, h float64) vector.Rect {
	return vector.R(float32(r.X*w), float32(r.Y*h), float32(r.W*w), float32(r.H*h))
}

func vcolor(c domain.Color) vector.Color { return vector.Color{R: c.R, G: c.G, B: c.B, A: c.A} }

// Page builds the scene for one page at the given pixel size.
func Page(page domain.Page, rp compose.ResolvedPage, w, h float64, opts Options) *vector.Scene {
	scene := vector.NewScene(float32(w), float32(h))
	pal := rp.Palette

	// 1. solid background
	scene.Add(vector.NewRect(vector.R(0, 0, scene.W, scene.H), vector.SolidFill(vcolor(pal.Background)), vector.Stroke{}))

	// 2. decorative pattern at full page size
	scene.Add(backdrop.Render(rp.Pattern, scene.W, scene.H, pal)...)

	// 3. decorative page border. A flat vector document has no page edge to
	// shade, so the pageShadow flag renders as this inset accent outline.
	if rp.Effects.PageShadow {
		inset := vector.R(pageBorderInsetPx, pageBorderInsetPx, scene.W-2*pageBorderInsetPx, scene.H-2*pageBorderInsetPx)
		border := vector.NewRoundedRect(inset, 10, vector.Fill{}, vector.Stroke{
			Color: vcolor(pal.Accent), Width: 1.5, Enabled: true,
		})
		border.SetOpacity(0.5)
		scene.Add(border)
	}

	// 4. framed illustration
	frameRect := RegionRect(rp.ImageRegion, w, h)
	if rp.ImagePadding > 0 {
		px := float32(rp.ImagePadding) * frameRect.W
		py := float32(rp.ImagePadding) * frameRect.H
		frameRect = frameRect.Inset(px, py)
	}
	if frameRect.W > 0 && frameRect.H > 0 {
		scene.Add(frameNodes(page, rp, frameRect, opts)...)
	}

	// 5. text block
	scene.Add(textNodes(page.Text, rp, w, h)...)

	// 6. page number
	if rp.ShowPageNumbers {
		num := vector.NewText(vector.Pt{X: scene.W / 2, Y: scene.H - pageNumberSizePx/2},
			strconv.Itoa(page.Number), rp.Font.CSS, pageNumberSizePx, vector.SolidFill(vcolor(pal.Text)))
		num.Anchor = vector.AnchorMiddle
		scene.Add(num)
	}
	return scene
}

// frameNodes builds the clipped illustration group, the placeholder when
// the page has no image, the optional outline, and the crop overlay.
func frameNodes(page domain.Page, rp compose.ResolvedPage, frameRect vector.Rect, opts Options) []vector.Node {
	clip := shapes.Path(rp.FrameShape, frameRect.W, frameRect.H).
		Transformed(vector.Translate(frameRect.X, frameRect.Y))

	group := vector.NewGroup()
	group.Clip = clip

	if page.ImageURL == "" {
		ph := vector.NewRect(frameRect, vector.SolidFill(vcolor(rp.Palette.Secondary)), vector.Stroke{})
		ph.SetOpacity(0.25)
		group.Add(ph)
	} else {
		group.Add(vector.NewImage(cropRect(frameRect, rp.Crop), page.ImageURL, true))
	}
	// one filter per node; the dedicated shadow wins over the glow halo
	switch {
	case rp.Effects.ImageShadow:
		group.SetFilter(vector.FilterDropShadow)
	case rp.Effects.Glow:
		group.SetFilter(vector.FilterSoftGlow)
	}

	nodes := []vector.Node{group}
	if rp.Border != nil && rp.Border.Width > 0 {
		outline := vector.NewPath(clip, vector.Fill{}, vector.Stroke{
			Color: vcolor(rp.Border.Color), Width: float32(rp.Border.Width), Enabled: true,
		})
		nodes = append(nodes, outline)
	}
	if opts.Cropping {
		overlay := vector.NewRect(frameRect, vector.SolidFill(vector.White), vector.Stroke{
			Color: vector.White, Width: 1, Enabled: true,
		})
		overlay.SetOpacity(0.2)
		nodes = append(nodes, overlay)
	}
	return nodes
}

// cropRect positions the image inside the frame so that the image anchor
// (cropX, cropY) lands at the frame center and the image is scaled by the
// crop zoom. At zoom 1 with a centered anchor the image rect equals the
// frame rect and cover semantics show the full image.
func cropRect(frame vector.Rect, crop compose.CropSettings) vector.Rect {
	w := frame.W * float32(crop.Zoom)
	h := frame.H * float32(crop.Zoom)
	cx := frame.X + frame.W/2
	cy := frame.Y + frame.H/2
	return vector.R(cx-float32(crop.X)*w, cy-float32(crop.Y)*h, w, h)
}

// textNodes lays out the paragraph: optional rounded background, the
// auto-scaled wrapped lines, then alignment inside the region.
func textNodes(text string, rp compose.ResolvedPage, w, h float64) []vector.Node {
	region := RegionRect(rp.TextRegion, w, h)
	if region.W <= 0 || region.H <= 0 {
		return nil
	}

	pad := float32(0)
	if rp.TextBG != nil {
		pad = float32(rp.TextBG.Padding)
	}
	inner := region.Inset(pad, pad)

	fit := textlayout.Fit(text, float64(inner.W), float64(inner.H), rp.FontSizePx, rp.LineHeight)
	if len(fit.Lines) == 0 {
		return nil
	}

	var nodes []vector.Node
	if rp.TextBG != nil {
		bg := vector.NewRoundedRect(region, float32(rp.TextBG.CornerRadius),
			vector.SolidFill(vcolor(rp.TextBG.Color)), vector.Stroke{})
		nodes = append(nodes, bg)
	}

	size := float32(fit.SizePx)
	lineH := size * float32(rp.LineHeight)
	stack := float32(len(fit.Lines)) * lineH

	var x float32
	var anchor vector.TextAnchor
	switch rp.HAlign {
	case "left":
		x, anchor = inner.X, vector.AnchorStart
	case "right":
		x, anchor = inner.X+inner.W, vector.AnchorEnd
	default:
		x, anchor = inner.X+inner.W/2, vector.AnchorMiddle
	}

	var top float32
	switch rp.VAlign {
	case "center":
		top = inner.Y + (inner.H-stack)/2
	case "bottom":
		top = inner.Y + inner.H - stack
	default:
		top = inner.Y
	}

	for i, line := range fit.Lines {
		// baseline sits one em below the line top
		n := vector.NewText(vector.Pt{X: x, Y: top + float32(i)*lineH + size},
			line, rp.Font.CSS, size, vector.SolidFill(vcolor(rp.Palette.Text)))
		n.Anchor = anchor
		n.Weight = rp.FontWeight
		if rp.Effects.TextShadow {
			n.SetFilter(vector.FilterTextShadow)
		} else if rp.Effects.Glow {
			n.SetFilter(vector.FilterSoftGlow)
		}
		nodes = append(nodes, n)
	}
	return nodes
}
