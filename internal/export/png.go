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
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"storycanvas/internal/compose"
	"storycanvas/internal/render"
	"storycanvas/internal/vector"
)

// PNGOptions controls PNG export behavior.
//   - Scale: output pixels per scene pixel; quality presets map to 1x/2x/
//     300dpi. Zero means 1x.
//   - Pages: if empty, export all.
//   - AssetRoot: directory relative image URLs resolve against; images
//     that cannot be loaded raster as the placeholder wash.
//
// The rasterizer is intentionally simple: solid fills, 1px outlines, a
// bitmap fallback font. Shaped frames raster as ellipses or their bounding
// box; PDF and SVG are the faithful vector exports.
type PNGOptions struct {
	Scale     float64
	Pages     []int
	AssetRoot string
}

// ExportPNGPages writes each page as a separate PNG named page-<n>.png
// under outDir.
func ExportPNGPages(store *compose.Store, outDir string, opt PNGOptions) error {
	if store == nil {
		return fmt.Errorf("store is nil")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	size := store.PageSize()
	book := store.Book()

	for _, i := range pageIndexes(book.PageCount(), opt.Pages) {
		page, ok := book.PageAt(i)
		if !ok {
			continue
		}
		scene := render.Page(page, store.Resolve(i), size.W*scale, size.H*scale, render.Options{})
		img := Rasterize(scene, opt.AssetRoot)

		name := filepath.Join(outDir, fmt.Sprintf("page-%d.png", i+1))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png page %d: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

// Rasterize draws a scene into an RGBA image, back to front.
func Rasterize(s *vector.Scene, assetRoot string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(float64(s.W))), int(math.Ceil(float64(s.H)))))
	for _, n := range s.Nodes {
		drawNode(img, n, 1, assetRoot)
	}
	return img
}

func drawNode(img *image.RGBA, n vector.Node, opacity float32, assetRoot string) {
	op := opacity * n.Opacity()
	switch v := n.(type) {
	case *vector.Group:
		for _, c := range v.Children {
			drawNode(img, c, op, assetRoot)
		}
	case *vector.RectNode:
		b := v.Bounds()
		if f := v.Fill(); f.Enabled {
			fillRect(img, b, blend(f.Color, op))
		}
		if st := v.Stroke(); st.Enabled {
			strokeRect(img, b, blend(st.Color, op))
		}
	case *vector.EllipseNode:
		b := v.Bounds()
		if f := v.Fill(); f.Enabled {
			fillEllipse(img, b, blend(f.Color, op))
		}
	case *vector.PathNode:
		// bounding-box approximation for arbitrary path geometry
		b := v.Bounds()
		if f := v.Fill(); f.Enabled {
			fillRect(img, b, blend(f.Color, op))
		}
		if st := v.Stroke(); st.Enabled {
			strokeRect(img, b, blend(st.Color, op))
		}
	case *vector.ImageNode:
		drawImage(img, v, op, assetRoot)
	case *vector.TextNode:
		drawText(img, v, op)
	}
}

func drawImage(img *image.RGBA, n *vector.ImageNode, op float32, assetRoot string) {
	b := n.Bounds()
	src := loadAsset(assetRoot, n.Href)
	if src == nil {
		// missing asset: neutral wash so the layout stays visible
		fillRect(img, b, blend(vector.Color{R: 200, G: 200, B: 200, A: 255}, op*0.5))
		return
	}
	drawCover(img, src, b, n.Cover)
}

func loadAsset(assetRoot, href string) image.Image {
	path := resolveAsset(assetRoot, href)
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil
	}
	return src
}

// drawCover scales src into dst rect. With cover semantics the shorter
// axis overflows and center-crops, matching SVG's xMidYMid slice.
func drawCover(img *image.RGBA, src image.Image, r vector.Rect, cover bool) {
	dw, dh := int(r.W), int(r.H)
	if dw <= 0 || dh <= 0 {
		return
	}
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return
	}
	sx := float64(sw) / float64(dw)
	sy := float64(sh) / float64(dh)
	if cover {
		k := math.Min(sx, sy)
		sx, sy = k, k
	}
	offX := (float64(sw) - sx*float64(dw)) / 2
	offY := (float64(sh) - sy*float64(dh)) / 2

	clip := img.Bounds()
	for y := 0; y < dh; y++ {
		py := int(r.Y) + y
		if py < clip.Min.Y || py >= clip.Max.Y {
			continue
		}
		for x := 0; x < dw; x++ {
			px := int(r.X) + x
			if px < clip.Min.X || px >= clip.Max.X {
				continue
			}
			ux := sb.Min.X + int(offX+sx*float64(x))
			uy := sb.Min.Y + int(offY+sy*float64(y))
			if ux < sb.Min.X || ux >= sb.Max.X || uy < sb.Min.Y || uy >= sb.Max.Y {
				continue
			}
			img.Set(px, py, src.At(ux, uy))
		}
	}
}

func drawText(img *image.RGBA, n *vector.TextNode, op float32) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: blend(n.Fill().Color, op)},
		Face: face,
	}
	w := d.MeasureString(n.Text)
	pos := n.Transform().Apply(n.Pos)
	x := fixed.I(int(pos.X))
	switch n.Anchor {
	case vector.AnchorMiddle:
		x -= w / 2
	case vector.AnchorEnd:
		x -= w
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I(int(pos.Y))}
	d.DrawString(n.Text)
}

func blend(c vector.Color, opacity float32) color.RGBA {
	a := float32(c.A) * opacity
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

// fillRect composites a (possibly translucent) color over the rect.
func fillRect(img *image.RGBA, r vector.Rect, col color.RGBA) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.X+r.W), int(r.Y+r.H)
	rect := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(img, rect, &image.Uniform{C: col}, image.Point{}, draw.Over)
}

// strokeRect draws a 1px axis-aligned border.
func strokeRect(img *image.RGBA, r vector.Rect, col color.RGBA) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.X+r.W)-1, int(r.Y+r.H)-1
	clip := img.Bounds()
	for x := x0; x <= x1; x++ {
		setClipped(img, clip, x, y0, col)
		setClipped(img, clip, x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		setClipped(img, clip, x0, y, col)
		setClipped(img, clip, x1, y, col)
	}
}

func fillEllipse(img *image.RGBA, r vector.Rect, col color.RGBA) {
	cx := float64(r.X) + float64(r.W)/2
	cy := float64(r.Y) + float64(r.H)/2
	rx := float64(r.W) / 2
	ry := float64(r.H) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	clip := img.Bounds()
	for y := int(r.Y); y < int(r.Y+r.H); y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(cx - half); x <= int(cx+half); x++ {
			setClipped(img, clip, x, y, col)
		}
	}
}

func setClipped(img *image.RGBA, clip image.Rectangle, x, y int, col color.RGBA) {
	if x < clip.Min.X || x >= clip.Max.X || y < clip.Min.Y || y >= clip.Max.Y {
		return
	}
	// composite over, so translucent overlays darken instead of replace
	draw.Draw(img, image.Rect(x, y, x+1, y+1), &image.Uniform{C: col}, image.Point{}, draw.Over)
}
