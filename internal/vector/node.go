/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a scene-graph item that can be rendered by different backends.
// It supports basic transforms, styling, bounds, and hit-testing.

type Node interface {
	Bounds() Rect
	Transform() Affine2D
	SetTransform(Affine2D)
	Fill() Fill
	Stroke() Stroke
	SetFill(Fill)
	SetStroke(Stroke)
	Opacity() float32
	SetOpacity(float32)
	Filter() Filter
	SetFilter(Filter)
	Hit(p Pt) bool
}

type baseNode struct {
	xf      Affine2D
	fill    Fill
	stroke  Stroke
	opacity float32
	filter  Filter
}

func newBase(f Fill, s Stroke) baseNode {
	return baseNode{xf: Identity, fill: f, stroke: s, opacity: 1}
}

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }
func (b *baseNode) Fill() Fill              { return b.fill }
func (b *baseNode) Stroke() Stroke          { return b.stroke }
func (b *baseNode) SetFill(f Fill)          { b.fill = f }
func (b *baseNode) SetStroke(s Stroke)      { b.stroke = s }
func (b *baseNode) Opacity() float32        { return b.opacity }
func (b *baseNode) SetOpacity(o float32)    { b.opacity = o }
func (b *baseNode) Filter() Filter          { return b.filter }
func (b *baseNode) SetFilter(f Filter)      { b.filter = f }

func transformedCorners(r Rect, m Affine2D) Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	corners := []Pt{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H}}
	for _, c := range corners {
		p := m.Apply(c)
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RectNode draws an axis-aligned rectangle before transform.
// A non-zero Radius renders rounded corners.
type RectNode struct {
	baseNode
	rect   Rect
	Radius float32
}

func NewRect(r Rect, f Fill, s Stroke) *RectNode {
	return &RectNode{baseNode: newBase(f, s), rect: r}
}

func NewRoundedRect(r Rect, radius float32, f Fill, s Stroke) *RectNode {
	return &RectNode{baseNode: newBase(f, s), rect: r, Radius: radius}
}

func (n *RectNode) Rect() Rect   { return n.rect }
func (n *RectNode) Bounds() Rect { return transformedCorners(n.rect, n.xf) }

func (n *RectNode) Hit(p Pt) bool {
	q := invert(n.xf).Apply(p)
	if n.Radius <= 0 {
		return n.rect.Contains(q)
	}
	if !n.rect.Contains(q) {
		return false
	}
	core := n.rect.Inset(n.Radius, n.Radius)
	if core.W > 0 && core.H > 0 && core.Contains(q) {
		return true
	}
	cx := []float32{n.rect.X + n.Radius, n.rect.X + n.rect.W - n.Radius}
	cy := []float32{n.rect.Y + n.Radius, n.rect.Y + n.rect.H - n.Radius}
	r2 := n.Radius * n.Radius
	for _, x := range cx {
		for _, y := range cy {
			dx := q.X - x
			dy := q.Y - y
			if dx*dx+dy*dy <= r2 {
				return true
			}
		}
	}
	// edge bands between the corner circles
	return (q.X >= n.rect.X+n.Radius && q.X <= n.rect.X+n.rect.W-n.Radius) ||
		(q.Y >= n.rect.Y+n.Radius && q.Y <= n.rect.Y+n.rect.H-n.Radius)
}

// EllipseNode represents an ellipse inscribed in rect.
type EllipseNode struct {
	baseNode
	rect Rect
}

func NewEllipse(r Rect, f Fill, s Stroke) *EllipseNode {
	return &EllipseNode{baseNode: newBase(f, s), rect: r}
}

func (n *EllipseNode) Rect() Rect   { return n.rect }
func (n *EllipseNode) Bounds() Rect { return transformedCorners(n.rect, n.xf) }

func (n *EllipseNode) Hit(p Pt) bool {
	q := invert(n.xf).Apply(p)
	cx := n.rect.X + n.rect.W/2
	cy := n.rect.Y + n.rect.H/2
	rx := n.rect.W / 2
	ry := n.rect.H / 2
	if rx == 0 || ry == 0 {
		return false
	}
	dx := (q.X - cx) / rx
	dy := (q.Y - cy) / ry
	return dx*dx+dy*dy <= 1
}

// PathNode references a path geometry.
type PathNode struct {
	baseNode
	path *Path
	bbox Rect // cached approx bounds
}

func NewPath(p *Path, f Fill, s Stroke) *PathNode {
	return &PathNode{baseNode: newBase(f, s), path: p, bbox: p.Bounds()}
}

func (n *PathNode) Path() *Path  { return n.path }
func (n *PathNode) Bounds() Rect { return transformedCorners(n.bbox, n.xf) }

func (n *PathNode) Hit(p Pt) bool {
	// Simple bbox hit; good enough for selection.
	q := invert(n.xf).Apply(p)
	return n.bbox.Contains(q)
}

// ImageNode places a raster image by reference into a destination rect.
// Cover selects aspect-preserving crop semantics (SVG xMidYMid slice);
// otherwise the image is stretched to the rect.
type ImageNode struct {
	baseNode
	rect  Rect
	Href  string
	Cover bool
}

func NewImage(r Rect, href string, cover bool) *ImageNode {
	return &ImageNode{baseNode: newBase(Fill{}, Stroke{}), rect: r, Href: href, Cover: cover}
}

func (n *ImageNode) Rect() Rect    { return n.rect }
func (n *ImageNode) Bounds() Rect  { return transformedCorners(n.rect, n.xf) }
func (n *ImageNode) Hit(p Pt) bool { return n.rect.Contains(invert(n.xf).Apply(p)) }

// TextAnchor selects horizontal alignment relative to the anchor point.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextNode is a single line of text anchored at Pos (baseline).
type TextNode struct {
	baseNode
	Pos    Pt
	Text   string
	Family string // resolved CSS family string
	SizePx float32
	Weight int
	Anchor TextAnchor
}

func NewText(pos Pt, text, family string, sizePx float32, f Fill) *TextNode {
	return &TextNode{baseNode: newBase(f, Stroke{}), Pos: pos, Text: text, Family: family, SizePx: sizePx, Weight: 400}
}

// Bounds estimates the line box from a 0.5em average advance. Exact metrics
// are a frontend concern; selection overlays re-measure after layout.
func (n *TextNode) Bounds() Rect {
	w := 0.5 * n.SizePx * float32(len([]rune(n.Text)))
	x := n.Pos.X
	switch n.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	return transformedCorners(Rect{X: x, Y: n.Pos.Y - n.SizePx, W: w, H: n.SizePx * 1.2}, n.xf)
}

func (n *TextNode) Hit(p Pt) bool { return n.Bounds().Contains(p) }

// Group is a container for child nodes with its own transform, opacity,
// optional clip path and filter.
type Group struct {
	baseNode
	Clip     *Path
	Children []Node
}

func NewGroup(children ...Node) *Group {
	g := &Group{baseNode: newBase(Fill{}, Stroke{})}
	g.Children = append(g.Children, children...)
	return g
}

func (g *Group) Add(n ...Node) { g.Children = append(g.Children, n...) }

func (g *Group) Bounds() Rect {
	var b Rect
	first := true
	for _, c := range g.Children {
		cb := c.Bounds()
		if first {
			b = cb
			first = false
		} else {
			b = b.Union(cb)
		}
	}
	return transformedCorners(b, g.xf)
}

func (g *Group) Hit(p Pt) bool {
	q := invert(g.xf).Apply(p)
	if g.Clip != nil && !g.Clip.Bounds().Contains(q) {
		return false
	}
	for i := len(g.Children) - 1; i >= 0; i-- { // top-most first
		if g.Children[i].Hit(q) {
			return true
		}
	}
	return false
}

// Scene is one rendered page: a fixed pixel viewport plus an ordered node
// list, back to front.
type Scene struct {
	W, H  float32
	Nodes []Node
}

func NewScene(w, h float32) *Scene { return &Scene{W: w, H: h} }

func (s *Scene) Add(n ...Node) { s.Nodes = append(s.Nodes, n...) }

// HitTop returns the top-most node containing p, or nil.
func (s *Scene) HitTop(p Pt) Node {
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Hit(p) {
			return s.Nodes[i]
		}
	}
	return nil
}

// invert computes the inverse of an affine matrix (if invertible).
func invert(m Affine2D) Affine2D {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity
	}
	invDet := 1 / det
	return Affine2D{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}
}
