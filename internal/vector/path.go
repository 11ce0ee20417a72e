/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

import (
	"strconv"
	"strings"
)

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

type PathCmd struct {
	Op   PathOp
	Data [6]float32 // enough for cubic; unused slots are zero
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
}
func (p *Path) LineTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float32{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// IsClosed reports whether the path ends with a Close command.
func (p *Path) IsClosed() bool {
	return len(p.Cmds) > 0 && p.Cmds[len(p.Cmds)-1].Op == Close
}

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. Sufficient for UI layout,
// selection rectangles and clip sizing.
func (p *Path) Bounds() Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	grow := func(pts ...Pt) {
		for _, q := range pts {
			if q.X < minX {
				minX = q.X
			}
			if q.Y < minY {
				minY = q.Y
			}
			if q.X > maxX {
				maxX = q.X
			}
			if q.Y > maxY {
				maxY = q.Y
			}
		}
	}
	cur := Pt{}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			cur = Pt{c.Data[0], c.Data[1]}
			grow(cur)
		case QuadTo:
			grow(cur, Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]})
			cur = Pt{c.Data[2], c.Data[3]}
		case CubicTo:
			grow(cur, Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, Pt{c.Data[4], c.Data[5]})
			cur = Pt{c.Data[4], c.Data[5]}
		case Close:
			// no-op for bounds
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Transformed returns a copy of the path with m applied to every point,
// including bezier control points.
func (p *Path) Transformed(m Affine2D) *Path {
	out := &Path{Cmds: make([]PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		nc := PathCmd{Op: c.Op}
		switch c.Op {
		case MoveTo, LineTo:
			q := m.Apply(Pt{c.Data[0], c.Data[1]})
			nc.Data = [6]float32{q.X, q.Y}
		case QuadTo:
			a := m.Apply(Pt{c.Data[0], c.Data[1]})
			b := m.Apply(Pt{c.Data[2], c.Data[3]})
			nc.Data = [6]float32{a.X, a.Y, b.X, b.Y}
		case CubicTo:
			a := m.Apply(Pt{c.Data[0], c.Data[1]})
			b := m.Apply(Pt{c.Data[2], c.Data[3]})
			e := m.Apply(Pt{c.Data[4], c.Data[5]})
			nc.Data = [6]float32{a.X, a.Y, b.X, b.Y, e.X, e.Y}
		case Close:
		}
		out.Cmds[i] = nc
	}
	return out
}

// D serializes the path to SVG path data with 3 decimal places.
func (p *Path) D() string {
	var b strings.Builder
	b.Grow(len(p.Cmds) * 16)
	num := func(v float32) string {
		return strconv.FormatFloat(float64(FloatRound(v, 3)), 'f', -1, 32)
	}
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			b.WriteString("M " + num(c.Data[0]) + " " + num(c.Data[1]))
		case LineTo:
			b.WriteString("L " + num(c.Data[0]) + " " + num(c.Data[1]))
		case QuadTo:
			b.WriteString("Q " + num(c.Data[0]) + " " + num(c.Data[1]) + " " + num(c.Data[2]) + " " + num(c.Data[3]))
		case CubicTo:
			b.WriteString("C " + num(c.Data[0]) + " " + num(c.Data[1]) + " " + num(c.Data[2]) + " " + num(c.Data[3]) + " " + num(c.Data[4]) + " " + num(c.Data[5]))
		case Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}
