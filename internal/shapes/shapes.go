/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package shapes provides the frame-shape library: pure functions mapping a
// bounding box (w, h) to a closed vector path that fits the box. Every shape
// is usable both as a clip path and as a stroked outline.
//
// Aspect contract: shapes are inscribed in the bounding box. Shapes defined
// by radial symmetry (circle, star, flower, burst, scallop, blob) degrade to
// their elliptical counterparts at non-square boxes; each such shape carries
// a note in its registry entry.
package shapes

import (
	"math"
	"sort"

	"storycanvas/internal/vector"
)

// Func builds a closed path inscribed in the (0,0)-(w,h) box.
type Func func(w, h float32) *vector.Path

// Shape is a registry entry.
type Shape struct {
	ID         string
	Label      string
	AspectNote string // behavior when w != h; empty when aspect-stable
	Fn         Func
}

// DefaultID is the fallback for unknown shape ids.
const DefaultID = "rounded"

var registry = map[string]Shape{}

func register(id, label, aspectNote string, fn Func) {
	registry[id] = Shape{ID: id, Label: label, AspectNote: aspectNote, Fn: fn}
}

// Get returns the shape for id, falling back to the default shape so an
// unknown id never breaks rendering.
func Get(id string) Shape {
	if s, ok := registry[id]; ok {
		return s
	}
	return registry[DefaultID]
}

// Known reports whether id names a registered shape.
func Known(id string) bool { _, ok := registry[id]; return ok }

// IDs returns all registered shape ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Path is shorthand for Get(id).Fn(w, h).
func Path(id string, w, h float32) *vector.Path { return Get(id).Fn(w, h) }

func polygon(pts ...vector.Pt) *vector.Path {
	p := &vector.Path{}
	for i, q := range pts {
		if i == 0 {
			p.MoveTo(q.X, q.Y)
		} else {
			p.LineTo(q.X, q.Y)
		}
	}
	p.Close()
	return p
}

// radialPoints places n points on the ellipse inscribed in the box, starting
// at angle start (radians, -pi/2 is up), at radius fraction f per point.
func radialPoints(w, h float32, fractions []float32, start float64) []vector.Pt {
	cx, cy := w/2, h/2
	n := len(fractions)
	pts := make([]vector.Pt, n)
	for i := 0; i < n; i++ {
		a := start + 2*math.Pi*float64(i)/float64(n)
		f := fractions[i]
		pts[i] = vector.Pt{
			X: cx + f*cx*float32(math.Cos(a)),
			Y: cy + f*cy*float32(math.Sin(a)),
		}
	}
	return pts
}

func regular(n int, w, h float32) *vector.Path {
	fr := make([]float32, n)
	for i := range fr {
		fr[i] = 1
	}
	return polygon(radialPoints(w, h, fr, -math.Pi/2)...)
}

func starPath(points int, inner float32, w, h float32) *vector.Path {
	fr := make([]float32, points*2)
	for i := range fr {
		if i%2 == 0 {
			fr[i] = 1
		} else {
			fr[i] = inner
		}
	}
	return polygon(radialPoints(w, h, fr, -math.Pi/2)...)
}

func ellipsePath(x, y, w, h float32) *vector.Path {
	// cubic approximation with kappa
	const k = 0.5522848
	cx, cy := x+w/2, y+h/2
	rx, ry := w/2, h/2
	p := &vector.Path{}
	p.MoveTo(cx, y)
	p.CubicTo(cx+k*rx, y, x+w, cy-k*ry, x+w, cy)
	p.CubicTo(x+w, cy+k*ry, cx+k*rx, y+h, cx, y+h)
	p.CubicTo(cx-k*rx, y+h, x, cy+k*ry, x, cy)
	p.CubicTo(x, cy-k*ry, cx-k*rx, y, cx, y)
	p.Close()
	return p
}

func roundedRectPath(w, h, r float32) *vector.Path {
	if m := vectorMin(w, h) / 2; r > m {
		r = m
	}
	p := &vector.Path{}
	p.MoveTo(r, 0)
	p.LineTo(w-r, 0)
	p.QuadTo(w, 0, w, r)
	p.LineTo(w, h-r)
	p.QuadTo(w, h, w-r, h)
	p.LineTo(r, h)
	p.QuadTo(0, h, 0, h-r)
	p.LineTo(0, r)
	p.QuadTo(0, 0, r, 0)
	p.Close()
	return p
}

func vectorMin(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func init() {
	register("rectangle", "Rectangle", "", func(w, h float32) *vector.Path {
		return polygon(vector.Pt{}, vector.Pt{X: w}, vector.Pt{X: w, Y: h}, vector.Pt{Y: h})
	})
	register("rounded", "Rounded Rectangle", "", func(w, h float32) *vector.Path {
		return roundedRectPath(w, h, 0.12*vectorMin(w, h))
	})
	register("squircle", "Squircle", "", func(w, h float32) *vector.Path {
		return roundedRectPath(w, h, 0.3*vectorMin(w, h))
	})
	register("circle", "Circle", "inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		return ellipsePath(0, 0, w, h)
	})
	register("oval", "Oval", "", func(w, h float32) *vector.Path {
		return ellipsePath(0, 0, w, h)
	})
	register("egg", "Egg", "wider at the bottom; vertically asymmetric", func(w, h float32) *vector.Path {
		cx := w / 2
		p := &vector.Path{}
		p.MoveTo(cx, 0)
		p.CubicTo(0.85*w, 0, w, 0.45*h, w, 0.65*h)
		p.CubicTo(w, 0.9*h, 0.75*w, h, cx, h)
		p.CubicTo(0.25*w, h, 0, 0.9*h, 0, 0.65*h)
		p.CubicTo(0, 0.45*h, 0.15*w, 0, cx, 0)
		p.Close()
		return p
	})
	register("diamond", "Diamond", "", func(w, h float32) *vector.Path {
		return polygon(vector.Pt{X: w / 2}, vector.Pt{X: w, Y: h / 2}, vector.Pt{X: w / 2, Y: h}, vector.Pt{Y: h / 2})
	})
	register("triangle", "Triangle", "", func(w, h float32) *vector.Path {
		return polygon(vector.Pt{X: w / 2}, vector.Pt{X: w, Y: h}, vector.Pt{Y: h})
	})
	register("pentagon", "Pentagon", "stretched along the longer axis", func(w, h float32) *vector.Path {
		return regular(5, w, h)
	})
	register("hexagon", "Hexagon", "stretched along the longer axis", func(w, h float32) *vector.Path {
		return regular(6, w, h)
	})
	register("octagon", "Octagon", "stretched along the longer axis", func(w, h float32) *vector.Path {
		return regular(8, w, h)
	})
	register("star", "Star", "points follow the inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		return starPath(5, 0.5, w, h)
	})
	register("star6", "Six-Point Star", "points follow the inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		return starPath(6, 0.58, w, h)
	})
	register("burst", "Starburst", "points follow the inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		return starPath(12, 0.8, w, h)
	})
	register("heart", "Heart", "", func(w, h float32) *vector.Path {
		cx := w / 2
		p := &vector.Path{}
		p.MoveTo(cx, 0.3*h)
		p.CubicTo(0.42*w, 0.05*h, 0.1*w, 0, 0.05*w, 0.22*h)
		p.CubicTo(0, 0.42*h, 0.2*w, 0.62*h, cx, h)
		p.CubicTo(0.8*w, 0.62*h, w, 0.42*h, 0.95*w, 0.22*h)
		p.CubicTo(0.9*w, 0, 0.58*w, 0.05*h, cx, 0.3*h)
		p.Close()
		return p
	})
	register("cloud", "Cloud", "lobes scale with each axis", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0.25*w, 0.9*h)
		p.CubicTo(0.05*w, 0.9*h, 0, 0.7*h, 0.08*w, 0.58*h)
		p.CubicTo(0.02*w, 0.4*h, 0.15*w, 0.22*h, 0.3*w, 0.28*h)
		p.CubicTo(0.35*w, 0.08*h, 0.62*w, 0.05*h, 0.7*w, 0.22*h)
		p.CubicTo(0.88*w, 0.15*h, w, 0.36*h, 0.94*w, 0.52*h)
		p.CubicTo(1.02*w, 0.68*h, 0.92*w, 0.9*h, 0.75*w, 0.9*h)
		p.Close()
		return p
	})
	register("flower", "Flower", "petals follow the inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		// eight petals drawn as alternating quad bulges
		cx, cy := w/2, h/2
		const petals = 8
		p := &vector.Path{}
		for i := 0; i <= petals; i++ {
			a := -math.Pi/2 + 2*math.Pi*float64(i)/petals
			mid := a + math.Pi/petals
			ix := cx + 0.65*cx*float32(math.Cos(a))
			iy := cy + 0.65*cy*float32(math.Sin(a))
			bx := cx + 1.0*cx*float32(math.Cos(mid))
			by := cy + 1.0*cy*float32(math.Sin(mid))
			if i == 0 {
				p.MoveTo(ix, iy)
				continue
			}
			p.QuadTo(bx, by, ix, iy)
		}
		p.Close()
		return p
	})
	register("scallop", "Scalloped Circle", "follows the inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		cx, cy := w/2, h/2
		const lobes = 12
		p := &vector.Path{}
		for i := 0; i <= lobes; i++ {
			a := -math.Pi/2 + 2*math.Pi*float64(i)/lobes
			mid := a - math.Pi/lobes
			ix := cx + 0.92*cx*float32(math.Cos(a))
			iy := cy + 0.92*cy*float32(math.Sin(a))
			bx := cx + 1.06*cx*float32(math.Cos(mid))
			by := cy + 1.06*cy*float32(math.Sin(mid))
			if i == 0 {
				p.MoveTo(ix, iy)
				continue
			}
			p.QuadTo(bx, by, ix, iy)
		}
		p.Close()
		return p
	})
	register("blob", "Blob", "follows the inscribed ellipse when w != h", func(w, h float32) *vector.Path {
		cx, cy := w/2, h/2
		radii := []float32{0.98, 0.82, 0.95, 0.78, 0.99, 0.85, 0.92, 0.8}
		p := &vector.Path{}
		n := len(radii)
		for i := 0; i <= n; i++ {
			f := radii[i%n]
			a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
			mid := a - math.Pi/float64(n)
			fm := (radii[i%n] + radii[(i+n-1)%n]) / 2
			ix := cx + f*cx*float32(math.Cos(a))
			iy := cy + f*cy*float32(math.Sin(a))
			bx := cx + (fm+0.1)*cx*float32(math.Cos(mid))
			by := cy + (fm+0.1)*cy*float32(math.Sin(mid))
			if i == 0 {
				p.MoveTo(ix, iy)
				continue
			}
			p.QuadTo(bx, by, ix, iy)
		}
		p.Close()
		return p
	})
	register("shield", "Shield", "", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0.5*w, 0)
		p.LineTo(w, 0.15*h)
		p.LineTo(w, 0.55*h)
		p.QuadTo(w, 0.85*h, 0.5*w, h)
		p.QuadTo(0, 0.85*h, 0, 0.55*h)
		p.LineTo(0, 0.15*h)
		p.Close()
		return p
	})
	register("arch", "Arch", "", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0, h)
		p.LineTo(0, 0.4*h)
		p.QuadTo(0, 0, 0.5*w, 0)
		p.QuadTo(w, 0, w, 0.4*h)
		p.LineTo(w, h)
		p.Close()
		return p
	})
	register("leaf", "Leaf", "", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0, h)
		p.QuadTo(0, 0.25*h, 0.35*w, 0.08*h)
		p.QuadTo(0.7*w, -0.05*h, w, 0)
		p.QuadTo(w, 0.75*h, 0.65*w, 0.92*h)
		p.QuadTo(0.3*w, 1.05*h, 0, h)
		p.Close()
		return p
	})
	register("lens", "Lens", "", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0, h/2)
		p.QuadTo(0.15*w, 0, 0.5*w, 0)
		p.QuadTo(0.85*w, 0, w, h/2)
		p.QuadTo(0.85*w, h, 0.5*w, h)
		p.QuadTo(0.15*w, h, 0, h/2)
		p.Close()
		return p
	})
	register("ticket", "Ticket", "notch radius follows the shorter edge", func(w, h float32) *vector.Path {
		r := 0.12 * vectorMin(w, h)
		p := &vector.Path{}
		p.MoveTo(0, 0)
		p.LineTo(w, 0)
		p.LineTo(w, h/2-r)
		p.QuadTo(w-2*r, h/2, w, h/2+r)
		p.LineTo(w, h)
		p.LineTo(0, h)
		p.LineTo(0, h/2+r)
		p.QuadTo(2*r, h/2, 0, h/2-r)
		p.Close()
		return p
	})
	register("wave", "Wave Frame", "", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0, 0.08*h)
		p.QuadTo(0.25*w, -0.06*h, 0.5*w, 0.08*h)
		p.QuadTo(0.75*w, 0.2*h, w, 0.08*h)
		p.LineTo(w, 0.92*h)
		p.QuadTo(0.75*w, 1.06*h, 0.5*w, 0.92*h)
		p.QuadTo(0.25*w, 0.8*h, 0, 0.92*h)
		p.Close()
		return p
	})
	register("tv", "Retro TV", "", func(w, h float32) *vector.Path {
		p := &vector.Path{}
		p.MoveTo(0.5*w, 0)
		p.CubicTo(0.9*w, 0, w, 0.1*h, w, 0.5*h)
		p.CubicTo(w, 0.9*h, 0.9*w, h, 0.5*w, h)
		p.CubicTo(0.1*w, h, 0, 0.9*h, 0, 0.5*h)
		p.CubicTo(0, 0.1*h, 0.1*w, 0, 0.5*w, 0)
		p.Close()
		return p
	})
	register("house", "House", "", func(w, h float32) *vector.Path {
		return polygon(
			vector.Pt{X: w / 2},
			vector.Pt{X: w, Y: 0.4 * h},
			vector.Pt{X: w, Y: h},
			vector.Pt{Y: h},
			vector.Pt{Y: 0.4 * h},
		)
	})
}
