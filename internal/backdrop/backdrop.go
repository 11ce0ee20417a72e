/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package backdrop provides decorative background overlays: pure functions
// of (w, h, palette) returning primitive nodes. Opacities stay in the
// 0.15–0.5 band so patterns read as backdrops, not foregrounds. Placement
// uses a fixed-seed generator per pattern, so the same inputs always
// produce the same overlay.
package backdrop

import (
	"math"
	"math/rand"
	"sort"

	"storycanvas/internal/domain"
	"storycanvas/internal/shapes"
	"storycanvas/internal/vector"
)

// Func builds the overlay nodes for a page of the given pixel size.
type Func func(w, h float32, pal domain.Palette) []vector.Node

// Pattern is a registry entry.
type Pattern struct {
	ID    string
	Label string
	Fn    Func
}

// None is the id of the empty pattern.
const None = "none"

var registry = map[string]Pattern{}

func register(id, label string, fn Func) {
	registry[id] = Pattern{ID: id, Label: label, Fn: fn}
}

// Get returns the pattern for id; unknown ids resolve to the empty pattern.
func Get(id string) Pattern {
	if p, ok := registry[id]; ok {
		return p
	}
	return registry[None]
}

// IDs returns all pattern ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render is shorthand for Get(id).Fn(w, h, pal).
func Render(id string, w, h float32, pal domain.Palette) []vector.Node {
	return Get(id).Fn(w, h, pal)
}

func vcolor(c domain.Color) vector.Color { return vector.Color{R: c.R, G: c.G, B: c.B, A: c.A} }

// scatter places n shape instances pseudo-randomly with the given seed.
// Each instance alternates between the accent and secondary roles.
func scatter(w, h float32, pal domain.Palette, seed int64, n int, minSize, maxSize float32, shapeID string) []vector.Node {
	rng := rand.New(rand.NewSource(seed))
	nodes := make([]vector.Node, 0, n)
	for i := 0; i < n; i++ {
		size := minSize + rng.Float32()*(maxSize-minSize)
		x := rng.Float32() * (w - size)
		y := rng.Float32() * (h - size)
		col := pal.Accent
		if i%2 == 1 {
			col = pal.Secondary
		}
		p := shapes.Path(shapeID, size, size).Transformed(vector.Translate(x, y))
		node := vector.NewPath(p, vector.SolidFill(vcolor(col)), vector.Stroke{})
		node.SetOpacity(0.15 + rng.Float32()*0.25)
		nodes = append(nodes, node)
	}
	return nodes
}

func init() {
	register(None, "None", func(w, h float32, pal domain.Palette) []vector.Node { return nil })

	register("stars", "Stars", func(w, h float32, pal domain.Palette) []vector.Node {
		return scatter(w, h, pal, 101, 14, 0.03*w, 0.08*w, "star")
	})
	register("hearts", "Hearts", func(w, h float32, pal domain.Palette) []vector.Node {
		return scatter(w, h, pal, 202, 12, 0.03*w, 0.07*w, "heart")
	})
	register("clouds", "Clouds", func(w, h float32, pal domain.Palette) []vector.Node {
		return scatter(w, h, pal, 303, 7, 0.12*w, 0.22*w, "cloud")
	})
	register("sparkles", "Sparkles", func(w, h float32, pal domain.Palette) []vector.Node {
		return scatter(w, h, pal, 404, 18, 0.02*w, 0.05*w, "star6")
	})

	register("dots", "Polka Dots", func(w, h float32, pal domain.Palette) []vector.Node {
		// regular grid with alternating offsets, no randomness needed
		var nodes []vector.Node
		step := w / 8
		r := 0.22 * step
		row := 0
		for y := step / 2; y < h; y += step {
			off := float32(0)
			if row%2 == 1 {
				off = step / 2
			}
			col := 0
			for x := step/2 + off; x < w; x += step {
				c := pal.Accent
				if (row+col)%2 == 1 {
					c = pal.Secondary
				}
				n := vector.NewEllipse(vector.R(x-r, y-r, 2*r, 2*r), vector.SolidFill(vcolor(c)), vector.Stroke{})
				n.SetOpacity(0.2)
				nodes = append(nodes, n)
				col++
			}
			row++
		}
		return nodes
	})

	register("bubbles", "Bubbles", func(w, h float32, pal domain.Palette) []vector.Node {
		rng := rand.New(rand.NewSource(505))
		var nodes []vector.Node
		for i := 0; i < 10; i++ {
			r := (0.03 + rng.Float32()*0.07) * w
			x := rng.Float32() * w
			y := rng.Float32() * h
			n := vector.NewEllipse(vector.R(x-r, y-r, 2*r, 2*r), vector.Fill{}, vector.Stroke{
				Color: vcolor(pal.Accent), Width: 0.006 * w, Enabled: true,
			})
			n.SetOpacity(0.15 + rng.Float32()*0.2)
			nodes = append(nodes, n)
		}
		return nodes
	})

	register("waves", "Waves", func(w, h float32, pal domain.Palette) []vector.Node {
		var nodes []vector.Node
		bands := 4
		for i := 0; i < bands; i++ {
			y := h * (0.2 + 0.2*float32(i))
			amp := 0.03 * h
			p := &vector.Path{}
			p.MoveTo(0, y)
			seg := w / 4
			for x := float32(0); x < w; x += seg {
				p.QuadTo(x+seg/2, y-amp, x+seg, y)
				amp = -amp
			}
			p.LineTo(w, y+0.04*h)
			p.LineTo(0, y+0.04*h)
			p.Close()
			c := pal.Accent
			if i%2 == 1 {
				c = pal.Secondary
			}
			n := vector.NewPath(p, vector.SolidFill(vcolor(c)), vector.Stroke{})
			n.SetOpacity(0.18)
			nodes = append(nodes, n)
		}
		return nodes
	})

	register("confetti", "Confetti", func(w, h float32, pal domain.Palette) []vector.Node {
		rng := rand.New(rand.NewSource(606))
		var nodes []vector.Node
		colors := []domain.Color{pal.Accent, pal.Secondary, pal.Highlight}
		for i := 0; i < 24; i++ {
			sw := (0.015 + rng.Float32()*0.02) * w
			x := rng.Float32() * w
			y := rng.Float32() * h
			n := vector.NewRect(vector.R(0, 0, sw, sw*0.45), vector.SolidFill(vcolor(colors[i%len(colors)])), vector.Stroke{})
			rot := vector.Rotate(rng.Float32() * 2 * math.Pi)
			n.SetTransform(vector.Translate(x, y).Mul(rot))
			n.SetOpacity(0.2 + rng.Float32()*0.25)
			nodes = append(nodes, n)
		}
		return nodes
	})

	register("rainbow", "Rainbow Arcs", func(w, h float32, pal domain.Palette) []vector.Node {
		var nodes []vector.Node
		colors := []domain.Color{pal.Accent, pal.Secondary, pal.Highlight}
		for i, c := range colors {
			rx := (0.55 + 0.12*float32(i)) * w / 2
			ry := (0.55 + 0.12*float32(i)) * h / 2
			p := &vector.Path{}
			p.MoveTo(w/2-rx, h)
			p.QuadTo(w/2, h-2*ry, w/2+rx, h)
			n := vector.NewPath(p, vector.Fill{}, vector.Stroke{Color: vcolor(c), Width: 0.02 * w, Enabled: true})
			n.SetOpacity(0.25)
			nodes = append(nodes, n)
		}
		return nodes
	})

	register("zigzag", "Zigzag", func(w, h float32, pal domain.Palette) []vector.Node {
		var nodes []vector.Node
		rows := 5
		for i := 0; i < rows; i++ {
			y := h * float32(i+1) / float32(rows+1)
			p := &vector.Path{}
			p.MoveTo(0, y)
			seg := w / 10
			up := true
			for x := float32(0); x < w; x += seg {
				ny := y - 0.02*h
				if !up {
					ny = y + 0.02*h
				}
				p.LineTo(x+seg/2, ny)
				p.LineTo(x+seg, y)
				up = !up
			}
			n := vector.NewPath(p, vector.Fill{}, vector.Stroke{Color: vcolor(pal.Secondary), Width: 0.004 * w, Enabled: true})
			n.SetOpacity(0.3)
			nodes = append(nodes, n)
		}
		return nodes
	})
}
