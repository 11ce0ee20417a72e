/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model consumed by the page compositor.
// A Book is produced by external collaborators (story, illustration and
// photo pipelines) and handed over once; the compositor never mutates it.

// Book is an ordered, finite sequence of pages with a title.
// It serializes to a human-readable JSON document.
type Book struct {
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// Page is a single book page. Pages are 1-indexed and dense; page identity
// is its index in Book.Pages.
type Page struct {
	Number   int    `json:"page"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// PageCount returns the number of pages.
func (b Book) PageCount() int { return len(b.Pages) }

// PageAt returns the page at the zero-based index and whether it exists.
func (b Book) PageAt(i int) (Page, bool) {
	if i < 0 || i >= len(b.Pages) {
		return Page{}, false
	}
	return b.Pages[i], true
}

// Geometry and color primitives shared across the compositor.

// RectN is an axis-aligned rectangle in normalized page units, i.e. all
// fields are fractions of the page edge lengths. Values may leave [0,1]
// after per-page transforms; the renderer clips at the page border.
type RectN struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CenterX returns the horizontal center of the rectangle.
func (r RectN) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r RectN) CenterY() float64 { return r.Y + r.H/2 }

// ScaledAboutCenter returns the rect scaled by s about its own center.
func (r RectN) ScaledAboutCenter(s float64) RectN {
	w := r.W * s
	h := r.H * s
	return RectN{X: r.CenterX() - w/2, Y: r.CenterY() - h/2, W: w, H: h}
}

// Translated returns the rect moved by (dx, dy).
func (r RectN) Translated(dx, dy float64) RectN {
	return RectN{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB is shorthand for an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// Palette holds the five color roles a template may reference.
type Palette struct {
	Background Color `json:"background"`
	Text       Color `json:"text"`
	Accent     Color `json:"accent"`
	Secondary  Color `json:"secondary"`
	Highlight  Color `json:"highlight"`
}

// ColorRole names a palette slot abstractly so templates can defer the
// concrete color to the active theme.
type ColorRole string

const (
	RoleBackground ColorRole = "background"
	RoleText       ColorRole = "text"
	RoleAccent     ColorRole = "accent"
	RoleSecondary  ColorRole = "secondary"
	RoleHighlight  ColorRole = "highlight"
)

// Resolve maps a role to the concrete palette color. Unknown roles resolve
// to the accent color so a typo in a template never breaks rendering.
func (p Palette) Resolve(role ColorRole) Color {
	switch role {
	case RoleBackground:
		return p.Background
	case RoleText:
		return p.Text
	case RoleAccent:
		return p.Accent
	case RoleSecondary:
		return p.Secondary
	case RoleHighlight:
		return p.Highlight
	default:
		return p.Accent
	}
}
