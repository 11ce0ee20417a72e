/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Measurement against a concrete font face. The renderer works entirely on
// the character-count estimate above; the raster exporter and list views
// need real pixel advances, which go through Provider so tests stay
// deterministic.

import (
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string
	SizePx float32
	Weight int // 100..900
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is ascent plus descent plus the face's line gap.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 regardless of the spec.
// It is the default face for raster export and tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Measure returns the pixel width of s and the line height of the face.
func Measure(provider Provider, spec FontSpec, s string) (w, lineH float32) {
	if provider == nil {
		provider = BasicProvider{}
	}
	face, met := provider.Resolve(spec)
	d := &font.Drawer{Face: face}
	return float32(d.MeasureString(s) >> 6), met.Ascent + met.Descent
}

// Excerpt shortens s to at most maxChars characters for list rows, cutting
// on a word boundary and appending an ellipsis when anything was dropped.
func Excerpt(s string, maxChars int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxChars < 1 || len(s) <= maxChars {
		return s
	}
	cut := maxChars
	for cut > 0 && !unicode.IsSpace(rune(s[cut])) {
		cut--
	}
	if cut == 0 {
		cut = maxChars
	}
	return strings.TrimRight(s[:cut], " ") + "…"
}
