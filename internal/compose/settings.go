/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package compose holds the customization store for an edit session: the
// selected template, global overrides, the per-page frame/text/crop
// transforms, the view state, and the undo/redo history over all of it.
// The layout resolver that folds this state into a renderable page config
// lives here too, as a pure function.
package compose

import "math"

// Clamp ranges for per-page transforms and view zoom. Out-of-range input
// is clamped silently, never rejected.
const (
	FrameScaleMin = 0.3
	FrameScaleMax = 1.5

	TextScaleMin = 0.5
	TextScaleMax = 2.0

	CropZoomMin = 1.0
	CropZoomMax = 3.0

	CanvasZoomMin = 0.25
	CanvasZoomMax = 3.0
)

// FrameSettings transforms a page's image region: Scale resizes it about
// its center, the offsets translate it, all in normalized page units.
type FrameSettings struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultFrame is the identity transform.
func DefaultFrame() FrameSettings { return FrameSettings{Scale: 1} }

// Clamped returns the settings with the scale forced into its range and
// non-finite offsets zeroed.
func (s FrameSettings) Clamped() FrameSettings {
	return FrameSettings{
		Scale:   clamp(s.Scale, FrameScaleMin, FrameScaleMax),
		OffsetX: finite(s.OffsetX),
		OffsetY: finite(s.OffsetY),
	}
}

// TextSettings transforms a page's text region the same way. A scale other
// than 1 also multiplies the resolved font size.
type TextSettings struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultText is the identity transform.
func DefaultText() TextSettings { return TextSettings{Scale: 1} }

func (s TextSettings) Clamped() TextSettings {
	return TextSettings{
		Scale:   clamp(s.Scale, TextScaleMin, TextScaleMax),
		OffsetX: finite(s.OffsetX),
		OffsetY: finite(s.OffsetY),
	}
}

// CropSettings governs what portion of the illustration is visible inside
// the frame: the image anchor (X, Y) maps to the frame center and the
// image is scaled by Zoom. The defaults show the full image centered.
type CropSettings struct {
	Zoom float64 `json:"cropZoom"`
	X    float64 `json:"cropX"`
	Y    float64 `json:"cropY"`
}

// DefaultCrop is the centered, unzoomed crop.
func DefaultCrop() CropSettings { return CropSettings{Zoom: 1, X: 0.5, Y: 0.5} }

func (s CropSettings) Clamped() CropSettings {
	return CropSettings{
		Zoom: clamp(s.Zoom, CropZoomMin, CropZoomMax),
		X:    clamp(s.X, 0, 1),
		Y:    clamp(s.Y, 0, 1),
	}
}

// Overrides apply uniformly across every page. Zero values mean "use the
// template default"; ShowPageNumbers carries its own explicit flag because
// its default is true.
type Overrides struct {
	FontFamily      string  `json:"fontFamily,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	ColorTheme      string  `json:"colorTheme,omitempty"`
	FrameShape      string  `json:"frameShape,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty"`
	ShowPageNumbers bool    `json:"showPageNumbers"`
}

// DefaultOverrides has no field overridden and page numbers on.
func DefaultOverrides() Overrides { return Overrides{ShowPageNumbers: true} }

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
