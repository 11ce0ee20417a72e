/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package template holds the immutable page-layout templates, the color
// themes, the font catalog and the page-size set. Registries fall back to
// designated defaults for unknown ids; lookups never fail.
package template

import (
	"sort"

	"storycanvas/internal/domain"
)

type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

type VAlign string

const (
	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "center"
	AlignBottom VAlign = "bottom"
)

// Border decorates the frame outline. Color is a palette role resolved at
// layout time.
type Border struct {
	Width float64
	Color domain.ColorRole
}

// TextBackground fills a rounded rect behind the text block.
type TextBackground struct {
	Color        domain.ColorRole
	CornerRadius float64 // px
	Padding      float64 // px
}

// Typography carries the template's type defaults.
type Typography struct {
	FontFamily string  // font catalog id
	FontSize   float64 // base size in px
	LineHeight float64 // ratio
	Weight     int     // 100..900
}

// Effects are the optional visual flags a template may switch on.
type Effects struct {
	PageShadow  bool
	ImageShadow bool
	TextShadow  bool
	Glow        bool
}

// Template is an immutable named default layout. Regions are normalized
// rectangles in [0,1]².
type Template struct {
	ID           string
	Label        string
	ImageRegion  domain.RectN
	FrameShape   string
	ImagePadding float64 // fraction of the image region
	Border       *Border
	TextRegion   domain.RectN
	HAlign       HAlign
	VAlign       VAlign
	TextBG       *TextBackground
	Typography   Typography
	ThemeID      string
	Pattern      string
	Effects      Effects
}

// Clone returns a deep copy; the registry hands out copies so callers can
// never mutate the registered records.
func (t Template) Clone() Template {
	c := t
	if t.Border != nil {
		b := *t.Border
		c.Border = &b
	}
	if t.TextBG != nil {
		bg := *t.TextBG
		c.TextBG = &bg
	}
	return c
}

// DefaultID is the fallback template for unknown ids.
const DefaultID = "classic"

// DefaultThemeID is the fallback color theme.
const DefaultThemeID = "sunny"

// DefaultFontID is the fallback font family.
const DefaultFontID = "rounded"

var templates = map[string]Template{}

func registerTemplate(t Template) { templates[t.ID] = t }

// Get returns a deep copy of the template for id, falling back to the
// default template for unknown ids.
func Get(id string) Template {
	if t, ok := templates[id]; ok {
		return t.Clone()
	}
	return templates[DefaultID].Clone()
}

// Known reports whether id names a registered template.
func Known(id string) bool { _, ok := templates[id]; return ok }

// IDs returns all template ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Color themes.

var themes = map[string]domain.Palette{
	"sunny": {
		Background: domain.RGB(255, 249, 240),
		Text:       domain.RGB(61, 49, 43),
		Accent:     domain.RGB(255, 159, 67),
		Secondary:  domain.RGB(84, 160, 255),
		Highlight:  domain.RGB(254, 211, 48),
	},
	"ocean": {
		Background: domain.RGB(235, 248, 255),
		Text:       domain.RGB(27, 53, 81),
		Accent:     domain.RGB(56, 173, 169),
		Secondary:  domain.RGB(96, 125, 199),
		Highlight:  domain.RGB(196, 233, 214),
	},
	"forest": {
		Background: domain.RGB(243, 250, 239),
		Text:       domain.RGB(44, 62, 45),
		Accent:     domain.RGB(106, 153, 78),
		Secondary:  domain.RGB(188, 108, 37),
		Highlight:  domain.RGB(233, 196, 106),
	},
	"berry": {
		Background: domain.RGB(253, 242, 248),
		Text:       domain.RGB(80, 42, 66),
		Accent:     domain.RGB(214, 93, 151),
		Secondary:  domain.RGB(140, 100, 180),
		Highlight:  domain.RGB(255, 196, 228),
	},
	"midnight": {
		Background: domain.RGB(36, 41, 66),
		Text:       domain.RGB(240, 240, 250),
		Accent:     domain.RGB(130, 160, 255),
		Secondary:  domain.RGB(255, 180, 120),
		Highlight:  domain.RGB(255, 230, 150),
	},
	"pastel": {
		Background: domain.RGB(250, 246, 255),
		Text:       domain.RGB(74, 68, 88),
		Accent:     domain.RGB(183, 156, 237),
		Secondary:  domain.RGB(255, 183, 178),
		Highlight:  domain.RGB(181, 234, 215),
	},
}

// Theme returns the palette for id, falling back to the default theme.
func Theme(id string) domain.Palette {
	if p, ok := themes[id]; ok {
		return p
	}
	return themes[DefaultThemeID]
}

// KnownTheme reports whether id names a registered theme.
func KnownTheme(id string) bool { _, ok := themes[id]; return ok }

// ThemeIDs returns all theme ids, sorted.
func ThemeIDs() []string {
	ids := make([]string, 0, len(themes))
	for id := range themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Font catalog. CSS carries the SVG family string; PDFName maps to a
// built-in base-14 face for the PDF exporter.
type Font struct {
	ID      string
	Label   string
	CSS     string
	PDFName string
}

var fonts = map[string]Font{
	"rounded": {ID: "rounded", Label: "Rounded", CSS: "'Quicksand', 'Comic Sans MS', sans-serif", PDFName: "Helvetica"},
	"serif":   {ID: "serif", Label: "Storybook Serif", CSS: "'Georgia', 'Times New Roman', serif", PDFName: "Times"},
	"hand":    {ID: "hand", Label: "Handwritten", CSS: "'Patrick Hand', 'Comic Sans MS', cursive", PDFName: "Helvetica"},
	"clean":   {ID: "clean", Label: "Clean", CSS: "'Nunito', 'Arial', sans-serif", PDFName: "Helvetica"},
	"typeset": {ID: "typeset", Label: "Typeset", CSS: "'Lora', 'Georgia', serif", PDFName: "Times"},
	"playful": {ID: "playful", Label: "Playful", CSS: "'Baloo 2', 'Comic Sans MS', cursive", PDFName: "Helvetica"},
}

// FontByID returns the font for id, falling back to the default font.
func FontByID(id string) Font {
	if f, ok := fonts[id]; ok {
		return f
	}
	return fonts[DefaultFontID]
}

// FontIDs returns all font ids, sorted.
func FontIDs() []string {
	ids := make([]string, 0, len(fonts))
	for id := range fonts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Page sizes. The rendered scene uses fixed pixel dimensions from a closed
// set of trim sizes at 72 dpi.
type PageSize struct {
	ID   string
	W, H float64 // px at 72 dpi
}

// DefaultPageSizeID is the initial page size.
const DefaultPageSizeID = "8x8"

var pageSizes = map[string]PageSize{
	"7x7":    {ID: "7x7", W: 504, H: 504},
	"8x8":    {ID: "8x8", W: 576, H: 576},
	"10x10":  {ID: "10x10", W: 720, H: 720},
	"7x9":    {ID: "7x9", W: 504, H: 648},
	"10x7":   {ID: "10x7", W: 720, H: 504},
	"8.5x11": {ID: "8.5x11", W: 612, H: 792},
}

// Size returns the page size for id, falling back to the default size.
func Size(id string) PageSize {
	if s, ok := pageSizes[id]; ok {
		return s
	}
	return pageSizes[DefaultPageSizeID]
}

// SizeIDs returns all page size ids, sorted.
func SizeIDs() []string {
	ids := make([]string, 0, len(pageSizes))
	for id := range pageSizes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	registerTemplate(Template{
		ID:           "classic",
		Label:        "Classic",
		ImageRegion:  domain.RectN{X: 0.1, Y: 0.08, W: 0.8, H: 0.55},
		FrameShape:   "rounded",
		ImagePadding: 0.02,
		Border:       &Border{Width: 4, Color: domain.RoleAccent},
		TextRegion:   domain.RectN{X: 0.12, Y: 0.68, W: 0.76, H: 0.24},
		HAlign:       AlignCenter,
		VAlign:       AlignTop,
		Typography:   Typography{FontFamily: "rounded", FontSize: 22, LineHeight: 1.45, Weight: 500},
		ThemeID:      "sunny",
		Pattern:      "dots",
		Effects:      Effects{PageShadow: true, ImageShadow: true},
	})
	registerTemplate(Template{
		ID:          "storybook",
		Label:       "Storybook",
		ImageRegion: domain.RectN{X: 0.08, Y: 0.06, W: 0.84, H: 0.6},
		FrameShape:  "arch",
		TextRegion:  domain.RectN{X: 0.14, Y: 0.7, W: 0.72, H: 0.22},
		HAlign:      AlignCenter,
		VAlign:      AlignMiddle,
		TextBG:      &TextBackground{Color: domain.RoleHighlight, CornerRadius: 14, Padding: 12},
		Typography:  Typography{FontFamily: "serif", FontSize: 20, LineHeight: 1.5, Weight: 400},
		ThemeID:     "forest",
		Pattern:     "none",
		Effects:     Effects{PageShadow: true},
	})
	registerTemplate(Template{
		ID:           "playful",
		Label:        "Playful",
		ImageRegion:  domain.RectN{X: 0.14, Y: 0.1, W: 0.72, H: 0.52},
		FrameShape:   "blob",
		ImagePadding: 0.01,
		TextRegion:   domain.RectN{X: 0.1, Y: 0.66, W: 0.8, H: 0.26},
		HAlign:       AlignCenter,
		VAlign:       AlignTop,
		Typography:   Typography{FontFamily: "playful", FontSize: 24, LineHeight: 1.4, Weight: 600},
		ThemeID:      "sunny",
		Pattern:      "confetti",
		Effects:      Effects{ImageShadow: true, Glow: true},
	})
	registerTemplate(Template{
		ID:          "dreamy",
		Label:       "Dreamy",
		ImageRegion: domain.RectN{X: 0.15, Y: 0.08, W: 0.7, H: 0.5},
		FrameShape:  "cloud",
		TextRegion:  domain.RectN{X: 0.12, Y: 0.64, W: 0.76, H: 0.28},
		HAlign:      AlignCenter,
		VAlign:      AlignMiddle,
		Typography:  Typography{FontFamily: "hand", FontSize: 22, LineHeight: 1.55, Weight: 400},
		ThemeID:     "pastel",
		Pattern:     "stars",
		Effects:     Effects{TextShadow: true},
	})
	registerTemplate(Template{
		ID:           "portrait",
		Label:        "Portrait",
		ImageRegion:  domain.RectN{X: 0.2, Y: 0.06, W: 0.6, H: 0.58},
		FrameShape:   "oval",
		ImagePadding: 0.03,
		Border:       &Border{Width: 6, Color: domain.RoleSecondary},
		TextRegion:   domain.RectN{X: 0.15, Y: 0.7, W: 0.7, H: 0.22},
		HAlign:       AlignCenter,
		VAlign:       AlignTop,
		Typography:   Typography{FontFamily: "typeset", FontSize: 19, LineHeight: 1.5, Weight: 400},
		ThemeID:      "berry",
		Pattern:      "sparkles",
		Effects:      Effects{PageShadow: true, ImageShadow: true},
	})
	registerTemplate(Template{
		ID:          "adventure",
		Label:       "Adventure",
		ImageRegion: domain.RectN{X: 0.06, Y: 0.05, W: 0.88, H: 0.62},
		FrameShape:  "ticket",
		Border:      &Border{Width: 3, Color: domain.RoleText},
		TextRegion:  domain.RectN{X: 0.1, Y: 0.72, W: 0.8, H: 0.2},
		HAlign:      AlignLeft,
		VAlign:      AlignTop,
		Typography:  Typography{FontFamily: "clean", FontSize: 20, LineHeight: 1.4, Weight: 500},
		ThemeID:     "ocean",
		Pattern:     "waves",
		Effects:     Effects{},
	})
	registerTemplate(Template{
		ID:          "bedtime",
		Label:       "Bedtime",
		ImageRegion: domain.RectN{X: 0.12, Y: 0.1, W: 0.76, H: 0.5},
		FrameShape:  "scallop",
		TextRegion:  domain.RectN{X: 0.14, Y: 0.66, W: 0.72, H: 0.26},
		HAlign:      AlignCenter,
		VAlign:      AlignMiddle,
		TextBG:      &TextBackground{Color: domain.RoleSecondary, CornerRadius: 10, Padding: 10},
		Typography:  Typography{FontFamily: "hand", FontSize: 21, LineHeight: 1.6, Weight: 400},
		ThemeID:     "midnight",
		Pattern:     "stars",
		Effects:     Effects{TextShadow: true, Glow: true},
	})
	registerTemplate(Template{
		ID:          "gallery",
		Label:       "Gallery",
		ImageRegion: domain.RectN{X: 0.05, Y: 0.05, W: 0.9, H: 0.68},
		FrameShape:  "rectangle",
		Border:      &Border{Width: 8, Color: domain.RoleHighlight},
		TextRegion:  domain.RectN{X: 0.1, Y: 0.78, W: 0.8, H: 0.16},
		HAlign:      AlignCenter,
		VAlign:      AlignTop,
		Typography:  Typography{FontFamily: "typeset", FontSize: 18, LineHeight: 1.35, Weight: 400},
		ThemeID:     "forest",
		Pattern:     "none",
		Effects:     Effects{PageShadow: true, ImageShadow: true},
	})
}
