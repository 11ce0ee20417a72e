/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package compose

import (
	"storycanvas/internal/domain"
	"storycanvas/internal/shapes"
	"storycanvas/internal/template"
)

// ResolvedBorder is a frame border with its palette role substituted.
type ResolvedBorder struct {
	Width float64
	Color domain.Color
}

// ResolvedTextBG is a text-block background with a concrete color.
type ResolvedTextBG struct {
	Color        domain.Color
	CornerRadius float64
	Padding      float64
}

// ResolvedPage is everything the renderer needs to draw one page: the
// template folded together with the global overrides and the page's own
// transforms, with all color roles replaced by concrete palette colors.
type ResolvedPage struct {
	TemplateID   string
	ImageRegion  domain.RectN
	FrameShape   string
	ImagePadding float64
	Border       *ResolvedBorder

	TextRegion domain.RectN
	HAlign     template.HAlign
	VAlign     template.VAlign
	TextBG     *ResolvedTextBG
	Font       template.Font
	FontSizePx float64 // base size x global override x text scale
	LineHeight float64
	FontWeight int

	Palette         domain.Palette
	Pattern         string
	Effects         template.Effects
	Crop            CropSettings
	ShowPageNumbers bool
}

// Resolve folds (template, global overrides, per-page transforms) into a
// renderable page config. It is pure and deterministic: equal inputs give
// equal outputs, which view-mode re-renders and thumbnails rely on.
func Resolve(templateID string, ov Overrides, frame FrameSettings, text TextSettings, crop CropSettings) ResolvedPage {
	tpl := template.Get(templateID)

	if ov.FrameShape != "" && shapes.Known(ov.FrameShape) {
		tpl.FrameShape = ov.FrameShape
	}
	if ov.ColorTheme != "" && template.KnownTheme(ov.ColorTheme) {
		tpl.ThemeID = ov.ColorTheme
	}
	if ov.FontFamily != "" {
		tpl.Typography.FontFamily = ov.FontFamily
	}
	if ov.FontSize > 0 {
		tpl.Typography.FontSize = ov.FontSize
	}
	switch template.HAlign(ov.TextAlign) {
	case template.AlignLeft, template.AlignCenter, template.AlignRight:
		tpl.HAlign = template.HAlign(ov.TextAlign)
	}

	pal := template.Theme(tpl.ThemeID)

	frame = frame.Clamped()
	text = text.Clamped()
	crop = crop.Clamped()

	rp := ResolvedPage{
		TemplateID:      tpl.ID,
		ImageRegion:     tpl.ImageRegion.ScaledAboutCenter(frame.Scale).Translated(frame.OffsetX, frame.OffsetY),
		FrameShape:      tpl.FrameShape,
		ImagePadding:    tpl.ImagePadding,
		TextRegion:      tpl.TextRegion.ScaledAboutCenter(text.Scale).Translated(text.OffsetX, text.OffsetY),
		HAlign:          tpl.HAlign,
		VAlign:          tpl.VAlign,
		Font:            template.FontByID(tpl.Typography.FontFamily),
		FontSizePx:      tpl.Typography.FontSize * text.Scale,
		LineHeight:      tpl.Typography.LineHeight,
		FontWeight:      tpl.Typography.Weight,
		Palette:         pal,
		Pattern:         tpl.Pattern,
		Effects:         tpl.Effects,
		Crop:            crop,
		ShowPageNumbers: ov.ShowPageNumbers,
	}
	if tpl.Border != nil {
		rp.Border = &ResolvedBorder{Width: tpl.Border.Width, Color: pal.Resolve(tpl.Border.Color)}
	}
	if tpl.TextBG != nil {
		rp.TextBG = &ResolvedTextBG{
			Color:        pal.Resolve(tpl.TextBG.Color),
			CornerRadius: tpl.TextBG.CornerRadius,
			Padding:      tpl.TextBG.Padding,
		}
	}
	return rp
}
