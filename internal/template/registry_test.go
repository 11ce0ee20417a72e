/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package template

import (
	"testing"

	"storycanvas/internal/shapes"
)

func TestUnknownTemplateFallsBack(t *testing.T) {
	got := Get("does-not-exist")
	if got.ID != DefaultID {
		t.Fatalf("expected default template, got %q", got.ID)
	}
}

func TestGetReturnsDeepCopy(t *testing.T) {
	a := Get("classic")
	if a.Border == nil {
		t.Fatalf("classic should carry a border")
	}
	a.Border.Width = 999
	a.ImageRegion.X = 0.5
	b := Get("classic")
	if b.Border.Width == 999 || b.ImageRegion.X == 0.5 {
		t.Fatalf("registry record was mutated through a copy")
	}
}

func TestTemplatesReferenceKnownResources(t *testing.T) {
	for _, id := range IDs() {
		tpl := Get(id)
		if !shapes.Known(tpl.FrameShape) {
			t.Fatalf("%s: unknown frame shape %q", id, tpl.FrameShape)
		}
		if !KnownTheme(tpl.ThemeID) {
			t.Fatalf("%s: unknown theme %q", id, tpl.ThemeID)
		}
		if tpl.Typography.FontSize <= 0 || tpl.Typography.LineHeight <= 0 {
			t.Fatalf("%s: bad typography %+v", id, tpl.Typography)
		}
		for _, r := range []struct{ x, y, w, h float64 }{
			{tpl.ImageRegion.X, tpl.ImageRegion.Y, tpl.ImageRegion.W, tpl.ImageRegion.H},
			{tpl.TextRegion.X, tpl.TextRegion.Y, tpl.TextRegion.W, tpl.TextRegion.H},
		} {
			if r.x < 0 || r.y < 0 || r.x+r.w > 1 || r.y+r.h > 1 || r.w <= 0 || r.h <= 0 {
				t.Fatalf("%s: region outside unit square: %+v", id, r)
			}
		}
	}
}

func TestThemeFallback(t *testing.T) {
	def := Theme(DefaultThemeID)
	if got := Theme("neon-lizard"); got != def {
		t.Fatalf("unknown theme should fall back to default")
	}
}

func TestPageSizesClosedSet(t *testing.T) {
	want := map[string][2]float64{
		"7x7":    {504, 504},
		"8x8":    {576, 576},
		"10x10":  {720, 720},
		"7x9":    {504, 648},
		"10x7":   {720, 504},
		"8.5x11": {612, 792},
	}
	ids := SizeIDs()
	if len(ids) != len(want) {
		t.Fatalf("unexpected page size count: %v", ids)
	}
	for id, wh := range want {
		s := Size(id)
		if s.W != wh[0] || s.H != wh[1] {
			t.Fatalf("%s: got %gx%g, want %gx%g", id, s.W, s.H, wh[0], wh[1])
		}
	}
	if s := Size("a4"); s.ID != DefaultPageSizeID {
		t.Fatalf("unknown size should fall back to %s, got %s", DefaultPageSizeID, s.ID)
	}
}

func TestFontFallback(t *testing.T) {
	if f := FontByID("wingdings"); f.ID != DefaultFontID {
		t.Fatalf("unknown font should fall back to %s, got %s", DefaultFontID, f.ID)
	}
}
