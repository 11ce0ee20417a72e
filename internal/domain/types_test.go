/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"testing"
)

func TestBookJSONRoundTrip(t *testing.T) {
	b := Book{
		Title: "The Little Fox",
		Pages: []Page{
			{Number: 1, Text: "Once upon a time.", ImageURL: "https://cdn.example/p1.png"},
			{Number: 2, Text: ""},
		},
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Book
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title != b.Title || got.PageCount() != 2 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if got.Pages[1].ImageURL != "" {
		t.Fatalf("empty imageUrl should stay empty, got %q", got.Pages[1].ImageURL)
	}
}

func TestPageAtBounds(t *testing.T) {
	b := Book{Pages: []Page{{Number: 1}}}
	if _, ok := b.PageAt(0); !ok {
		t.Fatalf("page 0 should exist")
	}
	if _, ok := b.PageAt(-1); ok {
		t.Fatalf("negative index should not exist")
	}
	if _, ok := b.PageAt(1); ok {
		t.Fatalf("index past end should not exist")
	}
}

func TestRectNTransforms(t *testing.T) {
	r := RectN{X: 0.1, Y: 0.2, W: 0.8, H: 0.4}
	s := r.ScaledAboutCenter(0.5)
	if s.W != 0.4 || s.H != 0.2 {
		t.Fatalf("unexpected scaled size: %+v", s)
	}
	if cx, cy := s.CenterX(), s.CenterY(); cx != r.CenterX() || cy != r.CenterY() {
		t.Fatalf("center moved during scale: (%g,%g)", cx, cy)
	}
	m := r.Translated(0.05, -0.05)
	if m.X != 0.15000000000000002 && m.X != 0.15 {
		t.Fatalf("unexpected translate: %+v", m)
	}
	if m.W != r.W || m.H != r.H {
		t.Fatalf("translate changed size: %+v", m)
	}
}

func TestPaletteResolveFallsBackToAccent(t *testing.T) {
	p := Palette{Accent: RGB(1, 2, 3), Text: RGB(9, 9, 9)}
	if c := p.Resolve(RoleText); c != RGB(9, 9, 9) {
		t.Fatalf("text role mismatch: %+v", c)
	}
	if c := p.Resolve(ColorRole("sparkle")); c != p.Accent {
		t.Fatalf("unknown role should resolve to accent, got %+v", c)
	}
}
