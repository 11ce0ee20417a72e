//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
	"storycanvas/internal/vector"
)

func TestPageCanvas_Defaults(t *testing.T) {
	pc := NewPageCanvas()
	if pc.Zoom() != 0.5 {
		t.Fatalf("default zoom: %g", pc.Zoom())
	}
	want := fyne.NewSize(800, 600)
	if pc.PreferredSize() != want {
		t.Fatalf("preferred size: %v", pc.PreferredSize())
	}
	// without a scene, min size falls back to the preferred pane size
	if pc.MinSize() != want {
		t.Fatalf("min size without scene: %v", pc.MinSize())
	}
}

func TestPageCanvas_SetZoomIgnoresNonPositive(t *testing.T) {
	pc := NewPageCanvas()
	pc.SetZoom(0)
	pc.SetZoom(-1)
	if pc.Zoom() != 0.5 {
		t.Fatalf("zoom must not change: %g", pc.Zoom())
	}
	pc.SetZoom(1.25)
	if pc.Zoom() != 1.25 {
		t.Fatalf("zoom: %g", pc.Zoom())
	}
}

func TestPageCanvas_DragLifecycle(t *testing.T) {
	pc := NewPageCanvas()
	var starts, moves, ends int
	pc.OnDragStart = func(vector.Pt) { starts++ }
	pc.OnDrag = func(vector.Pt) { moves++ }
	pc.OnDragEnd = func() { ends++ }

	// DragEnd without a drag is a no-op
	pc.DragEnd()
	if ends != 0 {
		t.Fatalf("spurious drag end")
	}

	ev := func(x, y float32) *fyne.DragEvent {
		return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
	}
	pc.Dragged(ev(10, 10)) // first event starts the gesture
	pc.Dragged(ev(20, 15))
	pc.Dragged(ev(30, 20))
	pc.DragEnd()

	if starts != 1 || moves != 2 || ends != 1 {
		t.Fatalf("lifecycle: starts=%d moves=%d ends=%d", starts, moves, ends)
	}
}

func newABFixture() *compose.Store {
	b := domain.Book{Title: "t"}
	for i := 1; i <= 4; i++ {
		b.Pages = append(b.Pages, domain.Page{Number: i, Text: "words"})
	}
	return compose.NewStore(b, nil, compose.Hooks{})
}

func TestABToggle_EnableWaitsForConfirmation(t *testing.T) {
	store := newABFixture()
	check := widget.NewCheck("A/B pattern", nil)
	var pending func(bool)
	check.OnChanged = abToggleHandler(store, check, func(_ string, cb func(bool)) {
		pending = cb
	}, func() {})

	check.SetChecked(true)
	if store.State().ABPattern {
		t.Fatalf("A/B must not enable before the user confirms")
	}
	if pending == nil {
		t.Fatalf("enabling must ask for confirmation")
	}
	pending(true)
	if !store.State().ABPattern {
		t.Fatalf("confirmed enable must commit")
	}
}

func TestABToggle_CancelRevertsCheckbox(t *testing.T) {
	store := newABFixture()
	check := widget.NewCheck("A/B pattern", nil)
	asked := 0
	check.OnChanged = abToggleHandler(store, check, func(_ string, cb func(bool)) {
		asked++
		cb(false)
	}, func() {})

	check.SetChecked(true)
	if store.State().ABPattern {
		t.Fatalf("cancelled enable must not commit")
	}
	if check.Checked {
		t.Fatalf("checkbox must revert on cancel")
	}
	if asked != 1 {
		t.Fatalf("the revert must not re-ask, asked %d times", asked)
	}
}

func TestABToggle_DisableIsImmediate(t *testing.T) {
	store := newABFixture()
	store.EnableABPattern()
	check := widget.NewCheck("A/B pattern", nil)
	check.SetChecked(true)
	changed := 0
	check.OnChanged = abToggleHandler(store, check, func(_ string, cb func(bool)) {
		t.Fatalf("disabling must not ask")
	}, func() { changed++ })

	check.SetChecked(false)
	if store.State().ABPattern {
		t.Fatalf("disable must commit immediately")
	}
	if changed != 1 {
		t.Fatalf("changed hook must run once, got %d", changed)
	}
}

func TestPageCanvas_ScenePointScalesByDominantAxis(t *testing.T) {
	pc := NewPageCanvas()
	pc.sceneW, pc.sceneH = 576, 576
	pc.Resize(fyne.NewSize(288, 144))

	// height is the constraining axis: 576/144 = 4x
	p := pc.scenePoint(fyne.NewPos(10, 10))
	if p.X != 40 || p.Y != 40 {
		t.Fatalf("scene point: %+v", p)
	}
}
