/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor implements the edit surface: the selection overlay and
// the pointer state machine that turns drags, resizes and crop gestures
// into guarded store writes. All pointer coordinates are page-preview
// pixels; the divisors below translate mouse travel into the slow,
// precise movement of normalized page units.
package editor

import (
	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
	"storycanvas/internal/render"
	"storycanvas/internal/vector"
)

const (
	dragDivisor   = 500
	resizeDivisor = 200
	cropDivisor   = 150

	// SnapMargin is the safe margin the snap buttons keep to page edges,
	// as a fraction of the page edge length.
	SnapMargin = 0.03
)

// Handle names a corner resize handle.
type Handle string

const (
	HandleNW Handle = "nw"
	HandleNE Handle = "ne"
	HandleSW Handle = "sw"
	HandleSE Handle = "se"
)

// Phase is the surface state.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSelected Phase = "selected"
	PhaseDragging Phase = "dragging"
	PhaseResizing Phase = "resizing"
	PhaseCropping Phase = "cropping"
)

// Surface drives one page's edit interactions against the store.
type Surface struct {
	store *compose.Store

	// GuideThreshold is the pixel distance at which alignment guides
	// light up during a drag. Guides are visual; they never change the
	// drag math.
	GuideThreshold float32

	phase       Phase
	cropActive  bool
	handle      Handle
	cropZooming bool

	startPage  int
	startPt    vector.Pt
	startFrame compose.FrameSettings
	startText  compose.TextSettings
	startCrop  compose.CropSettings

	overlay vector.Rect
	guides  []vector.GuideLine
}

func NewSurface(store *compose.Store) *Surface {
	return &Surface{store: store, GuideThreshold: 6, phase: PhaseIdle}
}

// Phase reports the current state; both crop sub-gestures read as
// cropping.
func (s *Surface) Phase() Phase { return s.phase }

// CropActive reports whether crop mode is toggled on.
func (s *Surface) CropActive() bool { return s.cropActive }

// Guides returns the alignment guides of the in-flight drag.
func (s *Surface) Guides() []vector.GuideLine { return s.guides }

// SelectImage selects the image element of the current page.
func (s *Surface) SelectImage() {
	s.store.Select(compose.ElementImage)
	s.phase = PhaseSelected
	s.cropActive = false
	s.Refresh()
}

// SelectText selects the text element of the current page. Crop mode only
// applies to images, so it drops.
func (s *Surface) SelectText() {
	s.store.Select(compose.ElementText)
	s.phase = PhaseSelected
	s.cropActive = false
	s.Refresh()
}

// ToggleCrop flips crop mode. Only valid while an image is selected.
func (s *Surface) ToggleCrop() {
	if s.store.State().Selected != compose.ElementImage {
		return
	}
	s.cropActive = !s.cropActive
	s.Refresh()
}

// Escape cancels the selection and the toolbar. A gesture in flight
// commits normally; its snapshot was taken at pointer down and is kept.
func (s *Surface) Escape() {
	if s.gestureInFlight() {
		s.store.EndGesture()
	}
	s.store.ClearSelection()
	s.phase = PhaseIdle
	s.cropActive = false
	s.guides = nil
}

// BackgroundClick behaves like Escape.
func (s *Surface) BackgroundClick() { s.Escape() }

func (s *Surface) gestureInFlight() bool {
	return s.phase == PhaseDragging || s.phase == PhaseResizing || s.phase == PhaseCropping
}

// StartDrag begins a move gesture at the pointer position. The history
// snapshot is taken here, at pointer down, never at pointer up.
func (s *Surface) StartDrag(p vector.Pt) {
	if s.phase != PhaseSelected {
		return
	}
	s.beginGesture(p)
	if s.cropActive {
		s.phase = PhaseCropping
		s.cropZooming = false
		return
	}
	s.phase = PhaseDragging
}

// StartResize begins a resize gesture on the given corner handle. In crop
// mode the handles drive the crop zoom instead of the element scale.
func (s *Surface) StartResize(h Handle, p vector.Pt) {
	if s.phase != PhaseSelected {
		return
	}
	s.beginGesture(p)
	s.handle = h
	if s.cropActive {
		s.phase = PhaseCropping
		s.cropZooming = true
		return
	}
	s.phase = PhaseResizing
}

func (s *Surface) beginGesture(p vector.Pt) {
	st := s.store.State()
	s.startPage = st.CurrentPage
	s.startPt = p
	s.startFrame = s.store.Frame(st.CurrentPage)
	s.startText = s.store.Text(st.CurrentPage)
	s.startCrop = s.store.Crop(st.CurrentPage)
	s.store.BeginGesture()
}

// Move advances the in-flight gesture to the pointer position. The store
// clamps; motion beyond a clamp boundary saturates there and never
// rewinds the starting value.
func (s *Surface) Move(p vector.Pt) {
	dx := float64(p.X - s.startPt.X)
	dy := float64(p.Y - s.startPt.Y)

	switch s.phase {
	case PhaseDragging:
		s.applyDrag(dx, dy)
	case PhaseResizing:
		s.applyResize(dx, dy)
	case PhaseCropping:
		if s.cropZooming {
			s.applyCropZoom(dx, dy)
		} else {
			s.applyCropPan(dx, dy)
		}
	default:
		return
	}
	s.Refresh()
}

// PointerUp commits the gesture and returns to the selected state.
func (s *Surface) PointerUp() {
	if !s.gestureInFlight() {
		return
	}
	s.store.EndGesture()
	s.phase = PhaseSelected
	s.guides = nil
	s.Refresh()
}

func (s *Surface) applyDrag(dx, dy float64) {
	switch s.store.State().Selected {
	case compose.ElementImage:
		f := s.startFrame
		f.OffsetX += dx / dragDivisor
		f.OffsetY += dy / dragDivisor
		s.store.SetFrame(s.startPage, f)
	case compose.ElementText:
		t := s.startText
		t.OffsetX += dx / dragDivisor
		t.OffsetY += dy / dragDivisor
		s.store.SetText(s.startPage, t)
	}
}

// applyResize folds both axis deltas into one scalar. Resizing is
// symmetric about the element center; the sign flips depend on the
// grabbed handle so that dragging outward always grows the element.
func (s *Surface) applyResize(dx, dy float64) {
	delta := combineHandleDelta(s.handle, dx, dy) / resizeDivisor
	switch s.store.State().Selected {
	case compose.ElementImage:
		f := s.startFrame
		f.Scale = s.startFrame.Scale + delta
		s.store.SetFrame(s.startPage, f)
	case compose.ElementText:
		t := s.startText
		t.Scale = s.startText.Scale + delta
		s.store.SetText(s.startPage, t)
	}
}

// applyCropPan moves the crop anchor against the pointer: the image moves
// opposite to the anchor, hence the inverted sign.
func (s *Surface) applyCropPan(dx, dy float64) {
	c := s.startCrop
	c.X = s.startCrop.X - dx/cropDivisor
	c.Y = s.startCrop.Y - dy/cropDivisor
	s.store.SetCrop(s.startPage, c)
}

func (s *Surface) applyCropZoom(dx, dy float64) {
	c := s.startCrop
	c.Zoom = s.startCrop.Zoom + combineHandleDelta(s.handle, dx, dy)/resizeDivisor
	s.store.SetCrop(s.startPage, c)
}

func combineHandleDelta(h Handle, dx, dy float64) float64 {
	switch h {
	case HandleNW:
		return -dx - dy
	case HandleNE:
		return dx - dy
	case HandleSW:
		return -dx + dy
	default: // se
		return dx + dy
	}
}

// Snap actions. Each is one undoable action and uses the element's
// current scale, so the element stays flush after it has been resized.

func (s *Surface) SnapLeft()    { s.snap(alongX, func(r domain.RectN) float64 { return SnapMargin - r.X }) }
func (s *Surface) SnapRight()   { s.snap(alongX, func(r domain.RectN) float64 { return 1 - SnapMargin - (r.X + r.W) }) }
func (s *Surface) SnapCenterX() { s.snap(alongX, func(r domain.RectN) float64 { return 0.5 - r.CenterX() }) }
func (s *Surface) SnapTop()     { s.snap(alongY, func(r domain.RectN) float64 { return SnapMargin - r.Y }) }
func (s *Surface) SnapBottom()  { s.snap(alongY, func(r domain.RectN) float64 { return 1 - SnapMargin - (r.Y + r.H) }) }
func (s *Surface) SnapCenterY() { s.snap(alongY, func(r domain.RectN) float64 { return 0.5 - r.CenterY() }) }

type snapAxis uint8

const (
	alongX snapAxis = iota
	alongY
)

// snap computes the offset that places the current element flush against
// the requested edge. The base is the template region scaled about its
// center by the current per-page scale, with the old offset removed.
func (s *Surface) snap(axis snapAxis, target func(domain.RectN) float64) {
	st := s.store.State()
	i := st.CurrentPage
	rp := s.store.Resolve(i)

	switch st.Selected {
	case compose.ElementImage:
		f := s.store.Frame(i)
		base := rp.ImageRegion.Translated(-f.OffsetX, -f.OffsetY)
		if axis == alongX {
			f.OffsetX = target(base)
		} else {
			f.OffsetY = target(base)
		}
		s.store.SetFrame(i, f)
	case compose.ElementText:
		t := s.store.Text(i)
		base := rp.TextRegion.Translated(-t.OffsetX, -t.OffsetY)
		if axis == alongX {
			t.OffsetX = target(base)
		} else {
			t.OffsetY = target(base)
		}
		s.store.SetText(i, t)
	}
	s.Refresh()
}

// ApplyToAll copies the selected element's settings to every page.
func (s *Surface) ApplyToAll() {
	st := s.store.State()
	switch st.Selected {
	case compose.ElementImage:
		s.store.ApplyFrameToAll(st.CurrentPage)
	case compose.ElementText:
		s.store.ApplyTextToAll(st.CurrentPage)
	}
}

// Reset returns the current page to the identity transform.
func (s *Surface) Reset() {
	s.store.ResetPage(s.store.State().CurrentPage)
	s.Refresh()
}

// Overlay returns the selection overlay rectangle in page pixels, as of
// the last Refresh.
func (s *Surface) Overlay() vector.Rect { return s.overlay }

// Refresh re-measures the selection overlay against the freshly resolved
// element and recomputes the drag guides. It never opens a history
// snapshot; it runs after every render caused by an edit so the overlay
// cannot drift away from the element.
func (s *Surface) Refresh() {
	st := s.store.State()
	if st.Selected == compose.ElementNone {
		s.overlay = vector.Rect{}
		s.guides = nil
		return
	}
	size := s.store.PageSize()
	rp := s.store.Resolve(st.CurrentPage)

	var moving, sibling vector.Rect
	if st.Selected == compose.ElementImage {
		moving = render.RegionRect(rp.ImageRegion, size.W, size.H)
		sibling = render.RegionRect(rp.TextRegion, size.W, size.H)
	} else {
		moving = render.RegionRect(rp.TextRegion, size.W, size.H)
		sibling = render.RegionRect(rp.ImageRegion, size.W, size.H)
	}
	s.overlay = moving

	if s.phase == PhaseDragging {
		page := vector.R(0, 0, float32(size.W), float32(size.H))
		_, s.guides = vector.AlignGuides(moving, []vector.Rect{page, sibling}, s.GuideThreshold)
	} else {
		s.guides = nil
	}
}
