/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package compose

import (
	"sync"
	"time"

	"storycanvas/internal/domain"
	"storycanvas/internal/template"
	"storycanvas/internal/undo"
)

// Store is the single source of truth for one edit session. All mutation
// goes through guarded setters that clamp input, mirror A/B writes and
// record history; the renderer and view controller only read.
type Store struct {
	mu      sync.Mutex
	book    domain.Book
	state   State
	history *undo.Manager
	hooks   Hooks

	// inGesture suppresses per-update snapshots between BeginGesture and
	// EndGesture so a whole drag is one undo step. Undo/redo are ignored
	// while a gesture is in flight.
	inGesture bool
}

// NewStore creates the session state for book. An optional initial state
// (from persistence) is sanitized: unknown ids fall back to defaults,
// values are clamped, and per-page keys outside the book are dropped.
func NewStore(book domain.Book, initial *State, hooks Hooks) *Store {
	s := &Store{
		book:    book,
		state:   NewState(),
		history: undo.NewManager(undo.Config{MaxDepth: 50}),
		hooks:   hooks,
	}
	s.state.TemplateID = template.DefaultID
	s.state.PageSizeID = template.DefaultPageSizeID
	if initial != nil {
		s.adoptInitial(*initial)
	}
	return s
}

func (s *Store) adoptInitial(in State) {
	if template.Known(in.TemplateID) {
		s.state.TemplateID = in.TemplateID
	}
	s.state.PageSizeID = template.Size(in.PageSizeID).ID
	s.state.Overrides = in.Overrides
	s.state.ABPattern = in.ABPattern
	n := s.book.PageCount()
	for i, f := range in.Frames {
		if i >= 0 && i < n {
			s.state.Frames[i] = f.Clamped()
		}
	}
	for i, t := range in.Texts {
		if i >= 0 && i < n {
			s.state.Texts[i] = t.Clamped()
		}
	}
	for i, c := range in.Crops {
		if i >= 0 && i < n {
			s.state.Crops[i] = c.Clamped()
		}
	}
	if s.state.ABPattern {
		s.unifyParityLocked()
	}
}

// Book returns the immutable book this session edits.
func (s *Store) Book() domain.Book { return s.book }

// PageCount returns the number of pages in the book.
func (s *Store) PageCount() int { return s.book.PageCount() }

// State returns a deep copy of the current customization state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Frame returns the effective frame settings for page i.
func (s *Store) Frame(i int) FrameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.state.Frames[i]; ok {
		return f
	}
	return DefaultFrame()
}

// Text returns the effective text settings for page i.
func (s *Store) Text(i int) TextSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.state.Texts[i]; ok {
		return t
	}
	return DefaultText()
}

// Crop returns the effective crop settings for page i.
func (s *Store) Crop(i int) CropSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.state.Crops[i]; ok {
		return c
	}
	return DefaultCrop()
}

// Resolve folds the current state into the renderable config for page i.
func (s *Store) Resolve(i int) ResolvedPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := DefaultFrame()
	if f, ok := s.state.Frames[i]; ok {
		frame = f
	}
	text := DefaultText()
	if t, ok := s.state.Texts[i]; ok {
		text = t
	}
	crop := DefaultCrop()
	if c, ok := s.state.Crops[i]; ok {
		crop = c
	}
	return Resolve(s.state.TemplateID, s.state.Overrides, frame, text, crop)
}

// PageSize returns the active page size in pixels.
func (s *Store) PageSize() template.PageSize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return template.Size(s.state.PageSizeID)
}

// pushActionLocked records the state as it is NOW, before the change the
// caller is about to commit. Skipped mid-gesture: the gesture's snapshot
// was taken at pointer down.
func (s *Store) pushActionLocked() {
	if s.inGesture {
		return
	}
	s.history.Push(undo.Snapshot{Blob: encodeSnapshot(s.state), TS: time.Now()})
}

// BeginGesture opens a drag/resize/crop gesture: one snapshot is taken
// here and every write until EndGesture folds into the same undo step.
func (s *Store) BeginGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inGesture {
		return
	}
	s.history.Push(undo.Snapshot{Blob: encodeSnapshot(s.state), TS: time.Now()})
	s.inGesture = true
}

// EndGesture closes the current gesture.
func (s *Store) EndGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inGesture = false
}

// SetFrame writes the frame settings for page i, clamped. With A/B mode
// on, the value is copied to every page of the same parity.
func (s *Store) SetFrame(i int, f FrameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPageLocked(i) {
		return
	}
	s.pushActionLocked()
	s.writeFrameLocked(i, f.Clamped())
}

// SetText writes the text settings for page i, clamped and A/B-mirrored.
func (s *Store) SetText(i int, t TextSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPageLocked(i) {
		return
	}
	s.pushActionLocked()
	s.writeTextLocked(i, t.Clamped())
}

// SetCrop writes the crop settings for page i. Crops are never mirrored
// by A/B mode.
func (s *Store) SetCrop(i int, c CropSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPageLocked(i) {
		return
	}
	s.pushActionLocked()
	s.state.Crops[i] = c.Clamped()
}

func (s *Store) validPageLocked(i int) bool { return i >= 0 && i < s.book.PageCount() }

// writeFrameLocked stores the (already clamped) value and mirrors it to
// same-parity pages when A/B mode is on. Mirrors are value copies.
func (s *Store) writeFrameLocked(i int, f FrameSettings) {
	s.state.Frames[i] = f
	if !s.state.ABPattern {
		return
	}
	for j := i % 2; j < s.book.PageCount(); j += 2 {
		s.state.Frames[j] = f
	}
}

func (s *Store) writeTextLocked(i int, t TextSettings) {
	s.state.Texts[i] = t
	if !s.state.ABPattern {
		return
	}
	for j := i % 2; j < s.book.PageCount(); j += 2 {
		s.state.Texts[j] = t
	}
}

// SetTemplate switches the active template. Per-page frame and text
// transforms reset; crops survive because they describe the illustration,
// not the layout. Selecting the already active template is a no-op.
func (s *Store) SetTemplate(id string) {
	s.mu.Lock()
	if !template.Known(id) {
		id = template.DefaultID
	}
	if id == s.state.TemplateID {
		s.mu.Unlock()
		return
	}
	s.pushActionLocked()
	s.state.TemplateID = id
	s.state.Frames = map[int]FrameSettings{}
	s.state.Texts = map[int]TextSettings{}
	s.mu.Unlock()
	s.hooks.templateChanged(id)
}

// SetPageSize changes the page pixel dimensions as one undoable action.
// Per-page offsets are normalized and carry over; canvas zoom resets so
// the new size is presented at its natural scale.
func (s *Store) SetPageSize(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = template.Size(id).ID
	if id == s.state.PageSizeID {
		return
	}
	s.pushActionLocked()
	s.state.PageSizeID = id
	s.state.CanvasZoom = 1
}

// Global override setters. Each is one undoable action; writing the value
// that is already in place does nothing.

func (s *Store) SetFontFamily(id string) {
	s.setOverrideLocked(func(o *Overrides) bool {
		if o.FontFamily == id {
			return false
		}
		o.FontFamily = id
		return true
	})
}

func (s *Store) SetFontSize(px float64) {
	if px < 0 {
		px = 0
	}
	s.setOverrideLocked(func(o *Overrides) bool {
		if o.FontSize == px {
			return false
		}
		o.FontSize = px
		return true
	})
}

func (s *Store) SetColorTheme(id string) {
	s.setOverrideLocked(func(o *Overrides) bool {
		if o.ColorTheme == id {
			return false
		}
		o.ColorTheme = id
		return true
	})
}

func (s *Store) SetFrameShape(id string) {
	s.setOverrideLocked(func(o *Overrides) bool {
		if o.FrameShape == id {
			return false
		}
		o.FrameShape = id
		return true
	})
}

func (s *Store) SetTextAlign(align string) {
	s.setOverrideLocked(func(o *Overrides) bool {
		if o.TextAlign == align {
			return false
		}
		o.TextAlign = align
		return true
	})
}

func (s *Store) SetShowPageNumbers(on bool) {
	s.setOverrideLocked(func(o *Overrides) bool {
		if o.ShowPageNumbers == on {
			return false
		}
		o.ShowPageNumbers = on
		return true
	})
}

func (s *Store) setOverrideLocked(apply func(*Overrides) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Overrides
	if !apply(&next) {
		return
	}
	s.pushActionLocked()
	s.state.Overrides = next
}

// EnableABPattern turns A/B mode on. The caller is responsible for the
// confirmation dialog; this commits the result. Existing per-page values
// are unified per parity from the lowest-indexed page that has an entry.
func (s *Store) EnableABPattern() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ABPattern {
		return
	}
	s.pushActionLocked()
	s.state.ABPattern = true
	s.unifyParityLocked()
}

// DisableABPattern turns A/B mode off immediately, leaving all current
// values in place for independent later edits.
func (s *Store) DisableABPattern() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.ABPattern {
		return
	}
	s.pushActionLocked()
	s.state.ABPattern = false
}

func (s *Store) unifyParityLocked() {
	n := s.book.PageCount()
	for p := 0; p < 2; p++ {
		if f, ok := lowestEntry(s.state.Frames, p, n); ok {
			for j := p; j < n; j += 2 {
				s.state.Frames[j] = f
			}
		}
		if t, ok := lowestEntry(s.state.Texts, p, n); ok {
			for j := p; j < n; j += 2 {
				s.state.Texts[j] = t
			}
		}
	}
}

func lowestEntry[V any](m map[int]V, parity, n int) (V, bool) {
	for j := parity; j < n; j += 2 {
		if v, ok := m[j]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// ApplyFrameToAll copies page i's frame settings, including its crop, to
// every page. A/B mode is intentionally ignored here.
func (s *Store) ApplyFrameToAll(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPageLocked(i) {
		return
	}
	s.pushActionLocked()
	f := DefaultFrame()
	if v, ok := s.state.Frames[i]; ok {
		f = v
	}
	c := DefaultCrop()
	if v, ok := s.state.Crops[i]; ok {
		c = v
	}
	for j := 0; j < s.book.PageCount(); j++ {
		s.state.Frames[j] = f
		s.state.Crops[j] = c
	}
}

// ApplyTextToAll copies page i's text settings to every page, ignoring
// A/B mode.
func (s *Store) ApplyTextToAll(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPageLocked(i) {
		return
	}
	s.pushActionLocked()
	t := DefaultText()
	if v, ok := s.state.Texts[i]; ok {
		t = v
	}
	for j := 0; j < s.book.PageCount(); j++ {
		s.state.Texts[j] = t
	}
}

// ResetPage returns page i to the identity transform. With A/B mode on,
// the reset mirrors to same-parity pages like any other frame/text write.
func (s *Store) ResetPage(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPageLocked(i) {
		return
	}
	s.pushActionLocked()
	delete(s.state.Crops, i)
	if s.state.ABPattern {
		for j := i % 2; j < s.book.PageCount(); j += 2 {
			delete(s.state.Frames, j)
			delete(s.state.Texts, j)
		}
		return
	}
	delete(s.state.Frames, i)
	delete(s.state.Texts, i)
}

// Undo reverts the most recent action. Ignored while a gesture is in
// flight; the gesture commits first.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inGesture {
		return false
	}
	snap, ok := s.history.Undo(encodeSnapshot(s.state))
	if !ok {
		return false
	}
	return applySnapshot(&s.state, snap.Blob)
}

// Redo re-applies the most recently undone action.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inGesture {
		return false
	}
	snap, ok := s.history.Redo(encodeSnapshot(s.state))
	if !ok {
		return false
	}
	return applySnapshot(&s.state, snap.Blob)
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// View state. None of these are undoable actions.

// SetViewMode switches the presentation. Canvas zoom resets on every
// switch; the current page and all customization values are untouched.
func (s *Store) SetViewMode(m ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch m {
	case ViewSingle, ViewSpread, ViewGrid, ViewList:
	default:
		return
	}
	if m == s.state.ViewMode {
		return
	}
	s.state.ViewMode = m
	s.state.CanvasZoom = 1
	s.state.Selected = ElementNone
}

// SetCanvasZoom sets the preview scale, clamped to its range.
func (s *Store) SetCanvasZoom(z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CanvasZoom = clamp(z, CanvasZoomMin, CanvasZoomMax)
}

// SetGridZoom sets the grid view scale, independent of canvas zoom.
func (s *Store) SetGridZoom(z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.GridZoom = clamp(z, CanvasZoomMin, CanvasZoomMax)
}

// SetGridPan sets the grid view scroll offset.
func (s *Store) SetGridPan(p Pan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.X = finite(p.X)
	p.Y = finite(p.Y)
	s.state.GridPan = p
}

// SetCurrentPage navigates to page i, clamped to the book. Navigation
// clears the selection.
func (s *Store) SetCurrentPage(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.book.PageCount(); n > 0 {
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		s.state.CurrentPage = i
	}
	s.state.Selected = ElementNone
}

// Select marks the image or text element of the current page as selected.
func (s *Store) Select(k ElementKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch k {
	case ElementNone, ElementImage, ElementText:
		s.state.Selected = k
	}
}

// ClearSelection returns the edit surface to idle.
func (s *Store) ClearSelection() { s.Select(ElementNone) }

// RequestExport emits the export event toward external collaborators.
func (s *Store) RequestExport(f ExportFormat, q ExportQuality) {
	s.hooks.exportRequested(f, q)
}

// Leave emits the leave event. The session state is not torn down here;
// the owner drops the store after the event fires.
func (s *Store) Leave() { s.hooks.leaveCompositor() }
