/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package compose

import "encoding/json"

// ViewMode selects how many pages the view controller presents at once.
type ViewMode string

const (
	ViewSingle ViewMode = "single"
	ViewSpread ViewMode = "spread"
	ViewGrid   ViewMode = "grid"
	ViewList   ViewMode = "list"
)

// ElementKind is what the edit surface currently has selected.
type ElementKind string

const (
	ElementNone  ElementKind = "none"
	ElementImage ElementKind = "image"
	ElementText  ElementKind = "text"
)

// Pan is a two-axis scroll offset in preview pixels.
type Pan struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is the full customization state of one edit session. Maps are
// keyed by zero-based page index; a page with no entry behaves as the
// identity transform. The fields below the view-state marker are transient
// and excluded from history snapshots.
type State struct {
	TemplateID string                `json:"selectedTemplate"`
	PageSizeID string                `json:"pageSize"`
	Overrides  Overrides             `json:"overrides"`
	Frames     map[int]FrameSettings `json:"pageFrameSettings"`
	Texts      map[int]TextSettings  `json:"pageTextSettings"`
	Crops      map[int]CropSettings  `json:"pageCropSettings"`
	ABPattern  bool                  `json:"abPatternMode"`

	// view state, not part of history
	ViewMode    ViewMode    `json:"viewMode"`
	CanvasZoom  float64     `json:"canvasZoom"`
	GridZoom    float64     `json:"gridZoom"`
	GridPan     Pan         `json:"gridPan"`
	CurrentPage int         `json:"currentPageIndex"`
	Selected    ElementKind `json:"selectedElement"`
}

// NewState returns the entry state: default template, empty per-page maps,
// single view at 100% zoom.
func NewState() State {
	return State{
		TemplateID: "",
		PageSizeID: "",
		Overrides:  DefaultOverrides(),
		Frames:     map[int]FrameSettings{},
		Texts:      map[int]TextSettings{},
		Crops:      map[int]CropSettings{},
		ViewMode:   ViewSingle,
		CanvasZoom: 1,
		GridZoom:   1,
		Selected:   ElementNone,
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Frames = make(map[int]FrameSettings, len(s.Frames))
	for k, v := range s.Frames {
		c.Frames[k] = v
	}
	c.Texts = make(map[int]TextSettings, len(s.Texts))
	for k, v := range s.Texts {
		c.Texts[k] = v
	}
	c.Crops = make(map[int]CropSettings, len(s.Crops))
	for k, v := range s.Crops {
		c.Crops[k] = v
	}
	return c
}

// snapshot is the durable subset of State that history records. View state
// (current page, selection, zoom and pan) deliberately stays out so that
// undo never yanks the user to another page or view.
type snapshot struct {
	TemplateID string                `json:"selectedTemplate"`
	PageSizeID string                `json:"pageSize"`
	Overrides  Overrides             `json:"overrides"`
	Frames     map[int]FrameSettings `json:"pageFrameSettings"`
	Texts      map[int]TextSettings  `json:"pageTextSettings"`
	Crops      map[int]CropSettings  `json:"pageCropSettings"`
	ABPattern  bool                  `json:"abPatternMode"`
}

// encodeSnapshot serializes the durable subset of s.
func encodeSnapshot(s State) []byte {
	b, err := json.Marshal(snapshot{
		TemplateID: s.TemplateID,
		PageSizeID: s.PageSizeID,
		Overrides:  s.Overrides,
		Frames:     s.Frames,
		Texts:      s.Texts,
		Crops:      s.Crops,
		ABPattern:  s.ABPattern,
	})
	if err != nil {
		// the snapshot struct is all plain data; Marshal cannot fail
		return nil
	}
	return b
}

// applySnapshot overwrites the durable fields of s from blob, leaving view
// state untouched.
func applySnapshot(s *State, blob []byte) bool {
	var snap snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return false
	}
	s.TemplateID = snap.TemplateID
	s.PageSizeID = snap.PageSizeID
	s.Overrides = snap.Overrides
	s.Frames = snap.Frames
	s.Texts = snap.Texts
	s.Crops = snap.Crops
	s.ABPattern = snap.ABPattern
	if s.Frames == nil {
		s.Frames = map[int]FrameSettings{}
	}
	if s.Texts == nil {
		s.Texts = map[int]TextSettings{}
	}
	if s.Crops == nil {
		s.Crops = map[int]CropSettings{}
	}
	return true
}
