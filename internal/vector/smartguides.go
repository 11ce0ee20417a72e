/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Alignment guides for interactive drags. Deterministic and UI-agnostic so
// the same logic serves tests and any frontend. A moving rect is compared
// against anchor rects (the page bounds, the sibling element); when an edge
// or center comes within the threshold the rect is nudged onto the guide.

import "math"

// GuideLine describes a visual guide produced while snapping.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
// Position is the x (vertical) or y (horizontal) coordinate; From/To give
// the extent for rendering. Values are rounded to 3 decimal places.
type GuideLine struct {
	Orientation string
	Kind        string
	Position    float32
	From        Pt
	To          Pt
}

// AlignGuides snaps the moving rect against the anchors independently in X
// and Y and returns the snapped rect plus guides to render. A threshold of
// zero or less disables snapping.
func AlignGuides(moving Rect, anchors []Rect, threshold float32) (Rect, []GuideLine) {
	if threshold <= 0 {
		return moving, nil
	}
	var guides []GuideLine
	bestDX, bestDXDist := float32(0), float32(+1e9)
	bestDY, bestDYDist := float32(0), float32(+1e9)
	var bestGX, bestGY GuideLine

	mL, mR := moving.X, moving.X+moving.W
	mT, mB := moving.Y, moving.Y+moving.H
	mCX, mCY := moving.X+moving.W/2, moving.Y+moving.H/2

	for _, a := range anchors {
		aL, aR, aT, aB := a.X, a.X+a.W, a.Y, a.Y+a.H
		aCX, aCY := a.X+a.W/2, a.Y+a.H/2

		for _, cand := range [][3]float32{{mL - aL, aL, 0}, {mR - aR, aR, 0}, {mCX - aCX, aCX, 1}} {
			d := cand[0]
			if dist := abs32(d); dist <= threshold && dist < bestDXDist {
				bestDX, bestDXDist = d, dist
				bestGX = verticalGuide(cand[1], moving, a, cand[2] == 1)
			}
		}
		for _, cand := range [][3]float32{{mT - aT, aT, 0}, {mB - aB, aB, 0}, {mCY - aCY, aCY, 1}} {
			d := cand[0]
			if dist := abs32(d); dist <= threshold && dist < bestDYDist {
				bestDY, bestDYDist = d, dist
				bestGY = horizontalGuide(cand[1], moving, a, cand[2] == 1)
			}
		}
	}

	snapped := moving
	if bestDXDist <= threshold {
		snapped.X = FloatRound(moving.X-bestDX, 3)
		guides = append(guides, bestGX)
	}
	if bestDYDist <= threshold {
		snapped.Y = FloatRound(moving.Y-bestDY, 3)
		guides = append(guides, bestGY)
	}
	return snapped, guides
}

func verticalGuide(x float32, a, b Rect, center bool) GuideLine {
	kind := "edge"
	if center {
		kind = "center"
	}
	minY := minf(a.Y, b.Y)
	maxY := maxf(a.Y+a.H, b.Y+b.H)
	x = FloatRound(x, 3)
	return GuideLine{Orientation: "vertical", Kind: kind, Position: x, From: Pt{x, minY}, To: Pt{x, maxY}}
}

func horizontalGuide(y float32, a, b Rect, center bool) GuideLine {
	kind := "edge"
	if center {
		kind = "center"
	}
	minX := minf(a.X, b.X)
	maxX := maxf(a.X+a.W, b.X+b.W)
	y = FloatRound(y, 3)
	return GuideLine{Orientation: "horizontal", Kind: kind, Position: y, From: Pt{minX, y}, To: Pt{maxX, y}}
}

func abs32(v float32) float32 { return float32(math.Abs(float64(v))) }
