/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"strings"
	"testing"
)

func TestPathBoundsWithCurves(t *testing.T) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.QuadTo(50, 100, 100, 0)
	p.Close()
	b := p.Bounds()
	if b.X != 0 || b.Y != 0 || b.W != 100 || b.H != 100 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
	if !p.IsClosed() {
		t.Fatalf("expected closed path")
	}
}

func TestPathTransformed(t *testing.T) {
	p := &Path{}
	p.MoveTo(1, 1)
	p.LineTo(2, 2)
	q := p.Transformed(Translate(10, 0))
	if q.Cmds[0].Data[0] != 11 || q.Cmds[1].Data[1] != 2 {
		t.Fatalf("unexpected transformed path: %+v", q.Cmds)
	}
	// original untouched
	if p.Cmds[0].Data[0] != 1 {
		t.Fatalf("source path mutated")
	}
}

func TestPathD(t *testing.T) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.LineTo(10.5, 0)
	p.CubicTo(12, 1, 14, 2, 16, 3)
	p.Close()
	d := p.D()
	for _, want := range []string{"M 0 0", "L 10.5 0", "C 12 1 14 2 16 3", "Z"} {
		if !strings.Contains(d, want) {
			t.Fatalf("path data %q missing %q", d, want)
		}
	}
}

func TestAlignGuidesSnapsToEdgeAndCenter(t *testing.T) {
	page := R(0, 0, 100, 100)
	moving := R(2.5, 48, 20, 10) // left edge near page left, center-y near page center
	snapped, guides := AlignGuides(moving, []Rect{page}, 6)
	if snapped.X != 0 {
		t.Fatalf("expected snap to left edge, got x=%g", snapped.X)
	}
	// center-y of moving = 53, page center = 50, delta 3 <= threshold
	if snapped.Y != 45 {
		t.Fatalf("expected center snap to y=45, got %g", snapped.Y)
	}
	if len(guides) != 2 {
		t.Fatalf("expected 2 guides, got %d", len(guides))
	}
}

func TestAlignGuidesRespectsThreshold(t *testing.T) {
	page := R(0, 0, 100, 100)
	moving := R(20, 20, 10, 10)
	snapped, guides := AlignGuides(moving, []Rect{page}, 6)
	if snapped != moving || len(guides) != 0 {
		t.Fatalf("expected no snapping far from anchors: %+v %v", snapped, guides)
	}
	if s, g := AlignGuides(moving, []Rect{page}, 0); s != moving || g != nil {
		t.Fatalf("zero threshold must disable snapping")
	}
}
