/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shapes

import "testing"

func TestAllShapesClosedAndBounded(t *testing.T) {
	for _, id := range IDs() {
		for _, box := range [][2]float32{{100, 100}, {200, 80}, {80, 200}} {
			p := Path(id, box[0], box[1])
			if len(p.Cmds) == 0 {
				t.Fatalf("%s: empty path", id)
			}
			if !p.IsClosed() {
				t.Fatalf("%s: path must close for clip use", id)
			}
			b := p.Bounds()
			// control points may overshoot slightly (quad bulges); allow 10%
			if b.X < -0.1*box[0] || b.Y < -0.1*box[1] || b.X+b.W > 1.1*box[0] || b.Y+b.H > 1.1*box[1] {
				t.Fatalf("%s at %vx%v: bounds escape box: %+v", id, box[0], box[1], b)
			}
		}
	}
}

func TestShapeCountCoversCatalog(t *testing.T) {
	if n := len(IDs()); n < 25 {
		t.Fatalf("expected at least 25 shapes, got %d", n)
	}
}

func TestUnknownShapeFallsBack(t *testing.T) {
	s := Get("not-a-shape")
	if s.ID != DefaultID {
		t.Fatalf("expected fallback to %q, got %q", DefaultID, s.ID)
	}
	if Known("not-a-shape") {
		t.Fatalf("Known must be false for unregistered ids")
	}
}

func TestCircleDegradesToInscribedEllipse(t *testing.T) {
	p := Path("circle", 200, 100)
	b := p.Bounds()
	if b.W < 190 || b.H < 90 {
		t.Fatalf("ellipse should span the box, got %+v", b)
	}
	if b.W <= b.H {
		t.Fatalf("wide box must produce a wide ellipse, got %+v", b)
	}
}

func TestDeterministicPaths(t *testing.T) {
	a := Path("star", 120, 90).D()
	b := Path("star", 120, 90).D()
	if a != b {
		t.Fatalf("shape path must be deterministic")
	}
}
