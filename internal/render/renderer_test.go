/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
	"storycanvas/internal/vector"
)

func resolved(tpl string) compose.ResolvedPage {
	return compose.Resolve(tpl, compose.DefaultOverrides(), compose.DefaultFrame(), compose.DefaultText(), compose.DefaultCrop())
}

func testPage() domain.Page {
	return domain.Page{Number: 3, Text: "The fox sailed across the silver lake.", ImageURL: "https://img.example/p3.png"}
}

func findGroup(s *vector.Scene) *vector.Group {
	for _, n := range s.Nodes {
		if g, ok := n.(*vector.Group); ok {
			return g
		}
	}
	return nil
}

func textNodesOf(s *vector.Scene) []*vector.TextNode {
	var out []*vector.TextNode
	for _, n := range s.Nodes {
		if t, ok := n.(*vector.TextNode); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestSceneStartsWithBackgroundFill(t *testing.T) {
	rp := resolved("storybook")
	s := Page(testPage(), rp, 576, 576, Options{})
	bg, ok := s.Nodes[0].(*vector.RectNode)
	if !ok {
		t.Fatalf("first node must be the background rect, got %T", s.Nodes[0])
	}
	if got, want := bg.Fill().Color, rp.Palette.Background; got.R != want.R || got.G != want.G || got.B != want.B {
		t.Fatalf("background color mismatch: %+v vs %+v", got, want)
	}
	if r := bg.Rect(); r.W != 576 || r.H != 576 {
		t.Fatalf("background must span the page, got %+v", r)
	}
}

func TestIdentityCropFillsFrame(t *testing.T) {
	// storybook has no image padding, so at 500x500 the frame rect is the
	// raw image region and an identity crop must reproduce it exactly.
	rp := resolved("storybook")
	s := Page(testPage(), rp, 500, 500, Options{})
	g := findGroup(s)
	if g == nil || len(g.Children) == 0 {
		t.Fatalf("no framed illustration group")
	}
	img, ok := g.Children[0].(*vector.ImageNode)
	if !ok {
		t.Fatalf("expected an image inside the clip, got %T", g.Children[0])
	}
	if !img.Cover {
		t.Fatalf("illustrations draw with cover semantics")
	}
	want := RegionRect(rp.ImageRegion, 500, 500)
	if r := img.Rect(); r != want {
		t.Fatalf("identity crop must fill the frame: got %+v, want %+v", r, want)
	}
}

func TestCropAnchorLandsAtFrameCenter(t *testing.T) {
	frame := vector.R(40, 30, 420, 300)
	crop := compose.CropSettings{Zoom: 2, X: 0.25, Y: 0.75}
	r := cropRect(frame, crop)
	if r.W != 840 || r.H != 600 {
		t.Fatalf("zoom must scale the image rect, got %gx%g", r.W, r.H)
	}
	// the anchor point of the image must sit at the frame center
	ax := r.X + float32(crop.X)*r.W
	ay := r.Y + float32(crop.Y)*r.H
	if math.Abs(float64(ax-(frame.X+frame.W/2))) > 0.01 || math.Abs(float64(ay-(frame.Y+frame.H/2))) > 0.01 {
		t.Fatalf("anchor (%g, %g) not at frame center", ax, ay)
	}
}

func TestMissingImageDrawsPlaceholder(t *testing.T) {
	p := testPage()
	p.ImageURL = ""
	s := Page(p, resolved("storybook"), 576, 576, Options{})
	g := findGroup(s)
	if g == nil || len(g.Children) == 0 {
		t.Fatalf("no frame group for missing image")
	}
	if _, ok := g.Children[0].(*vector.RectNode); !ok {
		t.Fatalf("missing image must draw a placeholder rect, got %T", g.Children[0])
	}
	if len(textNodesOf(s)) == 0 {
		t.Fatalf("text must still render without an illustration")
	}
}

func TestEmptyTextRendersNoTextBlock(t *testing.T) {
	p := testPage()
	p.Text = ""
	rp := resolved("classic")
	rp.ShowPageNumbers = false
	s := Page(p, rp, 576, 576, Options{})
	if n := len(textNodesOf(s)); n != 0 {
		t.Fatalf("empty paragraph must render no text nodes, got %d", n)
	}
}

func TestPageNumberToggle(t *testing.T) {
	rp := resolved("classic")
	s := Page(testPage(), rp, 576, 576, Options{})
	texts := textNodesOf(s)
	last := texts[len(texts)-1]
	if last.Text != "3" {
		t.Fatalf("page number must be the top-most text, got %q", last.Text)
	}
	if last.Anchor != vector.AnchorMiddle {
		t.Fatalf("page number is centered")
	}

	rp.ShowPageNumbers = false
	s = Page(testPage(), rp, 576, 576, Options{})
	for _, tn := range textNodesOf(s) {
		if tn.Text == "3" {
			t.Fatalf("page number rendered despite the toggle")
		}
	}
}

func TestCropOverlayOnlyInCropMode(t *testing.T) {
	rp := resolved("storybook")
	plain := Page(testPage(), rp, 576, 576, Options{})
	cropping := Page(testPage(), rp, 576, 576, Options{Cropping: true})
	if len(cropping.Nodes) != len(plain.Nodes)+1 {
		t.Fatalf("crop mode must add exactly one overlay node: %d vs %d", len(cropping.Nodes), len(plain.Nodes))
	}
}

func TestGlowEffectReachesTheSVG(t *testing.T) {
	// playful pairs glow with an image drop shadow; the shadow keeps the
	// frame group, so the glow lands on the text lines
	rp := resolved("playful")
	s := Page(testPage(), rp, 504, 504, Options{})
	if g := findGroup(s); g.Filter() != vector.FilterDropShadow {
		t.Fatalf("image shadow must keep the frame group, got %v", g.Filter())
	}
	texts := textNodesOf(s)
	if len(texts) == 0 || texts[0].Filter() != vector.FilterSoftGlow {
		t.Fatalf("glow must land on the text lines")
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, s); err != nil {
		t.Fatalf("svg: %v", err)
	}
	doc := buf.String()
	if !strings.Contains(doc, "<filter id=\"soft-glow\"") || !strings.Contains(doc, "url(#soft-glow)") {
		t.Fatalf("glow filter missing from the document")
	}
}

func TestGlowLandsOnFrameWhenTextShadowWins(t *testing.T) {
	// bedtime pairs glow with a text shadow, so the glow takes the frame
	rp := resolved("bedtime")
	s := Page(testPage(), rp, 504, 504, Options{})
	if g := findGroup(s); g.Filter() != vector.FilterSoftGlow {
		t.Fatalf("frame group must glow, got %v", g.Filter())
	}
	texts := textNodesOf(s)
	if len(texts) == 0 || texts[0].Filter() != vector.FilterTextShadow {
		t.Fatalf("text shadow must keep the text lines")
	}
}

func TestPageBorderFollowsPageShadowFlag(t *testing.T) {
	rp := resolved("storybook")
	with := Page(testPage(), rp, 576, 576, Options{})
	rp.Effects.PageShadow = false
	without := Page(testPage(), rp, 576, 576, Options{})
	if len(with.Nodes) != len(without.Nodes)+1 {
		t.Fatalf("page shadow must add exactly one border node: %d vs %d", len(with.Nodes), len(without.Nodes))
	}
	var border *vector.RectNode
	for _, n := range with.Nodes {
		if r, ok := n.(*vector.RectNode); ok && r.Radius > 0 && r.Stroke().Enabled && !r.Fill().Enabled {
			border = r
			break
		}
	}
	if border == nil {
		t.Fatalf("no stroke-only rounded border in the scene")
	}
	if r := border.Rect(); r.X != pageBorderInsetPx || r.W != 576-2*pageBorderInsetPx {
		t.Fatalf("border must inset from the page edge, got %+v", r)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	rp := resolved("playful")
	var a, b bytes.Buffer
	if err := WriteSVG(&a, Page(testPage(), rp, 504, 504, Options{})); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if err := WriteSVG(&b, Page(testPage(), rp, 504, 504, Options{})); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("same inputs must serialize identically")
	}
}

func TestWriteSVGDocument(t *testing.T) {
	rp := resolved("classic")
	var buf bytes.Buffer
	if err := WriteSVG(&buf, Page(testPage(), rp, 576, 576, Options{})); err != nil {
		t.Fatalf("svg: %v", err)
	}
	doc := buf.String()
	for _, want := range []string{
		"viewBox=\"0 0 576 576\"",
		"<clipPath id=\"clip-0\">",
		"preserveAspectRatio=\"xMidYMid slice\"",
		"url(#drop-shadow)",
		"<text",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("svg missing %q:\n%s", want, doc[:min(len(doc), 600)])
		}
	}
}

func TestSVGEscapesText(t *testing.T) {
	p := testPage()
	p.Text = "Tom & Jerry say \"<hello>\""
	var buf bytes.Buffer
	if err := WriteSVG(&buf, Page(p, resolved("classic"), 576, 576, Options{})); err != nil {
		t.Fatalf("svg: %v", err)
	}
	doc := buf.String()
	if strings.Contains(doc, "<hello>") || !strings.Contains(doc, "&amp;") {
		t.Fatalf("text must be XML-escaped")
	}
}
