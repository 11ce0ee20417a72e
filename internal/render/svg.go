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
	"fmt"
	"io"
	"strconv"
	"strings"

	"storycanvas/internal/vector"
)

// WriteSVG serializes a scene as a standalone SVG document. Clip paths and
// the filters the scene actually uses go into defs; node order is kept.
func WriteSVG(out io.Writer, s *vector.Scene) error {
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" version=\"1.1\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		f2(s.W), f2(s.H), f2(s.W), f2(s.H))

	e := &svgEmitter{wf: wf}
	e.collectDefs(s.Nodes)
	e.writeDefs()
	for _, n := range s.Nodes {
		e.node(n, "  ")
	}
	wf("</svg>\n")

	if werr != nil {
		return werr
	}
	_, err := out.Write(buf.Bytes())
	return err
}

type svgEmitter struct {
	wf      func(string, ...any)
	clips   map[*vector.Group]string
	filters map[vector.Filter]bool
}

func (e *svgEmitter) collectDefs(nodes []vector.Node) {
	if e.clips == nil {
		e.clips = map[*vector.Group]string{}
		e.filters = map[vector.Filter]bool{}
	}
	for _, n := range nodes {
		if n.Filter() != vector.FilterNone {
			e.filters[n.Filter()] = true
		}
		if g, ok := n.(*vector.Group); ok {
			if g.Clip != nil {
				e.clips[g] = "clip-" + strconv.Itoa(len(e.clips))
			}
			e.collectDefs(g.Children)
		}
	}
}

func (e *svgEmitter) writeDefs() {
	if len(e.clips) == 0 && len(e.filters) == 0 {
		return
	}
	e.wf("  <defs>\n")
	for g, id := range e.clips {
		e.wf("    <clipPath id=\"%s\"><path d=\"%s\"/></clipPath>\n", id, g.Clip.D())
	}
	if e.filters[vector.FilterDropShadow] {
		e.wf("    <filter id=\"drop-shadow\" x=\"-20%%\" y=\"-20%%\" width=\"140%%\" height=\"140%%\"><feDropShadow dx=\"0\" dy=\"3\" stdDeviation=\"4\" flood-opacity=\"0.35\"/></filter>\n")
	}
	if e.filters[vector.FilterTextShadow] {
		e.wf("    <filter id=\"text-shadow\" x=\"-20%%\" y=\"-20%%\" width=\"140%%\" height=\"140%%\"><feDropShadow dx=\"0\" dy=\"1\" stdDeviation=\"1.5\" flood-opacity=\"0.5\"/></filter>\n")
	}
	if e.filters[vector.FilterSoftGlow] {
		e.wf("    <filter id=\"soft-glow\" x=\"-30%%\" y=\"-30%%\" width=\"160%%\" height=\"160%%\"><feGaussianBlur stdDeviation=\"3\" result=\"b\"/><feMerge><feMergeNode in=\"b\"/><feMergeNode in=\"SourceGraphic\"/></feMerge></filter>\n")
	}
	e.wf("  </defs>\n")
}

func (e *svgEmitter) node(n vector.Node, indent string) {
	common := e.commonAttrs(n)
	switch t := n.(type) {
	case *vector.RectNode:
		r := t.Rect()
		radius := ""
		if t.Radius > 0 {
			radius = fmt.Sprintf(" rx=\"%s\"", f2(t.Radius))
		}
		e.wf("%s<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s%s%s/>\n",
			indent, f2(r.X), f2(r.Y), f2(r.W), f2(r.H), radius, paintAttrs(n), common)
	case *vector.EllipseNode:
		r := t.Rect()
		e.wf("%s<ellipse cx=\"%s\" cy=\"%s\" rx=\"%s\" ry=\"%s\"%s%s/>\n",
			indent, f2(r.X+r.W/2), f2(r.Y+r.H/2), f2(r.W/2), f2(r.H/2), paintAttrs(n), common)
	case *vector.PathNode:
		e.wf("%s<path d=\"%s\"%s%s/>\n", indent, t.Path().D(), paintAttrs(n), common)
	case *vector.ImageNode:
		r := t.Rect()
		aspect := "none"
		if t.Cover {
			aspect = "xMidYMid slice"
		}
		e.wf("%s<image x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" preserveAspectRatio=\"%s\" xlink:href=\"%s\"%s/>\n",
			indent, f2(r.X), f2(r.Y), f2(r.W), f2(r.H), aspect, escape(t.Href), common)
	case *vector.TextNode:
		anchor := "start"
		switch t.Anchor {
		case vector.AnchorMiddle:
			anchor = "middle"
		case vector.AnchorEnd:
			anchor = "end"
		}
		e.wf("%s<text x=\"%s\" y=\"%s\" font-family=\"%s\" font-size=\"%s\" font-weight=\"%d\" text-anchor=\"%s\"%s%s>%s</text>\n",
			indent, f2(t.Pos.X), f2(t.Pos.Y), escape(t.Family), f2(t.SizePx), t.Weight, anchor, paintAttrs(n), common, escape(t.Text))
	case *vector.Group:
		clip := ""
		if id, ok := e.clips[t]; ok {
			clip = fmt.Sprintf(" clip-path=\"url(#%s)\"", id)
		}
		e.wf("%s<g%s%s>\n", indent, clip, common)
		for _, c := range t.Children {
			e.node(c, indent+"  ")
		}
		e.wf("%s</g>\n", indent)
	}
}

// commonAttrs renders transform, opacity and filter.
func (e *svgEmitter) commonAttrs(n vector.Node) string {
	var b strings.Builder
	if m := n.Transform(); !m.IsIdentity() {
		fmt.Fprintf(&b, " transform=\"matrix(%s %s %s %s %s %s)\"", f2(m.A), f2(m.B), f2(m.C), f2(m.D), f2(m.E), f2(m.F))
	}
	if o := n.Opacity(); o < 1 {
		fmt.Fprintf(&b, " opacity=\"%s\"", f2(o))
	}
	switch n.Filter() {
	case vector.FilterDropShadow:
		b.WriteString(" filter=\"url(#drop-shadow)\"")
	case vector.FilterTextShadow:
		b.WriteString(" filter=\"url(#text-shadow)\"")
	case vector.FilterSoftGlow:
		b.WriteString(" filter=\"url(#soft-glow)\"")
	}
	return b.String()
}

// paintAttrs renders fill and stroke.
func paintAttrs(n vector.Node) string {
	var b strings.Builder
	if f := n.Fill(); f.Enabled {
		fmt.Fprintf(&b, " fill=\"%s\"", f.Color.Hex())
		if a := f.Color.Alpha(); a < 1 {
			fmt.Fprintf(&b, " fill-opacity=\"%s\"", f2(a))
		}
		if f.Rule == vector.EvenOdd {
			b.WriteString(" fill-rule=\"evenodd\"")
		}
	} else {
		b.WriteString(" fill=\"none\"")
	}
	if s := n.Stroke(); s.Enabled && s.Width > 0 {
		fmt.Fprintf(&b, " stroke=\"%s\" stroke-width=\"%s\"", s.Color.Hex(), f2(s.Width))
		if a := s.Color.Alpha(); a < 1 {
			fmt.Fprintf(&b, " stroke-opacity=\"%s\"", f2(a))
		}
	}
	return b.String()
}

func f2(v float32) string {
	return strconv.FormatFloat(float64(vector.FloatRound(v, 2)), 'f', -1, 32)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }
