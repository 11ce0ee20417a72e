/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout performs deterministic paragraph fitting for page text
// blocks: estimate-based word wrapping plus an auto-scale rule that grows
// short paragraphs and shrinks overflowing ones. Measurement against a real
// font face is behind the Provider interface so tests stay deterministic.
package textlayout

import (
	"math"
	"strings"
)

// MinFontPx is the floor the auto-scaler never goes below.
const MinFontPx = 12

// charWidthRatio is the average advance assumed per character, as a
// fraction of the font size.
const charWidthRatio = 0.5

// FitResult is the outcome of fitting a paragraph into a region.
type FitResult struct {
	SizePx int      // final integer font size
	Lines  []string // wrapped at the final size
}

// StackHeight returns the height of the wrapped line stack in pixels.
func (f FitResult) StackHeight(lineHeight float64) float64 {
	return float64(len(f.Lines)) * float64(f.SizePx) * lineHeight
}

// Wrap greedily packs whole words into lines of at most maxChars
// characters. Words longer than maxChars occupy a line of their own.
func Wrap(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxChars < 1 {
		maxChars = 1
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= maxChars {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// Fit applies the auto-scale rule: wrap at the base size, shrink when the
// stack overflows the region height (floor 12 px), grow short paragraphs of
// at most 3 lines (at most 1.3x per step, capped at 1.5x the base size),
// then re-wrap at the final rounded size.
//
// An empty paragraph fits trivially at the rounded base size.
func Fit(text string, w, h, baseSize, lineHeight float64) FitResult {
	size := baseSize
	if size < 1 {
		size = 1
	}
	if lineHeight <= 0 {
		lineHeight = 1.2
	}
	if strings.TrimSpace(text) == "" {
		return FitResult{SizePx: int(math.Round(size))}
	}

	lines := wrapAt(text, w, size)
	stack := float64(len(lines)) * size * lineHeight
	switch {
	case stack > h && stack > 0:
		size *= 0.9 * h / stack
		if size < MinFontPx {
			size = MinFontPx
		}
	case stack < 0.5*h && len(lines) <= 3:
		size *= math.Min(1.3, 0.7*h/stack)
		if max := 1.5 * baseSize; size > max {
			size = max
		}
	}

	final := int(math.Round(size))
	if final < MinFontPx && final < int(math.Round(baseSize)) {
		final = MinFontPx
	}
	return FitResult{SizePx: final, Lines: wrapAt(text, w, float64(final))}
}

// wrapAt wraps with the estimated characters per line for the size.
func wrapAt(text string, w, size float64) []string {
	chars := int(math.Floor(w / (charWidthRatio * size)))
	if chars < 1 {
		chars = 1
	}
	return Wrap(text, chars)
}
