/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package compose

// ExportFormat names the output format an export request asks for.
type ExportFormat string

const (
	ExportPDF ExportFormat = "pdf"
	ExportPNG ExportFormat = "png"
)

// ExportQuality names an export quality preset.
type ExportQuality string

const (
	QualityStandard ExportQuality = "standard"
	QualityHigh     ExportQuality = "high"
	QualityPrint    ExportQuality = "print"
)

// Hooks are the events the compositor emits toward external collaborators.
// Nil hooks are skipped; the compositor itself implements none of them.
type Hooks struct {
	TemplateChanged func(id string)
	ExportRequested func(format ExportFormat, quality ExportQuality)
	LeaveCompositor func()
}

func (h Hooks) templateChanged(id string) {
	if h.TemplateChanged != nil {
		h.TemplateChanged(id)
	}
}

func (h Hooks) exportRequested(f ExportFormat, q ExportQuality) {
	if h.ExportRequested != nil {
		h.ExportRequested(f, q)
	}
}

func (h Hooks) leaveCompositor() {
	if h.LeaveCompositor != nil {
		h.LeaveCompositor()
	}
}
