//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fyne.io/fyne/v2/widget"

	"storycanvas/internal/compose"
)

// abConfirmMessage is shown before A/B mode unifies the parity classes.
const abConfirmMessage = "Pages at the same even/odd position will be unified and kept in sync. Continue?"

// abToggleHandler wires the A/B checkbox: disabling commits immediately,
// enabling goes through ask first and reverts the checkbox on cancel.
// changed runs after every committed store change.
func abToggleHandler(store *compose.Store, check *widget.Check, ask func(message string, cb func(bool)), changed func()) func(bool) {
	return func(on bool) {
		if !on {
			store.DisableABPattern()
			changed()
			return
		}
		ask(abConfirmMessage, func(confirmed bool) {
			if confirmed {
				store.EnableABPattern()
				changed()
				return
			}
			// revert silently; SetChecked would re-enter this handler
			prev := check.OnChanged
			check.OnChanged = nil
			check.SetChecked(false)
			check.OnChanged = prev
		})
	}
}
