//go:build fyne && cgo

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
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"storycanvas/internal/compose"
	"storycanvas/internal/config"
	"storycanvas/internal/crash"
	"storycanvas/internal/domain"
	"storycanvas/internal/editor"
	"storycanvas/internal/export"
	applog "storycanvas/internal/log"
	"storycanvas/internal/render"
	"storycanvas/internal/storage"
	"storycanvas/internal/telemetry"
	"storycanvas/internal/template"
	"storycanvas/internal/vector"
	"storycanvas/internal/version"
	"storycanvas/internal/view"
)

// Run starts the Fyne-based compositor shell: one page preview with the
// style toolbar, edit gestures on the framed image and text block, and the
// standard keyboard contract.
func Run(sessionDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting compositor UI", "version", version.Version)

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", "err", err)
	}
	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	telemetry.NewDefault(tcfg)

	var h *storage.SessionHandle
	defer func() { crash.Recover(h) }()

	if sessionDir != "" {
		h, err = storage.Open(sessionDir)
		if err != nil {
			l.Info("no session found, starting a new one", "dir", sessionDir)
			h, err = storage.InitSession(sessionDir, starterBook(), starterState(cfg))
			if err != nil {
				return fmt.Errorf("init session: %w", err)
			}
		}
	}

	fyneApp := app.NewWithID("storycanvas")
	w := fyneApp.NewWindow("StoryCanvas")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	// the store carries the book and all customizations; the handle only
	// exists when a session directory backs the preview
	book := starterBook()
	var initial *compose.State
	assetRoot := ""
	if h != nil {
		book = h.Session.Book
		initial = &h.Session.State
		assetRoot = filepath.Join(h.Root, "assets")
	}

	status := widget.NewLabel("Ready")
	var store *compose.Store
	store = compose.NewStore(book, initial, compose.Hooks{
		TemplateChanged: func(id string) {
			telemetry.Event("template_changed", map[string]any{"template": id})
		},
		ExportRequested: func(f compose.ExportFormat, q compose.ExportQuality) {
			if h == nil {
				status.SetText("Open a session directory before exporting")
				return
			}
			out := filepath.Join(h.Root, "exports")
			err := export.Batch(store, export.BatchOptions{
				Quality:   q,
				Formats:   []string{string(f)},
				OutDir:    out,
				AssetRoot: assetRoot,
			})
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			telemetry.Event("export_requested", map[string]any{"format": string(f), "quality": string(q)})
			status.SetText("Exported to " + out)
		},
		LeaveCompositor: func() { w.Close() },
	})
	ctrl := view.NewController(store)
	surf := editor.NewSurface(store)
	surf.GuideThreshold = float32(cfg.Editor.GuideThresholdPx)

	pc := NewPageCanvas()
	refresh := func() {
		st := store.State()
		i := st.CurrentPage
		scene := ctrl.RenderPage(i, render.Options{Cropping: surf.CropActive()})
		if scene == nil {
			return
		}
		pc.SetScene(scene, export.Rasterize(scene, assetRoot))
		page, _ := store.Book().PageAt(i)
		status.SetText(fmt.Sprintf("Page %d of %d  ·  %s / %s", page.Number,
			store.PageCount(), st.TemplateID, strings.ToLower(string(st.ViewMode))))
	}

	// gesture plumbing: widget points scale to scene pixels inside the canvas
	pc.OnDragStart = func(p vector.Pt) {
		if surf.Phase() == editor.PhaseIdle {
			surf.SelectImage()
		}
		surf.StartDrag(p)
	}
	pc.OnDrag = func(p vector.Pt) { surf.Move(p); refresh() }
	pc.OnDragEnd = func() { surf.PointerUp(); refresh() }
	pc.OnTap = func(p vector.Pt) { surf.BackgroundClick(); refresh() }

	// style toolbar
	templateSel := widget.NewSelect(template.IDs(), func(id string) { store.SetTemplate(id) })
	templateSel.SetSelected(store.State().TemplateID)
	themeSel := widget.NewSelect(template.ThemeIDs(), func(id string) { store.SetColorTheme(id) })
	fontSel := widget.NewSelect(template.FontIDs(), func(id string) { store.SetFontFamily(id) })
	sizeSel := widget.NewSelect(template.SizeIDs(), func(id string) { store.SetPageSize(id) })
	sizeSel.SetSelected(store.PageSize().ID)
	modeSel := widget.NewSelect([]string{
		string(compose.ViewSingle), string(compose.ViewSpread),
		string(compose.ViewGrid), string(compose.ViewList),
	}, func(m string) { ctrl.SetMode(compose.ViewMode(m)) })
	modeSel.SetSelected(string(store.State().ViewMode))

	abCheck := widget.NewCheck("A/B pattern", nil)
	abCheck.SetChecked(store.State().ABPattern) // before the handler; a restored session must not re-ask
	abCheck.OnChanged = abToggleHandler(store, abCheck, func(message string, cb func(bool)) {
		dialog.ShowConfirm("Enable A/B pattern", message, cb, w)
	}, refresh)

	prevBtn := widget.NewButton("◀", func() { ctrl.Prev(); refresh() })
	nextBtn := widget.NewButton("▶", func() { ctrl.Next(); refresh() })
	undoBtn := widget.NewButton("Undo", func() { store.Undo(); refresh() })
	redoBtn := widget.NewButton("Redo", func() { store.Redo(); refresh() })
	saveBtn := widget.NewButton("Save", func() {
		if h == nil {
			status.SetText("No session directory open")
			return
		}
		h.Session.Book = store.Book()
		h.Session.State = store.State()
		if err := storage.Save(h); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Saved")
	})
	exportBtn := widget.NewButton("Export PDF", func() {
		store.RequestExport(compose.ExportPDF, compose.QualityPrint)
	})

	// store changes made from the toolbar re-render through one hook
	wrapRefresh := func(s *widget.Select) {
		prev := s.OnChanged
		s.OnChanged = func(v string) { prev(v); refresh() }
	}
	for _, s := range []*widget.Select{templateSel, themeSel, fontSel, sizeSel, modeSel} {
		wrapRefresh(s)
	}

	toolbar := container.NewHBox(
		prevBtn, nextBtn, widget.NewSeparator(),
		templateSel, themeSel, fontSel, sizeSel, modeSel, abCheck,
		widget.NewSeparator(), undoBtn, redoBtn, saveBtn, exportBtn,
	)
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, container.NewScroll(pc)))

	bindKeys(w, ctrl, refresh)

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	refresh()
	w.ShowAndRun()
	h = nil // normal shutdown, nothing for the crash handler to snapshot
	return nil
}

// bindKeys routes the keyboard contract through the view controller. Fyne
// reports modifiers only through shortcuts, so Ctrl combos register as
// custom shortcuts and plain keys go through TypedKey.
func bindKeys(w fyne.Window, ctrl *view.Controller, refresh func()) {
	type combo struct {
		name fyne.KeyName
		key  view.Key
	}
	combos := []combo{
		{fyne.KeyZ, view.Key{Name: "z", Ctrl: true}},
		{fyne.KeyY, view.Key{Name: "y", Ctrl: true}},
		{fyne.KeyEqual, view.Key{Name: "=", Ctrl: true}},
		{fyne.KeyMinus, view.Key{Name: "-", Ctrl: true}},
		{fyne.Key0, view.Key{Name: "0", Ctrl: true}},
		{fyne.Key1, view.Key{Name: "1", Ctrl: true}},
	}
	for _, c := range combos {
		k := c.key
		w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: c.name, Modifier: fyne.KeyModifierControl},
			func(fyne.Shortcut) {
				if ctrl.HandleKey(k) {
					refresh()
				}
			})
	}
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl | fyne.KeyModifierShift},
		func(fyne.Shortcut) {
			if ctrl.HandleKey(view.Key{Name: "z", Ctrl: true, Shift: true}) {
				refresh()
			}
		})
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		var name string
		switch ev.Name {
		case fyne.KeyLeft:
			name = "ArrowLeft"
		case fyne.KeyRight:
			name = "ArrowRight"
		default:
			return
		}
		if ctrl.HandleKey(view.Key{Name: name}) {
			refresh()
		}
	})
}

// starterBook is the sample opened when no session directory is given, so
// the toolbar has something to style.
func starterBook() domain.Book {
	return domain.Book{
		Title: "My First Book",
		Pages: []domain.Page{
			{Number: 1, Text: "Once upon a time there was a little sailboat."},
			{Number: 2, Text: "It dreamed of the sea beyond the harbor wall."},
			{Number: 3, Text: "One morning the wind said: come along!"},
			{Number: 4, Text: "And off it sailed, all the way to the horizon."},
		},
	}
}

func starterState(cfg config.AppConfig) compose.State {
	st := compose.NewState()
	st.TemplateID = cfg.Compositor.Template
	st.PageSizeID = cfg.Compositor.PageSize
	st.Overrides.ColorTheme = cfg.Compositor.Theme
	st.Overrides.FontFamily = cfg.Compositor.Font
	return st
}
