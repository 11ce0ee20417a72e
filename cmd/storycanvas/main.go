/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"storycanvas/internal/compose"
	"storycanvas/internal/config"
	"storycanvas/internal/crash"
	"storycanvas/internal/domain"
	"storycanvas/internal/export"
	applog "storycanvas/internal/log"
	"storycanvas/internal/render"
	"storycanvas/internal/storage"
	"storycanvas/internal/stylepack"
	"storycanvas/internal/telemetry"
	"storycanvas/internal/ui"
	"storycanvas/internal/version"
)

// sessionHandle tracks the open session so the crash handler can snapshot
// it no matter which subcommand panicked.
var sessionHandle *storage.SessionHandle

func main() {
	defer func() { crash.Recover(sessionHandle) }()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storycanvas",
		Short:         "StoryCanvas — page compositor for illustrated children's books",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a local .env may carry SCV_* overrides; absence is fine
			_ = godotenv.Load()
			applog.Init(applog.FromEnv())
			telemetry.NewDefault(telemetry.FromEnv())
		},
	}
	root.AddCommand(newVersionCmd(), newInitCmd(), newInfoCmd(), newRenderCmd(), newExportCmd(), newStylesCmd(), newUICmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("StoryCanvas", version.String())
		},
	}
}

func newInitCmd() *cobra.Command {
	var title string
	var pages int
	cmd := &cobra.Command{
		Use:   "init <dir>",
		Short: "Create a new book session at <dir>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, _ := filepath.Abs(args[0])
			l := applog.WithComponent("cli")
			l.Info("init session", slog.String("root", abs), slog.String("title", title))

			book := domain.Book{Title: title}
			for i := 1; i <= pages; i++ {
				book.Pages = append(book.Pages, domain.Page{Number: i})
			}
			cfg, err := config.Load()
			if err != nil {
				l.Warn("config load failed, using defaults", slog.Any("err", err))
			}
			st := compose.NewState()
			st.TemplateID = cfg.Compositor.Template
			st.PageSizeID = cfg.Compositor.PageSize
			st.Overrides.ColorTheme = cfg.Compositor.Theme
			st.Overrides.FontFamily = cfg.Compositor.Font

			h, err := storage.InitSession(abs, book, st)
			if err != nil {
				return err
			}
			sessionHandle = h
			fmt.Println("Created session at", abs)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Untitled Book", "book title")
	cmd.Flags().IntVar(&pages, "pages", 8, "number of empty pages")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <dir>",
		Short: "Open the session at <dir> and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, _ := filepath.Abs(args[0])
			h, err := storage.Open(abs)
			if err != nil {
				return err
			}
			sessionHandle = h
			st := h.Session.State
			fmt.Printf("Book:      %s\n", h.Session.Book.Title)
			fmt.Printf("Pages:     %d\n", h.Session.Book.PageCount())
			fmt.Printf("Template:  %s\n", st.TemplateID)
			fmt.Printf("Page size: %s\n", st.PageSizeID)
			fmt.Printf("A/B mode:  %v\n", st.ABPattern)
			fmt.Println("Root:     ", h.Root)
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var page int
	var out string
	cmd := &cobra.Command{
		Use:   "render <dir>",
		Short: "Render one page as an SVG document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, _ := filepath.Abs(args[0])
			h, err := storage.Open(abs)
			if err != nil {
				return err
			}
			sessionHandle = h
			store := compose.NewStore(h.Session.Book, &h.Session.State, compose.Hooks{})
			if page < 1 || page > store.PageCount() {
				return fmt.Errorf("page %d out of range (book has %d pages)", page, store.PageCount())
			}
			i := page - 1
			p, _ := store.Book().PageAt(i)
			size := store.PageSize()
			scene := render.Page(p, store.Resolve(i), size.W, size.H, render.Options{})

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return render.WriteSVG(w, scene)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var formats, quality, out, pages string
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Export the book to PDF, PNG and/or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, _ := filepath.Abs(args[0])
			h, err := storage.Open(abs)
			if err != nil {
				return err
			}
			sessionHandle = h
			store := compose.NewStore(h.Session.Book, &h.Session.State, compose.Hooks{})

			outDir := out
			if outDir == "" {
				outDir = filepath.Join(h.Root, "exports")
			}
			idx, err := parsePageList(pages, store.PageCount())
			if err != nil {
				return err
			}
			opt := export.BatchOptions{
				Quality:   compose.ExportQuality(quality),
				Formats:   splitList(formats),
				Pages:     idx,
				OutDir:    outDir,
				AssetRoot: filepath.Join(h.Root, "assets"),
			}
			l := applog.WithComponent("cli")
			l.Info("export", slog.String("out", outDir), slog.String("formats", formats), slog.String("quality", quality))
			if err := export.Batch(store, opt); err != nil {
				return err
			}
			telemetry.Event("export_requested", map[string]any{
				"formats": formats,
				"quality": quality,
				"pages":   store.PageCount(),
			})
			fmt.Println("Exported to", outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&formats, "format", "pdf", "comma-separated formats: pdf,png,svg")
	cmd.Flags().StringVar(&quality, "quality", string(compose.QualityStandard), "standard, high or print")
	cmd.Flags().StringVar(&out, "out", "", "output directory (default <dir>/exports)")
	cmd.Flags().StringVar(&pages, "pages", "", "comma-separated 1-based page numbers (default all)")
	return cmd
}

func newStylesCmd() *cobra.Command {
	styles := &cobra.Command{
		Use:   "styles",
		Short: "Export or install style packs",
	}
	styles.AddCommand(
		&cobra.Command{
			Use:   "export <dir> <pack.zip>",
			Short: "Zip the session's styles directory into a style pack",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				abs, _ := filepath.Abs(args[0])
				if err := stylepack.ExportStyles(abs, args[1]); err != nil {
					return err
				}
				fmt.Println("Wrote", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "install <dir> <pack.zip>",
			Short: "Install a style pack into the session",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				abs, _ := filepath.Abs(args[0])
				n, err := stylepack.InstallPack(abs, args[1])
				if err != nil {
					return err
				}
				fmt.Printf("Installed %d file(s)\n", n)
				return nil
			},
		},
	)
	return styles
}

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [dir]",
		Short: "Launch the desktop compositor (build with -tags fyne)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir, _ = filepath.Abs(args[0])
			}
			return ui.Run(dir)
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parsePageList turns "1,3,4" into zero-based indices.
func parsePageList(s string, total int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, p := range splitList(s) {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > total {
			return nil, fmt.Errorf("invalid page number %q (book has %d pages)", p, total)
		}
		out = append(out, n-1)
	}
	return out, nil
}
