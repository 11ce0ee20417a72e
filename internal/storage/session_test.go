/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
)

func testBook() domain.Book {
	return domain.Book{
		Title: "The Brave Little Boat",
		Pages: []domain.Page{
			{Number: 1, Text: "Once there was a boat.", ImageURL: "assets/p1.png"},
			{Number: 2, Text: "It sailed far away."},
		},
	}
}

func testState() compose.State {
	st := compose.NewState()
	st.TemplateID = "classic"
	st.PageSizeID = "8x8"
	st.Frames[0] = compose.FrameSettings{Scale: 1.2, OffsetX: 0.05}
	return st
}

func TestInitSessionScaffoldsAndWrites(t *testing.T) {
	root := t.TempDir()
	h, err := InitSession(root, testBook(), testState())
	if err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	for _, d := range []string{"assets", "exports", BackupsDirName} {
		if fi, err := os.Stat(filepath.Join(root, d)); err != nil || !fi.IsDir() {
			t.Fatalf("missing subdir %s: %v", d, err)
		}
	}
	if _, err := os.Stat(h.SessionPath); err != nil {
		t.Fatalf("session file missing: %v", err)
	}
}

func TestOpenRoundTripsTheDocument(t *testing.T) {
	root := t.TempDir()
	if _, err := InitSession(root, testBook(), testState()); err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	h, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if h.Session.Book.Title != "The Brave Little Boat" {
		t.Fatalf("book title lost: %q", h.Session.Book.Title)
	}
	if got := h.Session.State.Frames[0]; got.Scale != 1.2 || got.OffsetX != 0.05 {
		t.Fatalf("frame settings lost: %+v", got)
	}
	if h.Session.SchemaVersion != 1 {
		t.Fatalf("schema version: %d", h.Session.SchemaVersion)
	}
}

func TestSaveKeepsTimestampedBackups(t *testing.T) {
	root := t.TempDir()
	h, err := InitSession(root, testBook(), testState())
	if err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	// Backup names carry second-resolution timestamps.
	time.Sleep(1100 * time.Millisecond)
	h.Session.Book.Title = "Second Title"
	if err := Save(h); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups: %v", err)
	}
	if len(ents) == 0 {
		t.Fatalf("saving over an existing document must leave a backup")
	}
}

func TestOpenFallsBackToBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	h, err := InitSession(root, testBook(), testState())
	if err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	h.Session.Book.Title = "Second Title"
	if err := Save(h); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Corrupt the live document.
	if err := os.WriteFile(h.SessionPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	reopened, err := Open(root)
	if err != nil {
		t.Fatalf("Open after corruption: %v", err)
	}
	// The latest backup holds the first title; the corrupted save is lost.
	if reopened.Session.Book.Title != "The Brave Little Boat" {
		t.Fatalf("backup recovery returned %q", reopened.Session.Book.Title)
	}
}

func TestAutosaveCrashSnapshot(t *testing.T) {
	root := t.TempDir()
	h, err := InitSession(root, testBook(), testState())
	if err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	path, err := AutosaveCrashSnapshot(h)
	if err != nil {
		t.Fatalf("autosave: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("autosave file missing: %v", err)
	}
	// The main document must be untouched by the autosave.
	if _, err := Open(root); err != nil {
		t.Fatalf("main document broken after autosave: %v", err)
	}
}

func TestSaveAsMovesTheHandle(t *testing.T) {
	root := t.TempDir()
	h, err := InitSession(root, testBook(), testState())
	if err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	newRoot := t.TempDir()
	if err := SaveAs(h, newRoot); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if h.Root != newRoot {
		t.Fatalf("handle root not updated: %s", h.Root)
	}
	if _, err := Open(newRoot); err != nil {
		t.Fatalf("open new root: %v", err)
	}
}
