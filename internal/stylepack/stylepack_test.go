/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package stylepack

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStyleFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, "styles", rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestExportAndInstallRoundTrip(t *testing.T) {
	src := t.TempDir()
	writeStyleFile(t, src, "palettes/ocean.yaml", "background: '#dff3ff'\naccent: '#1d6fa5'\n")
	writeStyleFile(t, src, "fonts/notes.yaml", "family: Lora\n")

	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if err := ExportStyles(src, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	m, err := ReadManifest(zipPath)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if m.App != "storycanvas" || m.Files != 2 {
		t.Fatalf("manifest: %+v", m)
	}

	dst := t.TempDir()
	n, err := InstallPack(dst, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if n != 2 {
		t.Fatalf("installed %d files", n)
	}
	got, err := os.ReadFile(filepath.Join(dst, "styles", "palettes", "ocean.yaml"))
	if err != nil {
		t.Fatalf("read installed: %v", err)
	}
	if string(got) != "background: '#dff3ff'\naccent: '#1d6fa5'\n" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestExportEmptyStylesStillCreatesArchive(t *testing.T) {
	src := t.TempDir()
	zipPath := filepath.Join(t.TempDir(), "empty.zip")
	if err := ExportStyles(src, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}
	m, err := ReadManifest(zipPath)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if m.Files != 0 {
		t.Fatalf("empty export must report zero files, got %d", m.Files)
	}
}

func TestInstallSkipsExistingFiles(t *testing.T) {
	src := t.TempDir()
	writeStyleFile(t, src, "palettes/ocean.yaml", "new")
	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if err := ExportStyles(src, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := t.TempDir()
	writeStyleFile(t, dst, "palettes/ocean.yaml", "keep me")
	n, err := InstallPack(dst, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if n != 0 {
		t.Fatalf("existing files must be skipped, installed %d", n)
	}
	got, _ := os.ReadFile(filepath.Join(dst, "styles", "palettes", "ocean.yaml"))
	if string(got) != "keep me" {
		t.Fatalf("existing file was overwritten: %q", got)
	}
}

func TestInstallRequiresArguments(t *testing.T) {
	if _, err := InstallPack("", "x.zip"); err == nil {
		t.Fatalf("empty root must error")
	}
	if _, err := InstallPack(t.TempDir(), ""); err == nil {
		t.Fatalf("empty pack path must error")
	}
	if err := ExportStyles("", "x.zip"); err == nil {
		t.Fatalf("empty root must error")
	}
}
