/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

// Package stylepack bundles a session's custom styles (palette and
// typography YAML files under <session>/styles) into a shareable .zip and
// installs such packs into another session.
package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	applog "storycanvas/internal/log"
	"storycanvas/internal/version"
)

// ManifestFileName is the pack descriptor at the archive root.
const ManifestFileName = "stylepack.yaml"

// Manifest describes a style pack.
type Manifest struct {
	App     string    `yaml:"app"`
	Version string    `yaml:"version"`
	Created time.Time `yaml:"created"`
	Session string    `yaml:"session"`
	Files   int       `yaml:"files"`
}

// ExportStyles zips the session's styles directory (<session>/styles) into
// a single .zip file. The archive preserves the directory structure and
// carries a stylepack.yaml manifest at the root. If the styles directory
// does not exist or is empty, the archive still gets created with only the
// manifest.
func ExportStyles(sessionRoot string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export").With(slog.String("session", sessionRoot))
	if strings.TrimSpace(sessionRoot) == "" {
		return errors.New("sessionRoot is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	stylesDir := filepath.Join(sessionRoot, "styles")
	if _, err := os.Stat(stylesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(stylesDir, 0o755); err != nil {
			return fmt.Errorf("ensure styles dir: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	// Collect files first so the manifest can carry the count.
	var files []string
	err = filepath.Walk(stylesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		l.Error("walk styles failed", slog.Any("err", err))
		return fmt.Errorf("walk styles: %w", err)
	}

	manifest := Manifest{
		App:     "storycanvas",
		Version: version.Version,
		Created: time.Now().UTC(),
		Session: filepath.Base(sessionRoot),
		Files:   len(files),
	}
	mdata, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	w, err := zw.Create(ManifestFileName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write(mdata); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for _, path := range files {
		rel, err := filepath.Rel(sessionRoot, path)
		if err != nil {
			return err
		}
		// Forward slashes inside the archive for portability.
		fw, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, f); err != nil {
			_ = f.Close()
			return err
		}
		_ = f.Close()
	}
	l.Info("style pack exported", slog.Int("files", len(files)), slog.String("zip", destZipPath))
	return nil
}

// ReadManifest extracts and parses the pack's manifest without installing
// anything.
func ReadManifest(packZipPath string) (Manifest, error) {
	var m Manifest
	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return m, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()
	for _, f := range r.File {
		if f.Name != ManifestFileName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return m, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return m, err
		}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("parse manifest: %w", err)
		}
		return m, nil
	}
	return m, errors.New("no manifest in pack")
}

// InstallPack extracts the given .zip pack into the session's styles
// directory. Existing files are not overwritten; if a file already exists,
// it is skipped. Returns the count of files installed (skipped files are
// not counted).
func InstallPack(sessionRoot string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "install").With(slog.String("session", sessionRoot))
	if strings.TrimSpace(sessionRoot) == "" {
		return 0, errors.New("sessionRoot is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	stylesDir := filepath.Join(sessionRoot, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure styles dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		name := f.Name
		if name == ManifestFileName {
			continue
		}
		// Entries either already sit under styles/ or get prefixed so that
		// a pack can never write outside the styles directory.
		targetRel := name
		if !strings.HasPrefix(targetRel, "styles/") {
			targetRel = filepath.ToSlash(filepath.Join("styles", targetRel))
		}
		if strings.Contains(targetRel, "..") {
			l.Warn("skip suspicious entry", slog.String("name", name))
			continue
		}
		targetPath := filepath.Join(sessionRoot, filepath.FromSlash(targetRel))
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing file", slog.String("path", targetPath))
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return installed, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return installed, err
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("style pack installed", slog.Int("files", installed))
	return installed, nil
}
