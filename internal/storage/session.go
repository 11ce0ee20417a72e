/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists edit sessions. A session directory holds
// session.json (the book plus the full customization state), a backups
// folder with timestamped copies of every previous save, and an exports
// folder. Writes are transactional: temp file, fsync, rename.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"storycanvas/internal/compose"
	"storycanvas/internal/domain"
)

const (
	SessionFileName = "session.json"
	BackupsDirName  = "backups"

	// sessionSchemaVersion is bumped on backward-incompatible changes to
	// the session document.
	sessionSchemaVersion = 1
)

// Standard subfolders of a session directory.
var standardSubDirs = []string{
	"assets",
	"exports",
	BackupsDirName,
}

// Session is the on-disk document: the book content plus everything the
// reader customized.
type Session struct {
	SchemaVersion int           `json:"schemaVersion"`
	Book          domain.Book   `json:"book"`
	State         compose.State `json:"state"`
}

// SessionHandle keeps track of a session loaded/saved from disk.
// Root is the session directory containing session.json and subfolders.
type SessionHandle struct {
	Root        string
	SessionPath string
	Session     Session
}

// InitSession creates a new session directory at root (creating it if it
// doesn't exist), scaffolds the standard subfolders, and writes the initial
// document transactionally.
func InitSession(root string, book domain.Book, state compose.State) (*SessionHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create session root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}

	h := &SessionHandle{
		Root:        root,
		SessionPath: filepath.Join(root, SessionFileName),
		Session:     Session{SchemaVersion: sessionSchemaVersion, Book: book, State: state},
	}
	if err := Save(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Open loads an existing session from the given root directory. If the
// current document cannot be read, parsed or validated, it attempts the
// latest backup.
func Open(root string) (*SessionHandle, error) {
	spath := filepath.Join(root, SessionFileName)
	b, err := os.ReadFile(spath)
	if err != nil {
		s, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open session: %w; backup attempt: %v", err, berr)
		}
		return &SessionHandle{Root: root, SessionPath: spath, Session: *s}, nil
	}
	s, perr := parseSession(b)
	if perr != nil {
		bs, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse session: %w; backup attempt: %v", perr, berr)
		}
		return &SessionHandle{Root: root, SessionPath: spath, Session: *bs}, nil
	}
	return &SessionHandle{Root: root, SessionPath: spath, Session: *s}, nil
}

func parseSession(data []byte) (*Session, error) {
	if err := ValidateSession(data); err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the current SessionHandle.Session to disk with transactional
// semantics and a timestamped backup of the previous document (if present).
func Save(h *SessionHandle) error {
	if h == nil {
		return errors.New("nil SessionHandle")
	}
	if h.Root == "" || h.SessionPath == "" {
		return errors.New("invalid SessionHandle: missing paths")
	}
	h.Session.SchemaVersion = sessionSchemaVersion
	data, err := json.MarshalIndent(h.Session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	data = append(data, '\n')

	bdir := filepath.Join(h.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}

	// If a current document exists, copy it to a timestamped backup before
	// replacing.
	if _, statErr := os.Stat(h.SessionPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", SessionFileName, stamp)
		if cerr := copyFile(h.SessionPath, filepath.Join(bdir, bname)); cerr != nil {
			return fmt.Errorf("backup current session: %w", cerr)
		}
	}

	// Transactional write: to temp file in same directory, then rename
	// over target.
	dir := filepath.Dir(h.SessionPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", SessionFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp session: %w", werr)
	}
	// On Windows, replace by removing destination first if needed.
	if _, err := os.Stat(h.SessionPath); err == nil {
		_ = os.Remove(h.SessionPath)
	}
	if rerr := os.Rename(temp, h.SessionPath); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace session: %w", rerr)
	}
	return nil
}

// SaveAs writes the session to a new root folder, scaffolding structure if
// needed, and updates the handle.
func SaveAs(h *SessionHandle, newRoot string) error {
	if h == nil {
		return errors.New("nil SessionHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	h.Root = newRoot
	h.SessionPath = filepath.Join(newRoot, SessionFileName)
	return Save(h)
}

// AutosaveCrashSnapshot writes the in-memory session into the backups
// folder without touching the main document. Used by the crash handler.
func AutosaveCrashSnapshot(h *SessionHandle) (string, error) {
	if h == nil {
		return "", errors.New("nil SessionHandle")
	}
	if h.Root == "" {
		return "", errors.New("invalid SessionHandle: missing root")
	}
	data, err := json.MarshalIndent(h.Session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	bdir := filepath.Join(h.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("%s.%s.autosave", SessionFileName, stamp))
	if err := writeFileSync(path, append(data, '\n')); err != nil {
		return "", fmt.Errorf("write autosave: %w", err)
	}
	return path, nil
}

// writeFileSync writes data to a file and ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}

// openFromLatestBackup tries to open the latest timestamped backup.
func openFromLatestBackup(root string) (*Session, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, SessionFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	s, err := parseSession(b)
	if err != nil {
		return nil, fmt.Errorf("parse latest backup: %w", err)
	}
	return s, nil
}
