/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	applog "storycanvas/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// CacheDirName stores per-session ephemeral data under the session root.
	CacheDirName  = ".scv"
	CacheFileName = "cache.sqlite"
)

// CachePath returns the full path to the session's thumbnail cache file.
func CachePath(sessionRoot string) string {
	return filepath.Join(sessionRoot, CacheDirName, CacheFileName)
}

// InitOrOpenCache ensures the per-session SQLite cache exists at
// .scv/cache.sqlite, opens it, enables WAL mode, and ensures the thumbs
// table exists. Callers close the returned *sql.DB when done.
func InitOrOpenCache(sessionRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "cache_init").With(
		slog.String("root", sessionRoot),
	)
	if strings.TrimSpace(sessionRoot) == "" {
		return nil, errors.New("session root is required")
	}
	if err := os.MkdirAll(filepath.Join(sessionRoot, CacheDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	path := CachePath(sessionRoot)
	uriPath := filepath.ToSlash(path)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := ensureCacheSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure cache schema failed", slog.Any("err", err))
		return nil, err
	}
	return db, nil
}

func ensureCacheSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		// One row per rendered thumbnail variant. config_hash fingerprints
		// the resolved page config so stale thumbnails miss instead of
		// showing outdated styling.
		`CREATE TABLE IF NOT EXISTS thumbs (
			id           INTEGER PRIMARY KEY,
			page_idx     INTEGER NOT NULL,
			config_hash  TEXT    NOT NULL,
			w            INTEGER NOT NULL,
			h            INTEGER NOT NULL,
			blob         BLOB    NOT NULL,
			size         INTEGER NOT NULL,
			updated_at   TEXT    NOT NULL,
			last_access  TEXT
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_thumbs_variant ON thumbs(page_idx, config_hash, w, h);`,
		`CREATE INDEX IF NOT EXISTS idx_thumbs_access ON thumbs(last_access);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("cache schema: %w", err)
		}
	}
	return nil
}

// GetThumb returns the blob for a thumbnail variant and updates its access
// time. A nil blob with nil error means a cache miss.
func GetThumb(ctx context.Context, sessionRoot string, pageIdx int, configHash string, w, h int) ([]byte, error) {
	db, err := InitOrOpenCache(sessionRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var blob []byte
	err = db.QueryRowContext(ctx,
		`SELECT blob FROM thumbs WHERE page_idx=? AND config_hash=? AND w=? AND h=?`,
		pageIdx, configHash, w, h).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query thumb: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, _ = db.ExecContext(ctx,
		`UPDATE thumbs SET last_access=? WHERE page_idx=? AND config_hash=? AND w=? AND h=?`,
		now, pageIdx, configHash, w, h)
	return blob, nil
}

// PutThumb upserts a thumbnail blob and enforces the cache size cap via
// LRU eviction.
func PutThumb(ctx context.Context, sessionRoot string, pageIdx int, configHash string, w, h int, blob []byte) error {
	db, err := InitOrOpenCache(sessionRoot)
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.ExecContext(ctx, `INSERT INTO thumbs(page_idx,config_hash,w,h,blob,size,updated_at,last_access)
		VALUES(?,?,?,?,?,?,?,?)
		ON CONFLICT(page_idx,config_hash,w,h) DO UPDATE SET blob=excluded.blob, size=excluded.size, updated_at=excluded.updated_at, last_access=excluded.last_access`,
		pageIdx, configHash, w, h, blob, len(blob), now, now)
	if err != nil {
		return fmt.Errorf("upsert thumb: %w", err)
	}
	if capBytes := MaxThumbBytesFromEnv(); capBytes > 0 {
		return EvictThumbsToFit(ctx, db, capBytes)
	}
	return nil
}

// GetOrCreateThumb fetches a thumbnail or generates and stores it using
// the provided generator.
func GetOrCreateThumb(ctx context.Context, sessionRoot string, pageIdx int, configHash string, w, h int, gen func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := GetThumb(ctx, sessionRoot, pageIdx, configHash, w, h); err != nil {
		return nil, err
	} else if b != nil {
		return b, nil
	}
	if gen == nil {
		return nil, nil
	}
	data, err := gen(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	if err := PutThumb(ctx, sessionRoot, pageIdx, configHash, w, h, data); err != nil {
		return nil, err
	}
	return data, nil
}

// EvictThumbsToFit deletes least-recently-used rows until the total size
// is at most capBytes.
func EvictThumbsToFit(ctx context.Context, db *sql.DB, capBytes int64) error {
	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM thumbs`).Scan(&total); err != nil {
		return fmt.Errorf("sum thumbs size: %w", err)
	}
	if total <= capBytes {
		return nil
	}
	rows, err := db.QueryContext(ctx, `SELECT id, size FROM thumbs ORDER BY
		CASE WHEN last_access IS NULL THEN 0 ELSE 1 END ASC, last_access ASC`)
	if err != nil {
		return fmt.Errorf("select victims: %w", err)
	}
	toDelete := make([]int64, 0, 32)
	cur := total
	for rows.Next() {
		var id, sz int64
		if err := rows.Scan(&id, &sz); err != nil {
			_ = rows.Close()
			return err
		}
		toDelete = append(toDelete, id)
		cur -= sz
		if cur <= capBytes {
			break
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	// Close the cursor before attempting to write.
	if err := rows.Close(); err != nil {
		return err
	}
	if len(toDelete) == 0 {
		return nil
	}
	q := strings.Builder{}
	q.WriteString(`DELETE FROM thumbs WHERE id IN (`)
	args := make([]any, len(toDelete))
	for i, v := range toDelete {
		if i > 0 {
			q.WriteString(",")
		}
		q.WriteString("?")
		args[i] = v
	}
	q.WriteString(")")
	if _, err := db.ExecContext(ctx, q.String(), args...); err != nil {
		return fmt.Errorf("evict delete: %w", err)
	}
	return nil
}

// TotalThumbBytes returns the total bytes tracked by thumbs.size.
func TotalThumbBytes(ctx context.Context, sessionRoot string) (int64, error) {
	db, err := InitOrOpenCache(sessionRoot)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM thumbs`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// MaxThumbBytesFromEnv reads SCV_THUMBS_MAX_BYTES, defaulting to 64MB.
func MaxThumbBytesFromEnv() int64 {
	v := os.Getenv("SCV_THUMBS_MAX_BYTES")
	if v == "" {
		return 64 * 1024 * 1024
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 64 * 1024 * 1024
	}
	return n
}
