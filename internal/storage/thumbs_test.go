/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
)

func TestThumbPutGetRoundTrip(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	blob := []byte("png-bytes")

	if err := PutThumb(ctx, root, 0, "hash-a", 120, 120, blob); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := GetThumb(ctx, root, 0, "hash-a", 120, 120)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("blob mismatch: %q", got)
	}
	if _, err := os.Stat(CachePath(root)); err != nil {
		t.Fatalf("cache file missing: %v", err)
	}
}

func TestThumbMissOnDifferentConfigHash(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	if err := PutThumb(ctx, root, 0, "hash-a", 120, 120, []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := GetThumb(ctx, root, 0, "hash-b", 120, 120)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("a changed config must miss, got %q", got)
	}
}

func TestGetOrCreateThumbGeneratesOnce(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	calls := 0
	gen := func(context.Context) ([]byte, error) {
		calls++
		return []byte("generated"), nil
	}
	for i := 0; i < 3; i++ {
		b, err := GetOrCreateThumb(ctx, root, 1, "h", 64, 64, gen)
		if err != nil {
			t.Fatalf("get-or-create: %v", err)
		}
		if string(b) != "generated" {
			t.Fatalf("got %q", b)
		}
	}
	if calls != 1 {
		t.Fatalf("generator must run once, ran %d times", calls)
	}
}

func TestGetOrCreateThumbPropagatesGeneratorError(t *testing.T) {
	root := t.TempDir()
	boom := errors.New("boom")
	_, err := GetOrCreateThumb(context.Background(), root, 1, "h", 64, 64, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestThumbEvictionKeepsRecentlyUsed(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	big := make([]byte, 1024)

	// Three 1KB entries, then cap at 2KB: the oldest by access time goes.
	t.Setenv("SCV_THUMBS_MAX_BYTES", "1048576") // no eviction during setup
	for i := 0; i < 3; i++ {
		if err := PutThumb(ctx, root, i, "h", 64, 64, big); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}

	db, err := InitOrOpenCache(root)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer db.Close()
	if err := EvictThumbsToFit(ctx, db, 2048); err != nil {
		t.Fatalf("evict: %v", err)
	}

	total, err := TotalThumbBytes(ctx, root)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total > 2048 {
		t.Fatalf("eviction must respect the cap, total %d", total)
	}
	// The last inserted entry has the newest access time and survives.
	if b, err := GetThumb(ctx, root, 2, "h", 64, 64); err != nil || b == nil {
		t.Fatalf("newest entry must survive eviction: %v %v", b, err)
	}
}
