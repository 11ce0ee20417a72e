/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestDisabledByDefault(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("telemetry must be opt-in")
	}
	// opt-in without an endpoint is still a no-op
	c2 := New(Config{OptIn: true})
	defer c2.Close()
	if c2.Enabled() {
		t.Fatalf("no endpoint means disabled")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SCV_TELEMETRY_OPT_IN", "yes")
	t.Setenv("SCV_TELEMETRY_URL", "https://example.invalid/events")
	t.Setenv("SCV_TELEMETRY_TIMEOUT_MS", "250")
	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL != "https://example.invalid/events" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("timeout: %v", cfg.Timeout)
	}
}

func TestEventDeliversCompositorPayload(t *testing.T) {
	var mu sync.Mutex
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, &got)
		mu.Unlock()
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()
	c.Event("template_changed", map[string]any{"template": "storybook"})
	c.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		ok := got != nil
		mu.Unlock()
		if ok || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if got == nil {
		t.Fatalf("event never arrived")
	}
	if got["name"] != "template_changed" || got["template"] != "storybook" {
		t.Fatalf("payload: %+v", got)
	}
	if got["version"] == nil || got["os"] == nil {
		t.Fatalf("payload must carry version and os: %+v", got)
	}
}

func TestEventDroppedWhenDisabled(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(Config{OptIn: false, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()
	c.Event("export_requested", nil)
	c.Flush(context.Background())
	time.Sleep(50 * time.Millisecond)
	if hits != 0 {
		t.Fatalf("disabled client must not send, got %d hits", hits)
	}
}

func TestUploadCrashRespectsOptIn(t *testing.T) {
	var mu sync.Mutex
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = b
		mu.Unlock()
	}))
	defer srv.Close()

	off := New(Config{OptIn: false, CrashURL: srv.URL, Timeout: time.Second})
	defer off.Close()
	off.UploadCrash([]byte("report"))
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	if body != nil {
		mu.Unlock()
		t.Fatalf("crash upload must honor opt-in")
	}
	mu.Unlock()

	on := New(Config{OptIn: true, CrashURL: srv.URL, Timeout: time.Second})
	defer on.Close()
	on.UploadCrash([]byte("report"))
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		ok := body != nil
		mu.Unlock()
		if ok || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if string(body) != "report" {
		t.Fatalf("crash body: %q", body)
	}
}
