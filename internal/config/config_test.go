/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultsAreSane(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("config version: %d", cfg.ConfigVersion)
	}
	if cfg.General.TelemetryOptIn {
		t.Fatalf("telemetry must default to off")
	}
	if cfg.Compositor.Template != "classic" || cfg.Compositor.PageSize != "8x8" {
		t.Fatalf("unexpected compositor defaults: %+v", cfg.Compositor)
	}
	if cfg.Editor.GuideThresholdPx != 6 {
		t.Fatalf("guide threshold: %g", cfg.Editor.GuideThresholdPx)
	}
}

func TestMergePreservesFileValues(t *testing.T) {
	dst := Defaults()
	var src AppConfig
	data := []byte("compositor:\n  template: storybook\n  color_theme: midnight\nlogging:\n  level: DEBUG\n")
	if err := yaml.Unmarshal(data, &src); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	mergeInto(&dst, &src)
	if dst.Compositor.Template != "storybook" || dst.Compositor.Theme != "midnight" {
		t.Fatalf("merge lost compositor values: %+v", dst.Compositor)
	}
	if dst.Logging.Level != "debug" {
		t.Fatalf("logging level must normalize to lowercase, got %q", dst.Logging.Level)
	}
	if dst.Compositor.Font != "rounded" {
		t.Fatalf("unset fields keep the default, got %q", dst.Compositor.Font)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv(EnvTemplate, "full-bleed")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvTelemetryOptIn, "yes")

	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Compositor.Template != "full-bleed" {
		t.Fatalf("env template override lost: %q", cfg.Compositor.Template)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env level override lost: %q", cfg.Logging.Level)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("env opt-in override lost")
	}

	if name, ok := EnvOverrideFor("compositor.template"); !ok || name != EnvTemplate {
		t.Fatalf("EnvOverrideFor: %q %v", name, ok)
	}
	if _, ok := EnvOverrideFor("compositor.page_size"); ok {
		t.Fatalf("page size is not overridden")
	}
}

func TestSanitizeDropsUnknownIDs(t *testing.T) {
	cfg := Defaults()
	cfg.Compositor.Template = "gone"
	cfg.Compositor.Theme = "gone"
	cfg.Compositor.Font = "gone"
	cfg.Compositor.PageSize = "9x9"
	sanitize(&cfg)
	want := Defaults().Compositor
	if cfg.Compositor != want {
		t.Fatalf("sanitize must fall back to defaults: %+v", cfg.Compositor)
	}
}

func TestConfigRoundTripYAML(t *testing.T) {
	cfg := Defaults()
	cfg.Compositor.Theme = "forest"
	cfg.Logging.File = "/tmp/scv.log"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AppConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Compositor.Theme != "forest" || back.Logging.File != "/tmp/scv.log" {
		t.Fatalf("round trip lost values: %+v", back)
	}
}
