/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"storycanvas/internal/template"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are treated as read-only overrides
// at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible
// way. Unknown fields are ignored on unmarshal, so older builds tolerate
// newer files.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
}

// CompositorConfig holds the defaults a fresh book opens with. IDs that no
// longer exist fall back to the built-in defaults at load time.
type CompositorConfig struct {
	Template string `yaml:"template"`
	Theme    string `yaml:"color_theme"`
	Font     string `yaml:"font"`
	PageSize string `yaml:"page_size"`
}

// EditorConfig tunes the edit surface.
type EditorConfig struct {
	GuideThresholdPx float64 `yaml:"guide_threshold_px"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	General       GeneralConfig    `yaml:"general"`
	Compositor    CompositorConfig `yaml:"compositor"`
	Editor        EditorConfig     `yaml:"editor"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Compositor: CompositorConfig{
			Template: template.DefaultID,
			Theme:    template.DefaultThemeID,
			Font:     template.DefaultFontID,
			PageSize: template.DefaultPageSizeID,
		},
		Editor:  EditorConfig{GuideThresholdPx: 6},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTelemetryOptIn = "SCV_TELEMETRY_OPT_IN"
	EnvTemplate       = "SCV_TEMPLATE"
	EnvColorTheme     = "SCV_COLOR_THEME"
	EnvFont           = "SCV_FONT"
	EnvPageSize       = "SCV_PAGE_SIZE"
	EnvLogLevel       = "SCV_LOG_LEVEL"
	EnvLogFormat      = "SCV_LOG_FORMAT"
	EnvLogSource      = "SCV_LOG_SOURCE"
	EnvLogFile        = "SCV_LOG_FILE"
)

// Path returns the per-user config file path.
func Path() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "StoryCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "StoryCanvas")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "storycanvas")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, merges
// environment overrides, and sanitizes compositor IDs against the built-in
// registries.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	sanitize(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if v := strings.TrimSpace(src.Compositor.Template); v != "" {
		dst.Compositor.Template = v
	}
	if v := strings.TrimSpace(src.Compositor.Theme); v != "" {
		dst.Compositor.Theme = v
	}
	if v := strings.TrimSpace(src.Compositor.Font); v != "" {
		dst.Compositor.Font = v
	}
	if v := strings.TrimSpace(src.Compositor.PageSize); v != "" {
		dst.Compositor.PageSize = v
	}
	if src.Editor.GuideThresholdPx > 0 {
		dst.Editor.GuideThresholdPx = src.Editor.GuideThresholdPx
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTemplate)); v != "" {
		cfg.Compositor.Template = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvColorTheme)); v != "" {
		cfg.Compositor.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFont)); v != "" {
		cfg.Compositor.Font = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPageSize)); v != "" {
		cfg.Compositor.PageSize = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// sanitize drops unknown registry IDs so a stale config never breaks the
// compositor.
func sanitize(cfg *AppConfig) {
	if !template.Known(cfg.Compositor.Template) {
		cfg.Compositor.Template = template.DefaultID
	}
	if !template.KnownTheme(cfg.Compositor.Theme) {
		cfg.Compositor.Theme = template.DefaultThemeID
	}
	cfg.Compositor.Font = template.FontByID(cfg.Compositor.Font).ID
	cfg.Compositor.PageSize = template.Size(cfg.Compositor.PageSize).ID
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by
// environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var name string
	switch key {
	case "general.telemetry_opt_in":
		name = EnvTelemetryOptIn
	case "compositor.template":
		name = EnvTemplate
	case "compositor.color_theme":
		name = EnvColorTheme
	case "compositor.font":
		name = EnvFont
	case "compositor.page_size":
		name = EnvPageSize
	case "logging.level":
		name = EnvLogLevel
	case "logging.format":
		name = EnvLogFormat
	case "logging.source":
		name = EnvLogSource
	case "logging.file":
		name = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}
