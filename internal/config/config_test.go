package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		t.Setenv("PWD", abs)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" || cfg.Output.DefaultDir != "" {
		t.Errorf("default dirs = %q, %q, want empty", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
	}
	if cfg.Style.File != "" {
		t.Errorf("Style.File = %q, want empty", cfg.Style.File)
	}
	if cfg.Highlight.Enabled {
		t.Error("Highlight.Enabled = true, want false")
	}
	if cfg.Render.HardBreaks {
		t.Error("Render.HardBreaks = true, want false")
	}
	for name, b := range map[string]*bool{
		"typographer": cfg.Render.Typographer,
		"linkify":     cfg.Render.Linkify,
		"html":        cfg.Render.HTML,
		"taskLists":   cfg.Render.TaskLists,
	} {
		if !Enabled(b) {
			t.Errorf("render.%s disabled by default", name)
		}
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want warn/text", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	if !Enabled(nil) {
		t.Error("Enabled(nil) = false, want true")
	}
	if !Enabled(&yes) {
		t.Error("Enabled(&true) = false")
	}
	if Enabled(&no) {
		t.Error("Enabled(&false) = true")
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Length limits and enumerations
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{
			name:   "log level case insensitive",
			modify: func(c *Config) { c.Log.Level = "DEBUG" },
		},
		{
			name:   "json format",
			modify: func(c *Config) { c.Log.Format = "json" },
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "theme too long",
			modify:  func(c *Config) { c.Highlight.Theme = strings.Repeat("x", MaxThemeLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "theme at limit",
			modify: func(c *Config) { c.Highlight.Theme = strings.Repeat("x", MaxThemeLength) },
		},
		{
			name:    "style path too long",
			modify:  func(c *Config) { c.Style.File = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			modify:  func(c *Config) { c.Output.DefaultDir = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength_Message(t *testing.T) {
	t.Parallel()

	err := validateFieldLength("style.file", "abcdef", 3)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("error = %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "style.file (6 chars, max 3)") {
		t.Errorf("error = %q, want field name and sizes", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Reading config files by path
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeConfig(t, dir, "full.yaml", `
input:
  defaultDir: ./docs
output:
  defaultDir: ./site
style:
  file: styles/blog.yaml
render:
  hardBreaks: true
  typographer: false
  html: false
highlight:
  enabled: true
  theme: monokai
log:
  level: debug
  format: json
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "./docs" || cfg.Output.DefaultDir != "./site" {
			t.Errorf("dirs = %+v %+v", cfg.Input, cfg.Output)
		}
		if want := filepath.Join(dir, "styles", "blog.yaml"); cfg.Style.File != want {
			t.Errorf("Style.File = %q, want %q", cfg.Style.File, want)
		}
		if !cfg.Render.HardBreaks {
			t.Error("Render.HardBreaks = false")
		}
		if Enabled(cfg.Render.Typographer) || Enabled(cfg.Render.HTML) {
			t.Error("explicit false toggles read as enabled")
		}
		if !Enabled(cfg.Render.Linkify) || !Enabled(cfg.Render.TaskLists) {
			t.Error("unset toggles read as disabled")
		}
		if !cfg.Highlight.Enabled || cfg.Highlight.Theme != "monokai" {
			t.Errorf("Highlight = %+v", cfg.Highlight)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v", cfg.Log)
		}
	})

	t.Run("partial config keeps log defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "highlight:\n  enabled: true\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "warn" {
			t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
		}
	})

	t.Run("absolute style path unchanged", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		abs := filepath.Join(dir, "abs.yaml")
		path := writeConfig(t, dir, "c.yaml", "style:\n  file: "+abs+"\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style.File != abs {
			t.Errorf("Style.File = %q, want %q", cfg.Style.File, abs)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "css:\n  style: x\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "log:\n  format: xml\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Search in the working and user config directories
// ---------------------------------------------------------------------------

// These tests change the working directory and environment, so they do not
// run in parallel.

func TestLoadConfig_ByName(t *testing.T) {
	t.Run("yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "site.yaml", "log:\n  level: info\n")
		chdir(t, dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
		}
	})

	t.Run("prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "site.yaml", "log:\n  level: info\n")
		writeConfig(t, dir, "site.yml", "log:\n  level: error\n")
		chdir(t, dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %q, want info (from .yaml)", cfg.Log.Level)
		}
	})

	t.Run("user config directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		t.Setenv("HOME", home)
		t.Setenv("AppData", home)
		userDir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("cannot get user config dir")
		}

		appDir := filepath.Join(userDir, AppDir)
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appDir, "blog.yml", "highlight:\n  theme: dracula\n")
		chdir(t, t.TempDir())

		cfg, err := LoadConfig("blog")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Highlight.Theme != "dracula" {
			t.Errorf("Highlight.Theme = %q, want dracula", cfg.Highlight.Theme)
		}
	})

	t.Run("not found lists tried paths", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nonexistent.yaml") || !strings.Contains(err.Error(), "nonexistent.yml") {
			t.Errorf("error = %q, want tried paths", err)
		}
	})
}
