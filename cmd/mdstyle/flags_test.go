package main

import (
	"bytes"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdstyle/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Command-line parsing
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseFlags([]string{
		"-c", "blog", "-o", "site", "-w", "4", "-s", "style.yaml",
		"--hard-breaks", "--no-typographer", "--no-linkify", "--no-html", "--no-task-lists",
		"--theme", "monokai", "--log-format", "json", "-v", "docs",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if len(args) != 1 || args[0] != "docs" {
		t.Errorf("args = %v, want [docs]", args)
	}
	if f.common.config != "blog" || f.output != "site" || f.workers != 4 {
		t.Errorf("flags = %+v", f)
	}
	r := f.render
	if r.style != "style.yaml" || !r.hardBreaks || !r.noTypographer || !r.noLinkify || !r.noHTML || !r.noTaskLists {
		t.Errorf("render flags = %+v", r)
	}
	if r.theme != "monokai" || f.common.logFormat != "json" || !f.common.verbose {
		t.Errorf("flags = %+v", f)
	}
}

func TestParseFlags_StdinDash(t *testing.T) {
	t.Parallel()

	_, args, err := parseFlags([]string{"--no-html", "-"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if len(args) != 1 || args[0] != stdinArg {
		t.Errorf("args = %v, want [-]", args)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	if _, _, err := parseFlags([]string{"--page-size", "a4"}, &stderr); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("no flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.File = "file.yaml"
		mergeFlags(&cliFlags{}, cfg)

		if cfg.Style.File != "file.yaml" || cfg.Log.Level != "warn" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Render.Typographer != nil {
			t.Error("unset flag wrote a toggle")
		}
	})

	t.Run("flags override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		on := true
		cfg.Render.HTML = &on
		mergeFlags(&cliFlags{
			common: commonFlags{quiet: true, logFormat: "json"},
			render: renderFlags{style: "cli.yaml", noHTML: true, highlight: true},
		}, cfg)

		if cfg.Style.File != "cli.yaml" {
			t.Errorf("Style.File = %q", cfg.Style.File)
		}
		if config.Enabled(cfg.Render.HTML) {
			t.Error("--no-html did not disable html")
		}
		if !cfg.Highlight.Enabled || cfg.Highlight.Theme != "" {
			t.Errorf("Highlight = %+v", cfg.Highlight)
		}
		if cfg.Log.Level != "error" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v", cfg.Log)
		}
	})

	t.Run("verbose wins over quiet", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(&cliFlags{common: commonFlags{quiet: true, verbose: true}}, cfg)
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewLogger / TestResolvePoolSize
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level, format string
		wantLevel     logrus.Level
		wantJSON      bool
		wantErr       bool
	}{
		{level: "", format: "", wantLevel: logrus.WarnLevel},
		{level: "debug", format: "json", wantLevel: logrus.DebugLevel, wantJSON: true},
		{level: "ERROR", format: "TEXT", wantLevel: logrus.ErrorLevel},
		{level: "loud", wantErr: true},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log, err := newLogger(&buf, tt.level, tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("newLogger() error = %v, want ErrUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("newLogger() error = %v", err)
			}
			if log.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.wantLevel)
			}
			log.Error("x")
			if got := strings.HasPrefix(buf.String(), "{"); got != tt.wantJSON {
				t.Errorf("output %q, json = %v, want %v", buf.String(), got, tt.wantJSON)
			}
		})
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(3); got != 3 {
		t.Errorf("resolvePoolSize(3) = %d, want 3", got)
	}
	want := min(max(runtime.GOMAXPROCS(0), 1), 16)
	if got := resolvePoolSize(0); got != want {
		t.Errorf("resolvePoolSize(0) = %d, want %d", got, want)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, MaxWorkers} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxWorkers + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
