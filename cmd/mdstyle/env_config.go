package main

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdstyle/internal/config"
)

const envPrefix = "MDSTYLE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSTYLE_CONFIG: config file name or path
	Style      string // MDSTYLE_STYLE: style YAML file
	InputDir   string // MDSTYLE_INPUT_DIR: default input directory
	OutputDir  string // MDSTYLE_OUTPUT_DIR: default output directory
	Theme      string // MDSTYLE_THEME: highlighting theme, enables highlighting
	Workers    int    // MDSTYLE_WORKERS: parallel workers
	LogFormat  string // MDSTYLE_LOG_FORMAT: text or json
}

// knownEnvVars lists valid MDSTYLE_* environment variables.
var knownEnvVars = map[string]bool{
	"MDSTYLE_CONFIG":     true,
	"MDSTYLE_STYLE":      true,
	"MDSTYLE_INPUT_DIR":  true,
	"MDSTYLE_OUTPUT_DIR": true,
	"MDSTYLE_THEME":      true,
	"MDSTYLE_WORKERS":    true,
	"MDSTYLE_LOG_FORMAT": true,
}

// loadEnvConfig reads the MDSTYLE_* variables. Invalid worker counts are ignored.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.Getenv("MDSTYLE_CONFIG"),
		Style:      env.Getenv("MDSTYLE_STYLE"),
		InputDir:   env.Getenv("MDSTYLE_INPUT_DIR"),
		OutputDir:  env.Getenv("MDSTYLE_OUTPUT_DIR"),
		Theme:      env.Getenv("MDSTYLE_THEME"),
		LogFormat:  env.Getenv("MDSTYLE_LOG_FORMAT"),
	}

	if workers := env.Getenv("MDSTYLE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs unrecognized MDSTYLE_* variables, which are
// usually typos.
func warnUnknownEnvVars(env *Environment, log logrus.FieldLogger) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.WithField("variable", name).Warn("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig fills config values that the file left empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style.File == "" {
		cfg.Style.File = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Theme != "" && cfg.Highlight.Theme == "" {
		cfg.Highlight.Theme = env.Theme
		cfg.Highlight.Enabled = true
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
