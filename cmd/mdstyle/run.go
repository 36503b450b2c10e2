package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdstyle "github.com/alnah/go-mdstyle"
	"github.com/alnah/go-mdstyle/internal/config"
	"github.com/alnah/go-mdstyle/internal/fileutil"
	"github.com/alnah/go-mdstyle/internal/hints"
	"github.com/alnah/go-mdstyle/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrNoInput = errors.New("no input specified")
)

// stdinArg selects standard input as the Markdown source.
const stdinArg = "-"

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args, io.Discard)
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\nRun 'mdstyle --help' for usage.\n", err)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "mdstyle %s\n", Version)
		return ExitSuccess
	}

	if err := runRender(ctx, flags, positional, env); err != nil {
		configName := flags.common.config
		if configName == "" {
			configName = env.Getenv("MDSTYLE_CONFIG")
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRender orchestrates configuration, service setup and rendering.
func runRender(ctx context.Context, flags *cliFlags, positional []string, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig(env)
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	log, err := newLogger(env.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env, log)

	if env.AdjustProcs {
		// Error ignored: maxprocs.Set only fails if GOMAXPROCS is invalid,
		// in which case Go runtime defaults apply.
		undo, _ := maxprocs.Set(maxprocs.Logger(log.Debugf))
		defer undo()
	}

	if flags.printCSS {
		return mdstyle.WriteHighlightCSS(env.Stdout, cfg.Highlight.Theme)
	}

	style, err := loadStyle(cfg.Style.File)
	if err != nil {
		return err
	}
	if flags.printStyle {
		out, err := yamlutil.Marshal(style)
		if err != nil {
			return fmt.Errorf("encoding style: %w", err)
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	svc, err := mdstyle.New(serviceOptions(cfg, style, log)...)
	if err != nil {
		return err
	}

	input := resolveInput(positional, cfg)
	if input == "" {
		return ErrNoInput
	}
	if input == stdinArg {
		return renderStdin(svc, flags.output, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(input, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = resolvePoolSize(workers)
	log.WithFields(logrus.Fields{
		"files":   len(files),
		"workers": workers,
	}).Debug("starting render")

	results := renderBatch(ctx, svc, files, workers, log)
	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by MDSTYLE_CONFIG,
// else returns the defaults.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies command-line flags over the config (CLI wins).
func mergeFlags(f *cliFlags, cfg *config.Config) {
	r := f.render
	if r.style != "" {
		cfg.Style.File = r.style
	}
	if r.hardBreaks {
		cfg.Render.HardBreaks = true
	}
	disable := func(set bool, toggle **bool) {
		if set {
			off := false
			*toggle = &off
		}
	}
	disable(r.noTypographer, &cfg.Render.Typographer)
	disable(r.noLinkify, &cfg.Render.Linkify)
	disable(r.noHTML, &cfg.Render.HTML)
	disable(r.noTaskLists, &cfg.Render.TaskLists)

	if r.highlight {
		cfg.Highlight.Enabled = true
	}
	if r.theme != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Theme = r.theme
	}

	if f.common.logFormat != "" {
		cfg.Log.Format = f.common.logFormat
	}
	switch {
	case f.common.verbose:
		cfg.Log.Level = "debug"
	case f.common.quiet:
		cfg.Log.Level = "error"
	}
}

// loadStyle returns the style file's content, or the built-in style.
func loadStyle(path string) (*mdstyle.Style, error) {
	if path == "" {
		return mdstyle.DefaultStyle(), nil
	}
	style, err := mdstyle.LoadStyle(path)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	return style, nil
}

// serviceOptions translates the merged config into Service options.
func serviceOptions(cfg *config.Config, style *mdstyle.Style, log logrus.FieldLogger) []mdstyle.Option {
	opts := []mdstyle.Option{
		mdstyle.WithStyle(style),
		mdstyle.WithLogger(log),
		mdstyle.WithHardBreaks(cfg.Render.HardBreaks),
		mdstyle.WithTypographer(config.Enabled(cfg.Render.Typographer)),
		mdstyle.WithLinkify(config.Enabled(cfg.Render.Linkify)),
		mdstyle.WithRawHTML(config.Enabled(cfg.Render.HTML)),
		mdstyle.WithTaskLists(config.Enabled(cfg.Render.TaskLists)),
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, mdstyle.WithHighlighting(cfg.Highlight.Theme))
	}
	return opts
}

// resolveInput returns the positional input, or the configured default directory.
func resolveInput(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Input.DefaultDir
}

// resolveOutputDir returns the output flag, or the configured default directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// renderStdin renders standard input to output, or to stdout when output is empty.
func renderStdin(conv Converter, output string, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}
	res, err := conv.Convert(string(content))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if output == "" {
		_, err := io.WriteString(env.Stdout, res.HTML)
		return err
	}
	return writeHTML(output, res.HTML)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if configName != "" && !fileutil.IsFilePath(configName) {
			if dir, dirErr := os.UserConfigDir(); dirErr == nil {
				searched = append(searched, filepath.Join(dir, config.AppDir, configName+".yaml"))
			}
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, mdstyle.ErrUnknownTheme):
		return hints.ForUnknownTheme(styles.Names())
	case errors.Is(err, mdstyle.ErrStyleNotFound),
		errors.Is(err, mdstyle.ErrStyleParse),
		errors.Is(err, mdstyle.ErrInvalidStyle):
		return hints.ForStyleFile()
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, ErrWriteHTML):
		return hints.ForOutputDirectory()
	}
	return ""
}
