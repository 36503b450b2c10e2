package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds config and output verbosity flags.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// renderFlags holds the Markdown feature toggles.
type renderFlags struct {
	style         string
	hardBreaks    bool
	noTypographer bool
	noLinkify     bool
	noHTML        bool
	noTaskLists   bool
	highlight     bool
	theme         string
}

// cliFlags holds every flag of the command.
type cliFlags struct {
	common     commonFlags
	output     string
	workers    int
	render     renderFlags
	printCSS   bool
	printStyle bool
	version    bool
	help       bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "style YAML file")
	fs.BoolVar(&f.hardBreaks, "hard-breaks", false, "render soft line breaks as <br />")
	fs.BoolVar(&f.noTypographer, "no-typographer", false, "disable smart quotes and dashes")
	fs.BoolVar(&f.noLinkify, "no-linkify", false, "do not link bare URLs")
	fs.BoolVar(&f.noHTML, "no-html", false, "escape raw HTML instead of passing it through")
	fs.BoolVar(&f.noTaskLists, "no-task-lists", false, "do not parse [ ] and [x] checkboxes")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code with CSS classes")
	fs.StringVar(&f.theme, "theme", "", "highlighting theme (implies --highlight)")
}

// parseFlags parses args (without the program name) and returns positional args.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdstyle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.printCSS, "print-css", false, "print the highlighting stylesheet and exit")
	fs.BoolVar(&f.printStyle, "print-style", false, "print the effective style as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
