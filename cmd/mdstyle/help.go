package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstyle [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown to Bootstrap-styled HTML fragments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or '-' for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin: default stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -s, --style <path>        Style YAML file")
	fmt.Fprintln(w, "      --hard-breaks         Render soft line breaks as <br />")
	fmt.Fprintln(w, "      --no-typographer      Disable smart quotes and dashes")
	fmt.Fprintln(w, "      --no-linkify          Do not link bare URLs")
	fmt.Fprintln(w, "      --no-html             Escape raw HTML")
	fmt.Fprintln(w, "      --no-task-lists       Do not parse task list checkboxes")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code")
	fmt.Fprintln(w, "      --theme <name>        Highlighting theme (default: github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Info:")
	fmt.Fprintln(w, "      --print-css           Print the highlighting stylesheet")
	fmt.Fprintln(w, "      --print-style         Print the effective style as YAML")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDSTYLE_CONFIG, MDSTYLE_STYLE, MDSTYLE_INPUT_DIR, MDSTYLE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDSTYLE_THEME, MDSTYLE_WORKERS, MDSTYLE_LOG_FORMAT")
}
