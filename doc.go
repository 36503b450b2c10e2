// Package mdstyle renders Markdown to HTML fragments styled for a CSS design
// system (Bootstrap 5 classes by default).
//
// # Quick Start
//
//	html := mdstyle.Render("# Title\n\nSome **bold** text.")
//	// <h3 class="fw-semibold mb-3">Title</h3>
//	// <p class="mb-3">Some <strong class="fw-bold">bold</strong> text.</p>
//
// Render never fails: empty input yields "", and a document that cannot be
// processed yields FallbackHTML while the cause is logged.
//
// # Rendering Pipeline
//
//  1. Parsing via goldmark (CommonMark, tables, strikethrough, footnotes,
//     task lists, definition lists, linkify, typographer, heading attributes
//     and YAML front matter) into a markdown-it style token tree
//  2. Styling: classes merged per token type, headings remapped (h1 becomes
//     h3 by default), external links opened in a new tab with
//     rel="noopener noreferrer", task lists detected, images lazy-loaded
//  3. Serialization, with fenced code wrapped in a styled <pre> and tables
//     wrapped in a responsive container
//
// # Configuration
//
// Use functional options to customize a Service:
//
//	style, err := mdstyle.LoadStyle("brand.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc, err := mdstyle.New(
//	    mdstyle.WithStyle(style),
//	    mdstyle.WithHighlighting("monokai"),
//	    mdstyle.WithLogger(logger),
//	)
//
// A Service is safe for concurrent use. Use Convert instead of Render when
// the error or the document front matter is needed.
package mdstyle
