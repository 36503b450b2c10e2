package mdstyle

import "github.com/sirupsen/logrus"

// Option configures a Service.
type Option func(*Service)

// WithStyle sets the class tables. A nil style keeps DefaultStyle.
func WithStyle(style *Style) Option {
	return func(s *Service) {
		if style != nil {
			s.cfg.style = style
		}
	}
}

// WithLogger sets where absorbed rendering failures are reported.
// Defaults to logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHighlighting enables chroma syntax highlighting of fenced code using
// CSS classes. theme selects the stylesheet written by WriteHighlightCSS;
// empty means the default theme.
func WithHighlighting(theme string) Option {
	return func(s *Service) {
		s.cfg.highlight = true
		s.cfg.theme = theme
	}
}

// WithHardBreaks renders soft line breaks as <br />.
func WithHardBreaks(enabled bool) Option {
	return func(s *Service) {
		s.cfg.hardBreaks = enabled
	}
}

// WithTypographer toggles smart quotes and dashes. Enabled by default.
func WithTypographer(enabled bool) Option {
	return func(s *Service) {
		s.cfg.parse.Typographer = enabled
	}
}

// WithLinkify toggles automatic links for bare URLs. Enabled by default.
func WithLinkify(enabled bool) Option {
	return func(s *Service) {
		s.cfg.parse.Linkify = enabled
	}
}

// WithRawHTML toggles raw HTML passthrough. Enabled by default; when disabled
// raw HTML is escaped and shown as text. Passed-through HTML is not sanitized.
func WithRawHTML(enabled bool) Option {
	return func(s *Service) {
		s.cfg.parse.HTML = enabled
	}
}

// WithTaskLists toggles checkbox parsing in list items. Enabled by default.
// When disabled, bullet lists whose items start with "[x]" or "[ ]" still get
// the task-list classes.
func WithTaskLists(enabled bool) Option {
	return func(s *Service) {
		s.cfg.parse.TaskLists = enabled
	}
}
