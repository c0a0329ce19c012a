package mdconv

import "fmt"

// SanitizeMode controls whether incoming HTML is sanitized before it is
// converted to Markdown. Sanitization strips data attributes, so task-list
// markup only survives with SanitizeOff.
type SanitizeMode string

const (
	SanitizeOff    SanitizeMode = "off"
	SanitizeUGC    SanitizeMode = "ugc"
	SanitizeStrict SanitizeMode = "strict"
)

// Config holds Markdown bridge configuration options.
type Config struct {
	// Sanitize selects the bluemonday policy applied to HTML input before
	// HTMLToMarkdown conversion.
	Sanitize SanitizeMode `json:"sanitize,omitempty"`
	// HighlightStyle names a chroma style for fenced code blocks in
	// MarkdownToHTML output. Empty disables syntax highlighting, which keeps
	// code blocks round-trippable.
	HighlightStyle string `json:"highlightStyle,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.Sanitize == "" {
		c.Sanitize = SanitizeOff
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Sanitize != SanitizeOff && c.Sanitize != SanitizeUGC && c.Sanitize != SanitizeStrict {
		return fmt.Errorf("invalid sanitize mode %q", c.Sanitize)
	}
	return nil
}
