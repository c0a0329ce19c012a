// Package treeconv converts between the editor's JSON document tree and
// HTML fragments. Serialization is a recursive tree walk; parsing is built
// on golang.org/x/net/html with a mark stack so nested inline tags compose
// into a full marks array.
package treeconv

import (
	"github.com/parentpost/contentconv/document"
)

// Converter converts document trees to and from HTML fragments.
type Converter struct {
	config Config
}

// HTMLResult holds the output of a tree-to-HTML conversion.
type HTMLResult struct {
	HTML     string             `json:"html"`
	Warnings []document.Warning `json:"warnings,omitempty"`
}

// TreeResult holds the output of an HTML-to-tree conversion. Doc is always
// a valid doc node with at least one child.
type TreeResult struct {
	Doc      document.Node      `json:"doc"`
	Warnings []document.Warning `json:"warnings,omitempty"`
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{config: cfg}, nil
}

// state carries per-call diagnostics so a Converter stays safe for
// concurrent use.
type state struct {
	config   Config
	warnings []document.Warning
}

func (s *state) addWarning(warnType document.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, document.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *state) strict() bool {
	return s.config.ResolutionMode == ResolutionStrict
}
