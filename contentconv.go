// Package contentconv converts newsletter article content between Markdown,
// HTML fragments, and the editor's JSON document tree. Every operation on
// the facade is fail-soft: conversion problems are logged and surfaced as
// warnings on a degraded-but-valid result, never as an error or panic to
// the caller.
package contentconv

import (
	"fmt"
	"log/slog"

	"github.com/parentpost/contentconv/document"
	"github.com/parentpost/contentconv/fidelity"
	"github.com/parentpost/contentconv/mdconv"
	"github.com/parentpost/contentconv/treeconv"
)

// Config holds facade configuration options.
type Config struct {
	Markdown mdconv.Config   `json:"markdown,omitempty"`
	Tree     treeconv.Config `json:"tree,omitempty"`
	// MinFidelity is the advisory round-trip fidelity threshold used by
	// ValidateConversion. Zero selects fidelity.DefaultMinFidelity.
	MinFidelity int `json:"minFidelity,omitempty"`
	// Logger receives diagnostics for swallowed conversion failures. Nil
	// selects slog.Default().
	Logger *slog.Logger `json:"-"`
}

// Converter is the content conversion facade. It holds no per-call state
// and is safe for concurrent use.
type Converter struct {
	markdown    *mdconv.Converter
	tree        *treeconv.Converter
	minFidelity int
	logger      *slog.Logger
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	markdown, err := mdconv.New(config.Markdown)
	if err != nil {
		return nil, fmt.Errorf("markdown bridge: %w", err)
	}
	tree, err := treeconv.New(config.Tree)
	if err != nil {
		return nil, fmt.Errorf("tree bridge: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	minFidelity := config.MinFidelity
	if minFidelity <= 0 {
		minFidelity = fidelity.DefaultMinFidelity
	}

	return &Converter{
		markdown:    markdown,
		tree:        tree,
		minFidelity: minFidelity,
		logger:      logger,
	}, nil
}

// MarkdownToHTML renders Markdown to an HTML fragment. On failure the
// original Markdown is returned unchanged with a warning.
func (c *Converter) MarkdownToHTML(markdown string) Result {
	out, err := c.safeMarkdownToHTML(markdown)
	if err != nil {
		c.logger.Warn("markdown to html conversion degraded", "error", err)
		return Result{
			Success:  true,
			Content:  markdown,
			Warnings: []string{degradedWarning("markdown to html", err)},
		}
	}
	return Result{Success: true, Content: out}
}

// HTMLToMarkdown converts an HTML fragment to Markdown. On failure the
// original HTML is returned unchanged with a warning.
func (c *Converter) HTMLToMarkdown(input string) Result {
	out, err := c.safeHTMLToMarkdown(input)
	if err != nil {
		c.logger.Warn("html to markdown conversion degraded", "error", err)
		return Result{
			Success:  true,
			Content:  input,
			Warnings: []string{degradedWarning("html to markdown", err)},
		}
	}
	return Result{Success: true, Content: out}
}

// MarkdownToTree converts Markdown to a document tree by rendering it to
// HTML and parsing the result. On failure it degrades to a single-paragraph
// document wrapping the raw Markdown, so the caller always receives a
// valid, renderable tree.
func (c *Converter) MarkdownToTree(markdown string) TreeResult {
	htmlResult := c.MarkdownToHTML(markdown)

	res, err := c.safeFromHTML(htmlResult.Content)
	if err != nil {
		c.logger.Warn("markdown to tree conversion degraded", "error", err)
		return TreeResult{
			Success: true,
			Doc:     markdownFallbackDoc(markdown),
			Warnings: append(htmlResult.Warnings,
				degradedWarning("markdown to tree", err)),
		}
	}

	return TreeResult{
		Success:  true,
		Doc:      res.Doc,
		Warnings: append(htmlResult.Warnings, flattenWarnings(res.Warnings)...),
	}
}

// HTMLToTree parses an HTML fragment into a document tree. Malformed input
// degrades to the minimal valid document.
func (c *Converter) HTMLToTree(input string) TreeResult {
	res, err := c.safeFromHTML(input)
	if err != nil {
		c.logger.Warn("html to tree conversion degraded", "error", err)
		return TreeResult{
			Success:  true,
			Doc:      document.EmptyDoc(),
			Warnings: []string{degradedWarning("html to tree", err)},
		}
	}
	return TreeResult{Success: true, Doc: res.Doc, Warnings: flattenWarnings(res.Warnings)}
}

// TreeToHTML serializes a document tree to an HTML fragment. Unlike the
// string transcoders there is no string-shaped input to fall back to, so a
// strict-mode validation failure reports an error.
func (c *Converter) TreeToHTML(doc document.Node) Result {
	res, err := c.safeToHTML(doc)
	if err != nil {
		c.logger.Warn("tree to html conversion failed", "error", err)
		return Result{Errors: []string{err.Error()}}
	}
	return Result{Success: true, Content: res.HTML, Warnings: flattenWarnings(res.Warnings)}
}

// TreeToMarkdown serializes a document tree to Markdown via HTML.
func (c *Converter) TreeToMarkdown(doc document.Node) Result {
	htmlResult := c.TreeToHTML(doc)
	if !htmlResult.Success {
		return htmlResult
	}

	out, err := c.safeHTMLToMarkdown(htmlResult.Content)
	if err != nil {
		c.logger.Warn("tree to markdown conversion degraded", "error", err)
		return Result{
			Success:  true,
			Content:  htmlResult.Content,
			Warnings: append(htmlResult.Warnings, degradedWarning("tree to markdown", err)),
		}
	}

	return Result{Success: true, Content: out, Warnings: htmlResult.Warnings}
}

// RepairMarkdown balances unmatched inline delimiters. Best effort only.
func (c *Converter) RepairMarkdown(markdown string) string {
	return mdconv.Repair(markdown)
}

// ValidateConversion scores how much textual content survived a conversion
// and attaches an advisory warning when the fidelity falls below the
// configured threshold. Low fidelity never blocks success.
func (c *Converter) ValidateConversion(original, converted string) Result {
	report := fidelity.Validate(original, converted, c.minFidelity)
	score := report.Fidelity
	return Result{
		Success:  true,
		Content:  converted,
		Warnings: report.Warnings,
		Fidelity: &score,
	}
}

// markdownFallbackDoc wraps raw Markdown in a minimal document. Empty input
// maps to the empty doc rather than a paragraph holding an empty text node.
func markdownFallbackDoc(markdown string) document.Node {
	if markdown == "" {
		return document.EmptyDoc()
	}
	return document.NewDoc(document.NewParagraph(document.NewText(markdown, nil)))
}

func degradedWarning(operation string, err error) string {
	return fmt.Sprintf("%s conversion degraded, original preserved: %v", operation, err)
}

// The safe* wrappers contain panics from the underlying bridges so the
// facade's never-throw contract holds for any input.

func (c *Converter) safeMarkdownToHTML(markdown string) (out string, err error) {
	defer recoverConversion("markdown to html", &err)
	return c.markdown.MarkdownToHTML(markdown)
}

func (c *Converter) safeHTMLToMarkdown(input string) (out string, err error) {
	defer recoverConversion("html to markdown", &err)
	return c.markdown.HTMLToMarkdown(input)
}

func (c *Converter) safeFromHTML(input string) (res treeconv.TreeResult, err error) {
	defer recoverConversion("html to tree", &err)
	return c.tree.FromHTML(input)
}

func (c *Converter) safeToHTML(doc document.Node) (res treeconv.HTMLResult, err error) {
	defer recoverConversion("tree to html", &err)
	return c.tree.ToHTML(doc)
}

func recoverConversion(operation string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s conversion panicked: %v", operation, r)
	}
}
