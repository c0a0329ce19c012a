// Package mdconv bridges Markdown and HTML. Markdown rendering is handled
// by goldmark with GFM extensions; the reverse direction is handled by
// html-to-markdown with custom rules for the editor's task-list markup.
package mdconv

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// Converter converts between Markdown and HTML fragments. Safe for
// concurrent use.
type Converter struct {
	config   Config
	markdown goldmark.Markdown
	reverse  *md.Converter
	policy   *bluemonday.Policy
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extensions := []goldmark.Extender{extension.GFM}
	if cfg.HighlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.HighlightStyle),
		))
	}

	return &Converter{
		config:   cfg,
		markdown: goldmark.New(goldmark.WithExtensions(extensions...)),
		reverse:  newReverseConverter(),
		policy:   sanitizePolicy(cfg.Sanitize),
	}, nil
}

// MarkdownToHTML renders Markdown to an HTML fragment. GFM checkbox list
// items are rewritten into the editor's task-list markup.
func (c *Converter) MarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	out := buf.String()
	if strings.Contains(out, `type="checkbox"`) {
		rewritten, err := rewriteTaskLists(out)
		if err != nil {
			return "", fmt.Errorf("failed to rewrite task lists: %w", err)
		}
		out = rewritten
	}

	return out, nil
}

// rewriteTaskLists converts GFM checkbox markup into the data-attribute
// form the editor expects: ul[data-type=taskList] holding
// li[data-type=taskItem][data-checked].
func rewriteTaskLists(input string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", err
	}

	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		checkbox := item.Find(`input[type="checkbox"]`).First()
		if checkbox.Length() == 0 {
			return
		}

		checked := "false"
		if _, ok := checkbox.Attr("checked"); ok {
			checked = "true"
		}

		item.SetAttr("data-type", "taskItem")
		item.SetAttr("data-checked", checked)
		checkbox.Remove()
		item.Closest("ul").SetAttr("data-type", "taskList")
	})

	return doc.Find("body").Html()
}

func sanitizePolicy(mode SanitizeMode) *bluemonday.Policy {
	switch mode {
	case SanitizeUGC:
		return bluemonday.UGCPolicy()
	case SanitizeStrict:
		return bluemonday.StrictPolicy()
	default:
		return nil
	}
}
