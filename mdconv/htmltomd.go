package mdconv

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// HTMLToMarkdown converts an HTML fragment to Markdown. When a sanitize
// mode is configured the input is cleaned with bluemonday first.
func (c *Converter) HTMLToMarkdown(input string) (string, error) {
	if c.policy != nil {
		input = c.policy.Sanitize(input)
	}

	out, err := c.reverse.ConvertString(input)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return strings.TrimSpace(out), nil
}

func newReverseConverter() *md.Converter {
	conv := md.NewConverter("", true, &md.Options{
		EmDelimiter:      "*",
		StrongDelimiter:  "**",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		HorizontalRule:   "---",
	})
	conv.Use(plugin.GitHubFlavored())

	// Task items carry their state in data attributes rather than checkbox
	// inputs, so the GFM task-list rule never sees them.
	conv.AddRules(md.Rule{
		Filter: []string{"li"},
		Replacement: func(content string, selec *goquery.Selection, _ *md.Options) *string {
			if selec.AttrOr("data-type", "") != "taskItem" {
				return nil
			}

			marker := "- [ ] "
			if selec.AttrOr("data-checked", "false") == "true" {
				marker = "- [x] "
			}
			return md.String(marker + strings.TrimSpace(content) + "\n")
		},
	})

	// The tree renderer paragraph-wraps every list item. Trimming a lone
	// paragraph keeps sibling items joined by a single newline instead of
	// the blank line a paragraph normally earns.
	conv.AddRules(md.Rule{
		Filter: []string{"p"},
		Replacement: func(content string, selec *goquery.Selection, _ *md.Options) *string {
			if selec.Parent().Is("li") && selec.Siblings().Length() == 0 {
				return md.String(strings.TrimSpace(content))
			}
			return nil
		},
	})

	// Markdown has no underline; keep the text, drop the tag.
	conv.AddRules(md.Rule{
		Filter: []string{"u"},
		Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
			return md.String(content)
		},
	})

	return conv
}
