package treeconv

import (
	"fmt"
	"html"
	"strings"

	"github.com/parentpost/contentconv/document"
)

// ToHTML serializes a document tree to an HTML fragment. A doc with empty
// or missing content yields the empty string.
func (c *Converter) ToHTML(node document.Node) (HTMLResult, error) {
	s := &state{config: c.config}

	var sb strings.Builder
	if node.Type == document.TypeDoc {
		for _, child := range node.Content {
			if err := s.renderBlock(&sb, child); err != nil {
				return HTMLResult{}, err
			}
		}
	} else if err := s.renderBlock(&sb, node); err != nil {
		return HTMLResult{}, err
	}

	return HTMLResult{HTML: sb.String(), Warnings: s.warnings}, nil
}

func (s *state) renderBlock(sb *strings.Builder, node document.Node) error {
	switch node.Type {
	case document.TypeParagraph:
		sb.WriteString("<p>")
		if err := s.renderInlineContent(sb, node.Content); err != nil {
			return err
		}
		sb.WriteString("</p>")
		return nil

	case document.TypeHeading:
		level, err := s.headingLevel(node)
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "<h%d>", level)
		if err := s.renderInlineContent(sb, node.Content); err != nil {
			return err
		}
		fmt.Fprintf(sb, "</h%d>", level)
		return nil

	case document.TypeBulletList:
		return s.renderList(sb, node, "ul")

	case document.TypeOrderedList:
		return s.renderList(sb, node, "ol")

	case document.TypeCodeBlock:
		sb.WriteString("<pre><code")
		if language, ok := node.StringAttr("language"); ok && language != "" {
			fmt.Fprintf(sb, ` class="language-%s"`, html.EscapeString(language))
		}
		sb.WriteString(">")
		sb.WriteString(html.EscapeString(node.PlainText()))
		sb.WriteString("</code></pre>")
		return nil

	case document.TypeBlockquote:
		sb.WriteString("<blockquote>")
		for _, child := range node.Content {
			if err := s.renderBlock(sb, child); err != nil {
				return err
			}
		}
		sb.WriteString("</blockquote>")
		return nil

	case document.TypeImage:
		src, _ := node.StringAttr("src")
		alt, _ := node.StringAttr("alt")
		fmt.Fprintf(sb, `<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))
		return nil

	case document.TypeHorizontalRule:
		sb.WriteString("<hr>")
		return nil

	case document.TypeText:
		// Standalone text outside a paragraph; render it inline.
		return s.renderInline(sb, node)

	default:
		if s.strict() {
			return fmt.Errorf("unknown node type: %s", node.Type)
		}
		s.addWarning(
			document.WarningUnknownNode,
			node.Type,
			fmt.Sprintf("unsupported document node %q skipped", node.Type),
		)
		return nil
	}
}

func (s *state) renderList(sb *strings.Builder, node document.Node, tag string) error {
	taskList := tag == "ul" && hasTaskItems(node)
	if taskList {
		sb.WriteString(`<ul data-type="taskList">`)
	} else {
		fmt.Fprintf(sb, "<%s>", tag)
	}
	for _, item := range node.Content {
		if item.Type != document.TypeListItem {
			if s.strict() {
				return fmt.Errorf("%s expects listItem child, got %s", node.Type, item.Type)
			}
			s.addWarning(
				document.WarningUnknownNode,
				item.Type,
				fmt.Sprintf("%s child %q skipped", node.Type, item.Type),
			)
			continue
		}
		if checked, ok := itemChecked(item); taskList && ok {
			fmt.Fprintf(sb, `<li data-type="taskItem" data-checked="%t">`, checked)
		} else {
			sb.WriteString("<li>")
		}
		for _, child := range item.Content {
			if err := s.renderBlock(sb, child); err != nil {
				return err
			}
		}
		sb.WriteString("</li>")
	}
	fmt.Fprintf(sb, "</%s>", tag)
	return nil
}

// itemChecked reads the checked state a task item carries in its attrs.
// JSON decoding yields a native bool, so no numeric coercion is needed.
func itemChecked(item document.Node) (bool, bool) {
	checked, ok := item.Attrs["checked"].(bool)
	return checked, ok
}

func hasTaskItems(node document.Node) bool {
	for _, item := range node.Content {
		if _, ok := itemChecked(item); ok {
			return true
		}
	}
	return false
}

// headingLevel extracts and clamps attrs.level. A missing or invalid level
// is an error in strict mode; best-effort mode warns and defaults to 1.
func (s *state) headingLevel(node document.Node) (int, error) {
	level, ok := node.IntAttr("level")
	if !ok {
		if s.strict() {
			return 0, fmt.Errorf("heading node missing level attribute")
		}
		s.addWarning(
			document.WarningMissingAttribute,
			node.Type,
			"heading missing level attribute; defaulting to 1",
		)
		return 1, nil
	}

	if level < 1 || level > 6 {
		if s.strict() {
			return 0, fmt.Errorf("heading level %d out of range 1-6", level)
		}
		s.addWarning(
			document.WarningMissingAttribute,
			node.Type,
			fmt.Sprintf("heading level %d out of range; clamped", level),
		)
		if level < 1 {
			level = 1
		} else {
			level = 6
		}
	}

	return level, nil
}

func (s *state) renderInlineContent(sb *strings.Builder, content []document.Node) error {
	for _, child := range content {
		if err := s.renderInline(sb, child); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) renderInline(sb *strings.Builder, node document.Node) error {
	switch node.Type {
	case document.TypeText:
		rendered := node.Text
		// Only the code mark escapes its text, matching what the editor
		// emits; escaping happens before any wrapping so outer marks keep
		// their tags intact.
		for _, mark := range node.Marks {
			if mark.Type == document.MarkCode {
				rendered = html.EscapeString(rendered)
				break
			}
		}
		// Marks wrap in array order: the first mark is innermost.
		for _, mark := range node.Marks {
			opening, closing, err := s.markTags(mark)
			if err != nil {
				return err
			}
			rendered = opening + rendered + closing
		}
		sb.WriteString(rendered)
		return nil

	case document.TypeImage:
		src, _ := node.StringAttr("src")
		alt, _ := node.StringAttr("alt")
		fmt.Fprintf(sb, `<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))
		return nil

	default:
		if s.strict() {
			return fmt.Errorf("unknown inline node type: %s", node.Type)
		}
		s.addWarning(
			document.WarningUnknownNode,
			node.Type,
			fmt.Sprintf("unsupported inline node %q skipped", node.Type),
		)
		return nil
	}
}

func (s *state) markTags(mark document.Mark) (opening, closing string, err error) {
	switch mark.Type {
	case document.MarkBold:
		return "<strong>", "</strong>", nil
	case document.MarkItalic:
		return "<em>", "</em>", nil
	case document.MarkUnderline:
		return "<u>", "</u>", nil
	case document.MarkStrikethrough:
		return "<del>", "</del>", nil
	case document.MarkCode:
		return "<code>", "</code>", nil
	case document.MarkLink:
		href, _ := mark.Attrs["href"].(string)
		if href == "" {
			// A link without a destination renders as plain text.
			return "", "", nil
		}
		return fmt.Sprintf(`<a href="%s">`, html.EscapeString(href)), "</a>", nil
	default:
		if s.strict() {
			return "", "", fmt.Errorf("unknown mark type: %s", mark.Type)
		}
		s.addWarning(
			document.WarningUnknownMark,
			mark.Type,
			fmt.Sprintf("unsupported mark %q dropped", mark.Type),
		)
		return "", "", nil
	}
}
