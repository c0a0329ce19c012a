package treeconv

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/parentpost/contentconv/document"
)

// FromHTML parses an HTML fragment into a document tree. The result is
// always a doc node; when the fragment yields no content a single empty
// paragraph is inserted so the tree is never empty.
func (c *Converter) FromHTML(input string) (TreeResult, error) {
	s := &state{config: c.config}

	nodes, err := html.ParseFragment(strings.NewReader(input), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return TreeResult{}, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	content, err := s.parseBlocks(nodes)
	if err != nil {
		return TreeResult{}, err
	}
	if len(content) == 0 {
		content = []document.Node{document.NewParagraph()}
	}

	return TreeResult{Doc: document.NewDoc(content...), Warnings: s.warnings}, nil
}

func (s *state) parseBlocks(nodes []*html.Node) ([]document.Node, error) {
	var content []document.Node

	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			// Raw text at block level is implicitly paragraph-wrapped; it is
			// never left as a direct sibling of block elements under doc.
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				content = append(content, document.NewParagraph(document.NewText(trimmed, nil)))
			}
		case html.ElementNode:
			converted, ok, err := s.parseElement(n)
			if err != nil {
				return nil, err
			}
			if ok {
				content = append(content, converted)
			}
		}
	}

	return content, nil
}

func (s *state) parseElement(n *html.Node) (document.Node, bool, error) {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		inline, err := s.parseInlineChildren(n, newMarkStack())
		if err != nil {
			return document.Node{}, false, err
		}
		return document.Node{
			Type:    document.TypeHeading,
			Attrs:   map[string]interface{}{"level": level},
			Content: inline,
		}, true, nil

	case "p":
		inline, err := s.parseInlineChildren(n, newMarkStack())
		if err != nil {
			return document.Node{}, false, err
		}
		return document.Node{Type: document.TypeParagraph, Content: inline}, true, nil

	case "ul":
		return s.parseList(n, document.TypeBulletList)

	case "ol":
		return s.parseList(n, document.TypeOrderedList)

	case "blockquote":
		children, err := s.parseBlocks(elementChildren(n))
		if err != nil {
			return document.Node{}, false, err
		}
		return document.Node{Type: document.TypeBlockquote, Content: children}, true, nil

	case "pre":
		return s.parseCodeBlock(n), true, nil

	case "code":
		// A bare code element at block level is treated as a code block.
		return s.parseCodeBlock(n), true, nil

	case "img":
		return imageNode(n), true, nil

	case "hr":
		return document.Node{Type: document.TypeHorizontalRule}, true, nil

	case "br":
		// A stray break between blocks carries no content.
		return document.Node{}, false, nil

	default:
		if s.strict() {
			return document.Node{}, false, fmt.Errorf("unknown HTML element: %s", n.Data)
		}
		s.addWarning(
			document.WarningUnknownNode,
			n.Data,
			fmt.Sprintf("unrecognized tag <%s> dropped", n.Data),
		)
		return document.Node{}, false, nil
	}
}

func (s *state) parseList(n *html.Node, listType string) (document.Node, bool, error) {
	taskList := attrValue(n, "data-type") == "taskList"
	var items []document.Node

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}
		item, err := s.parseListItem(child)
		if err != nil {
			return document.Node{}, false, err
		}
		// Task items keep their checked state in the item attrs so it
		// survives the trip back to HTML or Markdown.
		if checked := attrValue(child, "data-checked"); taskList || checked != "" {
			item.Attrs = map[string]interface{}{"checked": checked == "true"}
		}
		items = append(items, item)
	}

	return document.Node{Type: listType, Content: items}, true, nil
}

// parseListItem wraps loose inline content in a paragraph so list items
// always hold block children, matching what the editor produces.
func (s *state) parseListItem(n *html.Node) (document.Node, error) {
	if hasBlockChild(n) {
		children, err := s.parseBlocks(elementChildren(n))
		if err != nil {
			return document.Node{}, err
		}
		return document.Node{Type: document.TypeListItem, Content: children}, nil
	}

	inline, err := s.parseInlineChildren(n, newMarkStack())
	if err != nil {
		return document.Node{}, err
	}
	return document.Node{
		Type:    document.TypeListItem,
		Content: []document.Node{{Type: document.TypeParagraph, Content: inline}},
	}, nil
}

func (s *state) parseCodeBlock(n *html.Node) document.Node {
	codeBlock := document.Node{Type: document.TypeCodeBlock}

	source := n
	if inner := findChildElement(n, "code"); inner != nil {
		source = inner
	}
	if language := languageFromClass(attrValue(source, "class")); language != "" {
		codeBlock.Attrs = map[string]interface{}{"language": language}
	}

	text := strings.TrimRight(textContent(source), "\n")
	if text != "" {
		codeBlock.Content = []document.Node{document.NewText(text, nil)}
	}

	return codeBlock
}

func (s *state) parseInlineChildren(parent *html.Node, stack *markStack) ([]document.Node, error) {
	var content []document.Node

	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		converted, err := s.parseInlineNode(child, stack)
		if err != nil {
			return nil, err
		}
		for _, node := range converted {
			content = appendInline(content, node)
		}
	}

	return content, nil
}

func (s *state) parseInlineNode(n *html.Node, stack *markStack) ([]document.Node, error) {
	if n.Type == html.TextNode {
		return []document.Node{document.NewText(n.Data, stack.current())}, nil
	}
	if n.Type != html.ElementNode {
		return nil, nil
	}

	if mark, ok := inlineMark(n); ok {
		stack.push(mark)
		content, err := s.parseInlineChildren(n, stack)
		stack.popByType(mark.Type)
		return content, err
	}

	switch n.Data {
	case "br":
		// The document model has no hard-break node; a literal newline
		// inside the text stream round-trips cleanly.
		return []document.Node{document.NewText("\n", stack.current())}, nil

	case "img":
		return []document.Node{imageNode(n)}, nil

	default:
		// Unrecognized inline tags are stripped: their text survives, the
		// markup does not.
		if n.FirstChild != nil {
			return s.parseInlineChildren(n, stack)
		}
		if s.strict() {
			return nil, fmt.Errorf("unknown inline element: %s", n.Data)
		}
		s.addWarning(
			document.WarningUnknownNode,
			n.Data,
			fmt.Sprintf("unrecognized inline tag <%s> dropped", n.Data),
		)
		return nil, nil
	}
}

func inlineMark(n *html.Node) (document.Mark, bool) {
	switch n.Data {
	case "strong", "b":
		return document.Mark{Type: document.MarkBold}, true
	case "em", "i":
		return document.Mark{Type: document.MarkItalic}, true
	case "u":
		return document.Mark{Type: document.MarkUnderline}, true
	case "del", "s":
		return document.Mark{Type: document.MarkStrikethrough}, true
	case "code":
		return document.Mark{Type: document.MarkCode}, true
	case "a":
		href := strings.TrimSpace(attrValue(n, "href"))
		if href == "" {
			return document.Mark{}, false
		}
		return document.Mark{
			Type:  document.MarkLink,
			Attrs: map[string]interface{}{"href": href},
		}, true
	default:
		return document.Mark{}, false
	}
}

func imageNode(n *html.Node) document.Node {
	attrs := map[string]interface{}{
		"src": attrValue(n, "src"),
	}
	if alt := attrValue(n, "alt"); alt != "" {
		attrs["alt"] = alt
	}
	return document.Node{Type: document.TypeImage, Attrs: attrs}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}
	return children
}

func hasBlockChild(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "p", "ul", "ol", "blockquote", "pre", "h1", "h2", "h3", "h4", "h5", "h6", "hr":
			return true
		}
	}
	return false
}

func findChildElement(n *html.Node, tag string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}

func languageFromClass(class string) string {
	for _, part := range strings.Fields(class) {
		if strings.HasPrefix(part, "language-") {
			return strings.TrimPrefix(part, "language-")
		}
	}
	return ""
}
