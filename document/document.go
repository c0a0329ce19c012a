// Package document defines the editor's JSON document model: a tree of
// typed nodes with ordered inline marks, mirroring the structure the
// rich-text editor persists for newsletter articles.
package document

import "reflect"

// Node types understood by the converters.
const (
	TypeDoc            = "doc"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeCodeBlock      = "codeBlock"
	TypeBlockquote     = "blockquote"
	TypeImage          = "image"
	TypeHorizontalRule = "horizontalRule"
	TypeText           = "text"
)

// Mark types for inline decorations.
const (
	MarkBold          = "bold"
	MarkItalic        = "italic"
	MarkUnderline     = "underline"
	MarkStrikethrough = "strikethrough"
	MarkCode          = "code"
	MarkLink          = "link"
)

// Node represents any node in the document tree (e.g., paragraph, text).
type Node struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text,omitempty"`
	Content []Node                 `json:"content,omitempty"`
	Marks   []Mark                 `json:"marks,omitempty"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
}

// Mark represents text formatting applied to a node (e.g., bold, link).
type Mark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// NewDoc wraps content in a root doc node. A doc is always the tree root
// and is never nested.
func NewDoc(content ...Node) Node {
	return Node{Type: TypeDoc, Content: content}
}

// NewParagraph wraps inline content in a paragraph node.
func NewParagraph(content ...Node) Node {
	return Node{Type: TypeParagraph, Content: content}
}

// NewText creates a text node with the given marks. Empty marks are omitted.
func NewText(text string, marks []Mark) Node {
	node := Node{Type: TypeText, Text: text}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return node
}

// EmptyDoc returns the minimal valid document: a doc holding one empty
// paragraph. Converters degrade to this rather than returning an empty tree.
func EmptyDoc() Node {
	return NewDoc(NewParagraph())
}

// IntAttr reads an integer attribute, accepting both native ints (trees
// built in Go) and float64 (trees decoded from JSON).
func (n Node) IntAttr(key string) (int, bool) {
	switch v := n.Attrs[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// StringAttr reads a string attribute.
func (n Node) StringAttr(key string) (string, bool) {
	v, ok := n.Attrs[key].(string)
	return v, ok
}

// PlainText concatenates the text content of the subtree in document order.
func (n Node) PlainText() string {
	if n.Type == TypeText {
		return n.Text
	}
	var out string
	for _, child := range n.Content {
		out += child.PlainText()
	}
	return out
}

// MarksEqual compares two mark slices for order-sensitive equality,
// including attributes.
func MarksEqual(left, right []Mark) bool {
	if len(left) != len(right) {
		return false
	}
	for idx := range left {
		if left[idx].Type != right[idx].Type {
			return false
		}
		if !attrsEqual(left[idx].Attrs, right[idx].Attrs) {
			return false
		}
	}
	return true
}

func attrsEqual(left, right map[string]interface{}) bool {
	if len(left) != len(right) {
		return false
	}
	for key, leftValue := range left {
		rightValue, ok := right[key]
		// DeepEqual rather than !=: attr values decoded from JSON can be
		// maps or slices, which are not comparable.
		if !ok || !reflect.DeepEqual(leftValue, rightValue) {
			return false
		}
	}
	return true
}

// CloneMark returns a copy of the mark with its own attrs map.
func CloneMark(mark Mark) Mark {
	cloned := mark
	if mark.Attrs != nil {
		cloned.Attrs = make(map[string]interface{}, len(mark.Attrs))
		for key, value := range mark.Attrs {
			cloned.Attrs[key] = value
		}
	}
	return cloned
}
