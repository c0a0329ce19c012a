package treeconv

import "github.com/parentpost/contentconv/document"

// markStack tracks the inline marks contributed by the ancestor tags of the
// node currently being parsed. Every recognized inline tag on the way down
// pushes a mark, so nested formatting composes into a full marks array.
type markStack struct {
	items []document.Mark
}

func newMarkStack() *markStack {
	return &markStack{}
}

func (s *markStack) push(mark document.Mark) {
	s.items = append(s.items, document.CloneMark(mark))
}

func (s *markStack) popByType(markType string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Type != markType {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

func (s *markStack) current() []document.Mark {
	if len(s.items) == 0 {
		return nil
	}

	marks := make([]document.Mark, 0, len(s.items))
	for _, mark := range s.items {
		marks = append(marks, document.CloneMark(mark))
	}
	return marks
}

// appendInline adds an inline node to content, merging adjacent text nodes
// that carry identical marks and dropping empty text.
func appendInline(content []document.Node, next document.Node) []document.Node {
	if next.Type == document.TypeText && next.Text == "" {
		return content
	}

	if len(content) == 0 {
		return append(content, next)
	}

	last := &content[len(content)-1]
	if last.Type == document.TypeText && next.Type == document.TypeText &&
		document.MarksEqual(last.Marks, next.Marks) {
		last.Text += next.Text
		return content
	}

	return append(content, next)
}
