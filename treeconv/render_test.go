package treeconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parentpost/contentconv/document"
)

func newTestConverter(t testing.TB, cfg Config) *Converter {
	t.Helper()

	conv, err := New(cfg)
	require.NoError(t, err)
	return conv
}

func TestToHTMLBlocks(t *testing.T) {
	conv := newTestConverter(t, Config{})

	tests := []struct {
		name string
		doc  document.Node
		want string
	}{
		{
			name: "empty doc",
			doc:  document.NewDoc(),
			want: "",
		},
		{
			name: "paragraph",
			doc:  document.NewDoc(document.NewParagraph(document.NewText("Hello", nil))),
			want: "<p>Hello</p>",
		},
		{
			name: "heading level from attrs",
			doc: document.NewDoc(document.Node{
				Type:    document.TypeHeading,
				Attrs:   map[string]interface{}{"level": 3},
				Content: []document.Node{document.NewText("Section", nil)},
			}),
			want: "<h3>Section</h3>",
		},
		{
			name: "bullet list",
			doc: document.NewDoc(document.Node{
				Type: document.TypeBulletList,
				Content: []document.Node{
					{Type: document.TypeListItem, Content: []document.Node{
						document.NewParagraph(document.NewText("A", nil)),
					}},
					{Type: document.TypeListItem, Content: []document.Node{
						document.NewParagraph(document.NewText("B", nil)),
					}},
				},
			}),
			want: "<ul><li><p>A</p></li><li><p>B</p></li></ul>",
		},
		{
			name: "task list from checked attrs",
			doc: document.NewDoc(document.Node{
				Type: document.TypeBulletList,
				Content: []document.Node{
					{Type: document.TypeListItem, Attrs: map[string]interface{}{"checked": true}, Content: []document.Node{
						document.NewParagraph(document.NewText("Done", nil)),
					}},
					{Type: document.TypeListItem, Attrs: map[string]interface{}{"checked": false}, Content: []document.Node{
						document.NewParagraph(document.NewText("Open", nil)),
					}},
				},
			}),
			want: `<ul data-type="taskList"><li data-type="taskItem" data-checked="true"><p>Done</p></li><li data-type="taskItem" data-checked="false"><p>Open</p></li></ul>`,
		},
		{
			name: "ordered list",
			doc: document.NewDoc(document.Node{
				Type: document.TypeOrderedList,
				Content: []document.Node{
					{Type: document.TypeListItem, Content: []document.Node{
						document.NewParagraph(document.NewText("First", nil)),
					}},
				},
			}),
			want: "<ol><li><p>First</p></li></ol>",
		},
		{
			name: "code block escapes text",
			doc: document.NewDoc(document.Node{
				Type:    document.TypeCodeBlock,
				Attrs:   map[string]interface{}{"language": "go"},
				Content: []document.Node{document.NewText("a < b && c > d", nil)},
			}),
			want: `<pre><code class="language-go">a &lt; b &amp;&amp; c &gt; d</code></pre>`,
		},
		{
			name: "blockquote",
			doc: document.NewDoc(document.Node{
				Type: document.TypeBlockquote,
				Content: []document.Node{
					document.NewParagraph(document.NewText("Quoted", nil)),
				},
			}),
			want: "<blockquote><p>Quoted</p></blockquote>",
		},
		{
			name: "image",
			doc: document.NewDoc(document.Node{
				Type:  document.TypeImage,
				Attrs: map[string]interface{}{"src": "cover.png", "alt": "Cover"},
			}),
			want: `<img src="cover.png" alt="Cover">`,
		},
		{
			name: "horizontal rule",
			doc:  document.NewDoc(document.Node{Type: document.TypeHorizontalRule}),
			want: "<hr>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := conv.ToHTML(tc.doc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.HTML)
		})
	}
}

func TestToHTMLMarks(t *testing.T) {
	conv := newTestConverter(t, Config{})

	tests := []struct {
		name  string
		marks []document.Mark
		text  string
		want  string
	}{
		{
			name:  "bold",
			marks: []document.Mark{{Type: document.MarkBold}},
			text:  "x",
			want:  "<p><strong>x</strong></p>",
		},
		{
			name:  "first mark innermost",
			marks: []document.Mark{{Type: document.MarkBold}, {Type: document.MarkItalic}},
			text:  "x",
			want:  "<p><em><strong>x</strong></em></p>",
		},
		{
			name:  "code escapes enclosed text",
			marks: []document.Mark{{Type: document.MarkCode}},
			text:  "<b>raw</b>",
			want:  "<p><code>&lt;b&gt;raw&lt;/b&gt;</code></p>",
		},
		{
			name: "link",
			marks: []document.Mark{{
				Type:  document.MarkLink,
				Attrs: map[string]interface{}{"href": "https://example.com"},
			}},
			text: "here",
			want: `<p><a href="https://example.com">here</a></p>`,
		},
		{
			name: "link without href is plain text",
			marks: []document.Mark{{
				Type: document.MarkLink,
			}},
			text: "here",
			want: "<p>here</p>",
		},
		{
			name:  "strikethrough and underline",
			marks: []document.Mark{{Type: document.MarkStrikethrough}, {Type: document.MarkUnderline}},
			text:  "gone",
			want:  "<p><u><del>gone</del></u></p>",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := document.NewDoc(document.NewParagraph(document.NewText(tc.text, tc.marks)))
			result, err := conv.ToHTML(doc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.HTML)
		})
	}
}

func TestToHTMLHeadingLevelPolicy(t *testing.T) {
	missing := document.NewDoc(document.Node{
		Type:    document.TypeHeading,
		Content: []document.Node{document.NewText("Title", nil)},
	})

	t.Run("best effort defaults to level 1 with warning", func(t *testing.T) {
		conv := newTestConverter(t, Config{})

		result, err := conv.ToHTML(missing)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Title</h1>", result.HTML)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, document.WarningMissingAttribute, result.Warnings[0].Type)
	})

	t.Run("strict mode errors", func(t *testing.T) {
		conv := newTestConverter(t, Config{ResolutionMode: ResolutionStrict})

		_, err := conv.ToHTML(missing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing level")
	})

	t.Run("out of range clamps in best effort", func(t *testing.T) {
		conv := newTestConverter(t, Config{})

		result, err := conv.ToHTML(document.NewDoc(document.Node{
			Type:    document.TypeHeading,
			Attrs:   map[string]interface{}{"level": 9},
			Content: []document.Node{document.NewText("Deep", nil)},
		}))
		require.NoError(t, err)
		assert.Equal(t, "<h6>Deep</h6>", result.HTML)
		assert.Len(t, result.Warnings, 1)
	})
}

func TestToHTMLUnknownNodes(t *testing.T) {
	unknown := document.NewDoc(document.Node{Type: "widget"})

	t.Run("best effort skips with warning", func(t *testing.T) {
		conv := newTestConverter(t, Config{})

		result, err := conv.ToHTML(unknown)
		require.NoError(t, err)
		assert.Equal(t, "", result.HTML)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, document.WarningUnknownNode, result.Warnings[0].Type)
	})

	t.Run("strict mode errors", func(t *testing.T) {
		conv := newTestConverter(t, Config{ResolutionMode: ResolutionStrict})

		_, err := conv.ToHTML(unknown)
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	_, err := New(Config{ResolutionMode: "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolutionMode")
}
