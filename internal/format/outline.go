package format

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var outlineParser = goldmark.New()

// Outline parses the markdown and returns heading texts in document
// order. An empty outline means the document lost its structure.
func Outline(source string) []string {
	src := []byte(source)
	doc := outlineParser.Parser().Parse(text.NewReader(src))

	var headings []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			headings = append(headings, string(h.Text(src)))
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// WellFormed reports whether a formatted article carries at least a
// top-level title heading.
func WellFormed(source string) bool {
	return len(Outline(source)) > 0
}
