package tabular

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown files using goldmark with the pipe-table
// extension. The first table in the document is taken as the data.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (*Table, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var table *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*east.Table); ok {
			table = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if table == nil {
		return nil, fmt.Errorf("no table in %s", filename)
	}

	t := &Table{Name: baseName(filename)}
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, src))
		}
		if _, ok := row.(*east.TableHeader); ok {
			t.Headers = cells
		} else {
			t.Rows = append(t.Rows, cells)
		}
	}
	t.Rows = dropEmptyTail(t.Rows)
	return t, nil
}

// cellText collects the inline text content of a table cell.
func cellText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.WriteString(cellText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
