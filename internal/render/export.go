package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pkryger/commentary/internal/document"
)

// exporter walks the parsed tree and accumulates plain-text lines, before
// any comment prefixing. Block boundaries are normalized to a single blank
// line; code block interiors pass through verbatim.
type exporter struct {
	src   []byte
	width int
	lines []string
}

// export renders the whole document, skipping the title heading. Only the
// title node itself is dropped; everything after it is kept.
func (e *exporter) export(root ast.Node, title *ast.Heading) {
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h == title {
			continue
		}
		e.blockNode(n, "")
	}
}

func (e *exporter) blockNode(n ast.Node, indent string) {
	switch n := n.(type) {
	case *ast.Heading:
		e.blank()
		e.emit(indent + document.HeadingText(n, e.src))
	case *ast.Paragraph:
		e.blank()
		e.prose(document.InlineText(n, e.src), indent, indent)
	case *ast.TextBlock:
		e.prose(document.InlineText(n, e.src), indent, indent)
	case *ast.FencedCodeBlock:
		e.code(n.Lines(), indent)
	case *ast.CodeBlock:
		e.code(n.Lines(), indent)
	case *ast.List:
		e.blank()
		e.list(n, indent)
	case *ast.Blockquote:
		e.blank()
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			e.blockNode(c, indent+"  ")
		}
	case *ast.ThematicBreak:
		e.blank()
		e.emit(indent + "---")
	case *ast.HTMLBlock:
		// raw HTML has no plain-text shape, dropped
	}
}

func (e *exporter) list(l *ast.List, indent string) {
	ordinal := l.Start
	if ordinal == 0 {
		ordinal = 1
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", ordinal)
			ordinal++
		}
		cont := indent + strings.Repeat(" ", len(marker))
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				if first {
					e.prose(document.InlineText(c, e.src), indent+marker, cont)
					first = false
				} else {
					e.prose(document.InlineText(c, e.src), cont, cont)
				}
			case *ast.List:
				e.list(c, cont)
			default:
				e.blockNode(c, cont)
			}
		}
		if first {
			e.emit(strings.TrimRight(indent+marker, " "))
		}
	}
}

// prose reflows a flattened run of text to the configured width. The first
// line carries head (a list marker or plain indent), continuation lines
// carry cont.
func (e *exporter) prose(text, head, cont string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	wrapped := wrap(text, e.width-len(cont))
	for i, line := range wrapped {
		if i == 0 {
			e.emit(head + line)
		} else {
			e.emit(cont + line)
		}
	}
}

// code emits a verbatim block surrounded by single blank lines. Interior
// lines keep their content untouched; only the line terminator is dropped.
func (e *exporter) code(lines *text.Segments, indent string) {
	e.blank()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(e.src)), "\n")
		if line == "" {
			e.lines = append(e.lines, "")
			continue
		}
		e.emit(indent + line)
	}
	e.blank()
}

func (e *exporter) emit(line string) {
	e.lines = append(e.lines, line)
}

// blank appends a separator line unless the output already ends with one.
func (e *exporter) blank() {
	if n := len(e.lines); n > 0 && strings.TrimSpace(e.lines[n-1]) != "" {
		e.lines = append(e.lines, "")
	}
}
