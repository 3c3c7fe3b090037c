// Package document wraps the markdown parser and exposes the pieces of a
// source document the sync pipeline needs: the parsed tree, the raw bytes,
// and heading lookup for target-name inference.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrEmptyDocument is returned when a document has no heading to infer a
// target name from. Rendering itself never requires a heading.
var ErrEmptyDocument = errors.New("document contains no headings")

// Document is a parsed source document. The sync pipeline only reads it;
// it lives for a single invocation and is never cached.
type Document struct {
	// Name is the logical label used in reports, usually the file base name.
	Name string
	// Source holds the raw document bytes the tree refers back to.
	Source []byte
	// Root is the parsed markdown tree.
	Root ast.Node
}

// Parse builds a Document from in-memory markdown.
func Parse(name string, source []byte) *Document {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))
	return &Document{
		Name:   name,
		Source: source,
		Root:   root,
	}
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data), nil
}

// Title returns the document's leading heading node, or nil when the
// document has none. The title is the one heading that is stripped before
// the document is exported.
func (d *Document) Title() *ast.Heading {
	for n := d.Root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return h
		}
	}
	return nil
}

// FirstHeadingToken extracts the first whitespace-delimited token of the
// document's first heading, with surrounding punctuation trimmed. It is the
// weakest target-name signal the resolver falls back to.
func (d *Document) FirstHeadingToken() (string, error) {
	for n := d.Root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		fields := strings.Fields(HeadingText(h, d.Source))
		for _, f := range fields {
			token := strings.Trim(f, "*_`~:;,.!?()[]{}<>\"'")
			if token != "" {
				return token, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEmptyDocument, d.Name)
}

// HeadingText flattens a heading's inline content into plain text.
func HeadingText(h *ast.Heading, source []byte) string {
	return InlineText(h, source)
}

// InlineText flattens a node's inline content into a single plain-text
// string. Emphasis and code-span decorations are dropped, links reduce to
// their text, autolinks to their URL.
func InlineText(parent ast.Node, source []byte) string {
	var sb strings.Builder
	flattenInline(parent, source, &sb)
	return strings.TrimSpace(sb.String())
}

func flattenInline(parent ast.Node, source []byte, sb *strings.Builder) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(n.Value)
		case *ast.AutoLink:
			sb.Write(n.URL(source))
		case *ast.Image:
			flattenInline(n, source, sb)
		case *ast.RawHTML:
			// markup noise, dropped
		default:
			flattenInline(n, source, sb)
		}
	}
}
