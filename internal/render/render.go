// Package render converts a parsed source document into the normalized,
// comment-prefixed plain-text block that gets embedded into a target file.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkryger/commentary/internal/document"
)

// ErrExportFailure is returned when the plain-text export of a document
// yields no output at all.
var ErrExportFailure = errors.New("export produced no output")

// Config holds the fixed formatting parameters of the renderer.
type Config struct {
	// Prefix is the comment marker placed in front of every line.
	Prefix string `yaml:"prefix"`
	// Width is the fill column prose is reflowed to, before prefixing.
	Width int `yaml:"width"`
}

// DefaultConfig matches the Emacs Lisp commentary conventions.
func DefaultConfig() Config {
	return Config{Prefix: ";;", Width: 75}
}

// Block is a rendered commentary block. Every line begins with the comment
// marker; whitespace-only lines are normalized to the bare marker. A Block
// is immutable once produced and is rebuilt on every render call.
type Block struct {
	lines []string
}

// Lines returns a copy of the block's lines.
func (b *Block) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the block joined by newlines, without a trailing newline.
func (b *Block) Text() string {
	return strings.Join(b.lines, "\n")
}

// Commentary renders doc into a comment block. It is a pure function of the
// document content and cfg: the same input produces byte-identical output on
// every run and platform.
func Commentary(doc *document.Document, cfg Config) (*Block, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = ";;"
	}
	if cfg.Width <= 0 {
		cfg.Width = 75
	}

	e := &exporter{src: doc.Source, width: cfg.Width}
	e.export(doc.Root, doc.Title())
	plain := trimBlankEdges(e.lines)
	if len(plain) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrExportFailure, doc.Name)
	}

	out := make([]string, len(plain))
	for i, line := range plain {
		out[i] = strings.TrimRight(cfg.Prefix+" "+line, " \t")
	}
	return &Block{lines: out}, nil
}

func trimBlankEdges(lines []string) []string {
	start := 0
	end := len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
