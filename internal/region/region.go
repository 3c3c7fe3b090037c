// Package region locates the embedded commentary span of a target file via
// its two literal marker lines.
package region

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCommentaryMarker means the target file has no line exactly
	// matching the commentary start marker.
	ErrMissingCommentaryMarker = errors.New("commentary marker not found")
	// ErrMissingCodeMarker means the commentary marker was found but no
	// code marker follows it.
	ErrMissingCodeMarker = errors.New("code marker not found")
)

// Config names the two marker literals that frame the region.
type Config struct {
	CommentaryMarker string `yaml:"commentary_marker"`
	CodeMarker       string `yaml:"code_marker"`
}

// DefaultConfig matches the Emacs Lisp library file conventions.
func DefaultConfig() Config {
	return Config{
		CommentaryMarker: ";;; Commentary:",
		CodeMarker:       ";;; Code:",
	}
}

// Region is the half-open span [Start, End) between the two markers of a
// target file: Start is the beginning of the line after the commentary
// marker line, End the beginning of the code marker line. Both offsets sit
// on line boundaries and Start <= End always holds; adjacent markers give
// an empty but valid region. A Region is recomputed on every invocation and
// never persisted.
type Region struct {
	Text  string
	Start int
	End   int
}

// Interior returns the current text between the markers.
func (r *Region) Interior() string {
	return r.Text[r.Start:r.End]
}

// Replace returns the full file text with the region's span substituted by
// interior. The markers and everything outside them are untouched.
func (r *Region) Replace(interior string) string {
	return r.Text[:r.Start] + interior + r.Text[r.End:]
}

// Locate scans fileText for the two marker lines. It is a pure scan: no
// I/O, no mutation. A line matches a marker only when it is exactly equal
// to the literal, terminator aside.
func Locate(fileText string, cfg Config) (*Region, error) {
	if cfg.CommentaryMarker == "" || cfg.CodeMarker == "" {
		def := DefaultConfig()
		if cfg.CommentaryMarker == "" {
			cfg.CommentaryMarker = def.CommentaryMarker
		}
		if cfg.CodeMarker == "" {
			cfg.CodeMarker = def.CodeMarker
		}
	}

	start, ok := offsetAfterLine(fileText, 0, cfg.CommentaryMarker)
	if !ok {
		return nil, fmt.Errorf("%w (expected a line %q)", ErrMissingCommentaryMarker, cfg.CommentaryMarker)
	}
	end, ok := offsetOfLine(fileText, start, cfg.CodeMarker)
	if !ok {
		return nil, fmt.Errorf("%w (expected a line %q)", ErrMissingCodeMarker, cfg.CodeMarker)
	}
	return &Region{Text: fileText, Start: start, End: end}, nil
}

// offsetAfterLine finds the first line at or after from equal to marker and
// returns the offset just past that line's terminator.
func offsetAfterLine(text string, from int, marker string) (int, bool) {
	for offset := from; offset <= len(text); {
		lineEnd, next := lineBounds(text, offset)
		if text[offset:lineEnd] == marker {
			if next > len(text) {
				next = len(text)
			}
			return next, true
		}
		if next > len(text) {
			break
		}
		offset = next
	}
	return 0, false
}

// offsetOfLine finds the first line at or after from equal to marker and
// returns the offset of that line's first character.
func offsetOfLine(text string, from int, marker string) (int, bool) {
	for offset := from; offset <= len(text); {
		lineEnd, next := lineBounds(text, offset)
		if text[offset:lineEnd] == marker {
			return offset, true
		}
		if next > len(text) {
			break
		}
		offset = next
	}
	return 0, false
}

// lineBounds returns the end of the line starting at offset (exclusive of
// the terminator) and the start of the following line.
func lineBounds(text string, offset int) (lineEnd, next int) {
	rel := strings.IndexByte(text[offset:], '\n')
	if rel < 0 {
		return len(text), len(text) + 1
	}
	return offset + rel, offset + rel + 1
}
