// Package resolve determines which target file a source document
// corresponds to. Candidate paths come from an ordered chain of strategies;
// the first candidate that names an existing regular file wins.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkryger/commentary/internal/document"
)

// ErrNoTargetFile is returned when every strategy has been exhausted
// without finding an existing file.
var ErrNoTargetFile = errors.New("no target file found")

// Options carries the resolution inputs. Explicit, Hint and Override are
// all optional; Root anchors the candidate-directory expansion.
type Options struct {
	// Explicit is a caller-forced path. Absolute or verbatim-existing
	// values bypass directory expansion entirely.
	Explicit string
	// Hint is a caller-supplied file name to expand over the candidate
	// directories.
	Hint string
	// Override is the persisted target-file preference. It is advisory:
	// when it exists nowhere under any expansion, resolution silently
	// falls through to later strategies.
	Override string
	// Root is the project root directory.
	Root string
	// Ext is the target file extension, appended to inferred names that
	// lack it. Defaults to ".el".
	Ext string
	// Dirs are the candidate directories under Root, in probe order.
	// Defaults to the root itself, lisp/ and src/.
	Dirs []string
}

func (o Options) normalized() Options {
	if o.Ext == "" {
		o.Ext = ".el"
	}
	if len(o.Dirs) == 0 {
		o.Dirs = []string{"", "lisp", "src"}
	}
	if o.Root == "" {
		o.Root = "."
	}
	return o
}

// A Strategy produces an ordered list of fully-qualified candidate paths.
// Strategies never probe the filesystem themselves; the chain does.
type Strategy interface {
	Name() string
	Candidates(doc *document.Document, opts Options) []string
}

// Chain evaluates strategies lazily in priority order.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a chain over the given strategies.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// DefaultChain is the full precedence order: explicit path, caller hint,
// persisted override, project-root name, document heading.
func DefaultChain() *Chain {
	return NewChain(
		explicitStrategy{},
		hintStrategy{},
		overrideStrategy{},
		rootNameStrategy{},
		headingStrategy{},
	)
}

// Resolve walks the chain and returns the first existing candidate. Each
// strategy's candidates are consumed strictly in order, and the first hit
// short-circuits the whole search.
func (c *Chain) Resolve(doc *document.Document, opts Options) (string, error) {
	opts = opts.normalized()
	for _, s := range c.strategies {
		for _, candidate := range s.Candidates(doc, opts) {
			if isRegularFile(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w for %s under %s", ErrNoTargetFile, doc.Name, opts.Root)
}

// Target resolves with the default chain.
func Target(doc *document.Document, opts Options) (string, error) {
	return DefaultChain().Resolve(doc, opts)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// expand qualifies name against every candidate directory under the root.
func expand(name string, opts Options) []string {
	out := make([]string, 0, len(opts.Dirs))
	for _, dir := range opts.Dirs {
		out = append(out, filepath.Join(opts.Root, dir, name))
	}
	return out
}

func withExt(name, ext string) string {
	if strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}

type explicitStrategy struct{}

func (explicitStrategy) Name() string { return "explicit" }

func (explicitStrategy) Candidates(_ *document.Document, opts Options) []string {
	if opts.Explicit == "" {
		return nil
	}
	if filepath.IsAbs(opts.Explicit) || isRegularFile(opts.Explicit) {
		return []string{opts.Explicit}
	}
	return expand(opts.Explicit, opts)
}

type hintStrategy struct{}

func (hintStrategy) Name() string { return "hint" }

func (hintStrategy) Candidates(_ *document.Document, opts Options) []string {
	if opts.Hint == "" {
		return nil
	}
	return expand(opts.Hint, opts)
}

type overrideStrategy struct{}

func (overrideStrategy) Name() string { return "override" }

func (overrideStrategy) Candidates(_ *document.Document, opts Options) []string {
	if opts.Override == "" {
		return nil
	}
	if filepath.IsAbs(opts.Override) {
		return []string{opts.Override}
	}
	return expand(opts.Override, opts)
}

type rootNameStrategy struct{}

func (rootNameStrategy) Name() string { return "rootname" }

func (rootNameStrategy) Candidates(_ *document.Document, opts Options) []string {
	abs, err := filepath.Abs(opts.Root)
	if err != nil {
		abs = opts.Root
	}
	base := filepath.Base(abs)
	if base == "." || base == string(filepath.Separator) {
		return nil
	}
	return expand(withExt(base, opts.Ext), opts)
}

type headingStrategy struct{}

func (headingStrategy) Name() string { return "heading" }

func (headingStrategy) Candidates(doc *document.Document, opts Options) []string {
	token, err := doc.FirstHeadingToken()
	if err != nil {
		// no heading to infer from; the chain moves on
		return nil
	}
	return expand(withExt(token, opts.Ext), opts)
}
