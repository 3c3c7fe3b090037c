// Package syncer orchestrates the renderer, the region locator and the
// resolver output into the two user-facing operations: verifying that a
// target file's commentary block matches its source document, and updating
// the block in place.
package syncer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkryger/commentary/internal/document"
	"github.com/pkryger/commentary/internal/region"
	"github.com/pkryger/commentary/internal/render"
)

// ErrGenerationFailure means rendering yielded no usable content while a
// check or update needed one.
var ErrGenerationFailure = errors.New("rendering produced no content")

// Config bundles the formatting and marker settings shared by check and
// update.
type Config struct {
	Render render.Config
	Region region.Config
}

// DefaultConfig uses the Emacs Lisp conventions throughout.
func DefaultConfig() Config {
	return Config{
		Render: render.DefaultConfig(),
		Region: region.DefaultConfig(),
	}
}

// MismatchError is the designed outcome of a failed check, not a fault: it
// carries the full diff report between the target's current commentary
// block and the freshly rendered one.
type MismatchError struct {
	// Target is the checked file's path.
	Target string
	// Report is the unified diff, with machine-specific identifiers
	// already substituted for stable labels.
	Report string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("commentary block of %s is out of date:\n%s", e.Target, e.Report)
}

// frame wraps a rendered block into the region interior shape: one blank
// separator line after the commentary marker and a final line terminator
// before the code marker.
func frame(block *render.Block) string {
	return "\n" + block.Text() + "\n"
}

// renderSource renders the document and rejects blank output.
func renderSource(doc *document.Document, cfg Config) (*render.Block, error) {
	block, err := render.Commentary(doc, cfg.Render)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(block.Text()) == "" {
		return nil, fmt.Errorf("%w for %s", ErrGenerationFailure, doc.Name)
	}
	return block, nil
}
