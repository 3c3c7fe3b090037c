package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/pkryger/commentary/internal/document"
	"github.com/pkryger/commentary/internal/region"
)

// exportLabel identifies the ephemeral rendered side of a comparison before
// substitution. It never reaches a report verbatim.
const exportLabel = "*commentary-export*"

// substitution is one (pattern, replacement) pair applied to a diff report.
type substitution struct {
	old string
	new string
}

// reportSubstitutions maps machine- and invocation-specific identifiers to
// stable labels, in fixed order. Keeping this declarative separates the
// comparison from its presentation.
func reportSubstitutions(targetPath, sourceLabel string) []substitution {
	return []substitution{
		{old: targetPath, new: filepath.Base(targetPath)},
		{old: exportLabel, new: "<exported from " + sourceLabel + ">"},
	}
}

// Check renders doc and verifies that targetPath's commentary block is
// byte-identical to the fresh render. Whitespace differences count: the
// renderer controls all formatting. A nil return means Match; a mismatch
// is returned as *MismatchError carrying the diff report.
func Check(doc *document.Document, targetPath string, cfg Config) error {
	block, err := renderSource(doc, cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		return fmt.Errorf("failed to read target file %s: %w", targetPath, err)
	}
	reg, err := region.Locate(string(data), cfg.Region)
	if err != nil {
		return fmt.Errorf("%s: %w", targetPath, err)
	}

	current := reg.Interior()
	fresh := frame(block)
	if current == fresh {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(fresh),
		FromFile: targetPath,
		ToFile:   exportLabel,
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("failed to build diff report for %s: %w", targetPath, err)
	}
	for _, sub := range reportSubstitutions(targetPath, doc.Name) {
		diff = strings.ReplaceAll(diff, sub.old, sub.new)
	}
	return &MismatchError{Target: targetPath, Report: diff}
}
