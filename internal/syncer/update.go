package syncer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkryger/commentary/internal/document"
	"github.com/pkryger/commentary/internal/region"
)

// Update renders doc and replaces exactly the commentary region of
// targetPath with the fresh render. The write is atomic from the caller's
// perspective: either the whole file is replaced with the spliced content,
// or it is left untouched.
func Update(doc *document.Document, targetPath string, cfg Config) error {
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

	updated := reg.Replace(frame(block))
	if updated == string(data) {
		// already in sync, leave the file alone
		return nil
	}
	return writeFileAtomic(targetPath, []byte(updated))
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a half-spliced target behind.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage update for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage update for %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to stage update for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to stage update for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to persist update for %s: %w", path, err)
	}
	return nil
}
