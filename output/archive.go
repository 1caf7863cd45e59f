package output

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Archive zips every regular file in the given directory (non-recursive)
// into a single archive at zipPath, overwriting any existing archive. Used
// to bundle a run's output files for easy export.
func Archive(dir, zipPath string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		src, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", entry.Name(), err)
		}

		dst, err := w.Create(entry.Name())
		if err != nil {
			src.Close()
			return fmt.Errorf("failed to add %s to archive: %w", entry.Name(), err)
		}

		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			return fmt.Errorf("failed to write %s to archive: %w", entry.Name(), err)
		}
		src.Close()
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
