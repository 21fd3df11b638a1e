package installer

import (
	"bytes"
	"fmt"

	"github.com/ferrocene/criticalup/internal/installer/extract"
)

// Stage extracts every acquired package into stagingDir, merging their
// per-file digests into a single file manifest keyed by path relative
// to stagingDir.
func Stage(stagingDir string, acquired []AcquiredPackage) (map[string]string, error) {
	files := make(map[string]string)

	for _, pkg := range acquired {
		ext, err := extract.New(pkg.Entry.Format)
		if err != nil {
			return nil, fmt.Errorf("installer: %s: %w", pkg.Entry.URL, err)
		}

		digests, err := ext.Extract(bytes.NewReader(pkg.Payload), stagingDir)
		if err != nil {
			return nil, fmt.Errorf("installer: extracting %s: %w", pkg.Entry.URL, err)
		}
		for path, digest := range digests {
			files[path] = digest
		}
	}

	return files, nil
}
