package proxy

import (
	"os"
	"path/filepath"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// ManifestName is the project manifest file Discover looks for.
const ManifestName = "criticalup.toml"

// Discover walks startDir and its parents for a criticalup.toml,
// returning its canonicalized absolute path.
func Discover(invoked, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
				return resolved, nil
			}
			return filepath.Clean(candidate), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", criticalerrors.NewNoProjectManifestError(invoked, startDir)
		}
		dir = parent
	}
}
