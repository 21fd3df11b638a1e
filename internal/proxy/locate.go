package proxy

import (
	"io/fs"
	"path/filepath"
	"strings"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// Locate walks installDir for an executable file matching name, honoring
// the OS executable-suffix convention: the caller may ask for either
// "rustc" or "rustc.exe" and get the same answer, regardless of which
// form the installed toolchain actually ships.
func Locate(installDir, invoked, name string) (string, error) {
	bare := strings.TrimSuffix(name, ".exe")
	candidates := map[string]struct{}{bare: {}, bare + ".exe": {}}

	var found string
	err := filepath.WalkDir(installDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if _, ok := candidates[base]; ok {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", criticalerrors.NewBinaryNotFoundError(invoked)
	}
	return found, nil
}
