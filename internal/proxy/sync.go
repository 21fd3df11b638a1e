package proxy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sync regenerates proxyDir so it contains exactly one proxy entry per
// name in names: a hard link to selfPath where the filesystem allows it,
// falling back to a copy across filesystem boundaries. Stale entries
// left over from a previous Collect are removed first.
func Sync(proxyDir, selfPath string, names map[string]struct{}) error {
	if err := os.MkdirAll(proxyDir, 0o755); err != nil {
		return fmt.Errorf("proxy: creating proxy directory: %w", err)
	}

	existing, err := os.ReadDir(proxyDir)
	if err != nil {
		return fmt.Errorf("proxy: reading proxy directory: %w", err)
	}
	for _, entry := range existing {
		if _, keep := names[entry.Name()]; keep {
			continue
		}
		if err := os.Remove(filepath.Join(proxyDir, entry.Name())); err != nil {
			return fmt.Errorf("proxy: removing stale proxy %s: %w", entry.Name(), err)
		}
	}

	for name := range names {
		target := filepath.Join(proxyDir, name)
		if _, err := os.Lstat(target); err == nil {
			continue // already in place from a previous Sync
		}
		if err := linkOrCopy(selfPath, target); err != nil {
			return fmt.Errorf("proxy: installing proxy for %s: %w", name, err)
		}
	}

	return nil
}

func linkOrCopy(selfPath, target string) error {
	if err := os.Link(selfPath, target); err == nil {
		return nil
	}

	src, err := os.Open(selfPath)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
