package installer

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Archive writes every file under installDir into w as an uncompressed
// tar stream, in lexicographic path order, so that archiving the same
// installation twice produces byte-identical output.
func Archive(w io.Writer, installDir string) error {
	var paths []string
	err := filepath.Walk(installDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(installDir, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return fmt.Errorf("installer: walking installation: %w", err)
	}
	sort.Strings(paths)

	tw := tar.NewWriter(w)
	for _, rel := range paths {
		full := filepath.Join(installDir, rel)
		info, err := os.Lstat(full)
		if err != nil {
			return fmt.Errorf("installer: stat %s: %w", rel, err)
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("installer: building tar header for %s: %w", rel, err)
		}
		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("installer: writing tar header for %s: %w", rel, err)
		}
		if info.Mode().IsRegular() {
			f, err := os.Open(full)
			if err != nil {
				return fmt.Errorf("installer: opening %s: %w", rel, err)
			}
			_, copyErr := io.Copy(tw, f)
			f.Close()
			if copyErr != nil {
				return fmt.Errorf("installer: archiving %s: %w", rel, copyErr)
			}
		}
	}

	return tw.Close()
}
