// Package extract unpacks a package archive into a staging directory,
// recording the digest of every file it writes so the installer can
// build the installation's file manifest from a single pass.
package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/ferrocene/criticalup/internal/catalog"
	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// Extractor unpacks an archive into destDir, returning the sha256 digest
// (hex, unprefixed) of every regular file it wrote, keyed by its path
// relative to destDir with forward slashes.
type Extractor interface {
	Extract(r io.Reader, destDir string) (map[string]string, error)
}

// New returns the Extractor for format.
func New(format catalog.ArchiveFormat) (Extractor, error) {
	switch format {
	case catalog.FormatTarGz:
		return tarExtractor{decompress: gzip.NewReader}, nil
	case catalog.FormatTarXz:
		return tarExtractor{decompress: func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(xr), nil
		}}, nil
	case catalog.FormatZip:
		return zipExtractor{}, nil
	case catalog.FormatRaw:
		return rawExtractor{}, nil
	default:
		return nil, fmt.Errorf("extract: unsupported archive format %q", format)
	}
}

type tarExtractor struct {
	decompress func(io.Reader) (io.ReadCloser, error)
}

func (e tarExtractor) Extract(r io.Reader, destDir string) (map[string]string, error) {
	dr, err := e.decompress(r)
	if err != nil {
		return nil, fmt.Errorf("extract: opening compressed stream: %w", err)
	}
	defer dr.Close()

	digests := make(map[string]string)
	tr := tar.NewReader(dr)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("extract: reading tar header: %w", err)
		}

		target, rel, err := resolveEntry(destDir, hdr.Name)
		if err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)|0o700); err != nil {
				return nil, fmt.Errorf("extract: creating directory: %w", err)
			}
		case tar.TypeReg:
			digest, err := writeFile(tr, target, os.FileMode(hdr.Mode))
			if err != nil {
				return nil, err
			}
			digests[rel] = digest
		case tar.TypeSymlink:
			linkTarget := filepath.Join(filepath.Dir(target), hdr.Linkname)
			if !isInsideDir(destDir, linkTarget) {
				return nil, criticalerrors.NewPathTraversalError(hdr.Linkname)
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return nil, fmt.Errorf("extract: creating symlink: %w", err)
			}
		}
	}

	return digests, nil
}

type zipExtractor struct{}

func (zipExtractor) Extract(r io.Reader, destDir string) (map[string]string, error) {
	ra, ok := r.(io.ReaderAt)
	if !ok {
		return nil, fmt.Errorf("extract: zip requires a seekable source, got %T", r)
	}
	size, err := readerSize(r)
	if err != nil {
		return nil, fmt.Errorf("extract: determining archive size: %w", err)
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("extract: opening zip reader: %w", err)
	}

	digests := make(map[string]string)
	for _, f := range zr.File {
		if isOSMetadataPath(f.Name) {
			continue
		}

		target, rel, err := resolveEntry(destDir, f.Name)
		if err != nil {
			return nil, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode()|0o700); err != nil {
				return nil, fmt.Errorf("extract: creating directory: %w", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("extract: opening archive entry: %w", err)
		}
		digest, err := writeFile(rc, target, f.Mode())
		rc.Close()
		if err != nil {
			return nil, err
		}
		digests[rel] = digest
	}

	return digests, nil
}

// rawExtractor handles a package distributed as a single uncompressed
// binary: the archive body IS the file, named after destDir itself.
type rawExtractor struct{}

func (rawExtractor) Extract(r io.Reader, destDir string) (map[string]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("extract: creating directory: %w", err)
	}

	name := filepath.Base(destDir)
	target := filepath.Join(destDir, name)
	digest, err := writeFile(r, target, 0o755)
	if err != nil {
		return nil, err
	}
	return map[string]string{name: digest}, nil
}

func resolveEntry(destDir, name string) (target, rel string, err error) {
	target = filepath.Join(destDir, name)
	if !isInsideDir(destDir, target) {
		return "", "", criticalerrors.NewPathTraversalError(name)
	}
	rel, err = filepath.Rel(destDir, target)
	if err != nil {
		return "", "", fmt.Errorf("extract: computing relative path: %w", err)
	}
	return target, filepath.ToSlash(rel), nil
}

func writeFile(r io.Reader, target string, mode os.FileMode) (string, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("extract: creating parent directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return "", fmt.Errorf("extract: creating file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(f, io.TeeReader(r, h)); err != nil {
		return "", fmt.Errorf("extract: writing file: %w", err)
	}

	digest := hex.EncodeToString(h.Sum(nil))
	slog.Debug("extracted file", "path", target, "digest", digest)
	return digest, nil
}

func readerSize(r io.Reader) (int64, error) {
	switch v := r.(type) {
	case *os.File:
		info, err := v.Stat()
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	case interface{ Len() int }:
		return int64(v.Len()), nil
	case io.Seeker:
		current, err := v.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		size, err := v.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		_, err = v.Seek(current, io.SeekStart)
		if err != nil {
			return 0, err
		}
		return size, nil
	default:
		return 0, fmt.Errorf("extract: cannot determine size for %T", r)
	}
}

// isOSMetadataPath reports whether name belongs to __MACOSX/, which
// macOS zip tools inject and installers should ignore.
func isOSMetadataPath(name string) bool {
	return name == "__MACOSX" || name == "__MACOSX/" || strings.HasPrefix(name, "__MACOSX/")
}

func isInsideDir(baseDir, target string) bool {
	rel, err := filepath.Rel(baseDir, target)
	if err != nil {
		return false
	}
	if rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
