// Package catalog models the artifact catalog: release manifests published
// alongside signed envelopes, and resolution of a project manifest's
// requested packages against one.
package catalog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// SupportedManifestVersion is the only release manifest FormatVersion this
// build understands. Any other value fails fast.
const SupportedManifestVersion = 1

// ArchiveFormat names the compression/container format a package's bytes
// are published in.
type ArchiveFormat string

const (
	FormatTarGz ArchiveFormat = "tar.gz"
	FormatTarXz ArchiveFormat = "tar.xz"
	FormatZip   ArchiveFormat = "zip"
	FormatRaw   ArchiveFormat = "raw"
)

// PackageEntry describes a single downloadable artifact within a release.
type PackageEntry struct {
	Version string        `json:"version"`
	URL     string        `json:"url"`
	SHA256  string        `json:"sha256"`
	Format  ArchiveFormat `json:"format"`
	Size    int64         `json:"size"`
}

// ReleaseManifest is the top-level document published for a single
// (product, release) pair, signed under RoleReleases.
type ReleaseManifest struct {
	FormatVersion int                     `json:"formatVersion"`
	Product       string                  `json:"product"`
	Release       string                  `json:"release"`
	Packages      map[string]PackageEntry `json:"packages"`
}

// Validate checks the manifest's structural invariants: a supported format
// version and that every package's Version parses as a semantic version.
// CriticalUp release labels themselves (e.g. "stable-25.02.0") are opaque
// channel strings and are never compared or validated this way — only the
// per-package Version field is.
func (rm *ReleaseManifest) Validate() error {
	if rm.FormatVersion != SupportedManifestVersion {
		return criticalerrors.NewUnsupportedVersionError(rm.Product, rm.FormatVersion, SupportedManifestVersion)
	}
	for name, pkg := range rm.Packages {
		if pkg.Version == "" {
			continue
		}
		if _, err := semver.NewVersion(pkg.Version); err != nil {
			return criticalerrors.Wrap(criticalerrors.CategoryConfiguration,
				fmt.Sprintf("package %q has an invalid version %q", name, pkg.Version), err)
		}
	}
	return nil
}

// ExpandHostTriple replaces the literal token "${host-triple}" in pkgName
// with triple. Package names that carry no placeholder are returned
// unchanged.
func ExpandHostTriple(pkgName, triple string) string {
	return strings.ReplaceAll(pkgName, "${host-triple}", triple)
}

// Resolve looks up each requested package name (after host-triple
// expansion) in rm, returning one PackageEntry per name in the same order.
// An unresolvable name fails the whole call.
func Resolve(rm *ReleaseManifest, requested []string, triple string) ([]PackageEntry, error) {
	if err := rm.Validate(); err != nil {
		return nil, err
	}
	out := make([]PackageEntry, 0, len(requested))
	for _, name := range requested {
		expanded := ExpandHostTriple(name, triple)
		pkg, ok := rm.Packages[expanded]
		if !ok {
			if expanded != triple && strings.Contains(name, "${host-triple}") {
				return nil, criticalerrors.NewUnknownHostTripleError(rm.Product, triple)
			}
			return nil, criticalerrors.NewPackageNotInReleaseError(rm.Release, expanded)
		}
		out = append(out, pkg)
	}
	return out, nil
}

// Digest returns pkg's content digest formatted as "sha256:<hex>".
func (p PackageEntry) Digest() string {
	return fmt.Sprintf("sha256:%s", p.SHA256)
}
