// Package manifest parses and validates the per-project declaration
// (criticalup.toml) that names the installation a working tree depends
// on.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// SupportedVersion is the only manifest-version this build accepts.
const SupportedVersion = 1

// Product names the release and packages a project depends on for one
// product. Package names may still carry an unexpanded "${host-triple}"
// token; expansion happens at catalog-resolution time, not here.
type Product struct {
	Release  string   `toml:"release"`
	Packages []string `toml:"packages"`
}

// Document is the parsed, as-yet-unvalidated shape of criticalup.toml.
type Document struct {
	ManifestVersion int                `toml:"manifest-version"`
	Products        map[string]Product `toml:"products"`
}

// Parse reads and validates the manifest at path.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, criticalerrors.NewInvalidManifestError(path, err)
	}
	return ParseBytes(path, data)
}

// ParseBytes parses and validates manifest content already read from
// path (or, for init-time validation, not yet written anywhere).
func ParseBytes(path string, data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, criticalerrors.NewInvalidManifestError(path, err)
	}
	if err := doc.Validate(path); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the manifest's structural invariants: a supported
// version and exactly one product entry.
func (d *Document) Validate(path string) error {
	if d.ManifestVersion != SupportedVersion {
		return criticalerrors.NewUnsupportedVersionError(path, d.ManifestVersion, SupportedVersion)
	}
	if len(d.Products) == 0 {
		return criticalerrors.NewInvalidManifestError(path, nil).WithField("products")
	}
	if len(d.Products) != 1 {
		names := make([]string, 0, len(d.Products))
		for name := range d.Products {
			names = append(names, name)
		}
		return criticalerrors.NewMultipleProductsError(path, names)
	}
	return nil
}

// Product returns the manifest's single product entry and its name.
func (d *Document) Product() (name string, product Product) {
	for name, product := range d.Products {
		return name, product
	}
	return "", Product{}
}

// Init synthesizes the default manifest document for a newly initialized
// project depending on release under product.
func Init(product, release string, packages []string) *Document {
	return &Document{
		ManifestVersion: SupportedVersion,
		Products: map[string]Product{
			product: {Release: release, Packages: packages},
		},
	}
}

// Write serializes doc back to TOML at path.
func (d *Document) Write(path string) error {
	data, err := toml.Marshal(d)
	if err != nil {
		return criticalerrors.Wrap(criticalerrors.CategoryConfiguration, "serializing project manifest", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CanonicalPath returns the absolute, symlink-resolved form of path, the
// key bindings are stored under.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}
