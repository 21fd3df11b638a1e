package lifecycle

import (
	"context"

	"github.com/ferrocene/criticalup/internal/installer"
	"github.com/ferrocene/criticalup/internal/manifest"
)

// VerifyProject recomputes the digest of every file recorded for
// manifestPath's bound installation and compares it against the file
// manifest, surfacing any mismatch as a corrupted installation.
func (c *Core) VerifyProject(_ context.Context, manifestPath string) error {
	canonical, err := manifest.CanonicalPath(manifestPath)
	if err != nil {
		return err
	}

	st, err := c.store()
	if err != nil {
		return err
	}
	doc, err := st.LoadReadOnly()
	if err != nil {
		return err
	}

	id, rec, err := resolveBinding(doc, canonical)
	if err != nil {
		return err
	}
	return installer.Verify(c.installDirFor(id), rec)
}
