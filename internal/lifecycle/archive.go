package lifecycle

import (
	"context"
	"io"

	"github.com/ferrocene/criticalup/internal/installer"
	"github.com/ferrocene/criticalup/internal/manifest"
)

// Archive streams manifestPath's bound installation into w as an
// uncompressed, deterministically-ordered tarball.
func (c *Core) Archive(_ context.Context, manifestPath string, w io.Writer) error {
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

	id, _, err := resolveBinding(doc, canonical)
	if err != nil {
		return err
	}
	return installer.Archive(w, c.installDirFor(id))
}
