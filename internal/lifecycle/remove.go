package lifecycle

import (
	"context"

	"github.com/ferrocene/criticalup/internal/manifest"
	"github.com/ferrocene/criticalup/internal/state"
)

// Remove unbinds manifestPath's project from whatever installation it
// points at and regenerates the proxy directory. The installation itself
// is left on disk — orphaned by the unbind, if nothing else references it
// — until the next Clean.
func (c *Core) Remove(_ context.Context, manifestPath string) error {
	canonical, err := manifest.CanonicalPath(manifestPath)
	if err != nil {
		return err
	}

	st, err := c.store()
	if err != nil {
		return err
	}

	return withLock(st, func(doc *state.Document) error {
		if err := state.Unbind(doc, canonical); err != nil {
			return err
		}
		return c.syncProxies(doc)
	})
}
