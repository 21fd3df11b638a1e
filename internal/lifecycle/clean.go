package lifecycle

import (
	"context"

	"github.com/ferrocene/criticalup/internal/state"
)

// Clean removes every installation with no surviving binding, both its
// directory under toolchains/ and its state-document entry, then
// regenerates the proxy directory from what remains.
func (c *Core) Clean(_ context.Context) (*state.CollectResult, error) {
	st, err := c.store()
	if err != nil {
		return nil, err
	}

	var result *state.CollectResult
	err = withLock(st, func(doc *state.Document) error {
		res, err := state.Collect(doc, c.StateRoot)
		if err != nil {
			return err
		}
		result = res
		return c.syncProxies(doc)
	})
	return result, err
}
