package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ferrocene/criticalup/internal/catalog"
	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/transport"
	"github.com/ferrocene/criticalup/internal/trust"
)

// Resolve fetches the release manifest for (product, release) from
// manifestURL, verifies its envelope under RoleReleases, and returns the
// packages requested under requestedNames (after ${host-triple}
// expansion).
func Resolve(
	ctx context.Context,
	client *transport.Client,
	cache *transport.Cache,
	kc *trust.Keychain,
	manifestURL string,
	requestedNames []string,
	hostTriple string,
	opts Options,
) (*catalog.ReleaseManifest, []catalog.PackageEntry, error) {
	entry, err := transport.Fetch(ctx, client, cache, transport.CategoryManifests, manifestURL, transport.FetchOptions{Offline: opts.Offline})
	if err != nil {
		return nil, nil, fmt.Errorf("installer: fetching release manifest: %w", err)
	}

	var env trust.Envelope
	if err := json.Unmarshal(entry.Payload, &env); err != nil {
		return nil, nil, criticalerrors.Wrap(criticalerrors.CategoryTrust, "parsing release manifest envelope", err)
	}
	if _, err := kc.Verify(&env, trust.RoleReleases, time.Now()); err != nil {
		return nil, nil, err
	}

	var rm catalog.ReleaseManifest
	if err := json.Unmarshal(env.Payload, &rm); err != nil {
		return nil, nil, criticalerrors.Wrap(criticalerrors.CategoryConfiguration, "parsing release manifest body", err)
	}
	if err := rm.Validate(); err != nil {
		return nil, nil, err
	}

	pkgs, err := catalog.Resolve(&rm, requestedNames, hostTriple)
	if err != nil {
		return nil, nil, err
	}
	return &rm, pkgs, nil
}
