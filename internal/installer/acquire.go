package installer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ferrocene/criticalup/internal/catalog"
	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
	"github.com/ferrocene/criticalup/internal/transport"
	"github.com/ferrocene/criticalup/internal/trust"
)

// AcquiredPackage pairs a resolved catalog entry with the bytes fetched
// for it, already checked against its declared digest and the
// revocation ledger.
type AcquiredPackage struct {
	Entry   catalog.PackageEntry
	Payload []byte
}

// Acquire fetches every package in pkgs concurrently, bounded to
// GOMAXPROCS workers since the CPU-bound hash-and-extract phase
// downstream dominates over the I/O-bound fetch. A digest mismatch or a
// revoked artifact fails the whole batch.
func Acquire(
	ctx context.Context,
	client *transport.Client,
	cache *transport.Cache,
	revocation *trust.RevocationLedger,
	pkgs []catalog.PackageEntry,
	opts Options,
) ([]AcquiredPackage, error) {
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))
	g, gctx := errgroup.WithContext(ctx)

	results := make([]AcquiredPackage, len(pkgs))
	for i, pkg := range pkgs {
		i, pkg := i, pkg
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			entry, err := transport.Fetch(gctx, client, cache, transport.CategoryPackages, pkg.URL, transport.FetchOptions{Offline: opts.Offline})
			if err != nil {
				return err
			}
			if entry.SHA256 != pkg.SHA256 {
				return criticalerrors.NewDigestMismatchError(pkg.URL, pkg.SHA256, entry.SHA256)
			}
			if revocation != nil {
				if rev, revoked := revocation.IsRevoked(pkg.Digest()); revoked {
					return criticalerrors.NewRevokedArtifactError(rev.Digest)
				}
			}

			results[i] = AcquiredPackage{Entry: pkg, Payload: entry.Payload}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
