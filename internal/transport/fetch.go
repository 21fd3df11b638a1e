package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// FetchOptions tunes a single Fetch call.
type FetchOptions struct {
	// Offline skips the network entirely: a cache hit is returned as-is
	// (no revalidation), and a cache miss fails with CodeOfflineCacheMiss.
	Offline bool
}

// Fetch retrieves url, consulting and updating the cache under category.
// On a cache hit it issues a conditional request (If-None-Match /
// If-Modified-Since); a 304 promotes the cached bytes without re-transfer,
// a 200 replaces them atomically. In offline mode the network is never
// touched.
func Fetch(ctx context.Context, client *Client, cache *Cache, category CacheCategory, url string, opts FetchOptions) (*Entry, error) {
	cached, hit := cache.Lookup(category, url)

	if opts.Offline {
		if hit {
			return cached, nil
		}
		return nil, criticalerrors.NewOfflineCacheMissError(url)
	}

	if !client.HasToken() {
		return nil, criticalerrors.NewMissingTokenError(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, criticalerrors.Wrap(criticalerrors.CategoryTransport, "building request", err)
	}
	if hit && cached.ETag != "" {
		req.Header.Set("If-None-Match", cached.ETag)
	} else if hit && cached.LastModified != "" {
		req.Header.Set("If-Modified-Since", cached.LastModified)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusNotModified:
		if !hit {
			return nil, criticalerrors.NewHTTPError(url, resp.StatusCode)
		}
		slog.Debug("cache revalidated", "url", url)
		return cached, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, criticalerrors.NewUnauthorizedError(url)

	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, criticalerrors.Wrap(criticalerrors.CategoryTransport, "reading response body", err)
		}
		etag := resp.Header.Get("ETag")
		lastModified := resp.Header.Get("Last-Modified")
		if err := cache.Store(category, url, body, etag, lastModified); err != nil {
			slog.Warn("failed to cache response", "url", url, "error", err)
		}
		sum := sha256Hex(body)
		return &Entry{Payload: body, ETag: etag, LastModified: lastModified, SHA256: sum}, nil

	default:
		return nil, criticalerrors.NewHTTPError(url, resp.StatusCode)
	}
}
