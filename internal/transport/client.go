package transport

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

const (
	defaultRetryMax   = 4
	defaultRetryWait  = 500 * time.Millisecond
	defaultRetryCeil  = 10 * time.Second
	defaultDialTimeout = 90 * time.Second
)

// Client wraps a hashicorp/go-retryablehttp.Client configured with a
// bounded retry count, exponential backoff with jitter, and treats
// authentication failures (401/403) as non-retryable.
type Client struct {
	rc       *retryablehttp.Client
	hasToken bool
}

// HasToken reports whether the client was built with a non-empty bearer
// credential.
func (c *Client) HasToken() bool {
	return c.hasToken
}

// NewClient builds a Client with criticalup's retry/backoff/timeout
// policy. token, if non-empty, is sent as a Bearer credential on every
// request.
func NewClient(token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = defaultRetryMax
	rc.RetryWaitMin = defaultRetryWait
	rc.RetryWaitMax = defaultRetryCeil
	rc.Logger = nil
	rc.Backoff = jitteredBackoff
	rc.CheckRetry = checkRetry
	rc.HTTPClient = &http.Client{
		Timeout: defaultDialTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: defaultDialTimeout,
			}).DialContext,
			IdleConnTimeout: defaultDialTimeout,
		},
	}
	if token != "" {
		base := rc.HTTPClient.Transport
		rc.HTTPClient.Transport = &bearerTransport{token: token, base: base}
	}
	return &Client{rc: rc, hasToken: token != ""}
}

// jitteredBackoff layers up to one third random jitter on top of
// retryablehttp's exponential backoff, so that many clients retrying the
// same outage don't synchronize their attempts.
func jitteredBackoff(minWait, maxWait time.Duration, attempt int, resp *http.Response) time.Duration {
	base := retryablehttp.DefaultBackoff(minWait, maxWait, attempt, resp)
	jitter := time.Duration(rand.Int63n(int64(base) / 3)) //nolint:gosec // jitter timing, not security-sensitive
	return base + jitter
}

// checkRetry treats 401/403 as terminal (the token isn't going to become
// valid by retrying) while otherwise following the library's default
// retry policy for transient network/5xx conditions.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// Do issues req, retrying per the configured policy, returning a
// criticalerrors.TransportError on exhaustion.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	rreq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, criticalerrors.Wrap(criticalerrors.CategoryTransport, "building retryable request", err)
	}
	resp, err := c.rc.Do(rreq)
	if err != nil {
		return nil, criticalerrors.NewNetworkError(req.URL.String(), defaultRetryMax, err)
	}
	return resp, nil
}

// drain discards and closes a response body, logging failures rather than
// propagating them (mirrors the teacher's "close, warn on failure" idiom).
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		slog.Debug("closing response body", "error", err)
	}
}
