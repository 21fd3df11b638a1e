package trust

import (
	"encoding/json"
	"time"

	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

// RevocationEntry records a single revoked content digest.
type RevocationEntry struct {
	Digest    string    `json:"digest"`
	RevokedAt time.Time `json:"revokedAt"`
	Reason    string    `json:"reason,omitempty"`
}

// revocationDocument is the signed payload shape for RoleRevocation
// envelopes: a timestamped, fully replacing list of revoked digests that
// itself carries the expiry it is valid until.
type revocationDocument struct {
	IssuedAt  time.Time         `json:"issuedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Entries   []RevocationEntry `json:"entries"`
}

// RevocationLedger is the set of artifact digests the operator has
// disavowed. It is consulted independently of the transport cache's
// freshness check: a digest can be "fresh" by ETag and still rejected here.
type RevocationLedger struct {
	issuedAt  time.Time
	expiresAt time.Time
	revoked   map[string]RevocationEntry
}

// NewRevocationLedger verifies env against kc under RoleRevocation and
// builds the ledger from its payload.
func NewRevocationLedger(kc *Keychain, env *Envelope, now time.Time) (*RevocationLedger, error) {
	if _, err := kc.Verify(env, RoleRevocation, now); err != nil {
		return nil, err
	}
	var doc revocationDocument
	if err := json.Unmarshal(env.Payload, &doc); err != nil {
		return nil, criticalerrors.NewMalformedEnvelopeError(err)
	}
	revoked := make(map[string]RevocationEntry, len(doc.Entries))
	for _, e := range doc.Entries {
		revoked[e.Digest] = e
	}
	return &RevocationLedger{issuedAt: doc.IssuedAt, expiresAt: doc.ExpiresAt, revoked: revoked}, nil
}

// IsRevoked reports whether digest (formatted "sha256:<hex>") has been
// revoked, and the entry explaining why if so.
func (l *RevocationLedger) IsRevoked(digest string) (RevocationEntry, bool) {
	e, ok := l.revoked[digest]
	return e, ok
}

// ExpiresAt returns the ledger's signed expiry timestamp.
func (l *RevocationLedger) ExpiresAt() time.Time {
	return l.expiresAt
}

// Stale reports whether the ledger's signed expiry has passed at now. A
// stale ledger is not itself a trust failure in offline mode — it is the
// caller's signal to attempt a refresh before trusting the absence of a
// revocation while online.
func (l *RevocationLedger) Stale(now time.Time) bool {
	return now.After(l.expiresAt)
}
