// Package token reads claims out of a bearer token without verifying it.
//
// The portal never holds the signing key. Claims decoded here only drive
// navigation (expiring a stale session early, prefilling a username) and must
// not be used to make authorization decisions.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedClaims are the subject and expiry read from a token payload.
type UnverifiedClaims struct {
	Subject string
	// ExpiresAt is zero when the token carries no usable exp claim.
	ExpiresAt time.Time
}

// Expired reports whether the expiry is known and strictly before now.
func (c *UnverifiedClaims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.Before(now)
}

var parser = jwt.NewParser()

// Decode returns the claims of raw, or nil when raw is not a three-part
// token with base64url JSON header and payload segments.
func Decode(raw string) *UnverifiedClaims {
	var rc jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &rc); err != nil {
		return nil
	}

	claims := &UnverifiedClaims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		claims.ExpiresAt = rc.ExpiresAt.Time
	}
	return claims
}
