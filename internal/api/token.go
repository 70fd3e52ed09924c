package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshLeeway is how close to expiry an access token may get before
// the client exchanges it ahead of a request.
const refreshLeeway = 30 * time.Second

// expiringSoon inspects the access token's exp claim without verifying
// the signature (the server is the authority; the client only wants to
// know whether sending this token is pointless). Unparseable tokens are
// sent as-is and left for the server to reject.
func expiringSoon(raw string, leeway time.Duration) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < leeway
}
