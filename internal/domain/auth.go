package domain

import "time"

// Principal is the authenticated caller, as established by the identity provider.
type Principal struct {
	UserID string
	Email  string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the principal it was issued for.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}
