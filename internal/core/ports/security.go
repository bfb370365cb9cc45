package ports

import (
	"time"

	"labflow/internal/core/domain/model/kernel"
)

// PasswordHasher turns plaintext passwords into storable hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// Token is a signed bearer token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID kernel.UUID, now time.Time) (Token, error)
}

// TokenVerifier validates a bearer token and returns the user it was issued to.
// Every failure wraps errs.ErrUnauthorized.
type TokenVerifier interface {
	Verify(token string) (kernel.UUID, error)
}
