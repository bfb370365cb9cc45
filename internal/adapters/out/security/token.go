package security

import (
	"errors"
	"fmt"
	"time"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/ports"
	"labflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v4"
)

// MinSecretLength is the shortest HMAC secret accepted for signing.
const MinSecretLength = 32

// claims carries the user id both as the standard subject and as userId, which
// older clients read.
type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTTokens issues and verifies HS256 bearer tokens.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTTokens(secret string, ttl time.Duration) (*JWTTokens, error) {
	var err error
	if len(secret) < MinSecretLength {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"jwt secret", fmt.Errorf("must be at least %d bytes long", MinSecretLength)))
	}
	if ttl <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"jwt ttl", errors.New("must be positive")))
	}
	if err != nil {
		return nil, err
	}

	return &JWTTokens{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Issue signs a token for userID that expires ttl after now.
func (t *JWTTokens) Issue(userID kernel.UUID, now time.Time) (ports.Token, error) {
	if err := userID.Validate(); err != nil {
		return ports.Token{}, err
	}

	expiresAt := now.Add(t.ttl).UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return ports.Token{}, err
	}

	return ports.Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature, the algorithm and the expiry, and returns the
// subject as a user id. Every failure is an errs.UnauthorizedError.
func (t *JWTTokens) Verify(token string) (kernel.UUID, error) {
	if token == "" {
		return kernel.UUID{}, errs.NewUnauthorizedError("missing token")
	}

	var c claims
	if _, err := t.parser.ParseWithClaims(token, &c, t.key); err != nil {
		return kernel.UUID{}, errs.NewUnauthorizedErrorWithCause("invalid token", err)
	}

	subject := c.Subject
	if subject == "" {
		subject = c.UserID
	}

	userID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return kernel.UUID{}, errs.NewUnauthorizedErrorWithCause("invalid token subject", err)
	}

	return userID, nil
}

func (t *JWTTokens) key(*jwt.Token) (any, error) {
	return t.secret, nil
}
