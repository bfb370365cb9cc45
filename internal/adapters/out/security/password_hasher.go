// Package security implements the password and token ports with bcrypt and
// HS256 JSON Web Tokens.
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"labflow/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordHasher hashes passwords with bcrypt after keying them with a
// server-side pepper. The HMAC step also keeps every input below bcrypt's
// 72 byte limit.
type BcryptPasswordHasher struct {
	cost   int
	pepper []byte
}

// NewBcryptPasswordHasher validates cost against bcrypt's bounds. An empty pepper is allowed.
func NewBcryptPasswordHasher(cost int, pepper string) (*BcryptPasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errs.NewValueIsOutOfRangeError("bcrypt cost", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &BcryptPasswordHasher{
		cost:   cost,
		pepper: []byte(pepper),
	}, nil
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(h.peppered(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns errs.ErrUnauthorized on a mismatch and the bcrypt error for a
// malformed hash.
func (h *BcryptPasswordHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.peppered(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errs.NewUnauthorizedErrorWithCause("password mismatch", err)
	}
	return err
}

func (h *BcryptPasswordHasher) peppered(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	encoded := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(encoded, sum)
	return encoded
}
