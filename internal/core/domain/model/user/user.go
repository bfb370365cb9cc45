// Package user provides the User aggregate: an account that owns orders.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/errs"
)

const EmailMaxLength = 100

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a registered account. Emails are stored trimmed and lower-cased so that
// lookups are case-insensitive.
type User struct {
	id           kernel.UUID
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewUser creates an account. passwordHash must already be hashed by a ports.PasswordHasher.
func NewUser(id kernel.UUID, email, passwordHash string, now time.Time) (*User, error) {
	return RestoreUser(id, email, passwordHash, now, now)
}

// RestoreUser rebuilds an account from persisted state.
func RestoreUser(id kernel.UUID, email, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	u := &User{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if len(email) > EmailMaxLength {
		return errs.NewValueIsOutOfRangeError("email length", len(email), 1, EmailMaxLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", email))
	}

	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}
