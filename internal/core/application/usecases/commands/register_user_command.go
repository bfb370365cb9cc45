package commands

import (
	"errors"
	"unicode/utf8"

	"labflow/internal/core/domain/model/user"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 100
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates an account from an email and a plaintext password.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(email, password string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Email returns the normalized email.
func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c *RegisterUserCommand) setEmail(email string) error {
	email = user.NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	c.password = password
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	length := utf8.RuneCountInString(password)
	if length < PasswordMinLength || length > PasswordMaxLength {
		return errs.NewValueIsOutOfRangeError("password length", length, PasswordMinLength, PasswordMaxLength)
	}
	return nil
}
