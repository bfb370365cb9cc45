package commands

import (
	"errors"

	"labflow/internal/core/domain/model/user"
	"labflow/internal/pkg/errs"
	"labflow/internal/pkg/guard"
)

var ErrAuthenticateUserCommandIsNotConstructed = errors.New(
	"AuthenticateUserCommand must be created via NewAuthenticateUserCommand constructor",
)

// AuthenticateUserCommand checks credentials and signs the user in.
type AuthenticateUserCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserCommand(email, password string) (AuthenticateUserCommand, error) {
	email = user.NormalizeEmail(email)

	var err error
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	}
	if password == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("password"))
	}
	if err != nil {
		return AuthenticateUserCommand{}, err
	}

	return AuthenticateUserCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AuthenticateUserCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateUserCommandIsNotConstructed)
}

func (c AuthenticateUserCommand) Email() string {
	return c.email
}

func (c AuthenticateUserCommand) Password() string {
	return c.password
}
