package commands

import (
	"context"
	"errors"

	"labflow/internal/core/ports"
	"labflow/internal/pkg/errs"
)

// InvalidCredentialsReason is the reason given for every failed login, whether the
// email is unknown or the password is wrong.
const InvalidCredentialsReason = "invalid email or password"

// AuthenticateUserCommandHandler signs existing users in.
type AuthenticateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	clock      Clock
}

func NewAuthenticateUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	clock Clock,
) AuthenticateUserCommandHandler {
	return AuthenticateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     issuer,
		clock:      clock,
	}
}

// Handle verifies the credentials without opening a transaction; the repository
// falls back to the main connection. Both unknown emails and wrong passwords
// yield the same errs.UnauthorizedError.
func (h AuthenticateUserCommandHandler) Handle(ctx context.Context, cmd AuthenticateUserCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	account, err := h.uowFactory.Create().UserRepository().FindByEmail(ctx, cmd.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return AuthResult{}, errs.NewUnauthorizedError(InvalidCredentialsReason)
		}
		return AuthResult{}, err
	}

	if err = h.hasher.Compare(account.PasswordHash(), cmd.Password()); err != nil {
		return AuthResult{}, errs.NewUnauthorizedErrorWithCause(InvalidCredentialsReason, err)
	}

	token, err := h.issuer.Issue(account.ID(), h.clock.now())
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: account, Token: token}, nil
}
