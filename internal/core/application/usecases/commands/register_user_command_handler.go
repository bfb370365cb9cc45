package commands

import (
	"context"
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/user"
	"labflow/internal/core/ports"
	"labflow/internal/pkg/errs"
)

// AuthResult is returned by registration and login: the account and a bearer token for it.
type AuthResult struct {
	User  *user.User
	Token ports.Token
}

// RegisterUserCommandHandler creates accounts and signs them in.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	clock      Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	clock Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     issuer,
		clock:      clock,
	}
}

// Handle rejects a taken email with errs.ErrObjectAlreadyExists, stores the hashed
// password and issues a token for the new account.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (AuthResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AuthResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	existing, err := userRepo.FindByEmail(ctx, cmd.Email())
	switch {
	case err == nil && existing != nil:
		return AuthResult{}, errs.NewObjectAlreadyExistsError("email", cmd.Email())
	case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
		return AuthResult{}, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return AuthResult{}, err
	}

	now := h.clock.now()
	account, err := user.NewUser(kernel.NewUUID(), cmd.Email(), hash, now)
	if err != nil {
		return AuthResult{}, err
	}

	if err = userRepo.Add(ctx, account); err != nil {
		return AuthResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AuthResult{}, err
	}

	token, err := h.issuer.Issue(account.ID(), now)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: account, Token: token}, nil
}
