package http

import (
	"context"
	"errors"
	"strings"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/user"
	"labflow/internal/core/ports"
	"labflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const callerIDKey = "callerID"

// UserFinder looks up the account a token was issued to.
type UserFinder interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// Authenticate requires "Authorization: Bearer <token>" and stores the caller's
// id in the context. Tokens of deleted accounts are rejected.
func Authenticate(verifier ports.TokenVerifier, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return errs.NewUnauthorizedError("missing bearer token")
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				return err
			}

			account, err := users.Get(ctx.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					return errs.NewUnauthorizedErrorWithCause("unknown user", err)
				}
				return err
			}

			ctx.Set(callerIDKey, account.ID())
			return next(ctx)
		}
	}
}

// CallerID returns the id stored by Authenticate.
func CallerID(ctx echo.Context) (kernel.UUID, error) {
	id, ok := ctx.Get(callerIDKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, errs.NewUnauthorizedError("missing caller")
	}
	return id, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
