package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"labflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler renders every error returned by a route as {"error": "<message>"}.
// Logging is left to the request logger, which sees the original error.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status, message := describe(err)

	var writeErr error
	if ctx.Request().Method == http.MethodHead {
		writeErr = ctx.NoContent(status)
	} else {
		writeErr = ctx.JSON(status, ErrorResponse{Error: message})
	}
	if writeErr != nil {
		ctx.Logger().Error(writeErr)
	}
}

// describe maps an error to its status code and client-facing message.
func describe(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	var (
		notFound      *errs.ObjectNotFoundError
		unauthorized  *errs.UnauthorizedError
		alreadyExists *errs.ObjectAlreadyExistsError
		notUpdated    *errs.ObjectNotUpdatedError
	)

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, oneLine(err.Error())
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.ParamName + " not found"
	case errors.As(err, &unauthorized):
		if unauthorized.Reason == "" {
			return http.StatusUnauthorized, errs.ErrUnauthorized.Error()
		}
		return http.StatusUnauthorized, unauthorized.Reason
	case errors.As(err, &alreadyExists):
		return http.StatusConflict, alreadyExists.ParamName + " already exists"
	case errors.As(err, &notUpdated):
		return http.StatusInternalServerError, "failed to update " + notUpdated.ParamName
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func oneLine(msg string) string {
	return strings.ReplaceAll(msg, "\n", "; ")
}
