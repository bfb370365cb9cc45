// Package http is the REST adapter: an echo server exposing the order lifecycle
// and account operations described by api/openapi.yaml.
package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: middleware, error mapping, routes and the
// Swagger UI under /swagger/.
func NewRouter(server ServerInterface, auth echo.MiddlewareFunc, logger *slog.Logger) (*echo.Echo, error) {
	if err := registerOpenAPI(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	RegisterHandlers(e, server, auth)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
