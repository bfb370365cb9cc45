package http

import (
	"fmt"
	"net/http"

	"labflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	invalidOrderIDMessage   = "invalid order ID"
	invalidServiceIDMessage = "invalid service ID"
)

// ServerInterface lists the operations of api/openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	Health(ctx echo.Context) error
	// (POST /api/auth/register)
	RegisterUser(ctx echo.Context) error
	// (POST /api/auth/login)
	LoginUser(ctx echo.Context) error
	// (GET /api/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders/{orderId})
	GetOrderByID(ctx echo.Context, orderID openapi_types.UUID) error
	// (PUT /api/orders/{orderId})
	UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/orders/{orderId}/advance)
	AdvanceOrderStage(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/orders/{orderId}/services)
	CreateService(ctx echo.Context, orderID openapi_types.UUID) error
	// (PUT /api/orders/{orderId}/services/{serviceId})
	UpdateService(ctx echo.Context, orderID, serviceID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) LoginUser(ctx echo.Context) error {
	return w.Handler.LoginUser(ctx)
}

func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var params GetOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid format for parameter page: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid format for parameter limit: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "stage", ctx.QueryParams(), &params.Stage); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid format for parameter stage: %s", err))
	}

	return w.Handler.GetOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrderByID(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId", invalidOrderIDMessage)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderByID(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId", invalidOrderIDMessage)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) AdvanceOrderStage(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId", invalidOrderIDMessage)
	if err != nil {
		return err
	}
	return w.Handler.AdvanceOrderStage(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CreateService(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId", invalidOrderIDMessage)
	if err != nil {
		return err
	}
	return w.Handler.CreateService(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateService(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId", invalidOrderIDMessage)
	if err != nil {
		return err
	}
	serviceID, err := bindPathUUID(ctx, "serviceId", invalidServiceIDMessage)
	if err != nil {
		return err
	}
	return w.Handler.UpdateService(ctx, orderID, serviceID)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation on router. The /api/orders routes run
// behind auth.
func RegisterHandlers(router EchoRouter, si ServerInterface, auth echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/health", wrapper.Health)
	router.POST("/api/auth/register", wrapper.RegisterUser)
	router.POST("/api/auth/login", wrapper.LoginUser)

	router.GET("/api/orders", wrapper.GetOrders, auth)
	router.POST("/api/orders", wrapper.CreateOrder, auth)
	router.GET("/api/orders/:orderId", wrapper.GetOrderByID, auth)
	router.PUT("/api/orders/:orderId", wrapper.UpdateOrder, auth)
	router.POST("/api/orders/:orderId/advance", wrapper.AdvanceOrderStage, auth)
	router.POST("/api/orders/:orderId/services", wrapper.CreateService, auth)
	router.PUT("/api/orders/:orderId/services/:serviceId", wrapper.UpdateService, auth)
}

func bindPathUUID(ctx echo.Context, name, message string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return openapi_types.UUID{}, echo.NewHTTPError(http.StatusBadRequest, message).SetInternal(err)
	}
	return id, nil
}

// pathID rejects the nil UUID, which parses but never identifies anything.
func pathID(id openapi_types.UUID, message string) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, message).SetInternal(err)
	}
	return parsed, nil
}
