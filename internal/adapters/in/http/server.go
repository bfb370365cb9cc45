package http

import (
	"context"
	"net/http"

	"labflow/internal/core/application/usecases/commands"
	"labflow/internal/core/application/usecases/queries"
	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports consumed by the server. The command and query handlers satisfy them.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	OrderStageAdvancer interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStageCommand) (*order.Order, error)
	}
	ServiceCreator interface {
		Handle(ctx context.Context, cmd commands.CreateServiceCommand) (*order.Service, error)
	}
	ServiceUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateServiceCommand) (*order.Service, error)
	}
	UserRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterUserCommand) (commands.AuthResult, error)
	}
	UserAuthenticator interface {
		Handle(ctx context.Context, cmd commands.AuthenticateUserCommand) (commands.AuthResult, error)
	}
	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	OrderLister interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) (kernel.Page[*order.Order], error)
	}
)

// Handlers groups the use cases behind the HTTP routes.
type Handlers struct {
	CreateOrder       OrderCreator
	UpdateOrder       OrderUpdater
	AdvanceOrderStage OrderStageAdvancer
	CreateService     ServiceCreator
	UpdateService     ServiceUpdater
	RegisterUser      UserRegistrar
	AuthenticateUser  UserAuthenticator
	GetOrder          OrderGetter
	GetOrders         OrderLister
}

// Server implements ServerInterface. It turns requests into commands and queries
// and renders their results; errors are returned to ErrorHandler untouched.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterUser handles POST /api/auth/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(req.Email, req.Password)
	if err != nil {
		return err
	}

	result, err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newAuthResponse(result))
}

// LoginUser handles POST /api/auth/login.
func (s *Server) LoginUser(ctx echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAuthenticateUserCommand(req.Email, req.Password)
	if err != nil {
		return err
	}

	result, err := s.handlers.AuthenticateUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newAuthResponse(result))
}

// GetOrders handles GET /api/orders.
func (s *Server) GetOrders(ctx echo.Context, params GetOrdersParams) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	page, limit := kernel.DefaultPage, kernel.DefaultLimit
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	pageRequest, err := kernel.NewPageRequest(page, limit)
	if err != nil {
		return err
	}

	var stage *order.Stage
	if params.Stage != nil {
		parsed, parseErr := order.ParseStage(*params.Stage)
		if parseErr != nil {
			return parseErr
		}
		stage = &parsed
	}

	query, err := queries.NewGetOrdersQuery(callerID, pageRequest, stage)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderPageResponse(result))
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	specs, err := req.serviceSpecs()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(callerID, req.details(), *req.ExpiresAt, specs)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newOrderResponse(created))
}

// GetOrderByID handles GET /api/orders/:orderId.
func (s *Server) GetOrderByID(ctx echo.Context, orderID openapi_types.UUID) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(orderID, invalidOrderIDMessage)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id, callerID)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(found))
}

// UpdateOrder handles PUT /api/orders/:orderId.
func (s *Server) UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(orderID, invalidOrderIDMessage)
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(id, callerID, patch)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

// AdvanceOrderStage handles POST /api/orders/:orderId/advance.
func (s *Server) AdvanceOrderStage(ctx echo.Context, orderID openapi_types.UUID) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(orderID, invalidOrderIDMessage)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderStageCommand(id, callerID)
	if err != nil {
		return err
	}

	advanced, err := s.handlers.AdvanceOrderStage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(advanced))
}

// CreateService handles POST /api/orders/:orderId/services.
func (s *Server) CreateService(ctx echo.Context, orderID openapi_types.UUID) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(orderID, invalidOrderIDMessage)
	if err != nil {
		return err
	}

	var req NewServiceRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	spec, err := req.spec()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateServiceCommand(id, callerID, spec)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateService.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newServiceResponse(created))
}

// UpdateService handles PUT /api/orders/:orderId/services/:serviceId.
func (s *Server) UpdateService(ctx echo.Context, orderID, serviceID openapi_types.UUID) error {
	callerID, err := CallerID(ctx)
	if err != nil {
		return err
	}

	id, err := pathID(orderID, invalidOrderIDMessage)
	if err != nil {
		return err
	}

	svcID, err := pathID(serviceID, invalidServiceIDMessage)
	if err != nil {
		return err
	}

	var req ServicePatchRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateServiceCommand(id, svcID, callerID, patch)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateService.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newServiceResponse(updated))
}
