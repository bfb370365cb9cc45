package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpin "labflow/internal/adapters/in/http"
	"labflow/internal/adapters/out/postgres"
	"labflow/internal/adapters/out/security"
	"labflow/internal/core/application/usecases/commands"
	"labflow/internal/core/application/usecases/queries"
	"labflow/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Handlers are built once and shared.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	hasher     *security.BcryptPasswordHasher
	tokens     *security.JWTTokens
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	hasher, err := security.NewBcryptPasswordHasher(config.BcryptCost, config.PasswordPepper)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("password hasher: %w", err)
	}

	tokens, err := security.NewJWTTokens(config.JWTSecret, config.JWTExpiresIn)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("jwt tokens: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hasher:     hasher,
		tokens:     tokens,
		clock:      time.Now,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderStageCommandHandler() commands.AdvanceOrderStageCommandHandler {
	return commands.NewAdvanceOrderStageCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateServiceCommandHandler() commands.CreateServiceCommandHandler {
	return commands.NewCreateServiceCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateServiceCommandHandler() commands.UpdateServiceCommandHandler {
	return commands.NewUpdateServiceCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.tokens, c.clock)
}

func (c *CompositionRoot) CreateAuthenticateUserCommandHandler() commands.AuthenticateUserCommandHandler {
	return commands.NewAuthenticateUserCommandHandler(c.userUoWFactory(), c.hasher, c.tokens, c.clock)
}

// Query handlers read outside a transaction through a unit of work that is never begun.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateCountExpiredOrdersQueryHandler() queries.CountExpiredOrdersQueryHandler {
	return queries.NewCountExpiredOrdersQueryHandler(c.gormDB)
}

// NewHTTPServer builds the echo instance serving the REST API.
func (c *CompositionRoot) NewHTTPServer() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrder:       c.CreateUpdateOrderCommandHandler(),
		AdvanceOrderStage: c.CreateAdvanceOrderStageCommandHandler(),
		CreateService:     c.CreateCreateServiceCommandHandler(),
		UpdateService:     c.CreateUpdateServiceCommandHandler(),
		RegisterUser:      c.CreateRegisterUserCommandHandler(),
		AuthenticateUser:  c.CreateAuthenticateUserCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOrders:         c.CreateGetOrdersQueryHandler(),
	})

	auth := httpin.Authenticate(c.tokens, c.uowFactory.Create().UserRepository())
	return httpin.NewRouter(server, auth, c.logger)
}

// NewJobManager returns the scheduled jobs enabled by the configuration.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	var enabled []jobs.Job
	if c.config.ExpiringOrdersReportSchedule != "" {
		enabled = append(enabled, jobs.NewExpiredOrdersReportJob(
			c.CreateCountExpiredOrdersQueryHandler(),
			c.config.ExpiringOrdersReportSchedule,
			c.clock,
			c.logger,
		))
	}
	return jobs.NewJobManager(c.logger, enabled...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
