package http

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"labflow/internal/core/application/usecases/commands"
	"labflow/internal/core/application/usecases/queries"
	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/model/user"
	"labflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validToken = "valid-token"

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderUpdater struct{ mock.Mock }

func (m *MockOrderUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderStageAdvancer struct{ mock.Mock }

func (m *MockOrderStageAdvancer) Handle(ctx context.Context, cmd commands.AdvanceOrderStageCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockServiceCreator struct{ mock.Mock }

func (m *MockServiceCreator) Handle(ctx context.Context, cmd commands.CreateServiceCommand) (*order.Service, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*order.Service)
	return s, args.Error(1)
}

type MockServiceUpdater struct{ mock.Mock }

func (m *MockServiceUpdater) Handle(ctx context.Context, cmd commands.UpdateServiceCommand) (*order.Service, error) {
	args := m.Called(ctx, cmd)
	s, _ := args.Get(0).(*order.Service)
	return s, args.Error(1)
}

type MockUserRegistrar struct{ mock.Mock }

func (m *MockUserRegistrar) Handle(ctx context.Context, cmd commands.RegisterUserCommand) (commands.AuthResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AuthResult), args.Error(1)
}

type MockUserAuthenticator struct{ mock.Mock }

func (m *MockUserAuthenticator) Handle(
	ctx context.Context,
	cmd commands.AuthenticateUserCommand,
) (commands.AuthResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AuthResult), args.Error(1)
}

type MockOrderGetter struct{ mock.Mock }

func (m *MockOrderGetter) Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error) {
	args := m.Called(ctx, query)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderLister struct{ mock.Mock }

func (m *MockOrderLister) Handle(ctx context.Context, query queries.GetOrdersQuery) (kernel.Page[*order.Order], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(kernel.Page[*order.Order]), args.Error(1)
}

type MockUserFinder struct{ mock.Mock }

func (m *MockUserFinder) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// stubVerifier accepts validToken only.
type stubVerifier struct {
	userID kernel.UUID
}

func (v stubVerifier) Verify(token string) (kernel.UUID, error) {
	if token != validToken {
		return kernel.UUID{}, errs.NewUnauthorizedError("invalid token")
	}
	return v.userID, nil
}

type mocks struct {
	createOrder   *MockOrderCreator
	updateOrder   *MockOrderUpdater
	advance       *MockOrderStageAdvancer
	createService *MockServiceCreator
	updateService *MockServiceUpdater
	register      *MockUserRegistrar
	authenticate  *MockUserAuthenticator
	getOrder      *MockOrderGetter
	getOrders     *MockOrderLister
	users         *MockUserFinder
}

type fixture struct {
	e      *echo.Echo
	caller *user.User
	m      mocks
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	caller, err := user.NewUser(kernel.NewUUID(), "jane@example.com", "hash", baseTime)
	require.NoError(t, err)

	m := mocks{
		createOrder:   &MockOrderCreator{},
		updateOrder:   &MockOrderUpdater{},
		advance:       &MockOrderStageAdvancer{},
		createService: &MockServiceCreator{},
		updateService: &MockServiceUpdater{},
		register:      &MockUserRegistrar{},
		authenticate:  &MockUserAuthenticator{},
		getOrder:      &MockOrderGetter{},
		getOrders:     &MockOrderLister{},
		users:         &MockUserFinder{},
	}
	m.users.On("Get", mock.Anything, caller.ID()).Return(caller, nil).Maybe()

	server := NewServer(Handlers{
		CreateOrder:       m.createOrder,
		UpdateOrder:       m.updateOrder,
		AdvanceOrderStage: m.advance,
		CreateService:     m.createService,
		UpdateService:     m.updateService,
		RegisterUser:      m.register,
		AuthenticateUser:  m.authenticate,
		GetOrder:          m.getOrder,
		GetOrders:         m.getOrders,
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := NewRouter(server, Authenticate(stubVerifier{userID: caller.ID()}, m.users), logger)
	require.NoError(t, err)

	return fixture{e: e, caller: caller, m: m}
}

// do sends a request with the valid bearer token unless authorized is false.
func (f fixture) do(method, target, body string, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorized {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+validToken)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func newOrder(t *testing.T, owner kernel.UUID) *order.Order {
	t.Helper()
	value, err := kernel.MoneyFromString("120.00")
	require.NoError(t, err)
	s, err := order.NewService(kernel.NewUUID(), "Panel A", value, baseTime)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), owner, order.Details{
		LabName:     "Acme Lab",
		PatientName: "Jane Doe",
		ClinicName:  "City Clinic",
	}, baseTime.Add(72*time.Hour), []*order.Service{s}, baseTime)
	require.NoError(t, err)
	return o
}
