package queries_test

import (
	"context"
	"testing"
	"time"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) FindAll(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// newOrder builds an active order in stage created, worth 120.00, expiring at expiresAt.
func newOrder(t *testing.T, owner kernel.UUID, expiresAt time.Time) *order.Order {
	t.Helper()
	value, err := kernel.MoneyFromString("120.00")
	require.NoError(t, err)
	s, err := order.NewService(kernel.NewUUID(), "Panel A", value, baseTime)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), owner, order.Details{
		LabName:     "Acme Lab",
		PatientName: "Jane Doe",
		ClinicName:  "City Clinic",
	}, expiresAt, []*order.Service{s}, baseTime)
	require.NoError(t, err)
	return o
}
