package commands_test

import (
	"testing"

	"labflow/internal/core/application/usecases/commands"
	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		orderID, caller := kernel.NewUUID(), kernel.NewUUID()
		patch := order.Patch{LabName: ptr("Other Lab"), Services: []order.ServiceUpdate{}}

		cmd, err := commands.NewUpdateOrderCommand(orderID, caller, patch)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, caller, cmd.CallerID())
		assert.Equal(t, "Other Lab", *cmd.Patch().LabName)
	})

	t.Run("services are mandatory", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.Patch{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "services")
	})

	t.Run("service ids are mandatory", func(t *testing.T) {
		patch := order.Patch{Services: []order.ServiceUpdate{{}}}

		_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), patch)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "service id")
	})

	t.Run("ids are validated", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(kernel.UUID{}, kernel.UUID{}, order.Patch{Services: []order.ServiceUpdate{}})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value", func(t *testing.T) {
		require.ErrorIs(t, commands.UpdateOrderCommand{}.Validate(), commands.ErrUpdateOrderCommandIsNotConstructed)
	})
}
