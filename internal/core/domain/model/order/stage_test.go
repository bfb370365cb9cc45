package order_test

import (
	"testing"

	"labflow/internal/core/domain/model/order"
	"labflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_TransitionTable(t *testing.T) {
	tests := []struct {
		from    order.Stage
		to      order.Stage
		allowed bool
	}{
		{order.Created, order.Analysis, true},
		{order.Analysis, order.Completed, true},
		{order.Created, order.Completed, false},
		{order.Analysis, order.Created, false},
		{order.Completed, order.Analysis, false},
		{order.Completed, order.Created, false},
		{order.Created, order.Created, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			next, err := tt.from.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "cannot transition from "+tt.from.String()+" to "+tt.to.String())
		})
	}
}

func TestStage_Next(t *testing.T) {
	t.Run("follows the workflow sequence", func(t *testing.T) {
		stages := []order.Stage{order.Created, order.Analysis, order.Completed}
		for i := 0; i < len(stages)-1; i++ {
			next, err := stages[i].Next()
			require.NoError(t, err)
			assert.Equal(t, stages[i+1], next)
		}
	})

	t.Run("completed has no successor", func(t *testing.T) {
		_, err := order.Completed.Next()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "cannot advance from stage completed")
		assert.False(t, order.Completed.CanTransitionTo(order.Analysis))
	})

	t.Run("unknown stage", func(t *testing.T) {
		_, err := order.Stage("shipped").Next()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseStage(t *testing.T) {
	stage, err := order.ParseStage("analysis")
	require.NoError(t, err)
	assert.Equal(t, order.Analysis, stage)

	_, err = order.ParseStage("Analysis")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatuses(t *testing.T) {
	for _, s := range []string{"active", "deleted"} {
		_, err := order.ParseStatus(s)
		require.NoError(t, err)
	}
	_, err := order.ParseStatus("archived")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	for _, s := range []string{"pending", "done", "cancelled"} {
		_, err = order.ParseServiceStatus(s)
		require.NoError(t, err)
	}
	_, err = order.ParseServiceStatus("failed")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
