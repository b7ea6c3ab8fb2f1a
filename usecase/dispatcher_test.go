package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/cooltodo/pkg/logger"
)

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	var seenID string
	d.RegisterCommand("b.cmd", func(ctx context.Context, payload interface{}) (interface{}, error) {
		seenID = logger.ActionID(ctx)
		return payload, nil
	})
	d.RegisterCommand("a.cmd", func(context.Context, interface{}) (interface{}, error) { return nil, nil })
	d.RegisterQuery("q", func(_ context.Context, params interface{}) (interface{}, error) { return params, nil })

	t.Run("commands get an action id", func(t *testing.T) {
		res, err := d.ExecuteCommand(context.Background(), "b.cmd", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, res)
		assert.NotEmpty(t, seenID)
	})

	t.Run("existing action id is kept", func(t *testing.T) {
		ctx := logger.ContextWithActionID(context.Background(), "fixed")
		_, err := d.ExecuteCommand(ctx, "b.cmd", nil)
		require.NoError(t, err)
		assert.Equal(t, "fixed", seenID)
	})

	t.Run("unknown names fail", func(t *testing.T) {
		_, err := d.ExecuteCommand(context.Background(), "nope", nil)
		assert.Error(t, err)
		_, err = d.ExecuteQuery(context.Background(), "nope", nil)
		assert.Error(t, err)
	})

	t.Run("names are listed in order", func(t *testing.T) {
		assert.Equal(t, []string{"a.cmd", "b.cmd"}, d.Commands())
		assert.Equal(t, []string{"q"}, d.Queries())
	})
}
