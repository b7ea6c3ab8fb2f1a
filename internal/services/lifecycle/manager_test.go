package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownOrderAndErrors(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	boom := errors.New("boom")

	m.Register("store", func(context.Context) error {
		order = append(order, "store")
		return nil
	})
	m.Register("scheduler", func(context.Context) error {
		order = append(order, "scheduler")
		return boom
	})
	m.Register("ignored", nil)

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"scheduler", "store"}, order)
	assert.True(t, m.Closed())

	assert.NoError(t, m.Shutdown(context.Background()))
	assert.Len(t, order, 2, "hooks run once")

	m.Register("late", func(context.Context) error {
		order = append(order, "late")
		return nil
	})
	assert.Equal(t, "late", order[len(order)-1])
}

func TestListenStop(t *testing.T) {
	m := New(0, nil)
	stop := m.Listen(func() {})
	stop()
	stop()
	assert.NotNil(t, m.Listen(nil))
}
