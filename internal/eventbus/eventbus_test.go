package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type started struct{ id string }
type finished struct{ id string }

func TestBus_DispatchesByType(t *testing.T) {
	b := New()
	var got []string
	On(b, func(_ context.Context, e started) { got = append(got, "start:"+e.id) })
	On(b, func(_ context.Context, e finished) { got = append(got, "finish:"+e.id) })

	Emit(context.Background(), b, started{"a"})
	Emit(context.Background(), b, finished{"a"})
	Emit(context.Background(), b, 42)

	assert.Equal(t, []string{"start:a", "finish:a"}, got)
}

func TestBus_UnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := New()
	var first, second int
	unsubscribe := On(b, func(context.Context, started) { first++ })
	On(b, func(context.Context, started) { second++ })

	Emit(context.Background(), b, started{})
	unsubscribe()
	unsubscribe()
	Emit(context.Background(), b, started{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	assert.NotPanics(t, func() {
		Publish(context.Background(), started{})
		Subscribe(func(context.Context, started) {})()
	})

	b := New()
	Use(b)
	t.Cleanup(func() { Use(nil) })
	assert.Same(t, b, Default())

	var ids []string
	unsubscribe := Subscribe(func(_ context.Context, e started) { ids = append(ids, e.id) })
	Publish(context.Background(), started{"x"})
	unsubscribe()
	Publish(context.Background(), started{"y"})
	assert.Equal(t, []string{"x"}, ids)
}
