package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct {
	Msg string
}

type pingResult struct {
	Echo string
}

type thingHappened struct {
	ID string
}

func TestBus_InvokeDispatchesByRequestType(t *testing.T) {
	t.Parallel()

	b := New(nil)
	Handle(b, func(_ context.Context, q pingQuery) (pingResult, error) {
		return pingResult{Echo: q.Msg}, nil
	})

	result, err := Invoke[pingQuery, pingResult](context.Background(), b, pingQuery{Msg: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Echo)
}

func TestBus_InvokeUnregisteredFails(t *testing.T) {
	t.Parallel()

	b := New(nil)
	_, err := Invoke[pingQuery, pingResult](context.Background(), b, pingQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestBus_HandlerErrorPropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	b := New(nil)
	Handle(b, func(_ context.Context, _ pingQuery) (pingResult, error) {
		return pingResult{}, wantErr
	})

	_, err := Invoke[pingQuery, pingResult](context.Background(), b, pingQuery{})
	require.ErrorIs(t, err, wantErr)
}

func TestBus_DuplicateHandlerPanics(t *testing.T) {
	t.Parallel()

	b := New(nil)
	Handle(b, func(_ context.Context, _ pingQuery) (pingResult, error) {
		return pingResult{}, nil
	})

	assert.Panics(t, func() {
		Handle(b, func(_ context.Context, _ pingQuery) (pingResult, error) {
			return pingResult{}, nil
		})
	})
}

func TestBus_PublishFansOutInOrder(t *testing.T) {
	t.Parallel()

	b := New(nil)
	var order []string
	Subscribe(b, "first", func(_ context.Context, _ thingHappened) error {
		order = append(order, "first")
		return nil
	})
	Subscribe(b, "second", func(_ context.Context, _ thingHappened) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, b.Publish(context.Background(), thingHappened{ID: "x"}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_PublishNoSubscribersIsNoop(t *testing.T) {
	t.Parallel()

	b := New(nil)
	require.NoError(t, b.Publish(context.Background(), thingHappened{}))
}

func TestBus_PublishJoinsSubscriberErrors(t *testing.T) {
	t.Parallel()

	failure := errors.New("subscriber broke")
	b := New(nil)
	var secondRan bool
	Subscribe(b, "failing", func(_ context.Context, _ thingHappened) error {
		return failure
	})
	Subscribe(b, "after", func(_ context.Context, _ thingHappened) error {
		secondRan = true
		return nil
	})

	err := b.Publish(context.Background(), thingHappened{})
	require.ErrorIs(t, err, failure)
	assert.True(t, secondRan, "later subscribers must still run after a failure")
}

func TestBus_CanceledContextShortCircuits(t *testing.T) {
	t.Parallel()

	b := New(nil)
	Handle(b, func(_ context.Context, _ pingQuery) (pingResult, error) {
		t.Fatal("handler must not run with a canceled context")
		return pingResult{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Invoke(ctx, pingQuery{})
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, b.Publish(ctx, thingHappened{}), context.Canceled)
}
