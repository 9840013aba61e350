package invalidate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
)

func TestLocalBus_PublishSubscribe(t *testing.T) {
	bus := invalidate.NewLocalBus()
	var got []invalidate.Event
	unsub := bus.Subscribe(invalidate.Borrow, func(_ context.Context, e invalidate.Event) { got = append(got, e) })

	require.NoError(t, bus.Publish(context.Background(), invalidate.Event{Resource: invalidate.Borrow}))
	require.NoError(t, bus.Publish(context.Background(), invalidate.Event{Resource: invalidate.User}))
	require.Len(t, got, 1)
	assert.False(t, got[0].At.IsZero())

	unsub()
	unsub()
	assert.Equal(t, 0, bus.Subscribers(invalidate.Borrow))
	require.NoError(t, bus.Publish(context.Background(), invalidate.Event{Resource: invalidate.Borrow}))
	assert.Len(t, got, 1)
}

func TestEvent_Matches(t *testing.T) {
	e := invalidate.Event{Resource: invalidate.Return, Scope: "u1"}
	assert.True(t, e.Matches(invalidate.Return, "u1"))
	assert.True(t, e.Matches(invalidate.Return, ""))
	assert.False(t, e.Matches(invalidate.Return, "u2"))
	assert.False(t, e.Matches(invalidate.Borrow, "u1"))
	assert.True(t, invalidate.Event{Resource: invalidate.Return}.Matches(invalidate.Return, "u2"))
}

type remoteFake struct{ sent []invalidate.Event }

func (r *remoteFake) Send(_ context.Context, e invalidate.Event) error {
	r.sent = append(r.sent, e)
	return nil
}

func TestFanoutYRelay(t *testing.T) {
	ctx := context.Background()
	local := invalidate.NewLocalBus()
	remote := &remoteFake{}
	fan := &invalidate.Fanout{Local: local, Remote: remote, Origin: "replica-a"}

	delivered := 0
	fan.Subscribe(invalidate.Inventory, func(context.Context, invalidate.Event) { delivered++ })
	require.NoError(t, fan.Publish(ctx, invalidate.Event{Resource: invalidate.Inventory}))
	assert.Equal(t, 1, delivered)
	require.Len(t, remote.sent, 1)
	assert.Equal(t, "replica-a", remote.sent[0].Origin)

	var evicted []string
	relay := &invalidate.Relay{Local: local, Origin: "replica-a", Evict: func(_ context.Context, e invalidate.Event) {
		evicted = append(evicted, e.Resource)
	}}
	// Eco propio: se ignora.
	require.NoError(t, relay.Handle(ctx, remote.sent[0]))
	assert.Equal(t, 1, delivered)

	require.NoError(t, relay.Handle(ctx, invalidate.Event{Resource: invalidate.Inventory, Origin: "replica-b"}))
	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{invalidate.Inventory}, evicted)
}
