package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	got []Event
	err error
}

func (c *capture) Publish(_ context.Context, e Event) error {
	c.got = append(c.got, e)
	return c.err
}

func TestEmitStampsTime(t *testing.T) {
	c := &capture{}
	Emit(context.Background(), c, Event{Type: PenAdded, PenID: 3})

	require.Len(t, c.got, 1)
	assert.Equal(t, PenAdded, c.got[0].Type)
	assert.EqualValues(t, 3, c.got[0].PenID)
	assert.False(t, c.got[0].At.IsZero())
}

func TestEmitSwallowsPublishErrors(t *testing.T) {
	c := &capture{err: errors.New("broker down")}
	assert.NotPanics(t, func() {
		Emit(context.Background(), c, Event{Type: PenDeleted})
	})
	assert.Len(t, c.got, 1)
}

func TestEmitIgnoresNilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, Event{Type: PenDeleted})
	})
}

func TestEmitOutlivesCancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var seen error
	p := publisherFunc(func(ctx context.Context, _ Event) error {
		seen = ctx.Err()
		return nil
	})
	Emit(ctx, p, Event{Type: PenPurchased})
	assert.NoError(t, seen)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{Type: PenAdded}))
}

func TestRedisPublisherReportsUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	err := NewRedisPublisher(rdb, "pens:events").Publish(context.Background(), Event{Type: PenAdded})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xadd pens:events")
}

type publisherFunc func(ctx context.Context, e Event) error

func (f publisherFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }
