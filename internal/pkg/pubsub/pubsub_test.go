package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSub_Roundtrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscriber(client, "test_events")
	events, closeFn := sub.Listen(ctx)
	defer closeFn()

	pub := NewPublisher(client, "test_events")
	userID := int64(7)
	err = pub.PublishEvent(ctx, &EventMessage{
		UserID:     &userID,
		EventType:  "report_generated",
		EventProps: map[string]interface{}{"mode": "auto"},
	})
	require.NoError(t, err)

	select {
	case msg := <-events:
		require.NotNil(t, msg)
		assert.Equal(t, "report_event", msg.Type)
		assert.Equal(t, "report_generated", msg.EventType)
		require.NotNil(t, msg.UserID)
		assert.Equal(t, userID, *msg.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
