package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
)

type testLogger struct{}

func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Warn(msg string, args ...interface{})  {}

func TestNotifyPublishesToUserChannel(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, ChannelFor("user-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err, "subscription handshake")

	notifier := NewRedisNotifier(client, testLogger{})
	event := secondary.UserEvent{Type: "problemAccepted", UserID: "user-1", ProblemID: "p-1"}
	require.NoError(t, notifier.Notify(ctx, "user-1", event))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "user:events:user-1", msg.Channel)
		var got secondary.UserEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestNotifyFailsWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	notifier := NewRedisNotifier(client, testLogger{})
	err := notifier.Notify(context.Background(), "user-1", secondary.UserEvent{Type: "problemAccepted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish")
}
