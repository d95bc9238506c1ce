package common

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBroker_UserRegistered(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping broker test in short mode")
	}

	mb, err := NewMessageBroker(TestRabbitMQ(t))
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, SetupUserExchange(mb))

	msgs, err := mb.Consume(UserRegisteredKey, UserExchange, UserRegisteredQueue)
	require.NoError(t, err)

	event := UserRegisteredEvent{UserID: "42", Email: "reader@example.com", Name: "Reader"}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, mb.Publish(ctx, body, UserRegisteredKey, UserExchange))

	select {
	case msg := <-msgs:
		var got UserRegisteredEvent
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, event, got)
		assert.NoError(t, msg.Ack(false))
	case <-ctx.Done():
		t.Fatal("timed out waiting for the user.registered message")
	}
}
