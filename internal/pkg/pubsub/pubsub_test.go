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

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestPublishProgress_FillsStepDefaults(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *ProgressMessage, 1)
	go func() {
		_ = subscriber.Subscribe(ctx, func(msg *ProgressMessage) {
			received <- msg
		})
	}()

	// 等待订阅建立
	time.Sleep(50 * time.Millisecond)

	err := publisher.PublishProgress(ctx, &ProgressMessage{
		UserID: 1,
		JobID:  42,
		Status: "processing",
		Step:   StepSynthesizing,
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "job_progress", msg.Type)
		assert.Equal(t, int64(42), msg.JobID)
		assert.Equal(t, StepProgress[StepSynthesizing], msg.Progress)
		assert.Equal(t, StepMessages[StepSynthesizing], msg.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive progress message")
	}
}

func TestSubscribe_StopsOnContextCancel(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- subscriber.Subscribe(ctx, func(*ProgressMessage) {})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe did not stop after cancel")
	}
}
