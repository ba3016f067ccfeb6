package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-grafik/internal/messaging/kafka"
	kafkaMock "go-grafik/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func event(id, topic string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "group",
		AggregateID:   "Magazyn",
		EventType:     "notification_requested",
		Topic:         topic,
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		w := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{event("e1", "ok")}, nil)
		repo.EXPECT().MarkSent(ctx, "e1").Return(nil)

		sent, err := processPendingEvents(ctx, repo, w, logger)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, w.written, 1)

		msg := w.written[0]
		assert.Equal(t, "Magazyn", string(msg.Key))
		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "notification_requested", headers["event_type"])
		assert.Equal(t, "e1", headers["outbox_id"])
		assert.Equal(t, "req-e1", headers["request_id"])
	})

	t.Run("failed publish is rescheduled and the batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		w := &fakeWriter{failTopic: "down"}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{event("e1", "down"), event("e2", "ok")}, nil)
		repo.EXPECT().MarkFailed(ctx, "e1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "e2").Return(nil)

		sent, err := processPendingEvents(ctx, repo, w, logger)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		_, err := processPendingEvents(ctx, repo, &fakeWriter{}, logger)
		assert.EqualError(t, err, "db down")
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
