package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-grafik/internal/events"
	"go-grafik/internal/notification"
	notificationerrors "go-grafik/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const sendAttempts = 3

var sendRetryDelay = 2 * time.Second

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeNotifications mails every notification_requested event until ctx
// ends. Messages that can never be delivered are committed and skipped.
// When a send still fails after its retries the consumer stops without
// committing or fetching anything further, so the group redelivers the
// message on restart. It returns nil only when ctx ends.
func ConsumeNotifications(
	ctx context.Context,
	reader MessageReader,
	mailer notification.Mailer,
	logger *zap.Logger,
) error {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return nil
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if event.EventType != events.NotificationRequestedType {
			log.Warn("unexpected event type, skipping", zap.String("event_type", event.EventType))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		mail := notification.Mail{To: event.Recipients, Subject: event.Subject, Body: event.Message}
		if err := deliver(ctx, mailer, mail); err != nil {
			if isPermanent(err) {
				log.Warn("notification cannot be delivered, skipping",
					zap.String("group", event.Group),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return nil
			}
			log.Error("send notification failed, stopping before the next fetch",
				zap.String("group", event.Group),
				zap.Int64("offset", msg.Offset),
				zap.Int("recipients", len(event.Recipients)),
				zap.Error(err),
			)
			return fmt.Errorf("deliver notification at offset %d: %w", msg.Offset, err)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("notification sent",
			zap.String("group", event.Group),
			zap.Int("recipients", len(event.Recipients)),
		)
	}
}

func deliver(ctx context.Context, mailer notification.Mailer, mail notification.Mail) error {
	var err error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		if err = mailer.Send(ctx, mail); err == nil || isPermanent(err) {
			return err
		}
		if attempt == sendAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sendRetryDelay * time.Duration(attempt)):
		}
	}
	return err
}

func isPermanent(err error) bool {
	return errors.Is(err, notificationerrors.ErrInvalidHeader) ||
		errors.Is(err, notificationerrors.ErrNoRecipients)
}
