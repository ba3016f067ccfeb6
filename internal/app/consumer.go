package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-grafik/internal/config"
	"go-grafik/internal/events"
	"go-grafik/internal/messaging/kafka/consumer"
	"go-grafik/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationConsumerGroup = "go-grafik-notification-mailer"

// RunConsumer delivers queued notifications by e-mail until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if !cfg.SMTP.Enabled() {
		logger.Warn("smtp not configured, notifications will only be logged")
	}
	mailer := notification.NewMailer(cfg.SMTP, zap.L())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.NotificationRequestedTopic,
		GroupID:        notificationConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- consumer.ConsumeNotifications(ctx, reader, mailer, logger) }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("consumer shutting down")
		cancel()
		return <-done
	case err := <-done:
		return err
	}
}
