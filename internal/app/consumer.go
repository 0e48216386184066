package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/events"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/messaging/kafka"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/notification"
)

// RunConsumer drains the email topic and hands each request to SMTP.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafka.NewReader(kafkaBroker, "guard-contract-email", events.EmailRequestedTopic)
	defer reader.Close()

	sender := notification.NewSMTPSender(
		os.Getenv("SMTP_HOST"),
		os.Getenv("SMTP_PORT"),
		os.Getenv("SMTP_FROM"),
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notification.ConsumeEmailRequests(ctx, reader, sender, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
