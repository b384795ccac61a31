package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-teamplanner/internal/calendar"
	"go-teamplanner/internal/employee"
	"go-teamplanner/internal/events"
	"go-teamplanner/internal/mailer"
	"go-teamplanner/internal/messaging/kafka/consumer"
	"go-teamplanner/internal/notification"
	"go-teamplanner/internal/preference"
	"go-teamplanner/internal/shared/connection"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	preferenceRepo := preference.NewRepository(gormDB)
	preferenceService := preference.NewService(preferenceRepo, logger)

	employeeRepo := employee.NewRepository(gormDB)

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	sender := mailer.NewGomailSender(
		os.Getenv("SMTP_HOST"),
		smtpPort,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
	)
	dispatcher := notification.NewDispatcher(
		notification.NewRepository(gormDB),
		preferenceService,
		mailer.NewLogRepository(gormDB),
		sender,
		calendar.NewBuilder(os.Getenv("ICS_UID_DOMAIN")),
		logger,
	)

	employeeReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "teamplanner-preferences",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer employeeReader.Close()

	scheduleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.SchedulePublishedTopic,
		GroupID:        "teamplanner-schedule-notify",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer scheduleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, preferenceService, logger)
	go consumer.ConsumeSchedulePublished(ctx, scheduleReader, employeeRepo, dispatcher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
