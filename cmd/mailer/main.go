package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tokopasar/storefront/internal/notification/application"
	notifkafka "github.com/tokopasar/storefront/internal/notification/infrastructure/kafka"
	"github.com/tokopasar/storefront/internal/notification/infrastructure/smtp"
	"github.com/tokopasar/storefront/pkg/idempotency"
	"github.com/tokopasar/storefront/pkg/logging"
	"github.com/tokopasar/storefront/pkg/shutdown"
	"github.com/tokopasar/storefront/pkg/tracing"
)

func main() {
	log := logging.New("mailer")

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	kafkaBrokers := strings.Split(env("KAFKA_ADDR", "localhost:9092"), ",")
	topic := env("OUTBOX_TOPIC", "storefront.emails")
	group := env("CONSUMER_GROUP", "mailer")
	redisAddr := env("REDIS_ADDR", "localhost:6379")
	otlpURL := env("OTLP_URL", "http://localhost:4318/v1/traces")
	smtpAddr := env("SMTP_ADDR", "localhost:1025")
	smtpFrom := env("SMTP_FROM", "orders@storefront.local")
	smtpUser := env("SMTP_USERNAME", "")
	smtpPass := env("SMTP_PASSWORD", "")

	tp, err := tracing.Init(ctx, "mailer", otlpURL, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()
	idem := idempotency.NewStore(rdb, 24*time.Hour)

	sender := smtp.NewSender(log, smtpAddr, smtpFrom, smtpUser, smtpPass)
	svc := application.NewService(log, sender)
	consumer := notifkafka.NewConsumer(log, kafkaBrokers, topic, group, svc, idem)

	log.Info("mailer consuming", "topic", topic, "group", group)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped with error", "err", err)
		os.Exit(1)
	}
	log.Info("mailer shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
