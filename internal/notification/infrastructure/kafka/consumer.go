package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tokopasar/storefront/internal/notification/application"
	"github.com/tokopasar/storefront/internal/notification/domain"
	"github.com/tokopasar/storefront/pkg/idempotency"
	"github.com/tokopasar/storefront/pkg/tracing"
)

// Consumer reads email/send events from the outbox topic and hands them to
// the mailer service. Offsets are committed even when a send fails: a
// permanently broken message must not wedge the partition, and the failure
// is logged for operator follow-up.
type Consumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	svc    *application.Service
	idem   *idempotency.Store
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, svc *application.Service, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:    log,
		reader: r,
		svc:    svc,
		idem:   idem,
		tracer: otel.Tracer("mailer-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate email event skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if et := headerValue(msg.Headers, "event_type"); et != "" && et != domain.EventEmailSend {
			c.log.Warn("unexpected event type skipped", "type", et)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "DeliverEmail")

		var email domain.EmailSendPayload
		if err := json.Unmarshal(msg.Value, &email); err != nil {
			c.log.Error("email event unmarshal failed", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.svc.Deliver(msgCtx, email); err != nil {
			c.log.Error("email delivery failed", "recipient", email.RecipientEmail, "err", err)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

func headerValue(h []kafka.Header, key string) string {
	for _, hh := range h {
		if hh.Key == key {
			return string(hh.Value)
		}
	}
	return ""
}
