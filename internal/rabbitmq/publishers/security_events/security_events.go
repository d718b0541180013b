package securityevents

import (
	"context"
	"encoding/json"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/security"
	"gatekeeper/internal/rabbitmq"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type message struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type RabbitMQ struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

// Publish sends the event with the event type as routing key, so consumers
// can bind to a subset of event types.
func (p *RabbitMQ) Publish(ctx context.Context, event security.Event) error {
	body, err := json.Marshal(message{
		Type:       string(event.Type),
		UserID:     int64(event.UserID),
		Email:      string(event.Email),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err)
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", event.Type),
		logging.Entry("userID", event.UserID),
	)
	return nil
}
