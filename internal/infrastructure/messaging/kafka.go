package messaging

import (
	"context"
	"errors"
	"time"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type OrderEventHandler interface {
	HandleOrderEvent(ctx context.Context, evt domain.OrderEvent) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventConsumer feeds order lifecycle events from Kafka to the notifier.
type OrderEventConsumer struct {
	reader     messageReader
	handler    OrderEventHandler
	log        zerolog.Logger
	retryDelay time.Duration
}

func NewOrderEventConsumer(brokers []string, topic, groupID string, handler OrderEventHandler, log zerolog.Logger) *OrderEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})
	return newOrderEventConsumer(reader, handler, log)
}

func newOrderEventConsumer(reader messageReader, handler OrderEventHandler, log zerolog.Logger) *OrderEventConsumer {
	return &OrderEventConsumer{reader: reader, handler: handler, log: log, retryDelay: time.Second}
}

// Run blocks until ctx is cancelled. Malformed messages are committed and
// skipped; a handler failure is logged and its offset is not committed, so a
// consumer restarted before the next commit sees it again.
func (c *OrderEventConsumer) Run(ctx context.Context) error {
	c.log.Info().Msg("order event consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.log.Info().Msg("order event consumer stopped")
				return nil
			}
			c.log.Error().Err(err).Msg("failed to fetch order event")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryDelay):
			}
			continue
		}

		c.process(ctx, msg)
	}
}

func (c *OrderEventConsumer) process(ctx context.Context, msg kafka.Message) {
	var evt domain.OrderEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		c.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("dropping malformed order event")
		c.commit(ctx, msg)
		return
	}

	if err := c.handler.HandleOrderEvent(ctx, evt); err != nil {
		c.log.Error().Err(err).
			Str("type", evt.Type).
			Str("order_id", evt.OrderID).
			Int64("offset", msg.Offset).
			Msg("order event handling failed")
		return
	}
	c.commit(ctx, msg)
}

func (c *OrderEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("failed to commit order event")
	}
}

func (c *OrderEventConsumer) Close() error {
	return c.reader.Close()
}
