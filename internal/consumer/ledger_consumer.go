package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/shutterdesk/studio/internal/events"
)

type LedgerStore interface {
	AddLifetimeValue(ctx context.Context, clientID uuid.UUID, amount float64) error
}

// LedgerConsumer keeps client lifetime value in step with completed bookings.
type LedgerConsumer struct {
	store   LedgerStore
	log     *slog.Logger
	timeout time.Duration
}

func NewLedgerConsumer(store LedgerStore, log *slog.Logger) *LedgerConsumer {
	if log == nil {
		log = slog.Default()
	}
	return &LedgerConsumer{
		store:   store,
		log:     log.With(slog.String("component", "ledger")),
		timeout: 5 * time.Second,
	}
}

// Start drains msgs on its own goroutine until the channel closes.
func (lc *LedgerConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			lc.handleMessage(msg)
		}
		lc.log.Info("delivery channel closed, stopping consumer")
	}()
	return done
}

func (lc *LedgerConsumer) handleMessage(msg amqp.Delivery) {
	var event events.BookingEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		lc.log.Warn("dropping malformed message", slog.String("routing_key", msg.RoutingKey), slog.Any("err", err))
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), lc.timeout)
	defer cancel()

	if err := lc.Apply(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			lc.log.Warn("dropping event for unknown client",
				slog.String("booking_id", event.BookingID.String()),
				slog.String("client_id", event.ClientID.String()),
			)
			_ = msg.Nack(false, false)
			return
		}
		lc.log.Error("ledger update failed",
			slog.String("booking_id", event.BookingID.String()),
			slog.Any("err", err),
		)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

// Apply credits the client when a booking moves into completed. Every other
// event is a no-op.
func (lc *LedgerConsumer) Apply(ctx context.Context, event events.BookingEvent) error {
	if !event.CompletedNow() || event.TotalPrice == 0 {
		return nil
	}
	if err := lc.store.AddLifetimeValue(ctx, event.ClientID, event.TotalPrice); err != nil {
		return err
	}
	lc.log.Info("lifetime value credited",
		slog.String("client_id", event.ClientID.String()),
		slog.String("booking_id", event.BookingID.String()),
		slog.Float64("amount", event.TotalPrice),
	)
	return nil
}
