// Package poller consumes checkout-completed events and empties the cart of
// the session that checked out.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/pkg/logger"
)

const (
	DefaultTopic   = "checkout-completed"
	DefaultGroupID = "storefront-cart-consumer"
)

var ErrMissingSession = errors.New("missing or invalid session_id")

// CartClearer empties a session's cart.
type CartClearer interface {
	Clear(ctx context.Context, session string) domain.CartState
}

// EventRecorder counts handled events by outcome.
type EventRecorder interface {
	CheckoutEvent(outcome string)
}

type checkoutEvent struct {
	SessionID string `json:"session_id"`
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Poller struct {
	carts  CartClearer
	reader messageReader
	rec    EventRecorder
	log    *slog.Logger
}

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

func NewPoller(carts CartClearer, cfg Config, rec EventRecorder, log *slog.Logger) *Poller {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.GroupID == "" {
		cfg.GroupID = DefaultGroupID
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MaxBytes: 10e6, // 10MB
	})
	return newPoller(carts, reader, rec, log)
}

func newPoller(carts CartClearer, reader messageReader, rec EventRecorder, log *slog.Logger) *Poller {
	return &Poller{
		carts:  carts,
		reader: reader,
		rec:    rec,
		log:    logger.OrDefault(log),
	}
}

// Run reads events until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	for {
		m, err := p.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.ErrorContext(ctx, "error reading message", slog.Any("error", err))
			continue
		}

		if err := p.handleMessage(ctx, m.Value); err != nil {
			p.record("rejected")
			p.log.WarnContext(ctx, "skipping checkout event",
				slog.Int64("offset", m.Offset),
				slog.Any("error", err))
			continue
		}
		p.record("cleared")
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.log.Error("error closing reader", slog.Any("error", err))
	}
}

func (p *Poller) handleMessage(ctx context.Context, value []byte) error {
	var ev checkoutEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return err
	}
	if ev.SessionID == "" {
		return ErrMissingSession
	}

	p.carts.Clear(ctx, ev.SessionID)
	p.log.InfoContext(ctx, "cart cleared after checkout", slog.String("session", ev.SessionID))
	return nil
}

func (p *Poller) record(outcome string) {
	if p.rec != nil {
		p.rec.CheckoutEvent(outcome)
	}
}
