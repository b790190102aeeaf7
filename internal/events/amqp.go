package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// AMQPPublisher publishes JSON envelopes to a durable topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   zerolog.Logger
}

// FallbackPublisher drops events with a warning. It is used when RabbitMQ is
// not configured or unreachable at startup.
type FallbackPublisher struct {
	Logger zerolog.Logger
}

func (p *FallbackPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.Logger.Warn().Str("routing_key", routingKey).Msg("event publish skipped")
	return nil
}

func (p *FallbackPublisher) Close() {}

// Connect dials RabbitMQ with exponential backoff and declares the exchange.
// An empty url, or a broker that stays unreachable, yields a FallbackPublisher.
func Connect(ctx context.Context, rawURL, exchange string, logger zerolog.Logger) Publisher {
	logger = logger.With().Str("component", "events").Logger()
	if strings.TrimSpace(rawURL) == "" {
		logger.Info().Msg("RABBITMQ_URL not set; events disabled")
		return &FallbackPublisher{Logger: logger}
	}
	p, err := NewAMQPPublisher(ctx, rawURL, exchange, logger)
	if err != nil {
		logger.Error().Err(err).Msg("rabbitmq unavailable; events disabled")
		return &FallbackPublisher{Logger: logger}
	}
	return p
}

// NewAMQPPublisher connects and declares exchange.
func NewAMQPPublisher(ctx context.Context, rawURL, exchange string, logger zerolog.Logger) (*AMQPPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, err
	}
	dial := func() (*amqp.Connection, error) {
		return amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	}
	conn, err := backoff.Retry(ctx, dial,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(20*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	p := &AMQPPublisher{conn: conn, exchange: exchange, logger: logger}
	if err := p.openChannel(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	p.channel = ch
	return nil
}

// Publish sends data wrapped in an Envelope. A failed publish reopens the
// channel and retries once.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	body, err := json.Marshal(NewEnvelope(routingKey, data))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err == nil {
		return nil
	}
	p.logger.Warn().Err(err).Str("routing_key", routingKey).Msg("publish failed; reopening channel")
	if p.conn == nil || p.conn.IsClosed() {
		return err
	}
	if chErr := p.openChannel(); chErr != nil {
		return errors.Join(err, chErr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
