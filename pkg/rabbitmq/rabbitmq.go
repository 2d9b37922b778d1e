package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	mu       sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string // topic exchange all events go to
	Queue    string // durable queue bound to every routing key
}

func (c Config) withDefaults() Config {
	if c.Exchange == "" {
		c.Exchange = "kayoe.events"
	}
	if c.Queue == "" {
		c.Queue = "kayoe_events"
	}
	return c
}

// NewClient creates a new RabbitMQ client.
// It connects, declares the topic exchange and binds the events queue to it.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	zap.S().Infof("RabbitMQ client connected, exchange %s bound to queue %s", cfg.Exchange, cfg.Queue)

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
	}, nil
}

func declareTopology(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}
	if _, err := ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable (persists messages across broker restarts)
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}
	if err := ch.QueueBind(cfg.Queue, "#", cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", cfg.Queue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish marshals payload to JSON and publishes it as a persistent message
// on the events exchange under routingKey.
func (c *Client) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := Encode(routingKey, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
			Timestamp:    time.Now(),
			Type:         routingKey,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	zap.S().Debugf("published %s event (%d bytes)", routingKey, len(body))
	return nil
}

// Envelope is the JSON body of every published event.
type Envelope struct {
	Event      string          `json:"event"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// Encode wraps payload in an Envelope.
func Encode(routingKey string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload to JSON: %w", routingKey, err)
	}
	body, err := json.Marshal(Envelope{Event: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", routingKey, err)
	}
	return body, nil
}

// Decode parses a message body produced by Encode.
func Decode(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode event envelope: %w", err)
	}
	return &env, nil
}

// ConsumeEvents starts a goroutine that feeds every message of the events
// queue to messageHandler. Messages are acked on success; failures are
// nacked without requeue so a poison message cannot loop forever.
func (c *Client) ConsumeEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack: set to false to manually acknowledge messages
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	zap.S().Infof("waiting for events on %s", c.queue)

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				zap.S().Errorf("error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					zap.S().Errorf("error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				zap.S().Errorf("error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}

// LogEvent is a message handler that records each event in the log. It is
// the default consumer until a mailer service takes over the queue.
func LogEvent(msg amqp.Delivery) error {
	env, err := Decode(msg.Body)
	if err != nil {
		return err
	}
	zap.S().Infof("event %s at %s: %s", env.Event, env.OccurredAt.Format(time.RFC3339), Redact(env.Data))
	return nil
}

// secretKeys are payload fields that never reach the logs.
var secretKeys = map[string]bool{
	"token":    true,
	"password": true,
}

// Redact returns data with the values of secret top-level keys masked.
// Payloads that are not JSON objects are replaced entirely.
func Redact(data json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "[unreadable payload]"
	}
	for k := range fields {
		if secretKeys[strings.ToLower(k)] {
			fields[k] = json.RawMessage(`"[REDACTED]"`)
		}
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return "[unreadable payload]"
	}
	return string(out)
}
