package natsqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"botbackend/clients"
)

const defaultAckWait = 60 * time.Second

// fetchMaxWait bounds how long a single FetchBatch call blocks waiting for
// messages before returning an empty batch
const fetchMaxWait = 5 * time.Second

// Config holds the JetStream addressing for one bot's command queue
type Config struct {
	URL          string
	StreamName   string
	Subject      string
	ConsumerName string
	AckWait      time.Duration
}

// NATSQueueClient implements the clients.QueueClient interface on top of a
// JetStream stream with explicit acks. Unacked deliveries are redelivered by
// JetStream after AckWait - that redelivery is the system's only retry
// mechanism.
type NATSQueueClient struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	config Config

	mu       sync.Mutex
	consumer jetstream.Consumer
}

// NewNATSQueueClient connects to NATS and ensures the command stream exists
func NewNATSQueueClient(ctx context.Context, config Config) (*NATSQueueClient, error) {
	if config.AckWait == 0 {
		config.AckWait = defaultAckWait
	}

	conn, err := nats.Connect(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     config.StreamName,
		Subjects: []string{config.Subject},
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", config.StreamName, err)
	}

	return &NATSQueueClient{conn: conn, js: js, config: config}, nil
}

// Publish places one serialized envelope on the command queue
func (c *NATSQueueClient) Publish(ctx context.Context, body []byte) error {
	if _, err := c.js.Publish(ctx, c.config.Subject, body); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", c.config.Subject, err)
	}

	return nil
}

// FetchBatch pulls up to maxMessages deliveries from the durable consumer.
// An empty batch after the fetch wait is not an error.
func (c *NATSQueueClient) FetchBatch(ctx context.Context, maxMessages int) ([]clients.QueuedMessage, error) {
	consumer, err := c.ensureConsumer(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := consumer.Fetch(maxMessages, jetstream.FetchMaxWait(fetchMaxWait))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from consumer %s: %w", c.config.ConsumerName, err)
	}

	var messages []clients.QueuedMessage
	for msg := range batch.Messages() {
		messages = append(messages, &natsQueuedMessage{msg: msg})
	}
	if batch.Error() != nil {
		return messages, fmt.Errorf("failed to drain fetch batch: %w", batch.Error())
	}

	return messages, nil
}

// Close drains the underlying NATS connection
func (c *NATSQueueClient) Close() {
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}

func (c *NATSQueueClient) ensureConsumer(ctx context.Context) (jetstream.Consumer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumer != nil {
		return c.consumer, nil
	}

	stream, err := c.js.Stream(ctx, c.config.StreamName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream %s: %w", c.config.StreamName, err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: c.config.Subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWait,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s: %w", c.config.ConsumerName, err)
	}

	c.consumer = consumer
	return consumer, nil
}

// natsQueuedMessage wraps one JetStream delivery; the jetstream.Msg carries
// the delivery's ack token
type natsQueuedMessage struct {
	msg jetstream.Msg
}

func (m *natsQueuedMessage) Body() []byte {
	return m.msg.Data()
}

func (m *natsQueuedMessage) Ack() error {
	return m.msg.Ack()
}
