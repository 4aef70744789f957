// Package publisher announces newly persisted submissions to downstream
// consumers. Publishing is best effort: the Store never fails a create because
// a notification could not be delivered.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"formtrail/internal/submission/models"
)

// DefaultDeliveryTimeout bounds how long a record may sit buffered before the
// client gives up on it.
const DefaultDeliveryTimeout = 5 * time.Second

// closeFlushTimeout bounds the final flush in Close.
const closeFlushTimeout = 2 * time.Second

// KafkaNotifier produces one record per persisted submission, keyed by id.
// Records are produced asynchronously; delivery failures are logged.
type KafkaNotifier struct {
	client          *kgo.Client
	topic           string
	logger          *slog.Logger
	deliveryTimeout time.Duration
}

type Option func(n *KafkaNotifier)

func WithLogger(logger *slog.Logger) Option {
	return func(n *KafkaNotifier) {
		n.logger = logger
	}
}

// WithDeliveryTimeout overrides DefaultDeliveryTimeout.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(n *KafkaNotifier) {
		if d > 0 {
			n.deliveryTimeout = d
		}
	}
}

// NewKafka connects a producer to brokers. The client is owned by the notifier.
// No connection is made until the first produce or admin request.
func NewKafka(brokers []string, topic string, opts ...Option) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	n := &KafkaNotifier{
		topic:           topic,
		logger:          slog.Default(),
		deliveryTimeout: DefaultDeliveryTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(0),
		kgo.RecordDeliveryTimeout(n.deliveryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	n.client = client
	return n, nil
}

// EnsureTopic creates the topic with a single partition if it is missing.
func (n *KafkaNotifier) EnsureTopic(ctx context.Context) error {
	admin := kadm.NewClient(n.client)
	resp, err := admin.CreateTopic(ctx, 1, -1, nil, n.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", n.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", n.topic, resp.Err)
	}
	return nil
}

// SubmissionCreated buffers the wire form of a persisted submission for
// delivery and returns without waiting for the broker. A full buffer fails the
// record immediately; cancelling ctx does not withdraw a buffered record.
func (n *KafkaNotifier) SubmissionCreated(ctx context.Context, submission models.Submission) error {
	value, err := json.Marshal(models.ToResponse(submission))
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	record := &kgo.Record{
		Topic: n.topic,
		Key:   []byte(submission.ID.String()),
		Value: value,
	}
	n.client.TryProduce(context.WithoutCancel(ctx), record, n.delivered)
	return nil
}

func (n *KafkaNotifier) delivered(record *kgo.Record, err error) {
	if err == nil {
		return
	}
	n.logger.Warn("failed to deliver submission notification",
		"error", err,
		"topic", record.Topic,
		"submission_id", string(record.Key),
	)
}

// Flush waits until every buffered record is delivered or has failed.
func (n *KafkaNotifier) Flush(ctx context.Context) error {
	return n.client.Flush(ctx)
}

// Close flushes what it can and closes the underlying client.
func (n *KafkaNotifier) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeFlushTimeout)
	defer cancel()
	if err := n.client.Flush(ctx); err != nil {
		n.logger.Warn("kafka flush on close incomplete", "error", err)
	}
	n.client.Close()
}
