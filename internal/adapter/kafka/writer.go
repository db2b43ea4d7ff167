package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/skyquorum/climate-oracle/internal/config"
	"github.com/skyquorum/climate-oracle/internal/domain"
)

// Publisher produces completed challenge results to a Kafka topic.
// It implements subnet.ResultSink.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured results topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one challenge result and writes it to the results topic.
func (p *Publisher) Publish(ctx context.Context, result domain.ChallengeResult) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a ChallengeResult into a Kafka message keyed by
// challenge id, with routing headers for type-filtered consumers.
func serializeToMessage(result domain.ChallengeResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize challenge result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(result.ChallengeID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "task_type", Value: []byte(result.Synapse.TaskType)},
			{Key: "challenge_type", Value: []byte(result.ChallengeType)},
			{Key: "completed_at", Value: []byte(result.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
