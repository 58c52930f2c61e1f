package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/elevation-profile-etl/internal/config"
	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes finished profiles to a Kafka topic.
// It implements pipeline.ProfileLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured profile topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load publishes the profile as a single message keyed by run ID.
func (w *Writer) Load(ctx context.Context, profile domain.Profile) error {
	msg, err := serializeToMessage(profile)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish profile: %w", err)
	}
	w.logger.Debug("profile published", "topic", w.writer.Topic, "bytes", len(msg.Value))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Profile into a Kafka message.
func serializeToMessage(profile domain.Profile) (kafkago.Message, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize profile: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(profile.RunID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "point_count", Value: []byte(strconv.Itoa(len(profile.Rows)))},
			{Key: "generated_at", Value: []byte(profile.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
