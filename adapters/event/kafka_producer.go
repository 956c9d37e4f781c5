package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const TopicContentEvents = "content.events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ContentEventsWriter messageWriter
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'content.events'
	contentWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicContentEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		ContentEventsWriter: contentWriter,
		logger:              log,
	}, nil
}

// PublishContentChanged keys messages by kind so all changes of one kind
// land on the same partition in order.
func (c *KafkaProducerClient) PublishContentChanged(ctx context.Context, msg service.ContentChanged) error {
	payload, err := json.Marshal(ContentEventPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal content event: %w", err)
	}
	err = c.ContentEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Kind),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write content event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		if err := c.ContentEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close content events writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
