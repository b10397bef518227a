package consumer

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	log "github.com/sirupsen/logrus"
)

type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) error
}

// KafkaConsumer feeds queued registration notices to a handler. A message
// that fails handling is logged and skipped; notices are best effort.
type KafkaConsumer struct {
	consumer *kafka.Consumer
	topic    string
	handler  MessageHandler
}

func NewKafkaConsumer(bootstrapServers, groupID, topic string, handler MessageHandler) (*KafkaConsumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"group.id":          groupID,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	log.WithFields(log.Fields{
		"topic":    topic,
		"group_id": groupID,
	}).Info("Subscribed to Kafka topic")
	return &KafkaConsumer{consumer: c, topic: topic, handler: handler}, nil
}

func (c *KafkaConsumer) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			log.Info("Kafka consumer stopping due to context cancellation")
			return ctx.Err()
		default:
			ev := c.consumer.Poll(100)
			if ev == nil {
				continue
			}

			switch e := ev.(type) {
			case *kafka.Message:
				if err := c.handler.HandleMessage(ctx, e.Value); err != nil {
					log.WithError(err).WithFields(log.Fields{
						"partition": e.TopicPartition.Partition,
						"offset":    e.TopicPartition.Offset,
					}).Error("Failed to handle registration notice")
				}
			case kafka.Error:
				log.WithError(e).Error("Kafka error")
				if e.IsFatal() {
					return e
				}
			}
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.consumer.Close()
}
