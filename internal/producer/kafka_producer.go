package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"warranty-service/internal/domain"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	log "github.com/sirupsen/logrus"
)

// KafkaPublisher queues registration notices on a topic for the notification
// consumer. Delivery reports are read in the background and only logged.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	p := &KafkaPublisher{producer: producer, topic: topic, done: make(chan struct{})}
	go p.watchDeliveries()
	return p
}

func (p *KafkaPublisher) Notify(ctx context.Context, notice domain.RegistrationNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal registration notice: %w", err)
	}
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(notice.Invoice),
		Value:          value,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to produce registration notice: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) watchDeliveries() {
	defer close(p.done)
	for ev := range p.producer.Events() {
		switch e := ev.(type) {
		case *kafka.Message:
			if e.TopicPartition.Error != nil {
				log.WithError(e.TopicPartition.Error).WithField("key", string(e.Key)).Error("Registration notice delivery failed")
			}
		case kafka.Error:
			log.WithError(e).Error("Kafka producer error")
		}
	}
}

// Close flushes queued notices for up to timeoutMs and shuts the producer down.
func (p *KafkaPublisher) Close(timeoutMs int) {
	if remaining := p.producer.Flush(timeoutMs); remaining > 0 {
		log.WithField("remaining", remaining).Warn("Registration notices left unflushed")
	}
	p.producer.Close()
	<-p.done
}
