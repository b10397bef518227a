package producer

import (
	"context"
	"testing"

	"warranty-service/internal/domain"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// No broker is needed: produced messages only sit in the local queue.
func newOfflinePublisher(t *testing.T) *KafkaPublisher {
	t.Helper()
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  "127.0.0.1:1",
		"message.timeout.ms": 100,
	})
	require.NoError(t, err)
	pub := NewKafkaPublisher(p, "warranty_registrations")
	t.Cleanup(func() { pub.Close(200) })
	return pub
}

func TestNotifyQueuesNotice(t *testing.T) {
	pub := newOfflinePublisher(t)

	err := pub.Notify(context.Background(), domain.RegistrationNotice{RegistrationID: "reg-1", Invoice: "INV-1"})
	assert.NoError(t, err)
}

func TestNotifyCancelled(t *testing.T) {
	pub := newOfflinePublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Notify(ctx, domain.RegistrationNotice{RegistrationID: "reg-1"})
	assert.ErrorIs(t, err, context.Canceled)
}
