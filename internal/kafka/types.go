package kafka

import (
	"context"

	"github.com/Shopify/sarama"
)

// Handler processes one message from the queue.
type Handler func(ctx context.Context, message []byte)

// Publish sends a message to a bound topic.
type Publish func(message []byte) error

type handler struct {
	partitionConsumer sarama.PartitionConsumer
	handler           Handler
}
