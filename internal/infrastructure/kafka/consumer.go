package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/orsoie/gallery-service/pkg/kafka/consumer"
)

type TaskConsumer struct {
	*consumer.Consumer
}

func NewTaskConsumer(consumer *consumer.Consumer) *TaskConsumer {
	return &TaskConsumer{consumer}
}

func (tc *TaskConsumer) ReadTask(ctx context.Context) (kafka.Message, error) {
	msg, err := tc.Reader.FetchMessage(ctx)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("TaskConsumer - ReadTask - tc.Reader.FetchMessage: %w", err)
	}

	return msg, nil
}

func (tc *TaskConsumer) CommitTask(ctx context.Context, msg kafka.Message) error {
	err := tc.Reader.CommitMessages(ctx, msg)
	if err != nil {
		return fmt.Errorf("TaskConsumer - CommitTask - tc.Reader.CommitMessages: %w", err)
	}

	return nil
}

func (tc *TaskConsumer) Close() error {
	err := tc.Consumer.Close()
	if err != nil {
		return fmt.Errorf("TaskConsumer - Close: %w", err)
	}

	return nil
}
