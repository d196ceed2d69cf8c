package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/pkg/kafka/producer"
)

type TaskProducer struct {
	*producer.Producer
	topic string
}

func NewTaskProducer(producer *producer.Producer, topic string) *TaskProducer {
	return &TaskProducer{
		producer,
		topic,
	}
}

func (tp *TaskProducer) SendTask(ctx context.Context, task dto.ThumbnailTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("TaskProducer - SendTask - json.Marshal: %w", err)
	}

	// Keyed by object key so retries for one object stay on one partition.
	err = tp.Writer.WriteMessages(ctx, kafka.Message{
		Topic: tp.topic,
		Key:   []byte(task.Key),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("TaskProducer - SendTask - tp.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (tp *TaskProducer) Close() error {
	err := tp.Producer.Close()
	if err != nil {
		return fmt.Errorf("TaskProducer - Close: %w", err)
	}

	return nil
}
