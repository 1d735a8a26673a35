package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"invest-project/internal/core/domain"
	"invest-project/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQAnalysisQueueAdapter реализует интерфейс AnalysisQueuePort для RabbitMQ.
type RabbitMQAnalysisQueueAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string // ключ маршрутизации для задач на анализ
}

// NewRabbitMQAnalysisQueueAdapter создает новый экземпляр RabbitMQAnalysisQueueAdapter.
// producer - это уже инициализированный экземпляр rabbitmq_producer.Publisher.
func NewRabbitMQAnalysisQueueAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*RabbitMQAnalysisQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &RabbitMQAnalysisQueueAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// Enqueue отправляет листинг в очередь задач на анализ.
func (a *RabbitMQAnalysisQueueAdapter) Enqueue(ctx context.Context, record domain.PropertyRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal property record to JSON for ID %s: %w", record.PropertyID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         recordJSON,
		DeliveryMode: amqp.Persistent, // для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = a.producer.Publish(publishCtx, a.routingKey, msg)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to publish property record %s: %w", record.PropertyID, err)
	}

	log.Printf("RabbitMQAdapter: Published analysis task for property ID %s to routing key '%s'\n", record.PropertyID, a.routingKey)
	return nil
}
