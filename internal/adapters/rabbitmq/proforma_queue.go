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

// RabbitMQProFormaQueueAdapter реализует интерфейс ProFormaQueuePort для RabbitMQ.
// Через него рассчитанные про-формы уходят на сохранение.
type RabbitMQProFormaQueueAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

// NewRabbitMQProFormaQueueAdapter создает новый экземпляр RabbitMQProFormaQueueAdapter.
func NewRabbitMQProFormaQueueAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*RabbitMQProFormaQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &RabbitMQProFormaQueueAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// Enqueue отправляет рассчитанную про-форму в очередь на сохранение.
func (a *RabbitMQProFormaQueueAdapter) Enqueue(ctx context.Context, proForma domain.ProFormaRecord) error {
	proFormaJSON, err := json.Marshal(proForma)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal pro forma to JSON for ID %s: %w", proForma.PropertyID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         proFormaJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = a.producer.Publish(publishCtx, a.routingKey, msg)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to publish pro forma %s: %w", proForma.PropertyID, err)
	}

	log.Printf("RabbitMQAdapter: Published pro forma for property ID %s to routing key '%s'\n", proForma.PropertyID, a.routingKey)
	return nil
}
