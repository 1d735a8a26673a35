package rabbitmq_consumer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"invest-project/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler функция-обработчик для полученных сообщений
type MessageHandler func(delivery amqp.Delivery) (ack bool, requeueOnError bool, err error)

// ConsumerConfig конфигурация для потребителя
type ConsumerConfig struct {
	rabbitmq_common.Config

	// Настройки очереди
	QueueName    string // имя очереди для потребления
	DeclareQueue bool   // пытаться ли объявить очередь
	DurableQueue bool
	QueueArgs    amqp.Table // дополнительные аргументы (например, x-dead-letter-exchange)

	// Настройки обменника и привязки (если ExchangeNameForBind пуст,
	// привязка не выполняется)
	ExchangeNameForBind    string
	DeclareExchangeForBind bool
	ExchangeTypeForBind    string
	DurableExchangeForBind bool
	RoutingKeyForBind      string

	// Настройки QoS: 0 или меньше — без ограничений
	PrefetchCount int

	// Тег потребителя (если пустой, генерируется RabbitMQ)
	ConsumerTag string
}

// Consumer структура для управления потребителем
type Consumer struct {
	config     ConsumerConfig
	handler    MessageHandler
	connection *amqp.Connection
	channel    *amqp.Channel

	// Имя очереди, возвращённое сервером при объявлении.
	actualQueueName string

	wg sync.WaitGroup
}

// NewConsumer создает нового потребителя
func NewConsumer(cfg ConsumerConfig, handler MessageHandler) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base config: %w", err)
	}
	if !cfg.DeclareQueue && cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required if DeclareQueue is false")
	}
	if cfg.DeclareExchangeForBind && (cfg.ExchangeNameForBind == "" || cfg.ExchangeTypeForBind == "") {
		return nil, fmt.Errorf("consumer: exchange name and type are required if declaring an exchange for binding")
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}

	c := &Consumer{
		config:  cfg,
		handler: handler,
	}

	if err := c.connectAndSetup(); err != nil {
		return nil, fmt.Errorf("consumer: initial connection and setup failed: %w", err)
	}

	return c, nil
}

// connectAndSetup устанавливает соединение, канал и настраивает сущности RabbitMQ
func (c *Consumer) connectAndSetup() error {
	log.Printf("Consumer: Attempting to connect to RabbitMQ at %s\n", c.config.URL)
	conn, err := amqp.Dial(c.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	c.connection = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	c.channel = ch
	log.Println("Consumer: Channel opened.")

	// QoS должен быть настроен до Consume
	if c.config.PrefetchCount > 0 {
		log.Printf("Consumer: Setting QoS (PrefetchCount: %d)\n", c.config.PrefetchCount)
		if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			_ = c.channel.Close()
			_ = c.connection.Close()
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	c.actualQueueName = c.config.QueueName
	if c.config.DeclareQueue {
		log.Printf("Consumer: Declaring queue '%s' (durable: %v)\n", c.config.QueueName, c.config.DurableQueue)
		q, declareErr := c.channel.QueueDeclare(
			c.config.QueueName,
			c.config.DurableQueue,
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			c.config.QueueArgs,
		)
		if declareErr != nil {
			_ = c.channel.Close()
			_ = c.connection.Close()
			return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, declareErr)
		}
		c.actualQueueName = q.Name
	}

	if c.config.DeclareExchangeForBind {
		log.Printf("Consumer: Declaring exchange '%s' for binding (type: %s, durable: %v)\n",
			c.config.ExchangeNameForBind, c.config.ExchangeTypeForBind, c.config.DurableExchangeForBind)
		err = c.channel.ExchangeDeclare(
			c.config.ExchangeNameForBind,
			c.config.ExchangeTypeForBind,
			c.config.DurableExchangeForBind,
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = c.channel.Close()
			_ = c.connection.Close()
			return fmt.Errorf("failed to declare exchange '%s' for binding: %w", c.config.ExchangeNameForBind, err)
		}
	}

	if c.config.ExchangeNameForBind != "" {
		log.Printf("Consumer: Binding queue '%s' to exchange '%s' with routing key '%s'\n",
			c.actualQueueName, c.config.ExchangeNameForBind, c.config.RoutingKeyForBind)
		err = c.channel.QueueBind(
			c.actualQueueName,
			c.config.RoutingKeyForBind,
			c.config.ExchangeNameForBind,
			false, // noWait
			nil,
		)
		if err != nil {
			_ = c.channel.Close()
			_ = c.connection.Close()
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", c.actualQueueName, c.config.ExchangeNameForBind, err)
		}
	}

	log.Printf("Consumer: Setup complete for queue '%s'.\n", c.actualQueueName)
	return nil
}

// StartConsuming начинает потребление сообщений. Блокируется до отмены
// контекста (штатное завершение, возвращает nil) или до закрытия
// соединения брокером (возвращает ошибку от RabbitMQ).
func (c *Consumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.connection == nil || c.connection.IsClosed() {
		return fmt.Errorf("consumer: not connected. Please create a new consumer or ensure connection is stable")
	}

	msgs, err := c.channel.Consume(
		c.actualQueueName,
		c.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to register a consumer on queue '%s': %w", c.actualQueueName, err)
	}

	log.Printf("Consumer: [*] Waiting for messages on queue '%s'.\n", c.actualQueueName)

	go func() {
		for {
			// Приоритетная неблокирующая проверка отмены: не берем новое
			// сообщение, если команда на остановку уже получена.
			select {
			case <-ctx.Done():
				log.Printf("Consumer: Context cancelled for tag '%s'. Exiting consumption loop.", c.config.ConsumerTag)
				return
			default:
			}

			select {
			case <-ctx.Done():
				log.Printf("Consumer: Context cancelled for tag '%s'. Exiting consumption loop.", c.config.ConsumerTag)
				return

			case d, ok := <-msgs:
				if !ok {
					log.Printf("Consumer: Deliveries channel closed by RabbitMQ for tag '%s'. Exiting loop.", c.config.ConsumerTag)
					return
				}

				c.wg.Add(1)
				go func(delivery amqp.Delivery) {
					defer c.wg.Done()

					ack, requeueOnError, processErr := c.handler(delivery)

					if processErr != nil {
						log.Printf("Consumer: Error processing message (Tag: %d): %v. Requeue: %v\n", delivery.DeliveryTag, processErr, requeueOnError)
						if err := delivery.Nack(false, requeueOnError); err != nil {
							log.Printf("Consumer: Error sending Nack (Tag: %d): %v\n", delivery.DeliveryTag, err)
						}
						return
					}

					if ack {
						if err := delivery.Ack(false); err != nil {
							log.Printf("Consumer: Error sending Ack (Tag: %d): %v\n", delivery.DeliveryTag, err)
						}
					} else {
						log.Printf("Consumer: [-] Message Nack'd (no requeue) by handler (Tag: %d)\n", delivery.DeliveryTag)
						if err := delivery.Nack(false, false); err != nil {
							log.Printf("Consumer: Error sending Nack (no requeue) (Tag: %d): %v\n", delivery.DeliveryTag, err)
						}
					}
				}(d)
			}
		}
	}()

	notifyClose := make(chan *amqp.Error)
	c.connection.NotifyClose(notifyClose)

	select {
	case <-ctx.Done():
		log.Printf("Consumer: Context cancelled for tag '%s'. Shutting down consumer.", c.config.ConsumerTag)
		return nil

	case err := <-notifyClose:
		log.Printf("Consumer: Connection closed for tag '%s'. Error: %v", c.config.ConsumerTag, err)
		return err
	}
}

// Close закрывает соединение потребителя
func (c *Consumer) Close() error {
	log.Println("Consumer: Closing...")

	log.Println("Consumer: Waiting for message handlers to finish...")
	c.wg.Wait()
	log.Println("Consumer: All message handlers finished.")

	var firstErr error

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			log.Printf("Consumer: Error closing channel: %v\n", err)
			firstErr = err
		}
		c.channel = nil
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			log.Printf("Consumer: Error closing connection: %v\n", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		c.connection = nil
	}
	log.Println("Consumer: Closed.")
	return firstErr
}
