package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// prefetch caps unacknowledged deliveries held by one consumer.
const prefetch = 16

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	tag     string
	log     *zap.Logger
}

// NewConsumer declares exchange and a durable queue bound to it with bindingKey.
func NewConsumer(url, exchange, queue, bindingKey string, log *zap.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	c := &Consumer{conn: conn, channel: ch, queue: queue, tag: queue + "-consumer", log: log}
	if err := c.setup(exchange, bindingKey); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) setup(exchange, bindingKey string) error {
	if err := c.channel.ExchangeDeclare(exchange, ExchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	q, err := c.channel.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	c.queue = q.Name
	if err := c.channel.QueueBind(q.Name, bindingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue bind %q: %w", bindingKey, err)
	}
	if err := c.channel.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}
	return nil
}

// Consume starts delivery with manual acknowledgement. The channel closes
// after Close cancels the subscription.
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(c.queue, c.tag, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	c.log.Info("consuming from queue", zap.String("queue", c.queue), zap.String("tag", c.tag))
	return msgs, nil
}

func (c *Consumer) Close() {
	if c.channel != nil {
		if err := c.channel.Cancel(c.tag, false); err != nil {
			c.log.Debug("consumer cancel", zap.Error(err))
		}
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
