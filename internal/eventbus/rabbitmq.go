package eventbus

import (
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Event names published by the core. Consumers (notifications, reporting)
// bind on these routing keys.
const (
	EventStockAdjusted      = "stock.adjusted"
	EventOrderStatusChanged = "order.status_changed"
	EventQuoteConverted     = "quote.converted"
)

// Bus is what the usecases depend on; satisfied by Publisher.
type Bus interface {
	Publish(routingKey string, payload interface{})
}

type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewPublisher(url, exchange string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: channel, exchange: exchange, logger: logger}, nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// Publish emits a domain event. Publishing is best-effort and happens after
// the owning transaction commits; a broker outage must never fail the
// business operation, so errors are logged and swallowed.
func (p *Publisher) Publish(routingKey string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event payload", zap.String("event", routingKey), zap.Error(err))
		return
	}

	err = p.channel.Publish(p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		p.logger.Error("failed to publish event", zap.String("event", routingKey), zap.Error(err))
	}
}
