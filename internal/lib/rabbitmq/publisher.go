package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/mayukh-auth/internal/models"
)

// PublishMessage сериализует message в JSON и публикует его в exchange.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher отправляет события регистрации в заданный exchange.
// Канал amqp не допускает параллельных Publish, поэтому вызовы сериализуются.
type Publisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	ch         *amqp.Channel
	exchange   string
	routingKey string
}

// NewPublisher подключается к брокеру и готовит exchange.
func NewPublisher(url, exchange, routingKey string, retries int, delay time.Duration) (*Publisher, error) {
	conn, err := Connect(url, retries, delay)
	if err != nil {
		return nil, err
	}
	ch, err := SetupExchange(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{
		conn:       conn,
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// PublishSignup публикует событие о новом пользователе.
func (p *Publisher) PublishSignup(ctx context.Context, event models.SignupEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, p.exchange, p.routingKey, event)
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	const op = "rabbitmq.Publisher.Close"
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
