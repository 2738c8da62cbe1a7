// Package events notifies the back office about submitted leads and payments.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	RoutingLeadSubmitted    = "lead.submitted"
	RoutingPaymentSubmitted = "payment.submitted"
)

// LeadSubmitted is published once a lead was created or refreshed
type LeadSubmitted struct {
	CustomerID string `json:"customerId"`
	Email      string `json:"email"`
	CategoryID *int   `json:"customerCategoryId"`
	Created    bool   `json:"created"`
}

// PaymentSubmitted is published once a payment webhook accepted a payment
type PaymentSubmitted struct {
	CustomerID    string  `json:"customerId"`
	TransactionID string  `json:"transactionId"`
	PaymentMethod string  `json:"paymentMethod"`
	PriceKey      string  `json:"priceKey"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// Publisher represents behavior of the notification channel
type Publisher interface {
	LeadSubmitted(context.Context, LeadSubmitted) error
	PaymentSubmitted(context.Context, PaymentSubmitted) error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	exchange string
}

// NewAmqpPublisher declares a durable topic exchange and publishes into it
func NewAmqpPublisher(conn *amqp.Connection, exchange string) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &amqpPublisher{conn: conn, exchange: exchange}, nil
}

func (p *amqpPublisher) LeadSubmitted(ctx context.Context, e LeadSubmitted) error {
	return p.publish(ctx, RoutingLeadSubmitted, &e)
}

func (p *amqpPublisher) PaymentSubmitted(ctx context.Context, e PaymentSubmitted) error {
	return p.publish(ctx, RoutingPaymentSubmitted, &e)
}

func (p *amqpPublisher) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) LeadSubmitted(context.Context, LeadSubmitted) error {
	return nil
}

func (noopPublisher) PaymentSubmitted(context.Context, PaymentSubmitted) error {
	return nil
}
