package infra

import (
	"fmt"

	"github.com/lexcongreso/registration/internal/config"
	"github.com/lexcongreso/registration/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher connects to the broker, without AMQP_URL notifications are dropped
func Publisher(cfg config.AmqpCfg) (events.Publisher, func(), error) {
	if cfg.URL == "" {
		logrus.Warn("AMQP_URL is not set, lead and payment notifications are disabled")
		return events.NewNoopPublisher(), func() {}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to establish connection to broker - %w", err)
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			logrus.Errorf("failed to close broker connection - %v", err)
		}
	}

	publisher, err := events.NewAmqpPublisher(conn, cfg.Exchange)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to declare exchange %s - %w", cfg.Exchange, err)
	}
	return publisher, closeFn, nil
}
