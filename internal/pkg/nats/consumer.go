package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/dispatch/internal/pkg/logger"
)

// MessageHandler processes the payload of one NATS message
type MessageHandler func(message []byte) error

// Consumer owns a set of subscriptions that share a queue group
type Consumer struct {
	client        *Client
	queueGroup    string
	subscriptions []*nats.Subscription
}

// NewConsumer creates a consumer bound to client. An empty queueGroup
// subscribes every instance to every message.
func NewConsumer(client *Client, queueGroup string) *Consumer {
	return &Consumer{client: client, queueGroup: queueGroup}
}

// Handle registers handler for subject. Handler errors are logged and the
// message is dropped; core NATS has no redelivery.
func (c *Consumer) Handle(subject string, handler MessageHandler) error {
	cb := func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			logger.Warn("Error processing message",
				logger.String("subject", subject),
				logger.String("queue_group", c.queueGroup),
				logger.Err(err))
		}
	}

	var (
		sub *nats.Subscription
		err error
	)
	if c.queueGroup != "" {
		sub, err = c.client.QueueSubscribe(subject, c.queueGroup, cb)
	} else {
		sub, err = c.client.Subscribe(subject, cb)
	}
	if err != nil {
		return err
	}

	c.subscriptions = append(c.subscriptions, sub)
	return nil
}

// Subjects lists the subscribed subjects
func (c *Consumer) Subjects() []string {
	out := make([]string, 0, len(c.subscriptions))
	for _, s := range c.subscriptions {
		out = append(out, s.Subject)
	}
	return out
}

// Stop unsubscribes everything registered through Handle
func (c *Consumer) Stop() error {
	var firstErr error
	for _, s := range c.subscriptions {
		if err := s.Unsubscribe(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to unsubscribe %s: %w", s.Subject, err)
		}
	}
	c.subscriptions = nil
	return firstErr
}
