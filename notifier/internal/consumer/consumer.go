package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/precinct-systems/precinct-stack/common/messaging"
	"github.com/precinct-systems/precinct-stack/notifier/internal/models"
	"github.com/precinct-systems/precinct-stack/notifier/internal/webhook"
)

// Sender delivers one event to a webhook. Satisfied by
// *webhook.Client.
type Sender interface {
	Send(ctx context.Context, event *models.Event) error
}

// Consumer pulls record events off the bus and forwards them to the
// configured webhooks. Delivery is best effort: a failed post is
// logged and the message is not redelivered.
type Consumer struct {
	subscriber messaging.Subscriber
	routes     map[string]Sender
	fallback   Sender
	timeout    time.Duration
	log        *slog.Logger
}

// Routes maps exact NATS subjects to webhook URLs. The empty-string
// key is the fallback for subjects without a dedicated route.
type Routes map[string]string

func New(subscriber messaging.Subscriber, routes Routes, timeout time.Duration, log *slog.Logger) *Consumer {
	if timeout <= 0 {
		timeout = webhook.DefaultTimeout
	}

	c := &Consumer{
		subscriber: subscriber,
		routes:     make(map[string]Sender, len(routes)),
		timeout:    timeout,
		log:        log,
	}
	for subject, url := range routes {
		client := webhook.NewClient(url, timeout)
		if subject == "" {
			c.fallback = client
			continue
		}
		c.routes[subject] = client
	}
	return c
}

// Start subscribes to every record event. Workers in the same queue
// group share the load.
func (c *Consumer) Start() (messaging.Subscription, error) {
	return c.subscriber.QueueSubscribe("records.>", messaging.QueueNotifierWorkers, c.handle)
}

func (c *Consumer) handle(ctx context.Context, msg *messaging.Message) error {
	var event models.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.log.Warn("dropping malformed event",
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()),
		)
		return nil
	}

	sender := c.senderFor(msg.Subject)
	if sender == nil {
		c.log.Debug("no webhook route for subject", slog.String("subject", msg.Subject))
		return nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := sender.Send(sendCtx, &event); err != nil {
		c.log.Warn("failed to deliver webhook",
			slog.String("subject", msg.Subject),
			slog.String("title", event.Title),
			slog.String("error", err.Error()),
		)
		return nil
	}

	c.log.Info("delivered webhook",
		slog.String("subject", msg.Subject),
		slog.String("title", event.Title),
	)
	return nil
}

func (c *Consumer) senderFor(subject string) Sender {
	if sender, ok := c.routes[subject]; ok {
		return sender
	}
	return c.fallback
}
