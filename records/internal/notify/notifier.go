package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/precinct-systems/precinct-stack/common/messaging"
)

// Event is the payload published to the message bus when something
// noteworthy happens. The notifier service turns these into Discord
// webhook posts.
type Event struct {
	Subject   string            `json:"-"`
	Action    string            `json:"action"`
	ActorName string            `json:"actor_name,omitempty"`
	RecordID  string            `json:"record_id,omitempty"`
	Title     string            `json:"title"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Notifier publishes events fire-and-forget. A dead broker degrades
// notifications, never the request that produced the event.
type Notifier struct {
	publisher messaging.Publisher
	log       *slog.Logger
}

func New(publisher messaging.Publisher, log *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		log:       log,
	}
}

// Emit publishes the event asynchronously. It returns immediately.
func (n *Notifier) Emit(event Event) {
	if n == nil || n.publisher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := n.publisher.PublishJSON(ctx, event.Subject, event); err != nil {
			n.log.Warn("failed to publish notification event",
				slog.String("subject", event.Subject),
				slog.String("error", err.Error()),
			)
		}
	}()
}
