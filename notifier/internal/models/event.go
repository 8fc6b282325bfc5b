package models

import "time"

// Event mirrors the payload the records service publishes on the bus.
// The NATS subject carries the routing information.
type Event struct {
	Action    string            `json:"action"`
	ActorName string            `json:"actor_name,omitempty"`
	RecordID  string            `json:"record_id,omitempty"`
	Title     string            `json:"title"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
