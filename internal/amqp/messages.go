package amqp

import (
	"encoding/json"
	"time"
)

// EventType names a change to the expense list.
type EventType string

const (
	ExpenseCreated EventType = "expense.created"
	ExpenseDeleted EventType = "expense.deleted"
)

// ExpenseEvent is a lightweight notification that an expense changed.
// It carries only the id; consumers that need the record read it themselves.
type ExpenseEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent creates an event stamped with the current time
func NewExpenseEvent(eventType EventType, id string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      eventType,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
