package amqp

import (
	"encoding/json"
	"time"
)

// Entities that can appear in a record change message.
const (
	EntityExpense = "expense"
	EntityBudget  = "budget"
	EntityDebt    = "debt"
	EntityGoal    = "goal"
)

// Operations that can appear in a record change message.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// RecordChangeMessage announces a write to a stored record. It carries only
// identifiers, consumers fetch the current state from the database when they
// need it, so a stale or re-delivered message is harmless.
type RecordChangeMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	Owner     string    `json:"owner"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a change message stamped with the current time.
func NewRecordChangeMessage(entity, op, owner string, id int64) *RecordChangeMessage {
	return &RecordChangeMessage{
		Entity:    entity,
		Op:        op,
		Owner:     owner,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
