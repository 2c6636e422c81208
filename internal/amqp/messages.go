package amqp

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// EstimateComputedMessage is the audit event published after every computed
// estimate. The worker persists these rows; losing one never affects the
// request that produced it.
type EstimateComputedMessage struct {
	RequestID     string    `json:"request_id"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	TxCount       int       `json:"transaction_count"`
	ActualCents   int64     `json:"actual_cents"`
	ForecastCents int64     `json:"forecast_cents"`
	Estimate      int64     `json:"estimate"`
	Model         string    `json:"model"`
	Closed        bool      `json:"month_closed"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEstimateComputedMessage stamps the message with a fresh request ID and
// the current time.
func NewEstimateComputedMessage() *EstimateComputedMessage {
	return &EstimateComputedMessage{
		RequestID: newRequestID(),
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EstimateComputedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EstimateComputedMessageFromJSON creates a message from JSON bytes
func EstimateComputedMessageFromJSON(data []byte) (*EstimateComputedMessage, error) {
	var msg EstimateComputedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func newRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("est_%d", time.Now().UnixNano())
	}
	return "est_" + hex.EncodeToString(bytes)
}
