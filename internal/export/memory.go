package export

import (
	"context"
	"fmt"
	"sync"

	"stima/internal/amqp"
)

// MemoryAppender collects appended records in memory. Useful in tests and as
// a no-op sink when the sheets export is disabled.
type MemoryAppender struct {
	mu      sync.Mutex
	records []amqp.EstimateComputedMessage
}

var _ EstimateAppender = (*MemoryAppender)(nil)

func NewMemoryAppender() *MemoryAppender {
	return &MemoryAppender{}
}

func (m *MemoryAppender) AppendEstimate(ctx context.Context, msg *amqp.EstimateComputedMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, *msg)
	return fmt.Sprintf("mem:%d", len(m.records)), nil
}

// Records returns a copy of everything appended so far.
func (m *MemoryAppender) Records() []amqp.EstimateComputedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]amqp.EstimateComputedMessage, len(m.records))
	copy(out, m.records)
	return out
}
