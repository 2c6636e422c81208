// Package export mirrors estimate audit records to external sinks.
package export

import (
	"context"

	"stima/internal/amqp"
)

// Ports for outbound adapters.
type EstimateAppender interface {
	AppendEstimate(ctx context.Context, msg *amqp.EstimateComputedMessage) (rowRef string, err error)
}
