package nats

import (
	"context"
	"errors"
	"slices"

	"github.com/kirillkom/doclens/internal/infrastructure/resilience"
	"github.com/nats-io/nats.go"
)

// transientErrors clear up once the client reconnects.
var transientErrors = []error{
	nats.ErrNoServers,
	nats.ErrTimeout,
	nats.ErrConnectionClosed,
	nats.ErrDisconnected,
	nats.ErrConnectionReconnecting,
}

func classifyNATSError(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.ErrorClassification{}
	case resilience.IsCircuitOpen(err), isTransient(err):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{RecordFailure: true}
	}
}

func isTransient(err error) bool {
	return slices.ContainsFunc(transientErrors, func(target error) bool {
		return errors.Is(err, target)
	})
}
