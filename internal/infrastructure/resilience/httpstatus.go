package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/kirillkom/doclens/internal/core/domain"
)

var (
	transient = ErrorClassification{Retryable: true, RecordFailure: true}
	permanent = ErrorClassification{RecordFailure: true}
	ignored   = ErrorClassification{}
)

// HTTPStatusError is a non-2xx reply from an HTTP provider.
type HTTPStatusError struct {
	Provider   string
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "http status error"
	}
	msg := fmt.Sprintf("%s %s status: %s", e.Provider, e.Operation, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// ClassifyHTTPError retries transport failures and retryable statuses. Caller
// cancellation and other 4xx/5xx replies are not held against the breaker.
func ClassifyHTTPError(err error) ErrorClassification {
	var statusErr *HTTPStatusError
	var netErr net.Error

	switch {
	case err == nil:
		return ignored
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ignored
	case IsCircuitOpen(err):
		return transient
	case errors.As(err, &statusErr):
		if IsRetryableHTTPStatus(statusErr.StatusCode) {
			return transient
		}
		return ignored
	case errors.As(err, &netErr):
		return transient
	default:
		return permanent
	}
}

func IsRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// WrapTemporary marks err as domain.ErrTemporary when classify deems it retryable
// or the breaker rejected the call. A nil classify means ClassifyHTTPError.
func WrapTemporary(operation string, err error, classify ErrorClassifier) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if classify == nil {
		classify = ClassifyHTTPError
	}
	if !classify(err).Retryable && !IsCircuitOpen(err) {
		return err
	}
	return domain.WrapError(domain.ErrTemporary, operation, err)
}
