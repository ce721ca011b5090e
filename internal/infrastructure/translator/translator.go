// Package translator holds the pieces shared by the remote translation clients.
package translator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/kirillkom/doclens/internal/infrastructure/resilience"
)

const DefaultTimeout = 30 * time.Second

// ErrEmptyTranslation means the provider answered without a translated text.
var ErrEmptyTranslation = errors.New("provider returned no translation")

type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Executor   *resilience.Executor
}

func (o Options) Client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Run calls fn through the executor when one is configured and marks
// retryable failures as temporary.
func Run(ctx context.Context, executor *resilience.Executor, operation string, fn func(context.Context) error) error {
	var err error
	if executor == nil {
		err = fn(ctx)
	} else {
		err = executor.Execute(ctx, operation, fn, resilience.ClassifyHTTPError)
	}
	return resilience.WrapTemporary(operation, err, resilience.ClassifyHTTPError)
}

// StatusError reads at most 2KiB of the reply body into an HTTPStatusError.
func StatusError(provider, operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &resilience.HTTPStatusError{
		Provider:   provider,
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}
