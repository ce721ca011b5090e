// Package libre talks to LibreTranslate-compatible /translate endpoints.
package libre

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kirillkom/doclens/internal/infrastructure/translator"
)

const (
	provider  = "libretranslate"
	// Operation names the breaker guarding calls to this provider.
	Operation = "libre.translate"
)

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	opts       translator.Options
}

type Options struct {
	translator.Options
	APIKey string
}

func New(endpoint string) *Client {
	return NewWithOptions(endpoint, Options{})
}

// NewWithOptions expects the full translate URL, e.g. https://libretranslate.com/translate.
func NewWithOptions(endpoint string, opts Options) *Client {
	return &Client{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: opts.Client(),
		opts:       opts.Options,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText *string `json:"translatedText"`
	Error          string  `json:"error,omitempty"`
}

// Translate returns translator.ErrEmptyTranslation when the reply lacks translatedText.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload := translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	}

	var out string
	err := translator.Run(ctx, c.opts.Executor, Operation, func(callCtx context.Context) error {
		var resp translateResponse
		if err := c.postJSON(callCtx, payload, &resp); err != nil {
			return err
		}
		if resp.TranslatedText == nil {
			if resp.Error != "" {
				return fmt.Errorf("%w: %s", translator.ErrEmptyTranslation, resp.Error)
			}
			return translator.ErrEmptyTranslation
		}
		out = *resp.TranslatedText
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s translate request: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return translator.StatusError(provider, "translate", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode translate response: %w", err)
	}
	return nil
}
