// Package mymemory talks to the MyMemory /get translation endpoint.
package mymemory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kirillkom/doclens/internal/infrastructure/translator"
)

const (
	provider        = "mymemory"
	Operation       = "mymemory.translate"
	DefaultEndpoint = "https://api.mymemory.translated.net/get"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
	opts       translator.Options
}

func New(endpoint string) *Client {
	return NewWithOptions(endpoint, translator.Options{})
}

func NewWithOptions(endpoint string, opts translator.Options) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: opts.Client(),
		opts:       opts,
	}
}

// responseStatus arrives either as a number or as a quoted number.
type responseStatus int

func (s *responseStatus) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse responseStatus %q: %w", raw, err)
	}
	*s = responseStatus(v)
	return nil
}

type getResponse struct {
	ResponseStatus  responseStatus `json:"responseStatus"`
	ResponseDetails string         `json:"responseDetails"`
	ResponseData    struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	var out string
	err := translator.Run(ctx, c.opts.Executor, Operation, func(callCtx context.Context) error {
		resp, err := c.get(callCtx, text, source+"|"+target)
		if err != nil {
			return err
		}
		if resp.ResponseStatus != http.StatusOK {
			return fmt.Errorf("%s translate status %d: %s", provider, resp.ResponseStatus, strings.TrimSpace(resp.ResponseDetails))
		}
		if strings.TrimSpace(resp.ResponseData.TranslatedText) == "" {
			return translator.ErrEmptyTranslation
		}
		out = resp.ResponseData.TranslatedText
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, text, langPair string) (*getResponse, error) {
	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", langPair)

	target := c.endpoint
	if strings.Contains(target, "?") {
		target += "&" + query.Encode()
	} else {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create translate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s translate request: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, translator.StatusError(provider, "translate", resp)
	}
	var out getResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode translate response: %w", err)
	}
	return &out, nil
}
