// Package client calls the blueprint analysis endpoint and turns every
// outcome into either a validated blueprint or one classified error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aura-blueprint/aura/internal/blueprint/analysis"
	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
	"github.com/aura-blueprint/aura/internal/logging"
)

const (
	DefaultTimeout = 45 * time.Second

	requestIDHeader = "X-Request-Id"
	maxBody         = 4 << 20
)

type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api/v1.
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     cfg.APIKey,
		httpClient: hc,
		logger:     logger.Named("client"),
	}
}

type envelope struct {
	Success   bool            `json:"success"`
	Blueprint json.RawMessage `json:"blueprint"`
	Answer    string          `json:"answer"`
	Error     string          `json:"error"`
	Kind      string          `json:"kind"`
}

// Analyze submits idea and returns the validated blueprint candidate. The
// candidate has no id. The call is never retried.
func (c *Client) Analyze(ctx context.Context, idea string) (*domain.Blueprint, error) {
	env, err := c.post(ctx, "analyze-project", map[string]string{"idea": idea})
	if err != nil {
		return nil, err
	}
	if !env.Success || len(env.Blueprint) == 0 || string(env.Blueprint) == "null" {
		return nil, c.fail("analyze", domain.NewError(domain.KindIncompleteBlueprint, errors.New("response carries no blueprint")))
	}

	// The payload is untrusted; it goes through the same validation as raw
	// model output.
	bp, err := analysis.ParseJSON(env.Blueprint, idea)
	if err != nil {
		return nil, c.fail("analyze", err)
	}
	return bp, nil
}

// Ask sends one section question with its prior turns and returns the answer.
func (c *Client) Ask(ctx context.Context, req service.ChatRequest) (string, error) {
	env, err := c.post(ctx, "chat-section", req)
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(env.Answer)
	if answer == "" {
		return "", c.fail("ask", domain.NewError(domain.KindServiceUnavailable, errors.New("response carries no answer")))
	}
	return answer, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*envelope, error) {
	op := strings.ReplaceAll(path, "-", "_")
	if c.baseURL == "" {
		return nil, c.fail(op, domain.NewError(domain.KindMisconfiguredClient, errors.New("api base url is not set")))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, c.fail(op, domain.NewError(domain.KindInvalidInput, fmt.Errorf("marshal request: %w", err)))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, bytes.NewReader(payload))
	if err != nil {
		return nil, c.fail(op, domain.NewError(domain.KindMisconfiguredClient, fmt.Errorf("create request: %w", err)))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}
	if id := logging.RequestID(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(op, domain.NewError(domain.KindServiceUnavailable, fmt.Errorf("%s request failed: %w", path, err)))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, c.fail(op, domain.NewError(domain.KindServiceUnavailable, fmt.Errorf("read %s response: %w", path, err)))
	}
	c.logger.Debug("endpoint responded",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(op, classifyStatus(resp.StatusCode, env, decodeErr))
	}
	if decodeErr != nil {
		return nil, c.fail(op, domain.NewError(domain.KindMalformedResponse, fmt.Errorf("decode %s response: %w", path, decodeErr)))
	}
	return &env, nil
}

// classifyStatus maps a non-2xx answer onto a failure kind. The status code
// decides for 400, 402 and 429; otherwise a known kind tag in the body wins
// over the generic ServiceUnavailable.
func classifyStatus(status int, env envelope, decodeErr error) error {
	cause := fmt.Errorf("endpoint returned %d", status)
	if decodeErr == nil && env.Error != "" {
		cause = fmt.Errorf("endpoint returned %d: %s", status, env.Error)
	}

	var kind domain.Kind
	switch status {
	case http.StatusBadRequest:
		kind = domain.KindInvalidInput
	case http.StatusPaymentRequired:
		kind = domain.KindQuotaExhausted
	case http.StatusTooManyRequests:
		kind = domain.KindRateLimited
	default:
		kind = domain.KindServiceUnavailable
		if k, ok := domain.ParseKind(env.Kind); ok && decodeErr == nil {
			switch k {
			case domain.KindMalformedResponse, domain.KindIncompleteBlueprint, domain.KindMisconfiguredClient:
				kind = k
			}
		}
	}

	if kind == domain.KindInvalidInput && decodeErr == nil && env.Error != "" {
		return domain.Errorf(kind, env.Error, cause)
	}
	return domain.NewError(kind, cause)
}

func (c *Client) fail(op string, err error) error {
	kind := domain.KindOf(err)
	fields := []zap.Field{zap.String("operation", op), zap.String("kind", string(kind)), zap.Error(err)}
	if domain.Retryable(kind) {
		c.logger.Warn("request failed", fields...)
	} else {
		c.logger.Error("request failed", fields...)
	}
	return err
}
