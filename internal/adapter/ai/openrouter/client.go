// Package openrouter implements the oracle client against an
// OpenRouter-compatible chat completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"log/slog"

	"github.com/skillsync/skillsync/internal/adapter/ai"
	"github.com/skillsync/skillsync/internal/adapter/ai/tokencount"
	"github.com/skillsync/skillsync/internal/adapter/observability"
	"github.com/skillsync/skillsync/internal/config"
)

// Client implements domain.OracleClient.
//
// The oracle is untrusted and rate-limited: each attempt is bounded by the
// configured timeout, failures retry up to the attempt budget, and when the
// budget is spent the client degrades to a fixed known-good payload instead
// of failing the request.
type Client struct {
	cfg     config.Config
	hc      *http.Client
	counter *tokencount.Counter
}

// New constructs an oracle client with the per-attempt timeout baked into
// its HTTP client. The transport is instrumented so each oracle attempt
// shows up as a span under the request trace.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.OracleTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		counter: tokencount.NewCounter(),
	}
}

// Complete sends the prompt and returns the completion text. After the last
// failed attempt it returns the canonical fallback payload with a nil error;
// oracle unreliability is never surfaced to callers.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	// Once started, the retry sequence runs to completion even if the
	// caller goes away; only the per-attempt timeout bounds each try.
	ctx = context.WithoutCancel(ctx)

	body := map[string]any{
		"model":       c.cfg.ChatModel,
		"temperature": c.cfg.ChatTemperature,
		"max_tokens":  c.cfg.ChatMaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	b, _ := json.Marshal(body)

	var content string
	attempt := 0
	op := func() error {
		attempt++
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenRouterBaseURL+"/chat/completions", bytes.NewReader(b))
		if err != nil {
			observability.OracleRequestsTotal.WithLabelValues("openrouter", "error").Inc()
			slog.Warn("oracle request build failed",
				slog.Int("attempt", attempt),
				slog.String("base_url", c.cfg.OpenRouterBaseURL),
				slog.Any("error", err))
			return err
		}
		r.Header.Set("Authorization", "Bearer "+c.cfg.OpenRouterAPIKey)
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		observability.OracleRequestDuration.WithLabelValues("openrouter").Observe(time.Since(start).Seconds())
		if err != nil {
			observability.OracleRequestsTotal.WithLabelValues("openrouter", "error").Inc()
			slog.Warn("oracle attempt failed",
				slog.Int("attempt", attempt),
				slog.String("model", c.cfg.ChatModel),
				slog.Any("error", err))
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			observability.OracleRequestsTotal.WithLabelValues("openrouter", "error").Inc()
			slog.Warn("oracle response read failed", slog.Int("attempt", attempt), slog.Any("error", err))
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			observability.OracleRequestsTotal.WithLabelValues("openrouter", "error").Inc()
			bodySnippet := string(bodyBytes)
			if len(bodySnippet) > 512 {
				bodySnippet = bodySnippet[:512]
			}
			slog.Warn("oracle non-2xx",
				slog.Int("attempt", attempt),
				slog.Int("status", resp.StatusCode),
				slog.String("model", c.cfg.ChatModel),
				slog.String("x_request_id", resp.Header.Get("X-Request-Id")),
				slog.String("body", bodySnippet))
			return fmt.Errorf("chat status %d", resp.StatusCode)
		}

		var out struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(bodyBytes, &out); err != nil {
			observability.OracleRequestsTotal.WithLabelValues("openrouter", "error").Inc()
			slog.Warn("oracle decode error", slog.Int("attempt", attempt), slog.Any("error", err))
			return err
		}
		if len(out.Choices) == 0 {
			observability.OracleRequestsTotal.WithLabelValues("openrouter", "error").Inc()
			slog.Warn("oracle returned empty choices", slog.Int("attempt", attempt))
			return fmt.Errorf("empty choices")
		}
		content = out.Choices[0].Message.Content
		observability.OracleRequestsTotal.WithLabelValues("openrouter", "success").Inc()
		return nil
	}

	retries := c.cfg.OracleMaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.OracleRetryDelay), uint64(retries))
	if err := backoff.Retry(op, bo); err != nil {
		slog.Error("oracle failed after retries; serving fallback payload",
			slog.Int("attempts", attempt),
			slog.String("model", c.cfg.ChatModel),
			slog.Any("error", err))
		observability.OracleRequestsTotal.WithLabelValues("openrouter", "fallback").Inc()
		return ai.FallbackPayload(), nil
	}

	usage := c.counter.CalculateUsage(prompt, content, c.cfg.ChatModel)
	slog.Info("oracle call successful",
		slog.Int("attempts", attempt),
		slog.String("model", c.cfg.ChatModel),
		slog.Int("prompt_tokens", usage.PromptTokens),
		slog.Int("completion_tokens", usage.CompletionTokens),
		slog.Int("total_tokens", usage.TotalTokens))
	return content, nil
}
