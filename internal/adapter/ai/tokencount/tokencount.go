// Package tokencount counts tokens for oracle calls.
//
// It uses tiktoken-go to approximate the prompt and completion sizes the
// provider will bill, which keeps the rendered profile+dataset prompt
// honest against the configured max_tokens budget.
package tokencount

import (
	"strings"
	"sync"

	"log/slog"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Usage represents token counts for one oracle call.
type Usage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
}

// Counter provides thread-safe token counting.
type Counter struct {
	encodingCache map[string]*tiktoken.Tiktoken
	mu            sync.RWMutex
}

// NewCounter creates a new token counter instance.
func NewCounter() *Counter {
	return &Counter{encodingCache: make(map[string]*tiktoken.Tiktoken)}
}

func (c *Counter) encodingFor(model string) (*tiktoken.Tiktoken, error) {
	normalized := normalizeModelName(model)

	c.mu.RLock()
	if enc, ok := c.encodingCache[normalized]; ok {
		c.mu.RUnlock()
		return enc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.encodingCache[normalized]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(normalized)
	if err != nil {
		// cl100k_base covers GPT-4-family tokenization, a fair approximation
		// for the open-weights models OpenRouter serves.
		slog.Debug("falling back to cl100k_base encoding",
			slog.String("model", model),
			slog.Any("error", err))
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	c.encodingCache[normalized] = enc
	return enc, nil
}

// normalizeModelName converts provider-prefixed model IDs
// (e.g. "deepseek/deepseek-r1-0528-qwen3-8b:free") to tiktoken-compatible names.
func normalizeModelName(model string) string {
	model = strings.ToLower(model)
	if strings.Contains(model, "/") {
		parts := strings.Split(model, "/")
		model = parts[len(parts)-1]
	}
	model = strings.TrimSuffix(model, ":free")
	switch {
	case strings.Contains(model, "gpt-3.5"):
		return "gpt-3.5-turbo"
	default:
		// GPT-4 encoding is the closest stand-in for llama/mistral/qwen/deepseek.
		return "gpt-4"
	}
}

// CountTokens counts the tokens in text for the given model.
func (c *Counter) CountTokens(text, model string) (int, error) {
	enc, err := c.encodingFor(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// CalculateUsage computes full usage for one prompt/completion pair,
// degrading to a rough bytes/4 estimate when encoding fails.
func (c *Counter) CalculateUsage(prompt, completion, model string) Usage {
	promptTokens, err := c.CountTokens(prompt, model)
	if err != nil {
		slog.Warn("failed to count prompt tokens, using estimate", slog.Any("error", err))
		promptTokens = len(prompt) / 4
	}
	completionTokens, err := c.CountTokens(completion, model)
	if err != nil {
		slog.Warn("failed to count completion tokens, using estimate", slog.Any("error", err))
		completionTokens = len(completion) / 4
	}
	return Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Model:            model,
	}
}
