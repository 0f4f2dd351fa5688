package llmservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"ubuzima-ai/internal/config"
)

var (
	// ErrProviderTimeout marks a generation call that ran out of its
	// time budget; callers may retry.
	ErrProviderTimeout = errors.New("generation provider timed out")
	// ErrProviderFailure marks any other provider error; not retried.
	ErrProviderFailure = errors.New("generation provider failed")
)

// Generator turns a system policy and a user turn into prose.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Client calls an OpenAI-compatible chat endpoint (Groq in production)
// through langchaingo.
type Client struct {
	cfg config.LLMConfig
}

func NewClient(cfg config.LLMConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	llm, err := openai.New(
		openai.WithBaseURL(c.cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(c.cfg.Key, "Bearer ")),
		openai.WithModel(c.cfg.Model),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := llm.GenerateContent(ctx, messages,
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithMaxTokens(c.cfg.MaxTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Error().Err(err).Msg("Generation call timed out")
			return "", fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		log.Error().Err(err).Msg("Generation call failed")
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrProviderFailure)
	}
	return resp.Choices[0].Content, nil
}
