package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"moonalyzer/internal/config"
	"moonalyzer/internal/forecast"
	"moonalyzer/internal/prompts"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrEmptyResponse = errors.New("no response from OpenAI")
	ErrNoJSON        = errors.New("no JSON object in response")
)

// ChatCompleter is the slice of the OpenAI client the analyzer needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ForecastAnalyzer turns a planetary digest into a market-mood forecast.
type ForecastAnalyzer struct {
	client      ChatCompleter
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	maxAttempts int
}

// NewForecastAnalyzer builds an OpenAI client from cfg.
func NewForecastAnalyzer(cfg config.OpenAIConfig) *ForecastAnalyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return NewForecastAnalyzerWithClient(openai.NewClientWithConfig(clientCfg), cfg)
}

func NewForecastAnalyzerWithClient(client ChatCompleter, cfg config.OpenAIConfig) *ForecastAnalyzer {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &ForecastAnalyzer{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		maxAttempts: attempts,
	}
}

// Generate asks the model for a forecast. A reply that is not a valid forecast is
// requested once more per remaining attempt; API errors fail immediately.
func (fa *ForecastAnalyzer) Generate(ctx context.Context, digest string) (*forecast.Forecast, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompts.SystemPrompt(),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: prompts.ForecastPrompt(digest),
		},
	}

	var lastErr error
	for attempt := 1; attempt <= fa.maxAttempts; attempt++ {
		reply, err := fa.complete(ctx, messages)
		if err != nil {
			return nil, err
		}

		f, err := ParseForecast(reply)
		if err == nil {
			log.Ctx(ctx).Debug().Int("attempt", attempt).Msg("forecast reply accepted")
			return f, nil
		}

		lastErr = err
		log.Ctx(ctx).Warn().Err(err).Int("attempt", attempt).Int("max_attempts", fa.maxAttempts).
			Msg("forecast reply rejected")

		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompts.RetryPrompt(err.Error())},
		)
	}

	return nil, fmt.Errorf("no usable forecast after %d attempts: %w", fa.maxAttempts, lastErr)
}

func (fa *ForecastAnalyzer) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if fa.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fa.timeout)
		defer cancel()
	}

	resp, err := fa.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       fa.model,
		Messages:    messages,
		Temperature: fa.temperature,
		MaxTokens:   fa.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// ParseForecast extracts the outermost JSON object from a model reply and validates it.
func ParseForecast(reply string) (*forecast.Forecast, error) {
	jsonStart := strings.Index(reply, "{")
	jsonEnd := strings.LastIndex(reply, "}") + 1

	if jsonStart == -1 || jsonEnd <= jsonStart {
		return nil, ErrNoJSON
	}

	var f forecast.Forecast
	if err := json.Unmarshal([]byte(reply[jsonStart:jsonEnd]), &f); err != nil {
		return nil, fmt.Errorf("failed to parse forecast JSON: %w", err)
	}

	// The writer stamps the date; whatever the model echoed is discarded.
	f.Date = ""
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}
