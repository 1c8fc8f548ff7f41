package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIConfig contains configuration for creating an OpenAI completer.
type OpenAIConfig struct {
	// Model is the chat model to use (e.g., "gpt-4o").
	Model string
	// APIKey is the OpenAI API key. If empty, uses OPENAI_API_KEY env var.
	APIKey string
	// BaseURL overrides the API endpoint for OpenAI-compatible servers.
	BaseURL string
	// MaxTokens caps completion length. Zero leaves it to the server.
	MaxTokens int64
	// Temperature sets sampling temperature when non-nil.
	Temperature *float64
}

// OpenAI is a Completer backed by the OpenAI chat completions API.
type OpenAI struct {
	client      *openai.Client
	model       string
	maxTokens   int64
	temperature *float64
	tracker     *TokenTracker
}

// NewOpenAI creates an OpenAI-backed completer.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}

	client := openai.NewClient(reqOpts...)
	return &OpenAI{
		client:      &client,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		tracker:     NewTokenTracker(),
	}, nil
}

// Complete sends the conversation and returns the first choice's content.
func (o *OpenAI) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: o.buildMessages(system, messages),
	}
	if o.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Opt(o.maxTokens)
	}
	if o.temperature != nil {
		params.Temperature = openai.Opt(*o.temperature)
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf(
				"OpenAI API request failed (status=%d): %s",
				apiErr.StatusCode,
				strings.TrimSpace(apiErr.Message),
			)
		}
		return "", fmt.Errorf("OpenAI API request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}

	o.tracker.Add(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (o *OpenAI) Model() string {
	return o.model
}

// Tracker returns the token tracker for this completer.
func (o *OpenAI) Tracker() *TokenTracker {
	return o.tracker
}

func (o *OpenAI) buildMessages(system string, messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		out = append(out, openai.SystemMessage(system))
	}
	for _, m := range messages {
		switch m.Role {
		case RoleAssistant:
			assistant := openai.ChatCompletionAssistantMessageParam{}
			assistant.Content.OfString = openai.String(m.Content)
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
