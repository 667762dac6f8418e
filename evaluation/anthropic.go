package evaluation

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 1024

// MessagesClient captures the subset of the Anthropic SDK client a judge
// needs. Satisfied by *sdk.MessageService, narrowed the same way the
// teacher's anthropic model adapter narrows it (features/model/anthropic/client.go).
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// AnthropicModel implements Model on top of the Anthropic Messages API.
type AnthropicModel struct {
	msg       MessagesClient
	model     string
	maxTokens int
}

// NewAnthropicModel builds a judge Model backed by msg, completing against
// modelID (e.g. string(sdk.ModelClaudeSonnet4_5_20250929) or a cheaper
// model, since judging does not need the supervisor's full reasoning
// budget).
func NewAnthropicModel(msg MessagesClient, modelID string) (*AnthropicModel, error) {
	if msg == nil {
		return nil, errors.New("evaluation: anthropic messages client is required")
	}
	if modelID == "" {
		return nil, errors.New("evaluation: anthropic model identifier is required")
	}
	return &AnthropicModel{msg: msg, model: modelID, maxTokens: defaultAnthropicMaxTokens}, nil
}

// NewAnthropicModelFromAPIKey constructs a judge Model using the default
// Anthropic HTTP client, reading ANTHROPIC_API_KEY-style defaults from apiKey.
func NewAnthropicModelFromAPIKey(apiKey, modelID string) (*AnthropicModel, error) {
	if apiKey == "" {
		return nil, errors.New("evaluation: anthropic api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return NewAnthropicModel(&ac.Messages, modelID)
}

func (m *AnthropicModel) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.msg.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(m.model),
		MaxTokens: int64(m.maxTokens),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("evaluation: anthropic messages.new: %w", err)
	}
	return concatTextBlocks(resp), nil
}

func concatTextBlocks(msg *sdk.Message) string {
	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out
}

var _ Model = (*AnthropicModel)(nil)
