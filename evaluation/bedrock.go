package evaluation

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// RuntimeClient captures the subset of the AWS Bedrock runtime client a
// judge needs: a single-turn Converse call. Satisfied by
// *bedrockruntime.Client, narrowed the same way the teacher's bedrock model
// adapter narrows it (features/model/bedrock/client.go).
type RuntimeClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockModel implements Model on top of the Bedrock Converse API.
type BedrockModel struct {
	runtime RuntimeClient
	model   string
}

// NewBedrockModel builds a judge Model backed by runtime, completing against
// modelID (a Bedrock model identifier or inference profile ARN).
func NewBedrockModel(runtime RuntimeClient, modelID string) (*BedrockModel, error) {
	if runtime == nil {
		return nil, errors.New("evaluation: bedrock runtime client is required")
	}
	if modelID == "" {
		return nil, errors.New("evaluation: bedrock model identifier is required")
	}
	return &BedrockModel{runtime: runtime, model: modelID}, nil
}

func (m *BedrockModel) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := m.runtime.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(m.model),
		Messages: []brtypes.Message{
			{
				Role:    brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: prompt}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("evaluation: bedrock converse: %w", err)
	}
	return concatConverseOutput(out)
}

func concatConverseOutput(out *bedrockruntime.ConverseOutput) (string, error) {
	msgOutput, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("evaluation: bedrock converse response missing assistant message")
	}
	var text string
	for _, block := range msgOutput.Value.Content {
		if tb, ok := block.(*brtypes.ContentBlockMemberText); ok {
			text += tb.Value
		}
	}
	return text, nil
}

var _ Model = (*BedrockModel)(nil)
