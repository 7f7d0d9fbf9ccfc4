package bedrockclient

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
)

// Ref: https://docs.aws.amazon.com/bedrock/latest/userguide/model-parameters-anthropic-claude-messages.html

// anthropicTextGenerationInputContent is a single content block in the input.
type anthropicTextGenerationInputContent struct {
	// The type of the content. Only "text" is sent.
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicTextGenerationInputMessage struct {
	// The role of the message. Required
	// One of: ["user", "assistant"]
	// For system prompt, use the system field in the input
	Role    string                                `json:"role"`
	Content []anthropicTextGenerationInputContent `json:"content"`
}

// anthropicTextGenerationInput is the input to the model.
type anthropicTextGenerationInput struct {
	// The version of the model to use. Required
	AnthropicVersion string `json:"anthropic_version"`
	// The maximum number of tokens to generate per result. Required
	MaxTokens int `json:"max_tokens"`
	// The system prompt to use. Optional
	System string `json:"system,omitempty"`
	// The messages to use. Required
	Messages []*anthropicTextGenerationInputMessage `json:"messages"`
}

// anthropicTextGenerationOutputContent represents a content block in the output
type anthropicTextGenerationOutputContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// anthropicTextGenerationOutput is the generated output.
type anthropicTextGenerationOutput struct {
	// Type of the content.
	// For messages, it is "message"
	Type string `json:"type"`
	// Conversational role of the generated message.
	// This will always be "assistant".
	Role    string                                 `json:"role"`
	Content []anthropicTextGenerationOutputContent `json:"content"`
	// One of: ["end_turn", "max_tokens", "stop_sequence", "tool_use"]
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// The latest version of the model.
const (
	AnthropicLatestVersion = "bedrock-2023-05-31"
)

// DefaultMaxTokens is the output budget when the request does not set one.
const DefaultMaxTokens = 4096

// Role attribute for the anthropic message.
const (
	AnthropicRoleUser      = "user"
	AnthropicRoleAssistant = "assistant"
)

// Type attribute for the anthropic message.
const (
	AnthropicMessageTypeText = "text"
)

func createAnthropicCompletion(ctx context.Context,
	client InvokeModelAPI,
	modelID string,
	req *Request,
) (*Response, error) {
	version := req.AnthropicVersion
	if version == "" {
		version = AnthropicLatestVersion
	}

	input := anthropicTextGenerationInput{
		AnthropicVersion: version,
		MaxTokens:        getMaxTokens(req.MaxTokens, DefaultMaxTokens),
		System:           req.System,
		Messages: []*anthropicTextGenerationInputMessage{
			{
				Role: AnthropicRoleUser,
				Content: []anthropicTextGenerationInputContent{
					{Type: AnthropicMessageTypeText, Text: req.Message},
				},
			},
		},
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	resp, err := client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, err
	}

	var output anthropicTextGenerationOutput
	if err = json.Unmarshal(resp.Body, &output); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	res := &Response{
		StopReason:    output.StopReason,
		InputTokens:   output.Usage.InputTokens,
		OutputTokens:  output.Usage.OutputTokens,
		BytesSent:     len(body),
		BytesReceived: len(resp.Body),
	}
	// an empty content array is not an error
	if len(output.Content) > 0 {
		res.Text = output.Content[0].Text
	}
	return res, nil
}
