package bedrockclient

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
)

// InvokeModelAPI is the part of the Bedrock runtime client used by Client.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client is a Bedrock client.
type Client struct {
	client InvokeModelAPI
}

// Request is a single-turn completion request.
type Request struct {
	// AnthropicVersion is the value of the `anthropic_version` field
	AnthropicVersion string
	MaxTokens        int
	System           string
	// Message is the user turn
	Message string
}

// Response is the completion returned by the provider.
type Response struct {
	// Text is the text of the first content block, empty if there is none
	Text         string
	StopReason   string
	InputTokens  int
	OutputTokens int
	// BytesSent and BytesReceived are the request and response body sizes
	BytesSent     int
	BytesReceived int
}

func getProvider(modelID string) string {
	// Handle Inference Profiles (e.g., "us.anthropic.claude-3-5-sonnet-20241022-v2:0")
	// and direct model IDs (e.g., "anthropic.claude-3-sonnet-20240229-v1:0")
	parts := strings.Split(modelID, ".")
	if len(parts) >= 2 {
		// Check if first part is a region (like "us", "eu", etc.)
		if len(parts[0]) == 2 && strings.ToLower(parts[0]) == parts[0] {
			return parts[1]
		}
		return parts[0]
	}
	return parts[0]
}

// NewClient creates a new Bedrock client.
func NewClient(client InvokeModelAPI) *Client {
	return &Client{
		client: client,
	}
}

// CreateCompletion sends the request to the model and returns its completion.
func (c *Client) CreateCompletion(ctx context.Context, modelID string, req *Request) (*Response, error) {
	provider := getProvider(modelID)
	switch provider {
	case "anthropic":
		return createAnthropicCompletion(ctx, c.client, modelID, req)
	default:
		return nil, errors.Errorf("bedrock: unsupported provider: %s", provider)
	}
}

func getMaxTokens(maxTokens, defaultValue int) int {
	if maxTokens <= 0 {
		return defaultValue
	}
	return maxTokens
}
