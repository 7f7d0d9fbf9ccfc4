package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Defaults for the Bedrock runtime.
const (
	DefaultModel  = "anthropic.claude-3-sonnet-20240229-v1:0"
	DefaultRegion = "us-east-1"
)

// Option is an option for the Bedrock LLM.
type Option func(*options)

type options struct {
	modelID   string
	region    string
	maxTokens int
	version   string
	factory   ClientFactory
}

// WithModel allows setting a custom model ID.
//
// If not set, the default model is used
// i.e. "anthropic.claude-3-sonnet-20240229-v1:0".
func WithModel(modelID string) Option {
	return func(o *options) {
		if modelID != "" {
			o.modelID = modelID
		}
	}
}

// WithRegion sets the AWS region of the runtime endpoint.
func WithRegion(region string) Option {
	return func(o *options) {
		if region != "" {
			o.region = region
		}
	}
}

// WithMaxTokens sets the output token budget.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) {
		if maxTokens > 0 {
			o.maxTokens = maxTokens
		}
	}
}

// WithAnthropicVersion sets the `anthropic_version` of the request body.
func WithAnthropicVersion(version string) Option {
	return func(o *options) {
		if version != "" {
			o.version = version
		}
	}
}

// WithClient allows setting a custom runtime client.
//
// You can use this to pass a client with custom configuration options.
func WithClient(client InvokeModelAPI) Option {
	return func(o *options) {
		o.factory = func(_ context.Context, _ string) (InvokeModelAPI, error) {
			return client, nil
		}
	}
}

// WithClientFactory sets the function that creates the runtime client.
func WithClientFactory(factory ClientFactory) Option {
	return func(o *options) {
		if factory != nil {
			o.factory = factory
		}
	}
}

// WithStaticCredentials uses the access key instead of the default
// credentials chain, an empty access key ID keeps the default chain.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(o *options) {
		if accessKeyID == "" {
			return
		}
		o.factory = NewRuntimeClientFactory(config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken),
		))
	}
}
