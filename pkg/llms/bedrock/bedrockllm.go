package bedrock

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/pkg/llms/bedrock/internal/bedrockclient"
	"github.com/effective-security/bedrockmcp/pkg/metricskey"
	"github.com/effective-security/bedrockmcp/pkg/outcome"
	"github.com/effective-security/xlog"
)

//go:generate mockgen -destination=../../../mocks/mockbedrock/bedrock_mock.gen.go -package mockbedrock github.com/effective-security/bedrockmcp/pkg/llms/bedrock InvokeModelAPI

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp/pkg/llms", "bedrock")

// InvokeModelAPI is the part of the Bedrock runtime client used by the LLM.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// ClientFactory creates the Bedrock runtime client for the region.
type ClientFactory func(ctx context.Context, region string) (InvokeModelAPI, error)

// NewRuntimeClient creates the Bedrock runtime client from the default AWS
// credentials chain.
func NewRuntimeClient(ctx context.Context, region string) (InvokeModelAPI, error) {
	return NewRuntimeClientFactory()(ctx, region)
}

// NewRuntimeClientFactory returns a ClientFactory that loads the AWS config
// with the additional options.
func NewRuntimeClientFactory(optFns ...func(*config.LoadOptions) error) ClientFactory {
	return func(ctx context.Context, region string) (InvokeModelAPI, error) {
		opts := append([]func(*config.LoadOptions) error{config.WithRegion(region)}, optFns...)
		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS config")
		}
		return bedrockruntime.NewFromConfig(cfg), nil
	}
}

// LLM is a Bedrock LLM implementation.
// The runtime client is created on first use, a failed creation is retried
// on the next call.
type LLM struct {
	modelID   string
	region    string
	maxTokens int
	version   string
	factory   ClientFactory

	lock   sync.Mutex
	client *bedrockclient.Client
}

// New creates a new Bedrock LLM implementation.
func New(opts ...Option) *LLM {
	o := &options{
		modelID:   DefaultModel,
		region:    DefaultRegion,
		maxTokens: bedrockclient.DefaultMaxTokens,
		version:   bedrockclient.AnthropicLatestVersion,
		factory:   NewRuntimeClient,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &LLM{
		modelID:   o.modelID,
		region:    o.region,
		maxTokens: o.maxTokens,
		version:   o.version,
		factory:   o.factory,
	}
}

// GetName returns the model ID.
func (l *LLM) GetName() string {
	return l.modelID
}

// Region returns the AWS region of the runtime endpoint.
func (l *LLM) Region() string {
	return l.region
}

func (l *LLM) getClient(ctx context.Context) (*bedrockclient.Client, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.client != nil {
		return l.client, nil
	}

	api, err := l.factory(ctx, l.region)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"reason", "client",
			"region", l.region,
			"err", err.Error(),
		)
		return nil, err
	}
	if api == nil {
		return nil, errors.New("bedrock client is not available")
	}
	l.client = bedrockclient.NewClient(api)
	return l.client, nil
}

// Complete sends a single user turn with the system prompt and returns the
// text of the first content block of the completion.
func (l *LLM) Complete(ctx context.Context, message, system string) outcome.Result {
	started := time.Now()
	defer metricskey.PerfLLMCall.MeasureSince(started, l.modelID)

	c, err := l.getClient(ctx)
	if err != nil {
		res := outcome.Unavailable(err)
		metricskey.StatsLLMCallsFailed.IncrCounter(1, l.modelID, res.Kind.String())
		return res
	}

	resp, err := c.CreateCompletion(ctx, l.modelID, &bedrockclient.Request{
		AnthropicVersion: l.version,
		MaxTokens:        l.maxTokens,
		System:           system,
		Message:          message,
	})
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"reason", "invoke",
			"model", l.modelID,
			"err", err.Error(),
		)
		res := outcome.Failed(err)
		metricskey.StatsLLMCallsFailed.IncrCounter(1, l.modelID, res.Kind.String())
		return res
	}

	metricskey.StatsLLMBytesSent.IncrCounter(float64(resp.BytesSent), l.modelID)
	metricskey.StatsLLMBytesReceived.IncrCounter(float64(resp.BytesReceived), l.modelID)
	metricskey.StatsLLMInputTokens.IncrCounter(float64(resp.InputTokens), l.modelID)
	metricskey.StatsLLMOutputTokens.IncrCounter(float64(resp.OutputTokens), l.modelID)

	logger.ContextKV(ctx, xlog.DEBUG,
		"model", l.modelID,
		"stop_reason", resp.StopReason,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)

	return outcome.Success(resp.Text)
}
