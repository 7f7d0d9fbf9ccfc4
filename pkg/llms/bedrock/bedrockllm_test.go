package bedrock_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/mocks/mockbedrock"
	"github.com/effective-security/bedrockmcp/pkg/llms/bedrock"
	"github.com/effective-security/bedrockmcp/pkg/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const okResponse = `{"type":"message","role":"assistant","content":[{"type":"text","text":"Hello there"}],"stop_reason":"end_turn","usage":{"input_tokens":12,"output_tokens":3}}`

func TestNew_Defaults(t *testing.T) {
	llm := bedrock.New()
	assert.Equal(t, bedrock.DefaultModel, llm.GetName())
	assert.Equal(t, bedrock.DefaultRegion, llm.Region())

	llm = bedrock.New(
		bedrock.WithModel("us.anthropic.claude-3-5-sonnet-20241022-v2:0"),
		bedrock.WithRegion("eu-west-1"),
		bedrock.WithModel(""),
		bedrock.WithRegion(""),
	)
	assert.Equal(t, "us.anthropic.claude-3-5-sonnet-20241022-v2:0", llm.GetName())
	assert.Equal(t, "eu-west-1", llm.Region())
}

func TestComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	api := mockbedrock.NewMockInvokeModelAPI(ctrl)

	llm := bedrock.New(bedrock.WithClient(api), bedrock.WithMaxTokens(1024))

	api.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
			assert.Equal(t, bedrock.DefaultModel, *in.ModelId)

			var body struct {
				AnthropicVersion string `json:"anthropic_version"`
				MaxTokens        int    `json:"max_tokens"`
				System           string `json:"system"`
				Messages         []struct {
					Role    string `json:"role"`
					Content []struct {
						Type string `json:"type"`
						Text string `json:"text"`
					} `json:"content"`
				} `json:"messages"`
			}
			require.NoError(t, json.Unmarshal(in.Body, &body))
			assert.Equal(t, "bedrock-2023-05-31", body.AnthropicVersion)
			assert.Equal(t, 1024, body.MaxTokens)
			assert.Equal(t, "sys", body.System)
			require.Len(t, body.Messages, 1)
			assert.Equal(t, "user", body.Messages[0].Role)
			require.Len(t, body.Messages[0].Content, 1)
			assert.Equal(t, "hi", body.Messages[0].Content[0].Text)

			return &bedrockruntime.InvokeModelOutput{Body: []byte(okResponse)}, nil
		})

	res := llm.Complete(ctx, "hi", "sys")
	require.True(t, res.OK())
	assert.Equal(t, "Hello there", res.Text)
}

func TestComplete_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	api := mockbedrock.NewMockInvokeModelAPI(ctrl)
	llm := bedrock.New(bedrock.WithClient(api))

	t.Run("invoke", func(t *testing.T) {
		api.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(nil, errors.New("ThrottlingException: slow down"))
		res := llm.Complete(ctx, "hi", "")
		assert.Equal(t, outcome.KindFailed, res.Kind)
		assert.Equal(t, "ThrottlingException: slow down", res.Detail())
	})

	t.Run("decode", func(t *testing.T) {
		api.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(&bedrockruntime.InvokeModelOutput{Body: []byte(`<html>`)}, nil)
		res := llm.Complete(ctx, "hi", "")
		assert.Equal(t, outcome.KindFailed, res.Kind)
		assert.Contains(t, res.Detail(), "failed to decode response")
	})

	t.Run("empty content", func(t *testing.T) {
		api.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(&bedrockruntime.InvokeModelOutput{Body: []byte(`{"content":[]}`)}, nil)
		res := llm.Complete(ctx, "hi", "")
		assert.True(t, res.OK())
		assert.Empty(t, res.Text)
	})
}

func TestComplete_ClientRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	api := mockbedrock.NewMockInvokeModelAPI(ctrl)

	var created atomic.Int32
	llm := bedrock.New(bedrock.WithClientFactory(func(_ context.Context, region string) (bedrock.InvokeModelAPI, error) {
		assert.Equal(t, "us-west-2", region)
		if created.Add(1) == 1 {
			return nil, errors.New("no credentials")
		}
		return api, nil
	}), bedrock.WithRegion("us-west-2"))

	res := llm.Complete(ctx, "hi", "")
	assert.Equal(t, outcome.KindUnavailable, res.Kind)
	assert.Equal(t, "no credentials", res.Detail())

	api.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(&bedrockruntime.InvokeModelOutput{Body: []byte(okResponse)}, nil).Times(2)

	res = llm.Complete(ctx, "hi", "")
	require.True(t, res.OK())
	res = llm.Complete(ctx, "hi", "")
	require.True(t, res.OK())
	// the client is cached after the first successful creation
	assert.Equal(t, int32(2), created.Load())
}

func TestComplete_NilClient(t *testing.T) {
	llm := bedrock.New(bedrock.WithClient(nil))
	res := llm.Complete(context.Background(), "hi", "")
	assert.Equal(t, outcome.KindUnavailable, res.Kind)
}

func TestNewRuntimeClientFactory(t *testing.T) {
	factory := bedrock.NewRuntimeClientFactory()
	api, err := factory(context.Background(), "us-east-1")
	require.NoError(t, err)
	assert.NotNil(t, api)

	// static credentials do not require a network call to create the client
	llm := bedrock.New(bedrock.WithStaticCredentials("AKIDEXAMPLE", "secret", ""))
	assert.Equal(t, bedrock.DefaultModel, llm.GetName())
}
