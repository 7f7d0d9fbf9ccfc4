package mcp_test

import (
	"encoding/json"
	"testing"

	"github.com/effective-security/bedrockmcp/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tcases := []struct {
		name string
		body string
		code int
	}{
		{name: "not json", body: `{"method":`, code: mcp.CodeParseError},
		{name: "empty", body: ``, code: mcp.CodeParseError},
		{name: "array", body: `[{"method":"tools/list"}]`, code: mcp.CodeInvalidRequest},
		{name: "string", body: `"tools/list"`, code: mcp.CodeInvalidRequest},
		{name: "numeric method", body: `{"method":1}`, code: mcp.CodeInvalidRequest},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			req, resp := mcp.ParseRequest([]byte(tc.body))
			assert.Nil(t, req)
			require.NotNil(t, resp)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, "1", string(resp.ID))
		})
	}

	req, resp := mcp.ParseRequest([]byte(` {"jsonrpc":"2.0","method":"tools/call","params":{"name":"bedrock_chat"},"id":"abc"} `))
	require.Nil(t, resp)
	assert.Equal(t, mcp.MethodToolsCall, req.Method)
	assert.Equal(t, `"abc"`, string(req.ResponseID()))
	assert.JSONEq(t, `{"name":"bedrock_chat"}`, string(req.Params))
}

func TestRequest_ResponseID(t *testing.T) {
	tcases := []struct {
		body string
		exp  string
	}{
		{body: `{"method":"x"}`, exp: `1`},
		{body: `{"method":"x","id":null}`, exp: `null`},
		{body: `{"method":"x","id":0}`, exp: `0`},
		{body: `{"method":"x","id":"7"}`, exp: `"7"`},
	}
	for _, tc := range tcases {
		t.Run(tc.body, func(t *testing.T) {
			req, resp := mcp.ParseRequest([]byte(tc.body))
			require.Nil(t, resp)
			assert.Equal(t, tc.exp, string(req.ResponseID()))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := mcp.NewErrorResponse(json.RawMessage(`"id"`), mcp.CodeMethodNotFound, mcp.MessageNotFound)
	js, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":"id","error":{"code":-32601,"message":"Not found"}}`, string(js))
}
