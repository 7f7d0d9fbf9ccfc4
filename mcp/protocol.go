package mcp

import (
	"bytes"
	"encoding/json"
)

// JSONRPCVersion is the only supported protocol version.
const JSONRPCVersion = "2.0"

// Supported methods
const (
	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"
)

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// JSON-RPC error messages
const (
	MessageNotFound       = "Not found"
	MessageParseError     = "Parse error"
	MessageInvalidRequest = "Invalid request"
	MessageInvalidParams  = "Invalid params"
	MessageInternalError  = "Internal error"
)

// DefaultID is echoed when the request carries no id.
var DefaultID = json.RawMessage(`1`)

// Request is the JSON-RPC request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc,omitempty"`
	// ID is echoed verbatim in the response.
	// An explicit `null` is kept, a missing id is replaced with DefaultID.
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ResponseID returns the id to echo in the response.
func (r *Request) ResponseID() json.RawMessage {
	if len(r.ID) == 0 {
		return DefaultID
	}
	return r.ID
}

// Response is the JSON-RPC response envelope,
// exactly one of Result or Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewResponse returns a success response.
func NewResponse(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse returns an error response.
func NewErrorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// ParseRequest decodes the request body.
// The returned Response is set when the body is not a valid request.
func ParseRequest(body []byte) (*Request, *Response) {
	if !json.Valid(body) {
		return nil, NewErrorResponse(DefaultID, CodeParseError, MessageParseError)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, NewErrorResponse(DefaultID, CodeInvalidRequest, MessageInvalidRequest)
	}

	req := new(Request)
	if err := json.Unmarshal(body, req); err != nil {
		// valid JSON object with mistyped members, such as a numeric method
		return nil, NewErrorResponse(DefaultID, CodeInvalidRequest, MessageInvalidRequest)
	}
	return req, nil
}

// Content is a single item of the tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextContent returns text content.
func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// ListToolsResult is the result of `tools/list`.
type ListToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// CallToolResult is the result of `tools/call`.
type CallToolResult struct {
	Content []Content `json:"content"`
	// IsError is only reported when enabled by WithReportErrors
	IsError bool `json:"isError,omitempty"`
}

// CallParams are the parameters of `tools/call`.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}
