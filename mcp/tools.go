package mcp

import (
	"bytes"
	"encoding/json"

	"github.com/effective-security/bedrockmcp/pkg/schema"
	"github.com/invopop/jsonschema"
)

// Tool names
const (
	ToolChat    = "bedrock_chat"
	ToolAnalyze = "bedrock_analyze"
)

// DefaultAnalyzeTask is used when `bedrock_analyze` is called without a task.
const DefaultAnalyzeTask = "Analyze this"

// ToolDescriptor describes a tool in `tools/list`.
type ToolDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Arguments of a tool call, keyed by the argument name.
type Arguments map[string]json.RawMessage

// ParseArguments decodes the `arguments` member of the call,
// anything but a JSON object yields no arguments.
func ParseArguments(raw json.RawMessage) Arguments {
	var args Arguments
	if len(raw) == 0 || json.Unmarshal(raw, &args) != nil {
		return Arguments{}
	}
	return args
}

// Has returns true if the argument is present and not null.
func (a Arguments) Has(name string) bool {
	raw, ok := a[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// String returns the argument as a string.
// Missing or null arguments return an empty string,
// non-string values return their JSON text.
func (a Arguments) String(name string) string {
	if !a.Has(name) {
		return ""
	}
	raw := a[name]
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// StringOr returns the argument as a string, or def if it is missing.
func (a Arguments) StringOr(name, def string) string {
	if !a.Has(name) {
		return def
	}
	return a.String(name)
}

// ToolInput is the bound input of a tool.
type ToolInput interface {
	// UserTurn returns the message sent to the model
	UserTurn() string
}

// ChatArgs is the input of `bedrock_chat`.
type ChatArgs struct {
	Message string `json:"message" validate:"required"`
}

// UserTurn returns the message verbatim.
func (a *ChatArgs) UserTurn() string {
	return a.Message
}

// AnalyzeArgs is the input of `bedrock_analyze`.
type AnalyzeArgs struct {
	Content string `json:"content" validate:"required"`
	Task    string `json:"task" validate:"required"`
}

// UserTurn returns the task followed by the content.
func (a *AnalyzeArgs) UserTurn() string {
	return a.Task + "\n\nContent:\n" + a.Content
}

// Tool is an entry of the tool registry.
type Tool struct {
	ToolDescriptor
	bind func(Arguments) ToolInput
}

// Bind reads the tool input from the arguments.
func (t *Tool) Bind(args Arguments) ToolInput {
	return t.bind(args)
}

// NewTool returns a Tool with the input schema derived from T.
func NewTool[T any, PT interface {
	*T
	ToolInput
}](name, description string, bind func(Arguments) PT) *Tool {
	return &Tool{
		ToolDescriptor: ToolDescriptor{
			Name:        name,
			Description: description,
			InputSchema: schema.MustFor[T]().Parameters,
		},
		bind: func(args Arguments) ToolInput {
			return bind(args)
		},
	}
}

// DefaultTools returns the tools served by the dispatcher, in listing order.
func DefaultTools() []*Tool {
	return []*Tool{
		NewTool(ToolChat, "Chat with Claude via AWS Bedrock (Sovereign Mind)",
			func(args Arguments) *ChatArgs {
				return &ChatArgs{
					Message: args.String("message"),
				}
			}),
		NewTool(ToolAnalyze, "Analyze content with Bedrock Claude",
			func(args Arguments) *AnalyzeArgs {
				return &AnalyzeArgs{
					Content: args.String("content"),
					Task:    args.StringOr("task", DefaultAnalyzeTask),
				}
			}),
	}
}
