// Package mcp implements the JSON-RPC tool dispatcher: `tools/list` returns
// the static tool registry, `tools/call` assembles the system prompt from the
// Hive Mind context and forwards the tool input to the model.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/pkg/metricskey"
	"github.com/effective-security/bedrockmcp/pkg/outcome"
	"github.com/effective-security/bedrockmcp/pkg/prompts"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=server.go -destination=../mocks/mockmcp/server_mock.gen.go -package mockmcp

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp", "mcp")

// ClientNotAvailable is the tool output when the inference client
// could not be created.
const ClientNotAvailable = "client not available"

// DefaultContextLimit is the number of context records in the system prompt.
const DefaultContextLimit = 3

// ContextProvider returns the rendered Hive Mind context.
type ContextProvider interface {
	Recent(ctx context.Context, limit int) outcome.Result
}

// Completer sends a single user turn to the model.
type Completer interface {
	Complete(ctx context.Context, message, system string) outcome.Result
}

// PromptAssembler builds the system prompt from the context text.
type PromptAssembler interface {
	Assemble(contextText string) string
}

// Option configures the Server.
type Option func(*Server)

// WithContextProvider sets the context source and the number of records,
// a non-positive limit selects DefaultContextLimit.
func WithContextProvider(p ContextProvider, limit int) Option {
	return func(s *Server) {
		if p != nil {
			s.context = p
		}
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithAssembler sets the system prompt assembler.
func WithAssembler(a PromptAssembler) Option {
	return func(s *Server) {
		if a != nil {
			s.assembler = a
		}
	}
}

// WithCallback sets the tool lifecycle callback.
func WithCallback(cb Callback) Option {
	return func(s *Server) {
		if cb != nil {
			s.callback = cb
		}
	}
}

// WithTools replaces the tool registry.
func WithTools(tools ...*Tool) Option {
	return func(s *Server) {
		s.tools = tools
	}
}

// WithStrictArguments rejects calls with missing or empty required arguments
// with CodeInvalidParams.
func WithStrictArguments(strict bool) Option {
	return func(s *Server) {
		s.strict = strict
	}
}

// WithReportErrors sets `isError` on tool results produced from a failed
// inference call.
func WithReportErrors(report bool) Option {
	return func(s *Server) {
		s.reportErrors = report
	}
}

// Server dispatches JSON-RPC requests to the tools.
// It is safe for concurrent use.
type Server struct {
	llm          Completer
	context      ContextProvider
	assembler    PromptAssembler
	callback     Callback
	limit        int
	strict       bool
	reportErrors bool

	tools       []*Tool
	byName      map[string]*Tool
	descriptors []ToolDescriptor
	validate    *validator.Validate
}

// NewServer returns a dispatcher forwarding tool calls to llm.
func NewServer(llm Completer, opts ...Option) (*Server, error) {
	if llm == nil {
		return nil, errors.New("completer is required")
	}

	s := &Server{
		llm:      llm,
		context:  noContext{},
		callback: NewPackageLogger(logger),
		limit:    DefaultContextLimit,
		tools:    DefaultTools(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.assembler == nil {
		a, err := prompts.NewAssembler("", "")
		if err != nil {
			return nil, err
		}
		s.assembler = a
	}

	s.byName = make(map[string]*Tool, len(s.tools))
	s.descriptors = make([]ToolDescriptor, 0, len(s.tools))
	for _, t := range s.tools {
		if _, ok := s.byName[t.Name]; ok {
			return nil, errors.Errorf("duplicate tool: %s", t.Name)
		}
		s.byName[t.Name] = t
		s.descriptors = append(s.descriptors, t.ToolDescriptor)
	}

	return s, nil
}

// Tools returns the tool descriptors.
func (s *Server) Tools() []ToolDescriptor {
	return s.descriptors
}

// Dispatch handles the request and returns the response.
// It never fails: protocol errors are returned as error responses,
// collaborator failures as the tool output.
func (s *Server) Dispatch(ctx context.Context, req *Request) (resp *Response) {
	if req == nil {
		req = &Request{}
	}
	id := req.ResponseID()

	defer func() {
		if r := recover(); r != nil {
			logger.ContextKV(ctx, xlog.ERROR,
				"reason", "panic",
				"method", req.Method,
				"err", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			resp = NewErrorResponse(id, CodeInternalError, MessageInternalError)
		}
	}()

	switch req.Method {
	case MethodToolsList:
		return NewResponse(id, &ListToolsResult{Tools: s.descriptors})
	case MethodToolsCall:
		return s.callTool(ctx, id, req.Params)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"reason", "method_not_found",
		"method", req.Method,
	)
	metricskey.StatsRPCMethodNotFound.IncrCounter(1, req.Method)
	return NewErrorResponse(id, CodeMethodNotFound, MessageNotFound)
}

func (s *Server) callTool(ctx context.Context, id json.RawMessage, params json.RawMessage) *Response {
	var p CallParams
	if len(params) > 0 {
		// malformed params leave the name empty, and the tool is not found
		_ = json.Unmarshal(params, &p)
	}

	t := s.byName[p.Name]
	if t == nil {
		s.callback.OnToolNotFound(ctx, p.Name)
		metricskey.StatsToolCallsNotFound.IncrCounter(1, p.Name)
		return NewErrorResponse(id, CodeMethodNotFound, MessageNotFound)
	}

	args := ParseArguments(p.Arguments)
	input := t.Bind(args)
	userTurn := input.UserTurn()

	if s.strict {
		if err := s.checkArguments(t, args, input); err != nil {
			s.callback.OnToolError(ctx, t.Name, userTurn, err)
			metricskey.StatsToolCallsFailed.IncrCounter(1, t.Name, "invalid_params")
			resp := NewErrorResponse(id, CodeInvalidParams, MessageInvalidParams)
			resp.Error.Data = err.Error()
			return resp
		}
	}

	started := time.Now()
	defer metricskey.PerfToolCall.MeasureSince(started, t.Name)

	s.callback.OnToolStart(ctx, t.Name, userTurn)

	hive := s.context.Recent(ctx, s.limit)
	if !hive.OK() {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "context",
			"tool", t.Name,
			"status", hive.Kind.String(),
			"err", hive.Detail(),
		)
	}
	system := s.assembler.Assemble(hive.Degrade(DegradeContext))

	res := s.llm.Complete(ctx, userTurn, system)
	text := res.Degrade(DegradeCompletion)

	if res.OK() {
		s.callback.OnToolEnd(ctx, t.Name, userTurn, text)
		metricskey.StatsToolCallsSucceeded.IncrCounter(1, t.Name)
	} else {
		s.callback.OnToolError(ctx, t.Name, userTurn, res.Err)
		metricskey.StatsToolCallsFailed.IncrCounter(1, t.Name, res.Kind.String())
	}

	return NewResponse(id, &CallToolResult{
		Content: []Content{NewTextContent(ResponsePayload(text))},
		IsError: s.reportErrors && !res.OK(),
	})
}

func (s *Server) checkArguments(t *Tool, args Arguments, input ToolInput) error {
	if t.InputSchema != nil {
		for _, name := range t.InputSchema.Required {
			if !args.Has(name) {
				return errors.Errorf("missing required argument: %s", name)
			}
		}
	}
	if err := s.validate.Struct(input); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	return nil
}

// DegradeContext is the context text used when the context is not available.
func DegradeContext(outcome.Result) string {
	return ""
}

// DegradeCompletion is the tool output used when the inference call failed.
func DegradeCompletion(r outcome.Result) string {
	if r.Kind == outcome.KindUnavailable {
		return ClientNotAvailable
	}
	return "Error: " + r.Detail()
}

// ResponsePayload returns the tool output serialized as
// `{"response": "<text>"}`.
func ResponsePayload(text string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// encoding a string does not fail
	_ = enc.Encode(text)
	return `{"response": ` + strings.TrimSuffix(buf.String(), "\n") + `}`
}

type noContext struct{}

func (noContext) Recent(context.Context, int) outcome.Result {
	return outcome.Success("")
}
