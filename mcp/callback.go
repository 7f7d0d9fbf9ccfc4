package mcp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/effective-security/xlog"
)

// Callback receives the tool lifecycle events.
type Callback interface {
	OnToolStart(ctx context.Context, tool, input string)
	OnToolEnd(ctx context.Context, tool, input, output string)
	OnToolError(ctx context.Context, tool, input string, err error)
	OnToolNotFound(ctx context.Context, tool string)
}

// ensure that the callbacks implement the correct interfaces
var (
	_ Callback = (*Noop)(nil)
	_ Callback = (*Printer)(nil)
	_ Callback = (*PackageLogger)(nil)
	_ Callback = (*Fanout)(nil)
)

// Fanout is a callback handler that forwards the events to multiple callbacks.
type Fanout struct {
	callbacks []Callback
}

func NewFanout(callbacks ...Callback) *Fanout {
	return &Fanout{callbacks: callbacks}
}

func (l *Fanout) Add(callback Callback) {
	l.callbacks = append(l.callbacks, callback)
}

func (l *Fanout) OnToolStart(ctx context.Context, tool, input string) {
	for _, callback := range l.callbacks {
		callback.OnToolStart(ctx, tool, input)
	}
}

func (l *Fanout) OnToolEnd(ctx context.Context, tool, input, output string) {
	for _, callback := range l.callbacks {
		callback.OnToolEnd(ctx, tool, input, output)
	}
}

func (l *Fanout) OnToolError(ctx context.Context, tool, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnToolError(ctx, tool, input, err)
	}
}

func (l *Fanout) OnToolNotFound(ctx context.Context, tool string) {
	for _, callback := range l.callbacks {
		callback.OnToolNotFound(ctx, tool)
	}
}

// Noop does nothing.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) OnToolStart(ctx context.Context, tool, input string) {}
func (l *Noop) OnToolEnd(ctx context.Context, tool, input, output string) {}
func (l *Noop) OnToolError(ctx context.Context, tool, input string, err error) {}
func (l *Noop) OnToolNotFound(ctx context.Context, tool string) {}

// Printer is a callback handler that prints to the Writer.
type Printer struct {
	Out     io.Writer
	Verbose bool

	lock sync.Mutex
}

func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{Out: out, Verbose: verbose}
}

func (l *Printer) OnToolStart(ctx context.Context, tool, input string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Start: %s\n", tool)
	if l.Verbose {
		fmt.Fprintf(l.Out, "Input: %s\n", input)
	}
}

func (l *Printer) OnToolEnd(ctx context.Context, tool, input, output string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool End: %s\n", tool)
	if l.Verbose {
		fmt.Fprintf(l.Out, "Output: %s\n", output)
	}
}

func (l *Printer) OnToolError(ctx context.Context, tool, input string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Error: %s: %s\n", tool, err.Error())
}

func (l *Printer) OnToolNotFound(ctx context.Context, tool string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Not Found: %s\n", tool)
}

// PackageLogger is a callback handler that prints to the logger.
type PackageLogger struct {
	logger *xlog.PackageLogger
}

func NewPackageLogger(logger *xlog.PackageLogger) *PackageLogger {
	return &PackageLogger{logger: logger}
}

func (l *PackageLogger) OnToolStart(ctx context.Context, tool, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_start",
		"tool", tool,
		"input", input,
	)
}

func (l *PackageLogger) OnToolEnd(ctx context.Context, tool, input, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", tool,
		"output", output,
	)
}

func (l *PackageLogger) OnToolError(ctx context.Context, tool, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "tool_error",
		"tool", tool,
		"err", err.Error(),
	)
}

func (l *PackageLogger) OnToolNotFound(ctx context.Context, tool string) {
	l.logger.ContextKV(ctx, xlog.NOTICE,
		"event", "tool_not_found",
		"tool", tool,
	)
}
