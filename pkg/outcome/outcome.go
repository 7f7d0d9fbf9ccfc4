// Package outcome provides the result type returned by the external
// collaborators (inference service, context store): either the produced text
// or a failure with its kind and detail.
package outcome

import "fmt"

// Kind describes why a collaborator call did not produce text.
type Kind int

const (
	// KindNone means the call succeeded.
	KindNone Kind = iota
	// KindUnavailable means the collaborator handle could not be acquired.
	KindUnavailable
	// KindFailed means the collaborator was reached, but the call or the
	// decoding of its response failed.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnavailable:
		return "unavailable"
	case KindFailed:
		return "failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Result is the result of a collaborator call.
type Result struct {
	Text string
	Kind Kind
	Err  error
}

// Success returns a successful Result.
func Success(text string) Result {
	return Result{Text: text}
}

// Unavailable returns a Result for a collaborator that could not be reached.
func Unavailable(err error) Result {
	return Result{Kind: KindUnavailable, Err: err}
}

// Failed returns a Result for a failed call.
func Failed(err error) Result {
	return Result{Kind: KindFailed, Err: err}
}

// OK returns true if the call succeeded.
func (r Result) OK() bool {
	return r.Kind == KindNone
}

// Detail returns the failure detail, or an empty string.
func (r Result) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Degrade returns the text on success, otherwise the text produced by fallback.
func (r Result) Degrade(fallback func(Result) string) string {
	if r.OK() || fallback == nil {
		return r.Text
	}
	return fallback(r)
}
