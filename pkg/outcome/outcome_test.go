package outcome_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/pkg/outcome"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	fallback := func(r outcome.Result) string {
		return r.Kind.String() + ": " + r.Detail()
	}

	ok := outcome.Success("hello")
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Detail())
	assert.Equal(t, "hello", ok.Degrade(fallback))

	na := outcome.Unavailable(errors.New("no creds"))
	assert.False(t, na.OK())
	assert.Equal(t, outcome.KindUnavailable, na.Kind)
	assert.Equal(t, "unavailable: no creds", na.Degrade(fallback))

	failed := outcome.Failed(errors.New("timeout"))
	assert.Equal(t, "failed: timeout", failed.Degrade(fallback))
	assert.Empty(t, failed.Degrade(nil))

	assert.Equal(t, "none", outcome.KindNone.String())
	assert.Equal(t, "kind(9)", outcome.Kind(9).String())
}
