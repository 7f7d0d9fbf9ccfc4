package schema_test

import (
	"reflect"
	"testing"

	"github.com/effective-security/bedrockmcp/pkg/schema"
	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatArgs struct {
	Message string `json:"message"`
}

type analyzeArgs struct {
	Content string `json:"content"`
	Task    string `json:"task"`
	Hint    string `json:"hint,omitempty" jsonschema:"description=Optional hint"`
}

type nested struct {
	Pairs []*kvPair `json:"pairs,omitempty"`
	Prov  *kvPair   `json:"prov"`
}

type kvPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("chat", func(t *testing.T) {
		t.Parallel()
		s, err := schema.For[chatArgs]()
		require.NoError(t, err)
		exp := `{
	"properties": {
		"message": {
			"type": "string"
		}
	},
	"type": "object",
	"required": [
		"message"
	]
}`
		assert.Equal(t, exp, s.String())

		// cached
		s2, err := schema.New(reflect.TypeOf(chatArgs{}))
		require.NoError(t, err)
		assert.Same(t, s, s2)
	})

	t.Run("analyze", func(t *testing.T) {
		t.Parallel()
		s := schema.MustFor[analyzeArgs]()
		assert.Equal(t, "object", s.Parameters.Type)
		assert.Equal(t, []string{"content", "task"}, s.Parameters.Required)

		var names []string
		for pair := s.Parameters.Properties.Oldest(); pair != nil; pair = pair.Next() {
			names = append(names, pair.Key)
		}
		assert.Equal(t, []string{"content", "task", "hint"}, names)

		hint, ok := s.Parameters.Properties.Get("hint")
		require.True(t, ok)
		assert.Equal(t, "Optional hint", hint.Description)
	})

	t.Run("nested", func(t *testing.T) {
		t.Parallel()
		s := schema.MustFor[nested]()
		prov, ok := s.Parameters.Properties.Get("prov")
		require.True(t, ok)
		assert.Empty(t, prov.Ref)
		assert.Equal(t, "object", prov.Type)

		pairs, ok := s.Parameters.Properties.Get("pairs")
		require.True(t, ok)
		require.NotNil(t, pairs.Items)
		assert.Empty(t, pairs.Items.Ref)
	})
}

func TestToFunctionSchema_MissingRef(t *testing.T) {
	props := jsonschema.NewProperties()
	props.Set("x", &jsonschema.Schema{Ref: "#/$defs/Missing"})

	_, err := schema.ToFunctionSchema(&jsonschema.Schema{Type: "object", Properties: props})
	assert.EqualError(t, err, "definition not found: #/$defs/Missing")
}
