// Package schema derives JSON schemas for tool arguments from Go structs.
package schema

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	cache   = make(map[reflect.Type]*Schema)
	cacheMu sync.Mutex
)

// Schema of a Go type
type Schema struct {
	RawSchema *jsonschema.Schema
	// Parameters represents the tool input definition:
	// type, properties and required fields only
	Parameters *jsonschema.Schema
}

// New creates a new schema from the given type
func New(t reflect.Type) (*Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[t]; ok {
		return s, nil
	}

	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}
	cache[t] = s

	return s, nil
}

// For returns the schema for T
func For[T any]() (*Schema, error) {
	return New(reflect.TypeFor[T]())
}

// MustFor returns the schema for T, it panics on error.
// Use it for static tool registries only.
func MustFor[T any]() *Schema {
	s, err := For[T]()
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) String() string {
	js, _ := json.MarshalIndent(s.Parameters, "", "\t")
	return string(js)
}

func buildSchema(t reflect.Type) (*Schema, error) {
	raw := JSONSchema(t)

	params, err := ToFunctionSchema(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to build schema for %s", t.String())
	}
	return &Schema{
		RawSchema:  raw,
		Parameters: params,
	}, nil
}

// ToFunctionSchema returns the top level type, properties and required fields,
// with references resolved from definitions.
func ToFunctionSchema(tSchema *jsonschema.Schema) (*jsonschema.Schema, error) {
	refID := strings.TrimPrefix(tSchema.Ref, "#/$defs/")

	defs := make(map[string]*jsonschema.Schema)
	root := tSchema

	for name, def := range tSchema.Definitions {
		if name == refID {
			root = def
		} else {
			defs[name] = def
		}
	}

	res := &jsonschema.Schema{
		Type:       root.Type,
		Properties: root.Properties,
		Required:   root.Required,
	}

	if res.Properties != nil {
		if err := resolveRefs(res.Properties, defs); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func resolveRefs(props *orderedmap.OrderedMap[string, *jsonschema.Schema], defs map[string]*jsonschema.Schema) error {
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value
		if child.Ref != "" {
			def, err := lookupRef(child.Ref, defs)
			if err != nil {
				return err
			}
			pair.Value = def
			child = def
		}
		if child.Properties != nil {
			if err := resolveRefs(child.Properties, defs); err != nil {
				return err
			}
		}
		if child.Items != nil && child.Items.Ref != "" {
			def, err := lookupRef(child.Items.Ref, defs)
			if err != nil {
				return err
			}
			child.Items = def
		}
	}
	return nil
}

func lookupRef(ref string, defs map[string]*jsonschema.Schema) (*jsonschema.Schema, error) {
	name := strings.TrimPrefix(ref, "#/$defs/")
	if def, ok := defs[name]; ok {
		return def, nil
	}
	return nil, errors.Errorf("definition not found: %s", ref)
}

// JSONSchema returns the json schema of the type
func JSONSchema(t reflect.Type) *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	r.ExpandedStruct = true
	r.DoNotReference = true
	r.AllowAdditionalProperties = true

	// Struct names may collide across packages,
	// see https://github.com/invopop/jsonschema/issues/42
	r.Namer = func(t reflect.Type) string {
		name := t.Name()
		if t.Kind() == reflect.Struct {
			fullname := t.PkgPath() + "/" + t.Name()
			name = t.Name() + "@" + strconv.FormatUint(xxhash.Sum64String(fullname), 10)
		}
		return name
	}

	return r.ReflectFromType(t)
}
