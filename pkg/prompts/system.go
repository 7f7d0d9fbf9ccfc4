// Package prompts builds the system prompt sent with every model invocation.
package prompts

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp/pkg", "prompts")

// Identity is the built-in identity and behavior prompt.
//
//go:embed identity.md
var Identity string

// ContextHeader labels the retrieved context section.
const ContextHeader = "Hive Mind Context:"

// DefaultTemplate renders the identity followed by the labeled context section.
const DefaultTemplate = "{{ .Identity }}\n\n" + ContextHeader + "\n{{ .Context }}"

// SystemPromptValue is the data available to the template.
type SystemPromptValue struct {
	Identity string
	Context  string
}

// Assembler combines the identity prompt with retrieved context.
type Assembler struct {
	identity string
	tmpl     *template.Template
}

// NewAssembler returns an Assembler for the identity and template,
// empty values select the built-in ones.
func NewAssembler(identity, tmpl string) (*Assembler, error) {
	if identity == "" {
		identity = Identity
	}
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	t, err := template.New("system").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse system prompt template")
	}

	a := &Assembler{identity: identity, tmpl: t}
	// fail fast on templates referring to unknown fields
	if _, err = a.render(""); err != nil {
		return nil, err
	}
	return a, nil
}

// Assemble returns the system prompt for the context text,
// empty context produces an empty context section.
func (a *Assembler) Assemble(contextText string) string {
	s, err := a.render(contextText)
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "render", "err", err.Error())
		return a.identity + "\n\n" + ContextHeader + "\n" + contextText
	}
	return s
}

func (a *Assembler) render(contextText string) (string, error) {
	var buf bytes.Buffer
	err := a.tmpl.Execute(&buf, SystemPromptValue{
		Identity: a.identity,
		Context:  contextText,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render system prompt")
	}
	return buf.String(), nil
}
