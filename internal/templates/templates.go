package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/utils"
)

// MockMembersData feeds the mock-members template
type MockMembersData struct {
	Static        bool   // members are static because the method is
	Void          bool   // method returns void
	Strict        bool   // unset behavior throws instead of returning default
	Name          string // method name as declared
	Modifiers     string // original modifiers, space separated, partial excluded
	ReturnType    string
	Parameters    string // declaration list, e.g. "int a, string b"
	Arguments     string // argument list, e.g. "a, b"
	SlotName      string // behavior property, e.g. MockAddMethod
	DelegateType  string // Func or Action type of the behavior property
	CounterField  string // counter dictionary field, e.g. _addCallCounters
	KeyType       string // dictionary key type
	KeyExpression string // key built from the arguments
	QueryName     string // e.g. NumberOfCallsToAddWith
	StrictMessage string
}

// TimingData feeds the timing template
type TimingData struct {
	Count        int
	Milliseconds string
}

var parsed = utils.NewCache[string, *template.Template]()

// Render executes a registered template with the given data. Parsed
// templates are cached per name since synthesis runs concurrently.
func (tr *TemplateRegistry) Render(name string, data interface{}) (string, error) {
	text, ok := tr.Get(name)
	if !ok {
		return "", errors.WrapTemplateError(name, "find", fmt.Errorf("template not registered"))
	}

	var parseErr error
	tmpl := parsed.GetOrCreate(name, func(name string) *template.Template {
		t, err := template.New(name).Funcs(funcMap()).Parse(text)
		if err != nil {
			parseErr = err
			return nil
		}
		return t
	})
	if parseErr != nil {
		parsed.Delete(name)
		return "", errors.WrapTemplateError(name, "parse", parseErr)
	}
	if tmpl == nil {
		parsed.Delete(name)
		return "", errors.WrapTemplateError(name, "parse", fmt.Errorf("template failed to parse earlier"))
	}

	return execute(tmpl, data)
}

func execute(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(tmpl.Name(), "execute", err)
	}
	return buf.String(), nil
}
