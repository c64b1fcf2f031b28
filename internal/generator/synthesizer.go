package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/templates"
)

// MaxParameters is the largest arity System.Func and System.Action support
const MaxParameters = 16

// MockSynthesizer renders the members that make a partial method mockable:
// a behavior slot, a per-argument call counter, the method body and a count
// query. It holds no per-call state.
type MockSynthesizer struct {
	registry *templates.TemplateRegistry
	cache    *IndentationCache
	width    int
	strict   bool
}

// NewMockSynthesizer creates a synthesizer sharing cache with the builders
// that wrap its output. In strict mode an unset behavior slot throws at call
// time instead of returning default.
func NewMockSynthesizer(cache *IndentationCache, width int, strict bool) *MockSynthesizer {
	if cache == nil {
		cache = NewIndentationCache()
	}
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return &MockSynthesizer{
		registry: templates.DefaultTemplateRegistry,
		cache:    cache,
		width:    width,
		strict:   strict,
	}
}

// Synthesize renders the mock members for m indented to level
func (s *MockSynthesizer) Synthesize(m models.MethodDescriptor, level int) (string, error) {
	if err := checkSignature(m); err != nil {
		return "", err
	}

	data := s.membersData(m)
	text, err := s.registry.Render(templates.MockMembersTemplate, data)
	if err != nil {
		return "", err
	}
	return indentBlock(text, level, s.width, s.cache), nil
}

func (s *MockSynthesizer) membersData(m models.MethodDescriptor) templates.MockMembersData {
	stem := m.MemberStem()
	name := strings.TrimPrefix(m.Name, "@")

	types := make([]string, len(m.Parameters))
	names := make([]string, len(m.Parameters))
	decls := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = strings.TrimSpace(p.Type)
		names[i] = p.Name
		decls[i] = p.Declaration()
	}

	slot := "Mock" + stem + "Method"
	query := "NumberOfCallsTo" + name
	if len(m.Parameters) > 0 {
		query += "With"
	}

	return templates.MockMembersData{
		Static:        m.IsStatic(),
		Void:          m.IsVoid(),
		Strict:        s.strict,
		Name:          m.Name,
		Modifiers:     strings.Join(m.Modifiers, " "),
		ReturnType:    strings.TrimSpace(m.ReturnType),
		Parameters:    strings.Join(decls, ", "),
		Arguments:     strings.Join(names, ", "),
		SlotName:      slot,
		DelegateType:  delegateType(types, m),
		CounterField:  "_" + templates.LowerFirst(stem) + "CallCounters",
		KeyType:       keyType(types),
		KeyExpression: keyExpression(types, names),
		QueryName:     query,
		StrictMessage: fmt.Sprintf("%s is not set; assign it before calling %s.", slot, m.Signature()),
	}
}

// delegateType is Func<T1..Tk, R>, Action<T1..Tk> or plain Action
func delegateType(types []string, m models.MethodDescriptor) string {
	if m.IsVoid() {
		if len(types) == 0 {
			return "global::System.Action"
		}
		return "global::System.Action<" + strings.Join(types, ", ") + ">"
	}
	args := append(append([]string(nil), types...), strings.TrimSpace(m.ReturnType))
	return "global::System.Func<" + strings.Join(args, ", ") + ">"
}

// keyType is the dictionary key for the argument tuple. Single arguments are
// wrapped in ValueTuple so null values remain legal keys.
func keyType(types []string) string {
	switch len(types) {
	case 0:
		return "global::System.ValueTuple"
	case 1:
		return "global::System.ValueTuple<" + types[0] + ">"
	default:
		return "(" + strings.Join(types, ", ") + ")"
	}
}

func keyExpression(types, names []string) string {
	switch len(names) {
	case 0:
		return "default(global::System.ValueTuple)"
	case 1:
		return "new global::System.ValueTuple<" + types[0] + ">(" + names[0] + ")"
	default:
		return "(" + strings.Join(names, ", ") + ")"
	}
}

// checkSignature rejects methods that cannot be expressed as a delegate slot
func checkSignature(m models.MethodDescriptor) error {
	unsupported := func(reason string) error {
		return errors.NewUnsupportedSignature(m.Signature(), reason).WithLocation(m.Location)
	}

	if strings.TrimSpace(m.Name) == "" {
		return unsupported("method has no name")
	}
	ret := strings.TrimSpace(m.ReturnType)
	switch {
	case ret == "":
		return unsupported("method has no return type")
	case strings.HasPrefix(ret, "ref "):
		return unsupported("ref returns cannot flow through a delegate")
	case strings.Contains(ret, "*"):
		return unsupported("pointer types cannot be generic arguments")
	}
	if len(m.Parameters) > MaxParameters {
		return unsupported(fmt.Sprintf("%d parameters exceed the delegate limit of %d", len(m.Parameters), MaxParameters))
	}

	for i, p := range m.Parameters {
		typ := strings.TrimSpace(p.Type)
		switch mod := parameterModifier(typ); mod {
		case "":
		case "params":
			return unsupported(fmt.Sprintf("parameter '%s' spells params in its type; mark it variadic instead", p.Name))
		default:
			return unsupported(fmt.Sprintf("has a '%s' parameter '%s'; by-reference and extension parameters cannot be mocked", mod, p.Name))
		}
		switch {
		case strings.TrimSpace(p.Name) == "":
			return unsupported(fmt.Sprintf("parameter %d has no name", i+1))
		case typ == "" || typ == models.VoidType:
			return unsupported(fmt.Sprintf("parameter '%s' has no usable type", p.Name))
		case strings.Contains(typ, "*"):
			return unsupported(fmt.Sprintf("parameter '%s' has pointer type %s", p.Name, typ))
		}
	}
	return nil
}

// parameterModifier returns a modifier written into a parameter type, as in
// "ref int"; such parameters cannot flow through Func or Action.
func parameterModifier(typ string) string {
	first, _, _ := strings.Cut(typ, " ")
	switch first {
	case "ref", "out", "in", "this", "scoped", "readonly", "params":
		return first
	}
	return ""
}
