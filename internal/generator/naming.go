package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/templates"
)

// assignStems gives every method a member stem that is unique within its
// hierarchy. Overloads get their parameter types appended: Add(int, int) and
// Add(string) become Add_int_int and Add_string, while a parameterless
// overload keeps the plain name. A stem whose slot or lower-cased counter
// field is already taken in the hierarchy gets a _2, _3 suffix, so Foo() and
// foo() never share _fooCallCounters. Preset stems are reserved first and
// left alone. The input slice is not modified.
func assignStems(methods []models.MethodDescriptor) ([]models.MethodDescriptor, error) {
	out := append([]models.MethodDescriptor(nil), methods...)

	overloads := make(map[string]int)
	for _, m := range out {
		overloads[m.Hierarchy.Key()+"|"+strings.TrimPrefix(m.Name, "@")]++
	}

	taken := make(map[string]*stemSet)
	set := func(key string) *stemSet {
		s, ok := taken[key]
		if !ok {
			s = &stemSet{slots: make(map[string]bool), counters: make(map[string]bool)}
			taken[key] = s
		}
		return s
	}
	for _, m := range out {
		if m.Stem != "" {
			set(m.Hierarchy.Key()).add(m.Stem)
		}
	}

	var errs *errors.MultipleErrors
	signatures := make(map[string]int)
	for i, m := range out {
		key := m.Hierarchy.Key()
		sig := key + "|" + m.Signature()
		if first, dup := signatures[sig]; dup {
			errors.AddToMultiple(&errs, errors.NewGenerationError(
				fmt.Sprintf("duplicate mock target %s in %s (first declared at %s)",
					m.Signature(), key, out[first].Location)).
				WithGenerationType("mock").
				WithStage("naming"))
			continue
		}
		signatures[sig] = i

		if m.Stem != "" {
			continue
		}
		name := strings.TrimPrefix(m.Name, "@")
		stem := name
		if overloads[key+"|"+name] > 1 {
			stem = overloadStem(m)
		}

		used := set(key)
		candidate := stem
		for n := 2; used.has(candidate); n++ {
			candidate = fmt.Sprintf("%s_%d", stem, n)
		}
		used.add(candidate)
		if candidate != name {
			out[i].Stem = candidate
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// stemSet tracks the generated member names claimed in one hierarchy
type stemSet struct {
	slots    map[string]bool
	counters map[string]bool
}

func (s *stemSet) has(stem string) bool {
	return s.slots[stem] || s.counters[templates.LowerFirst(stem)]
}

func (s *stemSet) add(stem string) {
	s.slots[stem] = true
	s.counters[templates.LowerFirst(stem)] = true
}

func overloadStem(m models.MethodDescriptor) string {
	name := strings.TrimPrefix(m.Name, "@")
	if len(m.Parameters) == 0 {
		return name
	}
	parts := make([]string, 0, len(m.Parameters)+1)
	parts = append(parts, name)
	for _, p := range m.Parameters {
		if s := templates.SanitizeIdentifier(p.Type); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "_")
}
