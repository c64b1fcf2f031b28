package models

import (
	"slices"
	"strings"

	"github.com/toyz/mockly/internal/errors"
)

// VoidType is the return type of methods that return nothing
const VoidType = "void"

// ParameterDescriptor is one formal parameter of a mocked method
type ParameterDescriptor struct {
	Name     string // identifier, may carry a leading @ for keywords
	Type     string // C# type text, emitted verbatim
	Variadic bool   // declared with params
}

// Declaration renders the parameter as it appears in a parameter list
func (p ParameterDescriptor) Declaration() string {
	if p.Variadic {
		return "params " + p.Type + " " + p.Name
	}
	return p.Type + " " + p.Name
}

// MethodDescriptor describes one partial method to be mocked
type MethodDescriptor struct {
	Name       string
	Parameters []ParameterDescriptor
	ReturnType string
	// Modifiers of the original declaration in source order, partial excluded
	Modifiers []string
	Hierarchy HierarchyDescriptor
	Location  errors.SourceLocation
	// Stem overrides the member-name stem; set when overloads share a hierarchy
	Stem string
}

// IsVoid reports whether the method returns nothing
func (m MethodDescriptor) IsVoid() bool {
	return strings.TrimSpace(m.ReturnType) == VoidType
}

// IsStatic reports whether the method carries the static modifier
func (m MethodDescriptor) IsStatic() bool {
	for _, mod := range m.Modifiers {
		if mod == "static" {
			return true
		}
	}
	return false
}

// MemberStem is the name generated members are derived from
func (m MethodDescriptor) MemberStem() string {
	if m.Stem != "" {
		return m.Stem
	}
	return strings.TrimPrefix(m.Name, "@")
}

// Signature renders name and parameter types, e.g. Add(int, int)
func (m MethodDescriptor) Signature() string {
	types := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type
	}
	return m.Name + "(" + strings.Join(types, ", ") + ")"
}

// DiscoveryResult is what a front end hands to the assembler
type DiscoveryResult struct {
	Methods []MethodDescriptor
	Usings  []string // using directive bodies without the trailing semicolon
}

// UsingAlias splits a using body such as "Json = System.Text.Json" into its
// alias name and target, the target with whitespace removed. ok is false
// when the directive is not an alias.
func UsingAlias(using string) (alias, target string, ok bool) {
	name, rest, ok := strings.Cut(using, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(name), strings.Join(strings.Fields(rest), ""), true
}

// NestUsings flattens the usings of an inner namespace onto those of its
// outer one. An inner alias hides an outer alias of the same name, and an
// identical directive is kept once.
func NestUsings(outer, inner []string) []string {
	hidden := make(map[string]bool, len(inner))
	for _, u := range inner {
		hidden[u] = true
		if alias, _, ok := UsingAlias(u); ok {
			hidden["alias:"+alias] = true
		}
	}

	out := make([]string, 0, len(outer)+len(inner))
	for _, u := range outer {
		if hidden[u] {
			continue
		}
		if alias, _, ok := UsingAlias(u); ok && hidden["alias:"+alias] {
			continue
		}
		out = append(out, u)
	}
	for _, u := range inner {
		if !slices.Contains(out, u) {
			out = append(out, u)
		}
	}
	return out
}

// AddUsing records a using directive once, preserving first-seen order
func (r *DiscoveryResult) AddUsing(using string) {
	for _, u := range r.Usings {
		if u == using {
			return
		}
	}
	r.Usings = append(r.Usings, using)
}

// Merge appends other's methods and usings. Callers merging per-file results
// skip files without methods so their usings stay out of the artifact.
func (r *DiscoveryResult) Merge(other DiscoveryResult) {
	r.Methods = append(r.Methods, other.Methods...)
	for _, u := range other.Usings {
		r.AddUsing(u)
	}
}
