package models

import (
	"strings"

	"github.com/toyz/mockly/internal/errors"
)

// ContainerDescriptor is one type declaration in the chain enclosing a
// mocked method. Values are immutable once built.
type ContainerDescriptor struct {
	accessibility  Accessibility
	isStatic       bool
	kind           ContainerKind
	name           string
	typeParameters []string
}

// NewContainerDescriptor validates and builds a container descriptor.
// Illegal accessibility or kind values are contract violations.
func NewContainerDescriptor(acc Accessibility, isStatic bool, kind ContainerKind, name string, typeParameters ...string) (ContainerDescriptor, error) {
	if _, err := acc.Keyword(); err != nil {
		return ContainerDescriptor{}, err
	}
	if _, err := kind.Keyword(); err != nil {
		return ContainerDescriptor{}, err
	}
	if strings.TrimSpace(name) == "" {
		return ContainerDescriptor{}, errors.NewContractViolation("container name", "<empty>")
	}

	var params []string
	if len(typeParameters) > 0 {
		params = append([]string(nil), typeParameters...)
	}

	return ContainerDescriptor{
		accessibility:  acc,
		isStatic:       isStatic,
		kind:           kind,
		name:           name,
		typeParameters: params,
	}, nil
}

// MustContainer is NewContainerDescriptor for statically known values; it
// panics on a contract violation.
func MustContainer(acc Accessibility, isStatic bool, kind ContainerKind, name string, typeParameters ...string) ContainerDescriptor {
	c, err := NewContainerDescriptor(acc, isStatic, kind, name, typeParameters...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ContainerDescriptor) Accessibility() Accessibility { return c.accessibility }
func (c ContainerDescriptor) IsStatic() bool               { return c.isStatic }
func (c ContainerDescriptor) Kind() ContainerKind          { return c.kind }
func (c ContainerDescriptor) Name() string                 { return c.name }

// TypeParameters returns a copy of the container's generic parameter names
func (c ContainerDescriptor) TypeParameters() []string {
	return append([]string(nil), c.typeParameters...)
}

// DisplayName returns the name with its generic parameter list, e.g. Box<T>
func (c ContainerDescriptor) DisplayName() string {
	if len(c.typeParameters) == 0 {
		return c.name
	}
	return c.name + "<" + strings.Join(c.typeParameters, ", ") + ">"
}

// HierarchyDescriptor is a namespace plus the containers nested inside it,
// outermost first.
type HierarchyDescriptor struct {
	namespace  string
	containers []ContainerDescriptor
	usings     []string
}

// NewHierarchyDescriptor copies containers into a new hierarchy.
// An empty container list is legal.
func NewHierarchyDescriptor(namespace string, containers ...ContainerDescriptor) HierarchyDescriptor {
	return HierarchyDescriptor{
		namespace:  namespace,
		containers: append([]ContainerDescriptor(nil), containers...),
	}
}

func (h HierarchyDescriptor) Namespace() string { return h.namespace }

// WithUsings returns a copy carrying the using directives declared inside
// the namespace, outermost first. They are emitted inside the generated
// namespace block, where relative names resolve as they did in the source.
func (h HierarchyDescriptor) WithUsings(usings ...string) HierarchyDescriptor {
	h.usings = append([]string(nil), usings...)
	return h
}

// Usings returns a copy of the namespace-scoped using directives
func (h HierarchyDescriptor) Usings() []string {
	return append([]string(nil), h.usings...)
}

// Containers returns a copy of the container chain
func (h HierarchyDescriptor) Containers() []ContainerDescriptor {
	return append([]ContainerDescriptor(nil), h.containers...)
}

// Depth is the number of containers in the chain
func (h HierarchyDescriptor) Depth() int { return len(h.containers) }

// Key identifies the hierarchy, e.g. "Acme.Tests::Outer.Inner<T>".
// Usings are not part of the identity.
func (h HierarchyDescriptor) Key() string {
	var b strings.Builder
	b.WriteString(h.namespace)
	b.WriteString("::")
	for i, c := range h.containers {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(c.DisplayName())
	}
	return b.String()
}

// Validate re-checks every container; descriptors built by hand without the
// constructor carry the zero (invalid) accessibility and kind.
func (h HierarchyDescriptor) Validate() error {
	if strings.TrimSpace(h.namespace) == "" {
		return errors.NewContractViolation("namespace", "<empty>")
	}
	for _, c := range h.containers {
		if _, err := c.accessibility.Keyword(); err != nil {
			return err
		}
		if _, err := c.kind.Keyword(); err != nil {
			return err
		}
	}
	return nil
}
