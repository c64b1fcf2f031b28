package models

import (
	"strings"

	"github.com/toyz/mockly/internal/errors"
)

// Accessibility is the declared accessibility of a container type.
// Only public and internal containers can host generated members; the zero
// value is deliberately invalid.
type Accessibility int

const (
	AccessibilityInvalid Accessibility = iota
	AccessibilityPublic
	AccessibilityInternal
)

// ParseAccessibility maps a C# keyword to an Accessibility
func ParseAccessibility(s string) (Accessibility, error) {
	switch strings.TrimSpace(s) {
	case "public":
		return AccessibilityPublic, nil
	case "internal":
		return AccessibilityInternal, nil
	default:
		return AccessibilityInvalid, errors.NewContractViolation("accessibility", quoteOrEmpty(s), "public", "internal")
	}
}

// Keyword returns the C# keyword for the accessibility
func (a Accessibility) Keyword() (string, error) {
	switch a {
	case AccessibilityPublic:
		return "public", nil
	case AccessibilityInternal:
		return "internal", nil
	default:
		return "", errors.NewContractViolation("accessibility", int(a), "public", "internal")
	}
}

// String implements fmt.Stringer
func (a Accessibility) String() string {
	if kw, err := a.Keyword(); err == nil {
		return kw
	}
	return "invalid"
}

// ContainerKind is the kind of a container type declaration
type ContainerKind int

const (
	ContainerKindInvalid ContainerKind = iota
	ContainerKindClass
	ContainerKindStruct
)

// ParseContainerKind maps a C# keyword to a ContainerKind
func ParseContainerKind(s string) (ContainerKind, error) {
	switch strings.TrimSpace(s) {
	case "class":
		return ContainerKindClass, nil
	case "struct":
		return ContainerKindStruct, nil
	default:
		return ContainerKindInvalid, errors.NewContractViolation("container kind", quoteOrEmpty(s), "class", "struct")
	}
}

// Keyword returns the C# keyword for the kind
func (k ContainerKind) Keyword() (string, error) {
	switch k {
	case ContainerKindClass:
		return "class", nil
	case ContainerKindStruct:
		return "struct", nil
	default:
		return "", errors.NewContractViolation("container kind", int(k), "class", "struct")
	}
}

// String implements fmt.Stringer
func (k ContainerKind) String() string {
	if kw, err := k.Keyword(); err == nil {
		return kw
	}
	return "invalid"
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "<empty>"
	}
	return "'" + s + "'"
}
