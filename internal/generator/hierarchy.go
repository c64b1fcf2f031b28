package generator

import (
	"strings"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
)

// HierarchyBuilder writes the namespace and partial type declarations that
// enclose generated members, then closes them in reverse order. It only ever
// appends to out. One builder serves one unit at a time.
type HierarchyBuilder struct {
	out    *strings.Builder
	cache  *IndentationCache
	width  int
	level  int
	opened int
	open   bool
}

// NewHierarchyBuilder creates a builder appending to out. A nil cache gets a
// private one; a non-positive width falls back to DefaultIndentWidth.
func NewHierarchyBuilder(out *strings.Builder, cache *IndentationCache, width int) *HierarchyBuilder {
	if cache == nil {
		cache = NewIndentationCache()
	}
	if width <= 0 {
		width = DefaultIndentWidth
	}
	return &HierarchyBuilder{out: out, cache: cache, width: width}
}

// Open writes the namespace with its scoped usings and every container
// opening, returning the level at which members belong. Every container is
// validated before the first byte is written, so a failed Open leaves out
// untouched.
func (b *HierarchyBuilder) Open(h models.HierarchyDescriptor) (int, error) {
	if b.open {
		return 0, errors.NewGenerationError("hierarchy is already open").
			WithGenerationType("hierarchy").
			WithStage("open")
	}
	if err := h.Validate(); err != nil {
		return 0, err
	}

	containers := h.Containers()
	declarations := make([]string, len(containers))
	for i, c := range containers {
		decl, err := declaration(c)
		if err != nil {
			return 0, err
		}
		declarations[i] = decl
	}

	b.out.WriteString("namespace ")
	b.out.WriteString(h.Namespace())
	b.out.WriteString("\n{\n")
	b.level = 1

	if usings := h.Usings(); len(usings) > 0 {
		indent := b.indent()
		for _, u := range usings {
			b.out.WriteString(indent)
			b.out.WriteString("using ")
			b.out.WriteString(u)
			b.out.WriteString(";\n")
		}
		b.out.WriteByte('\n')
	}

	for _, decl := range declarations {
		indent := b.indent()
		b.out.WriteString(indent)
		b.out.WriteString(decl)
		b.out.WriteByte('\n')
		b.out.WriteString(indent)
		b.out.WriteString("{\n")
		b.level++
	}

	b.opened = len(declarations)
	b.open = true
	return b.level, nil
}

// Close writes one closing brace per opened container, innermost first,
// then the namespace brace at column zero.
func (b *HierarchyBuilder) Close() error {
	if !b.open {
		return errors.NewGenerationError("hierarchy is not open").
			WithGenerationType("hierarchy").
			WithStage("close")
	}

	for ; b.opened > 0; b.opened-- {
		b.level--
		b.out.WriteString(b.indent())
		b.out.WriteString("}\n")
	}
	b.out.WriteString("}\n")

	b.level = 0
	b.open = false
	return nil
}

// Depth returns the current indentation level
func (b *HierarchyBuilder) Depth() int {
	return b.level
}

// Width returns the number of columns per level
func (b *HierarchyBuilder) Width() int {
	return b.width
}

// Reset forgets any open hierarchy without writing closing braces
func (b *HierarchyBuilder) Reset() {
	b.level = 0
	b.opened = 0
	b.open = false
}

func (b *HierarchyBuilder) indent() string {
	return b.cache.Get(b.level * b.width)
}

// declaration renders "<accessibility> [static ]partial <kind> <name>"
func declaration(c models.ContainerDescriptor) (string, error) {
	acc, err := c.Accessibility().Keyword()
	if err != nil {
		return "", err
	}
	kind, err := c.Kind().Keyword()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(acc)
	b.WriteByte(' ')
	if c.IsStatic() {
		b.WriteString("static ")
	}
	b.WriteString("partial ")
	b.WriteString(kind)
	b.WriteByte(' ')
	b.WriteString(c.DisplayName())
	return b.String(), nil
}
