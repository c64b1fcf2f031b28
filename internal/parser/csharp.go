package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/mockly/internal/annotations"
	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/utils"
)

// CSharpParser finds partial methods carrying a marker attribute in C#
// source files.
type CSharpParser struct {
	markers annotations.MarkerRegistry
	reader  *utils.FileReader
}

var _ SourceParser = (*CSharpParser)(nil)

// NewCSharpParser creates a parser recognizing the given markers. A nil
// registry means the default marker only; a nil reader gets a private one.
func NewCSharpParser(markers annotations.MarkerRegistry, reader *utils.FileReader) *CSharpParser {
	if markers == nil {
		markers = annotations.DefaultRegistry()
	}
	if reader == nil {
		reader = utils.NewFileReader()
	}
	return &CSharpParser{markers: markers, reader: reader}
}

// Accepts reports whether path is a hand-written C# file
func (p *CSharpParser) Accepts(path string) bool {
	return strings.HasSuffix(path, ".cs") && !strings.HasSuffix(path, utils.GeneratedSuffix)
}

// ParseFile reads and parses a C# file
func (p *CSharpParser) ParseFile(path string) (models.DiscoveryResult, error) {
	src, err := p.reader.ReadFile(path)
	if err != nil {
		return models.DiscoveryResult{}, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, src)
}

// ParseSource parses src and returns the marked methods in source order.
// All discovery problems in the file are reported together.
func (p *CSharpParser) ParseSource(filename, src string) (models.DiscoveryResult, error) {
	file, err := csParser.ParseString(filename, src)
	if err != nil {
		return models.DiscoveryResult{}, syntaxError(filename, err)
	}

	d := &discovery{markers: p.markers, reported: map[*typeDecl]bool{}}
	d.file(file)
	return d.result, d.errs.ErrorOrNil()
}

func syntaxError(filename string, err error) error {
	perr, ok := err.(participle.Error)
	if !ok {
		return errors.WrapParseError(filename, err)
	}
	return errors.NewSyntaxError(perr.Message()).
		WithLocation(location(perr.Position())).
		WithExpected("a C# declaration")
}

func location(pos lexer.Position) errors.SourceLocation {
	return errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// frame is one enclosing type declaration during the walk
type frame struct {
	decl      *typeDecl
	modifiers []string
	nested    bool
}

type discovery struct {
	markers  annotations.MarkerRegistry
	result   models.DiscoveryResult
	errs     *errors.MultipleErrors
	reported map[*typeDecl]bool
}

// scope is the enclosing namespace and the usings declared inside it
type scope struct {
	namespace string
	usings    []string
}

func (d *discovery) file(f *csFile) {
	for _, u := range usingBodies(f.Usings) {
		d.result.AddUsing(u)
	}
	d.members(scope{}, f.Members)
}

// usingBodies skips global usings, which already apply to the whole project
func usingBodies(usings []*usingDirective) []string {
	var out []string
	for _, u := range usings {
		if !u.Global {
			out = append(out, u.Body())
		}
	}
	return out
}

func (d *discovery) members(outer scope, members []*namespaceMember) {
	for _, m := range members {
		switch {
		case m.Namespace != nil:
			inner := scope{namespace: m.Namespace.Name}
			if outer.namespace != "" {
				inner.namespace = outer.namespace + "." + inner.namespace
			}
			body := m.Namespace.Body()
			inner.usings = models.NestUsings(outer.usings, usingBodies(body.Usings))
			d.members(inner, body.Members)
		case m.Member != nil:
			d.member(outer, nil, m.Member)
		}
	}
}

func (d *discovery) member(sc scope, chain []frame, m *memberDecl) {
	marker := d.marker(m.Attributes)

	switch {
	case m.Type != nil:
		if marker != nil {
			d.fail(m.Type.Name.Pos, m.Type.Name.Value, "is a type; only partial methods can be mocked")
		}
		inner := append(slices.Clone(chain), frame{decl: m.Type, modifiers: m.Modifiers, nested: len(chain) > 0})
		for _, child := range m.Type.Members {
			d.member(sc, inner, child)
		}
	case m.Method != nil:
		if marker != nil {
			d.method(sc, chain, m)
		}
	case m.Other != nil:
		if marker != nil {
			d.fail(marker.Pos, otherName(m.Other), "is not a method; only partial methods can be mocked")
		}
	}
}

func (d *discovery) marker(sections []*attributeSection) *attribute {
	for _, s := range sections {
		if s.Target != "" && s.Target != "method" {
			continue
		}
		for _, a := range s.Attributes {
			if d.markers.IsMarker(a.Name.String()) {
				return a
			}
		}
	}
	return nil
}

func (d *discovery) method(sc scope, chain []frame, m *memberDecl) {
	namespace := sc.namespace
	decl := m.Method
	name := decl.Name.Value
	failed := false
	fail := func(reason string, hints ...string) {
		failed = true
		d.fail(decl.Name.Pos, name, reason, hints...)
	}

	if !slices.Contains(m.Modifiers, "partial") {
		fail("must be declared partial", "add the partial modifier so the generated part can supply the body")
	}
	if !decl.Declaration {
		fail("already has an implementation", "remove the body and end the declaration with ';'")
	}
	if len(decl.TypeParams) > 0 {
		fail("is generic; generic methods cannot be mocked")
	}
	if namespace == "" {
		fail("must be declared inside a namespace")
	}
	if len(chain) == 0 {
		fail("must be declared inside a class or struct")
	}

	returnType := decl.ReturnType.String()
	isRef := slices.Contains(m.Modifiers, "ref")
	if isRef {
		prefix := "ref "
		if slices.Contains(m.Modifiers, "readonly") {
			prefix += "readonly "
		}
		returnType = prefix + returnType
	} else if slices.Contains(m.Modifiers, "readonly") {
		fail("is readonly and cannot record calls")
	}

	params := make([]models.ParameterDescriptor, 0, len(decl.Params))
	for _, p := range decl.Params {
		variadic := false
		for _, mod := range p.Modifiers {
			if mod == "params" {
				variadic = true
				continue
			}
			fail(fmt.Sprintf("has a '%s' parameter '%s'; by-reference and extension parameters cannot be mocked", mod, p.Name.Value))
			break
		}
		params = append(params, models.ParameterDescriptor{
			Name:     p.Name.Value,
			Type:     p.Type.String(),
			Variadic: variadic,
		})
	}

	containers, ok := d.containers(chain)
	if failed || !ok {
		return
	}

	var modifiers []string
	for _, mod := range m.Modifiers {
		switch mod {
		case "partial", "ref":
		case "readonly":
			if !isRef {
				modifiers = append(modifiers, mod)
			}
		default:
			modifiers = append(modifiers, mod)
		}
	}

	d.result.Methods = append(d.result.Methods, models.MethodDescriptor{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		Modifiers:  modifiers,
		Hierarchy:  models.NewHierarchyDescriptor(namespace, containers...).WithUsings(sc.usings...),
		Location:   location(decl.Name.Pos),
	})
}

// containers converts the enclosing declarations, reporting each invalid
// container once however many marked methods it holds.
func (d *discovery) containers(chain []frame) ([]models.ContainerDescriptor, bool) {
	out := make([]models.ContainerDescriptor, 0, len(chain))
	ok := true
	for _, f := range chain {
		c, err := d.container(f)
		if err != "" {
			ok = false
			if !d.reported[f.decl] {
				d.reported[f.decl] = true
				d.fail(f.decl.Name.Pos, f.decl.Name.Value, err)
			}
			continue
		}
		out = append(out, c)
	}
	return out, ok
}

func (d *discovery) container(f frame) (models.ContainerDescriptor, string) {
	decl := f.decl

	var kind models.ContainerKind
	switch decl.Kind {
	case "class":
		kind = models.ContainerKindClass
	case "struct":
		kind = models.ContainerKindStruct
	case "record":
		return models.ContainerDescriptor{}, "is a record; mocks can only live in a class or struct"
	default:
		return models.ContainerDescriptor{}, fmt.Sprintf("is an %s; mocks can only live in a class or struct", decl.Kind)
	}

	if !slices.Contains(f.modifiers, "partial") {
		return models.ContainerDescriptor{}, "must be declared partial to hold generated members"
	}
	if slices.Contains(f.modifiers, "ref") {
		return models.ContainerDescriptor{}, "is a ref struct; ref structs cannot hold mock state"
	}
	if slices.Contains(f.modifiers, "readonly") {
		return models.ContainerDescriptor{}, "is a readonly struct; mock state must be mutable"
	}

	acc, reason := accessibility(f)
	if reason != "" {
		return models.ContainerDescriptor{}, reason
	}

	c, err := models.NewContainerDescriptor(acc, slices.Contains(f.modifiers, "static"), kind, decl.Name.Value, decl.TypeParams...)
	if err != nil {
		return models.ContainerDescriptor{}, err.Error()
	}
	return c, ""
}

// accessibility resolves declared accessibility; nested types without a
// modifier are private and top-level ones internal.
func accessibility(f frame) (models.Accessibility, string) {
	for _, mod := range f.modifiers {
		switch mod {
		case "private", "protected", "file":
			return models.AccessibilityInvalid, fmt.Sprintf("is %s; containers must be public or internal", mod)
		}
	}
	switch {
	case slices.Contains(f.modifiers, "public"):
		return models.AccessibilityPublic, ""
	case slices.Contains(f.modifiers, "internal"):
		return models.AccessibilityInternal, ""
	case f.nested:
		return models.AccessibilityInvalid, "is implicitly private; declare it public or internal"
	default:
		return models.AccessibilityInternal, ""
	}
}

func (d *discovery) fail(pos lexer.Position, symbol, reason string, hints ...string) {
	err := errors.NewDiscoveryError(symbol, reason).WithLocation(location(pos))
	for _, h := range hints {
		err.WithSuggestion(h)
	}
	errors.AddToMultiple(&d.errs, err)
}

// otherName guesses the declared name of a member the grammar skipped: the
// last identifier before any parameter list or initializer.
func otherName(o *otherMember) string {
	name := "member"
	for _, c := range o.Head {
		if c.Parens != nil || c.Token == "=" {
			break
		}
		if c.Token != "" && utils.IsCSharpIdentifier("name")(c.Token) == nil {
			name = c.Token
		}
	}
	return name
}
