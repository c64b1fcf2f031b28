package parser

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/utils"
)

// YAMLParser loads explicit mock descriptors from *.mockly.yaml files, for
// targets that are easier to describe than to annotate.
type YAMLParser struct {
	reader *utils.FileReader
}

var _ SourceParser = (*YAMLParser)(nil)

// NewYAMLParser creates a descriptor loader; a nil reader gets a private one
func NewYAMLParser(reader *utils.FileReader) *YAMLParser {
	if reader == nil {
		reader = utils.NewFileReader()
	}
	return &YAMLParser{reader: reader}
}

type descriptorFile struct {
	Usings []string     `yaml:"usings"`
	Mocks  []*mockEntry `yaml:"mocks"`
}

type mockEntry struct {
	Namespace  string            `yaml:"namespace"`
	Containers []*containerEntry `yaml:"containers"`
	Methods    []*methodEntry    `yaml:"methods"`

	pos position
}

type containerEntry struct {
	Name           string   `yaml:"name"`
	Kind           string   `yaml:"kind"`
	Accessibility  string   `yaml:"accessibility"`
	Static         bool     `yaml:"static"`
	TypeParameters []string `yaml:"type_parameters"`

	pos position
}

type methodEntry struct {
	Name       string            `yaml:"name"`
	Returns    string            `yaml:"returns"`
	Modifiers  []string          `yaml:"modifiers"`
	Parameters []*parameterEntry `yaml:"parameters"`

	pos position
}

type parameterEntry struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Params bool   `yaml:"params"`
}

type position struct{ line, column int }

func (p position) at(file string) errors.SourceLocation {
	return errors.SourceLocation{File: file, Line: p.line, Column: p.column}
}

func (m *mockEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain mockEntry
	m.pos = position{value.Line, value.Column}
	return value.Decode((*plain)(m))
}

func (c *containerEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain containerEntry
	c.pos = position{value.Line, value.Column}
	return value.Decode((*plain)(c))
}

func (m *methodEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain methodEntry
	m.pos = position{value.Line, value.Column}
	return value.Decode((*plain)(m))
}

// Accepts reports whether path is a descriptor file
func (p *YAMLParser) Accepts(path string) bool {
	return strings.HasSuffix(path, utils.DescriptorSuffix)
}

// ParseFile reads and loads a descriptor file
func (p *YAMLParser) ParseFile(path string) (models.DiscoveryResult, error) {
	src, err := p.reader.ReadFile(path)
	if err != nil {
		return models.DiscoveryResult{}, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, src)
}

// ParseSource loads descriptors from src. Methods come out in document
// order; every invalid entry is reported.
func (p *YAMLParser) ParseSource(filename, src string) (models.DiscoveryResult, error) {
	var doc descriptorFile
	dec := yaml.NewDecoder(bytes.NewBufferString(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return models.DiscoveryResult{}, errors.WrapParseError(filename, err)
	}

	var (
		result models.DiscoveryResult
		errs   *errors.MultipleErrors
	)
	for _, u := range doc.Usings {
		if u = strings.TrimSuffix(strings.TrimSpace(u), ";"); u != "" {
			result.AddUsing(u)
		}
	}

	for _, mock := range doc.Mocks {
		if mock == nil {
			continue
		}
		hierarchy, ok := p.hierarchy(filename, mock, &errs)
		if !ok {
			continue
		}
		for _, m := range mock.Methods {
			if m == nil {
				continue
			}
			loc := m.pos.at(filename)
			if err := utils.IsCSharpIdentifier("method name")(m.Name); err != nil {
				errors.AddDiscoveryError(&errs, loc, m.Name, err.Error())
				continue
			}
			if slices.Contains(m.Modifiers, "partial") {
				errors.AddDiscoveryError(&errs, loc, m.Name, "lists 'partial'; it is implied and must be omitted")
				continue
			}

			params := make([]models.ParameterDescriptor, len(m.Parameters))
			for i, param := range m.Parameters {
				if param == nil {
					param = &parameterEntry{}
				}
				params[i] = models.ParameterDescriptor{Name: param.Name, Type: param.Type, Variadic: param.Params}
			}

			returns := m.Returns
			if returns == "" {
				returns = models.VoidType
			}
			result.Methods = append(result.Methods, models.MethodDescriptor{
				Name:       m.Name,
				Parameters: params,
				ReturnType: returns,
				Modifiers:  m.Modifiers,
				Hierarchy:  hierarchy,
				Location:   loc,
			})
		}
	}

	return result, errs.ErrorOrNil()
}

func (p *YAMLParser) hierarchy(filename string, mock *mockEntry, errs **errors.MultipleErrors) (models.HierarchyDescriptor, bool) {
	ok := true
	if strings.TrimSpace(mock.Namespace) == "" {
		errors.AddDiscoveryError(errs, mock.pos.at(filename), "mock", "has no namespace")
		ok = false
	}

	containers := make([]models.ContainerDescriptor, 0, len(mock.Containers))
	for i, c := range mock.Containers {
		if c == nil {
			errors.AddDiscoveryError(errs, mock.pos.at(filename), fmt.Sprintf("containers[%d]", i), "is empty")
			ok = false
			continue
		}
		container, err := containerFrom(c)
		if err != nil {
			loc := c.pos.at(filename)
			if cv, isCV := err.(*errors.ContractViolationError); isCV {
				errors.AddToMultiple(errs, cv.WithLocation(loc))
			} else {
				errors.AddDiscoveryError(errs, loc, c.Name, err.Error())
			}
			ok = false
			continue
		}
		containers = append(containers, container)
	}
	if len(mock.Containers) == 0 {
		errors.AddDiscoveryError(errs, mock.pos.at(filename), mock.Namespace, "declares no containing class or struct")
		ok = false
	}

	return models.NewHierarchyDescriptor(mock.Namespace, containers...), ok
}

func containerFrom(c *containerEntry) (models.ContainerDescriptor, error) {
	kind, err := models.ParseContainerKind(c.Kind)
	if err != nil {
		return models.ContainerDescriptor{}, err
	}
	acc, err := models.ParseAccessibility(c.Accessibility)
	if err != nil {
		return models.ContainerDescriptor{}, err
	}
	if err := utils.IsCSharpIdentifier("container name")(c.Name); err != nil {
		return models.ContainerDescriptor{}, err
	}
	return models.NewContainerDescriptor(acc, c.Static, kind, c.Name, c.TypeParameters...)
}
