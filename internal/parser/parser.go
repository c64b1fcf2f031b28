package parser

import (
	"path/filepath"

	"github.com/toyz/mockly/internal/annotations"
	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/utils"
)

// Parser routes each file to the front end that accepts it and merges the
// results in the order files are given.
type Parser struct {
	frontEnds []SourceParser
}

// New creates a parser with the C# and YAML front ends sharing one reader
func New(markers annotations.MarkerRegistry, reader *utils.FileReader) *Parser {
	if reader == nil {
		reader = utils.NewFileReader()
	}
	return &Parser{frontEnds: []SourceParser{
		NewCSharpParser(markers, reader),
		NewYAMLParser(reader),
	}}
}

// Accepts reports whether any front end handles path
func (p *Parser) Accepts(path string) bool {
	return p.frontEnd(path) != nil
}

func (p *Parser) frontEnd(path string) SourceParser {
	for _, fe := range p.frontEnds {
		if fe.Accepts(path) {
			return fe
		}
	}
	return nil
}

// ParseFiles discovers targets in every file. Problems in one file do not
// stop the others from being read; all of them are returned together.
func (p *Parser) ParseFiles(paths []string) (models.DiscoveryResult, error) {
	var (
		result models.DiscoveryResult
		errs   *errors.MultipleErrors
	)

	for _, path := range paths {
		fe := p.frontEnd(path)
		if fe == nil {
			errors.AddToMultiple(&errs, errors.New(errors.FileSystemErrorCode, "unsupported source file").
				WithLocation(errors.SourceLocation{File: path}).
				WithSuggestion("pass .cs or "+utils.DescriptorSuffix+" files, or a directory"))
			continue
		}

		fileResult, err := fe.ParseFile(path)
		if err != nil {
			collect(&errs, err, path)
			continue
		}
		// usings of a file only matter for the methods it declares
		if len(fileResult.Methods) > 0 {
			result.Merge(fileResult)
		}
	}

	return result, errs.ErrorOrNil()
}

// collect flattens err into errs, keeping every individual problem visible
func collect(errs **errors.MultipleErrors, err error, path string) {
	switch e := err.(type) {
	case *errors.MultipleErrors:
		for _, inner := range e.Errors {
			errors.AddToMultiple(errs, inner)
		}
	case errors.MocklyError:
		errors.AddToMultiple(errs, e)
	default:
		errors.AddToMultiple(errs, errors.Wrap(errors.SyntaxErrorCode, "failed to parse "+filepath.Base(path), err).
			WithLocation(errors.SourceLocation{File: path}))
	}
}
