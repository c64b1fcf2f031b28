// Package parser holds the front ends that turn source files into mock
// targets: a C# subset parser that finds marked partial methods, and a
// loader for explicit YAML descriptor files.
package parser

import "github.com/toyz/mockly/internal/models"

// SourceParser discovers mock targets in one source file
type SourceParser interface {
	// ParseSource discovers targets in src; filename is used for locations
	ParseSource(filename, src string) (models.DiscoveryResult, error)

	// ParseFile reads path and discovers targets in it
	ParseFile(path string) (models.DiscoveryResult, error)

	// Accepts reports whether this parser handles the file at path
	Accepts(path string) bool
}
