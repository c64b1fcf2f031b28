// Package annotations recognizes the C# attributes that mark a partial
// method for mock generation.
package annotations

import (
	"fmt"
	"strings"
	"sync"

	"github.com/toyz/mockly/internal/utils"
)

// DefaultMarker is the attribute shipped with the Mockly runtime package
const DefaultMarker = "Mocklify"

const attributeSuffix = "Attribute"

// MarkerRegistry holds the attribute names that mark a method as a mock target
type MarkerRegistry interface {
	// Register adds a marker name; qualification and the Attribute suffix are ignored
	Register(name string) error

	// IsMarker reports whether an attribute as written in source is a marker
	IsMarker(attribute string) bool

	// List returns the registered marker names in registration order
	List() []string
}

type registry struct {
	markers *utils.Registry[string, struct{}]
}

// NewRegistry creates a registry holding DefaultMarker plus extra names
func NewRegistry(extra ...string) (MarkerRegistry, error) {
	r := &registry{markers: utils.NewRegistry[string, struct{}]("marker attribute")}
	r.markers.SetValidator(func(key string, _ struct{}, _ map[string]struct{}) error {
		return utils.IsCSharpIdentifier("marker attribute")(key)
	})

	for _, name := range append([]string{DefaultMarker}, extra...) {
		if err := r.Register(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var (
	defaultRegistry     MarkerRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the global registry holding only DefaultMarker
func DefaultRegistry() MarkerRegistry {
	defaultRegistryOnce.Do(func() {
		r, err := NewRegistry()
		if err != nil {
			panic(fmt.Sprintf("default marker registry: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

func (r *registry) Register(name string) error {
	key := Normalize(name)
	if key == "" {
		return fmt.Errorf("marker attribute name cannot be empty")
	}
	return r.markers.Register(key, struct{}{})
}

func (r *registry) IsMarker(attribute string) bool {
	key := Normalize(attribute)
	return key != "" && r.markers.Has(key)
}

func (r *registry) List() []string {
	return r.markers.List()
}

// Normalize reduces an attribute reference to its simple name:
// "global::Mockly.MocklifyAttribute" -> "Mocklify". A bare "Attribute" is
// left as is.
func Normalize(attribute string) string {
	name := strings.TrimSpace(attribute)
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimPrefix(name, "@")
	if name != attributeSuffix {
		name = strings.TrimSuffix(name, attributeSuffix)
	}
	return name
}
