package generator

import (
	"context"

	"github.com/toyz/mockly/internal/models"
)

// ArtifactGenerator turns discovered methods into one generated artifact
type ArtifactGenerator interface {
	Assemble(ctx context.Context, result models.DiscoveryResult) (*models.Artifact, error)
}

// Synthesizer renders the mock members of one method at an indentation level
type Synthesizer interface {
	Synthesize(m models.MethodDescriptor, level int) (string, error)
}
