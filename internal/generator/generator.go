package generator

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/templates"
)

// DefaultArtifactName is the file name of the generated artifact
const DefaultArtifactName = "Mockly.g.cs"

// Options configures an Assembler
type Options struct {
	ArtifactName string // file name recorded on the artifact
	IndentWidth  int    // spaces per level
	Strict       bool   // unset behavior slots throw at call time
	DebugTiming  bool   // append the timing comment as the last line
	Workers      int    // parallel synthesis limit; <= 0 means GOMAXPROCS
}

// Assembler concatenates the header, every wrapped mock in discovery order
// and the shared helpers into one artifact.
type Assembler struct {
	opts        Options
	registry    *templates.TemplateRegistry
	cache       *IndentationCache
	synthesizer Synthesizer
	now         func() time.Time
}

var _ ArtifactGenerator = (*Assembler)(nil)

// NewAssembler creates an assembler; zero-valued options get defaults
func NewAssembler(opts Options) *Assembler {
	if opts.ArtifactName == "" {
		opts.ArtifactName = DefaultArtifactName
	}
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = DefaultIndentWidth
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	cache := NewIndentationCache()
	return &Assembler{
		opts:        opts,
		registry:    templates.DefaultTemplateRegistry,
		cache:       cache,
		synthesizer: NewMockSynthesizer(cache, opts.IndentWidth, opts.Strict),
		now:         time.Now,
	}
}

// IndentationCache exposes the cache shared by all units
func (a *Assembler) IndentationCache() *IndentationCache {
	return a.cache
}

// Assemble builds the artifact for result. No methods means no artifact:
// it returns nil, nil. Any failing unit aborts the whole artifact.
func (a *Assembler) Assemble(ctx context.Context, result models.DiscoveryResult) (*models.Artifact, error) {
	if len(result.Methods) == 0 {
		return nil, nil
	}
	start := a.now()

	fileUsings, err := checkUsingAliases(result.Usings)
	if err != nil {
		return nil, err
	}

	methods, err := assignStems(result.Methods)
	if err != nil {
		return nil, err
	}

	units, err := a.synthesizeAll(ctx, methods)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	out.WriteString(a.registry.MustGet(templates.FileHeaderTemplate))

	usings, err := a.registry.Render(templates.UsingsTemplate, fileUsings)
	if err != nil {
		return nil, err
	}
	out.WriteString(usings)

	for _, unit := range units {
		out.WriteString(unit)
		out.WriteString("\n")
	}

	helpers, err := a.registry.Render(templates.SharedHelpersTemplate, nil)
	if err != nil {
		return nil, err
	}
	out.WriteString(indentBlock(helpers, 0, a.opts.IndentWidth, a.cache))

	elapsed := a.now().Sub(start)
	if a.opts.DebugTiming {
		timing, err := a.registry.Render(templates.TimingTemplate, templates.TimingData{
			Count:        len(methods),
			Milliseconds: fmt.Sprintf("%.3f", float64(elapsed.Microseconds())/1000),
		})
		if err != nil {
			return nil, err
		}
		out.WriteString("\n")
		out.WriteString(timing)
	}

	return &models.Artifact{
		Name:        a.opts.ArtifactName,
		Content:     out.String(),
		MethodCount: len(methods),
		Elapsed:     elapsed,
	}, nil
}

// checkUsingAliases rejects file-level usings that bind one alias name to two
// different targets; the merged file would not compile. An alias repeated
// with the same target is kept once.
func checkUsingAliases(usings []string) ([]string, error) {
	type binding struct{ using, target string }
	bound := make(map[string]binding)
	out := make([]string, 0, len(usings))
	var errs *errors.MultipleErrors
	for _, u := range usings {
		alias, target, ok := models.UsingAlias(u)
		if !ok {
			out = append(out, u)
			continue
		}
		prev, seen := bound[alias]
		if !seen {
			bound[alias] = binding{using: u, target: target}
			out = append(out, u)
			continue
		}
		if prev.target == target {
			continue
		}
		first := prev.using
		err := errors.NewGenerationError(
			fmt.Sprintf("using alias '%s' is declared as both '%s' and '%s'", alias, first, u)).
			WithGenerationType("artifact").
			WithStage("usings")
		err.WithSuggestion("rename one of the aliases or move it inside the namespace that needs it")
		errors.AddToMultiple(&errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// synthesizeAll renders every unit on a bounded worker pool. Results are
// stored by index so completion order never leaks into the output, and
// failures are reported in discovery order.
func (a *Assembler) synthesizeAll(ctx context.Context, methods []models.MethodDescriptor) ([]string, error) {
	units := make([]string, len(methods))
	failures := make([]error, len(methods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)

	for i, m := range methods {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unit, err := a.synthesizeUnit(m)
			if err != nil {
				failures[i] = err
				return nil
			}
			units[i] = unit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.WrapGenerateError("artifact", a.opts.ArtifactName, err).WithStage("synthesis")
	}

	var errs *errors.MultipleErrors
	for i, err := range failures {
		if err == nil {
			continue
		}
		if me, ok := err.(errors.MocklyError); ok {
			errors.AddToMultiple(&errs, me)
			continue
		}
		errors.AddToMultiple(&errs, errors.WrapGenerateError("mock", methods[i].Signature(), err))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return units, nil
}

// synthesizeUnit wraps one method's members in its reconstructed hierarchy
func (a *Assembler) synthesizeUnit(m models.MethodDescriptor) (string, error) {
	var sb strings.Builder
	builder := NewHierarchyBuilder(&sb, a.cache, a.opts.IndentWidth)

	level, err := builder.Open(m.Hierarchy)
	if err != nil {
		return "", err
	}
	members, err := a.synthesizer.Synthesize(m, level)
	if err != nil {
		return "", err
	}
	sb.WriteString(members)
	if err := builder.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
