package cli

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/akedrou/textdiff"

	"github.com/toyz/mockly/internal/annotations"
	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/generator"
	"github.com/toyz/mockly/internal/models"
	"github.com/toyz/mockly/internal/parser"
	"github.com/toyz/mockly/internal/utils"
)

// ErrDrift is returned by Check when the artifact on disk does not match a
// fresh generation
var ErrDrift = errors.New(errors.GenerationErrorCode, "generated file is out of date").
	WithSuggestion("run mockly without -check to regenerate it")

// timingLine matches the optional timing comment closing an artifact
var timingLine = regexp.MustCompile(`\n// Generated \d+ mock method\(s\) in [0-9.]+ ms\.\n?$`)

// Generator coordinates the CLI generation process
type Generator struct {
	config      *Config
	markers     annotations.MarkerRegistry
	scanner     *DirectoryScanner
	parser      *parser.Parser
	assembler   *generator.Assembler
	checker     *generator.Assembler // same options, timing off
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// NewGenerator creates a generator for cfg; nil arguments get defaults
func NewGenerator(cfg *Config, diagnostics *utils.DiagnosticSystem) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	markers, err := cfg.Markers()
	if err != nil {
		return nil, err
	}

	opts := cfg.GeneratorOptions()
	checkOpts := opts
	checkOpts.DebugTiming = false

	scanner := NewDirectoryScanner(cfg.Discovery.ExcludeDirs...)
	return &Generator{
		config:      cfg,
		markers:     markers,
		scanner:     scanner,
		parser:      parser.New(markers, scanner.fileProcessor.GetFileReader()),
		assembler:   generator.NewAssembler(opts),
		checker:     generator.NewAssembler(checkOpts),
		diagnostics: diagnostics,
	}, nil
}

// Summary returns the summary of the last run
func (g *Generator) Summary() GenerationSummary {
	return g.summary
}

// Run scans paths, discovers every marked method and writes the artifact
// next to the first path. Nothing is written when no method is found or
// when the file already holds the same content.
func (g *Generator) Run(ctx context.Context, paths []string) error {
	return g.run(ctx, paths, false)
}

// Check generates in memory and compares with the artifact on disk. A
// difference is printed as a unified diff and reported as ErrDrift.
func (g *Generator) Check(ctx context.Context, paths []string) error {
	return g.run(ctx, paths, true)
}

func (g *Generator) run(ctx context.Context, paths []string, check bool) error {
	start := time.Now()
	g.summary = GenerationSummary{Checked: check}
	defer func() { g.summary.Elapsed = time.Since(start) }()

	g.diagnostics.Verbose("Scanning %s", strings.Join(paths, ", "))
	targets, err := g.scanner.Resolve(paths)
	if err != nil {
		return err
	}
	files, err := g.scanner.Scan(targets)
	if err != nil {
		return err
	}
	g.summary.FilesScanned = len(files)
	g.diagnostics.Indent()
	for _, f := range files {
		g.diagnostics.Debug("%s", f)
	}
	g.diagnostics.Unindent()

	result, err := g.parser.ParseFiles(files)
	if err != nil {
		return err
	}
	g.diagnostics.Debug("%d source file(s) held in the read cache", g.scanner.fileProcessor.GetFileReader().CacheSize())
	g.diagnostics.Verbose("Discovered %d mock target(s)", len(result.Methods))

	assembler := g.assembler
	if check {
		assembler = g.checker
	}
	artifact, err := assembler.Assemble(ctx, result)
	if err != nil {
		return err
	}
	g.diagnostics.Debug("Indentation cache holds %d width(s)", assembler.IndentationCache().Size())

	path := filepath.Join(OutputDir(targets), g.config.Generation.Output)
	if artifact == nil {
		g.diagnostics.Warn("No methods marked with [%s] found; nothing generated", strings.Join(g.markers.List(), "], ["))
		if check {
			return g.compare(path, "")
		}
		return nil
	}

	g.summary.MethodsGenerated = artifact.MethodCount
	g.summary.Output = path
	if check {
		return g.compare(path, artifact.Content)
	}
	return g.write(path, artifact)
}

func (g *Generator) write(path string, artifact *models.Artifact) error {
	written, err := utils.WriteFileIfChanged(path, []byte(artifact.Content))
	if err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	g.summary.Written = written
	if written {
		g.diagnostics.Done("Wrote %s (%d mock method(s))", path, artifact.MethodCount)
	} else {
		g.diagnostics.Verbose("%s is up to date", path)
	}
	return nil
}

// compare diffs want against the file at path; a missing file reads as empty
func (g *Generator) compare(path, want string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.WrapFileSystemError("read", path, err)
	}
	current := timingLine.ReplaceAllString(string(existing), "")

	diff := textdiff.Unified(path+" (on disk)", path+" (generated)", current, want)
	if diff == "" {
		g.diagnostics.Success("%s is up to date", path)
		return nil
	}

	g.summary.Drift = true
	g.diagnostics.Raw(diff)
	return ErrDrift
}
