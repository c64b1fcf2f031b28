package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toyz/mockly/internal/annotations"
	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/generator"
	"github.com/toyz/mockly/internal/utils"
)

// ConfigFileName is the project configuration file looked up by FindConfig
const ConfigFileName = "mockly.toml"

// Config holds the configuration for the CLI generator
type Config struct {
	Generation GenerationConfig `toml:"generation"`
	Discovery  DiscoveryConfig  `toml:"discovery"`

	// Path is the file the configuration was loaded from; empty for defaults
	Path string `toml:"-"`
}

// GenerationConfig controls the shape of the generated artifact
type GenerationConfig struct {
	Output      string `toml:"output"`
	IndentWidth int    `toml:"indent_width"`
	Strict      bool   `toml:"strict"`
	DebugTiming bool   `toml:"debug_timing"`
	Workers     int    `toml:"workers"`
}

// DiscoveryConfig controls which files are scanned and which attributes mark a target
type DiscoveryConfig struct {
	Attributes  []string `toml:"attributes"`
	ExcludeDirs []string `toml:"exclude_dirs"`
}

// DefaultConfig returns the configuration used when no mockly.toml exists
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a mockly.toml file. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapFileSystemError("read", path, err)
		}
		return nil, errors.WrapConfigurationError(filepath.Base(path), "parse", err).
			WithLocation(errors.SourceLocation{File: path})
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, errors.ConfigurationError(filepath.Base(path), "unknown keys: "+strings.Join(keys, ", ")).
			WithLocation(errors.SourceLocation{File: path}).
			WithSuggestion("valid sections are [generation] and [discovery]")
	}

	cfg.Path = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig walks up from startDir looking for mockly.toml and loads the
// first one found. Without one the defaults are returned.
func FindConfig(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", startDir, err)
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return DefaultConfig(), nil
		}
		dir = parent
	}
}

func (c *Config) applyDefaults() {
	if c.Generation.Output == "" {
		c.Generation.Output = generator.DefaultArtifactName
	}
	if c.Generation.IndentWidth == 0 {
		c.Generation.IndentWidth = generator.DefaultIndentWidth
	}
	if len(c.Discovery.Attributes) == 0 {
		c.Discovery.Attributes = []string{annotations.DefaultMarker}
	}
}

// Validate checks every setting and reports all problems at once
func (c *Config) Validate() error {
	var errs *errors.MultipleErrors
	source := c.source()
	add := func(err error) {
		if err != nil {
			errors.AddToMultiple(&errs, errors.ConfigurationError(source, err.Error()).
				WithLocation(errors.SourceLocation{File: c.Path}))
		}
	}

	add(utils.NewValidatorChain(
		utils.NotEmpty("generation.output"),
		utils.IsFileName("generation.output"),
		utils.HasSuffix("generation.output", utils.GeneratedSuffix),
	).Validate(c.Generation.Output))
	add(utils.InRange("generation.indent_width", 1, 16)(c.Generation.IndentWidth))
	add(utils.InRange("generation.workers", 0, 1024)(c.Generation.Workers))
	add(utils.ValidateEach("discovery.attributes", utils.IsCSharpIdentifier("attribute"))(c.Discovery.Attributes))
	add(utils.ValidateEach("discovery.exclude_dirs", utils.NotEmpty("directory"))(c.Discovery.ExcludeDirs))

	return errs.ErrorOrNil()
}

func (c *Config) source() string {
	if c.Path == "" {
		return ConfigFileName
	}
	return filepath.Base(c.Path)
}

// GeneratorOptions converts the generation settings for the assembler
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		ArtifactName: c.Generation.Output,
		IndentWidth:  c.Generation.IndentWidth,
		Strict:       c.Generation.Strict,
		DebugTiming:  c.Generation.DebugTiming,
		Workers:      c.Generation.Workers,
	}
}

// Markers builds the marker registry from the configured attribute names
func (c *Config) Markers() (annotations.MarkerRegistry, error) {
	markers, err := annotations.NewRegistry(c.Discovery.Attributes...)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "invalid discovery.attributes", err).
			WithLocation(errors.SourceLocation{File: c.Path})
	}
	return markers, nil
}
