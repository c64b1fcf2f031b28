package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/toyz/mockly/internal/cli"
	"github.com/toyz/mockly/internal/generator"
	"github.com/toyz/mockly/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// stringList collects a repeatable flag
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mockly", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFlag  = fs.String("config", "", "Path to mockly.toml (default: searched upward from the working directory)")
		outputFlag  = fs.String("output", generator.DefaultArtifactName, "File name of the generated artifact")
		indentFlag  = fs.Int("indent", generator.DefaultIndentWidth, "Spaces per indentation level")
		strictFlag  = fs.Bool("strict", false, "Throw at call time when a behavior is not set instead of returning default")
		timingFlag  = fs.Bool("debug-timing", false, "Append a timing comment as the last line of the artifact")
		workersFlag = fs.Int("workers", 0, "Parallel synthesis limit (0 uses GOMAXPROCS)")
		checkFlag   = fs.Bool("check", false, "Compare with the artifact on disk, print a diff and fail on drift")
		cleanFlag   = fs.Bool("clean", false, "Delete generated artifacts from the given paths")
		verboseFlag = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		debugFlag   = fs.Bool("debug", false, "Print debug traces with timestamps (implies -verbose)")
		quietFlag   = fs.Bool("quiet", false, "Only show errors")
		versionFlag = fs.Bool("version", false, "Print the version and exit")
		helpFlag    = fs.Bool("help", false, "Show help information")
		attributes  stringList
	)
	fs.Var(&attributes, "attribute", "Additional marker attribute name (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mockly [options] <paths...>\n\n")
		fmt.Fprintf(stderr, "Mockly C# Mock Generator\n")
		fmt.Fprintf(stderr, "Scans C# sources for partial methods marked [Mocklify] and generates call-counting mocks.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  paths              .cs files, %s descriptors or directories\n", utils.DescriptorSuffix)
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  mockly ./...                          # Scan everything recursively\n")
		fmt.Fprintf(stderr, "  mockly ./tests/Fakes                  # Scan one directory, write Mockly.g.cs there\n")
		fmt.Fprintf(stderr, "  mockly -strict -attribute Fake ./...  # Strict mocks, also honor [Fake]\n")
		fmt.Fprintf(stderr, "  mockly -check ./...                   # Fail when the artifact is out of date\n")
		fmt.Fprintf(stderr, "  mockly -clean ./...                   # Delete generated artifacts\n")
	}

	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *helpFlag {
		fs.Usage()
		return 0
	}
	if *versionFlag {
		fmt.Fprintf(stdout, "mockly %s\n", utils.Version())
		return 0
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "Error: At least one path is required\n\n")
		fs.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *debugFlag:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if stdout != io.Writer(os.Stdout) || stderr != io.Writer(os.Stderr) {
		diagnostics.SetOutput(stdout, stderr)
	}
	reporter := cli.NewDiagnosticReporter(diagnostics)

	diagnostics.Header(fmt.Sprintf("C# mock generator %s", utils.Version()))

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	// explicitly set flags win over the configuration file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Generation.Output = *outputFlag
		case "indent":
			cfg.Generation.IndentWidth = *indentFlag
		case "strict":
			cfg.Generation.Strict = *strictFlag
		case "debug-timing":
			cfg.Generation.DebugTiming = *timingFlag
		case "workers":
			cfg.Generation.Workers = *workersFlag
		case "attribute":
			cfg.Discovery.Attributes = append(cfg.Discovery.Attributes, attributes...)
		}
	})
	if err := cfg.Validate(); err != nil {
		reporter.ReportError(err)
		return 1
	}

	diagnostics.Section("Configuration")
	diagnostics.Indent()
	if cfg.Path != "" {
		diagnostics.Verbose("Config file: %s", cfg.Path)
	} else {
		diagnostics.Verbose("Config file: none, using defaults")
	}
	diagnostics.Verbose("Paths: %s", strings.Join(paths, ", "))
	diagnostics.Verbose("Output: %s", cfg.Generation.Output)
	diagnostics.Verbose("Markers: %s", strings.Join(cfg.Discovery.Attributes, ", "))
	diagnostics.Verbose("Strict: %t", cfg.Generation.Strict)
	diagnostics.Unindent()

	if *cleanFlag {
		return clean(cfg, paths, diagnostics, reporter)
	}

	gen, err := cli.NewGenerator(cfg, diagnostics)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	if *checkFlag {
		diagnostics.Section("Checking")
		err = gen.Check(ctx, paths)
	} else {
		diagnostics.Section("Generating")
		err = gen.Run(ctx, paths)
	}

	if err != nil && !stderrors.Is(err, cli.ErrDrift) {
		reporter.ReportError(err)
		return 1
	}
	reporter.ReportSuccess(gen.Summary())
	if err != nil {
		reporter.ReportError(err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*cli.Config, error) {
	if path != "" {
		return cli.LoadConfig(path)
	}
	return cli.FindConfig(".")
}

func clean(cfg *cli.Config, paths []string, diagnostics *utils.DiagnosticSystem, reporter *cli.DiagnosticReporter) int {
	diagnostics.Section("Cleaning")
	removed, err := cli.NewCleaner(cfg.Generation.Output, cfg.Discovery.ExcludeDirs...).CleanGeneratedFiles(paths)
	for _, file := range removed {
		diagnostics.Done("Removed %s", file)
	}
	if err != nil {
		reporter.ReportError(err)
		return 1
	}
	diagnostics.Success("Removed %d generated file(s)", len(removed))
	return 0
}
