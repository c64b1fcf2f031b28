package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/utils"
)

const recursiveSuffix = "/..."

// DirectoryScanner expands command line paths into the source files to parse
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
	excludeDirs   []string
}

// NewDirectoryScanner creates a scanner that also skips excludeDirs by name
func NewDirectoryScanner(excludeDirs ...string) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
		excludeDirs:   excludeDirs,
	}
}

// Target is one resolved command line path
type Target struct {
	Path      string // absolute file or directory
	Recursive bool   // given with the "/..." suffix
	IsDir     bool
}

// Resolve turns paths into absolute targets. Supports Go-style patterns
// like "./..." for recursive scanning. Missing paths are reported together.
func (s *DirectoryScanner) Resolve(paths []string) ([]Target, error) {
	var (
		targets []Target
		errs    *errors.MultipleErrors
	)

	for _, p := range paths {
		base, recursive := splitPattern(p)
		abs, err := filepath.Abs(base)
		if err != nil {
			errors.AddToMultiple(&errs, errors.WrapFileSystemError("resolve", base, err))
			continue
		}

		info, err := os.Stat(abs)
		if err != nil {
			errors.AddToMultiple(&errs, errors.New(errors.FileSystemErrorCode, "path does not exist").
				WithLocation(errors.SourceLocation{File: p}).
				WithCause(err))
			continue
		}
		if recursive && !info.IsDir() {
			errors.AddToMultiple(&errs, errors.New(errors.FileSystemErrorCode, "recursive pattern needs a directory").
				WithLocation(errors.SourceLocation{File: p}))
			continue
		}

		targets = append(targets, Target{Path: abs, Recursive: recursive, IsDir: info.IsDir()})
	}

	return targets, errs.ErrorOrNil()
}

// Scan returns every source file under the resolved targets, in target order
// and then lexical order, without duplicates. Files named explicitly are
// taken as is; generated files are never returned from a directory walk.
func (s *DirectoryScanner) Scan(targets []Target) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, target := range targets {
		if !target.IsDir {
			if !seen[target.Path] {
				seen[target.Path] = true
				files = append(files, target.Path)
			}
			continue
		}

		found, err := s.fileProcessor.WalkFiles(target.Path, s.walkOptions(target, utils.SourceFileFilter()))
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", target.Path, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

func (s *DirectoryScanner) walkOptions(target Target, filter utils.FileFilter) utils.FileWalkOptions {
	return utils.FileWalkOptions{
		FileFilter:      filter,
		DirectoryFilter: utils.DefaultDirectoryFilter(s.excludeDirs...),
		Recursive:       target.Recursive,
	}
}

// OutputDir is where the artifact goes: the first target itself when it is a
// directory, otherwise the directory holding it
func OutputDir(targets []Target) string {
	if len(targets) == 0 {
		return "."
	}
	if targets[0].IsDir {
		return targets[0].Path
	}
	return filepath.Dir(targets[0].Path)
}

func splitPattern(p string) (string, bool) {
	p = filepath.ToSlash(p)
	if p == "..." {
		return ".", true
	}
	if !strings.HasSuffix(p, recursiveSuffix) {
		return filepath.FromSlash(p), false
	}
	base := strings.TrimSuffix(p, recursiveSuffix)
	if base == "" {
		base = "."
	}
	return filepath.FromSlash(base), true
}
