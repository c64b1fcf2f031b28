package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GeneratedSuffix marks files produced by the generator
const GeneratedSuffix = ".g.cs"

// DescriptorSuffix marks YAML mock descriptor files
const DescriptorSuffix = ".mockly.yaml"

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// SourceFileFilter accepts C# sources and YAML descriptors, never generated files
func SourceFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		name := info.Name()
		if strings.HasSuffix(name, GeneratedSuffix) {
			return false
		}
		return strings.HasSuffix(name, ".cs") || strings.HasSuffix(name, DescriptorSuffix)
	}
}

// GeneratedFileFilter accepts files produced by the generator with the given name
func GeneratedFileFilter(outputName string) FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return !info.IsDir() && info.Name() == outputName
	}
}

// DefaultDirectoryFilter skips build output, VCS and hidden directories plus extra
func DefaultDirectoryFilter(extra ...string) DirectoryFilter {
	skipDirs := map[string]bool{
		"bin":          true,
		"obj":          true,
		"node_modules": true,
		".git":         true,
		".vs":          true,
		"packages":     true,
	}
	for _, dir := range extra {
		skipDirs[dir] = true
	}

	return func(path string, info fs.DirEntry) bool {
		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// WalkFiles walks rootDir and returns matching files in lexical order.
// rootDir itself is never filtered out by the directory filter.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !options.Recursive {
				return filepath.SkipDir
			}
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	sort.Strings(matchedFiles)
	return matchedFiles, err
}

// RemoveFiles deletes every file matched under the given roots
func (fp *FileProcessor) RemoveFiles(roots []string, options FileWalkOptions) ([]string, error) {
	var removed []string
	for _, root := range roots {
		files, err := fp.WalkFiles(root, options)
		if err != nil {
			return removed, err
		}
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				return removed, err
			}
			removed = append(removed, file)
		}
	}
	return removed, nil
}

// GetFileReader returns the underlying FileReader
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
