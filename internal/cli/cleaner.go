package cli

import (
	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner    *DirectoryScanner
	outputName string
}

// NewCleaner creates a cleaner removing files named outputName
func NewCleaner(outputName string, excludeDirs ...string) *Cleaner {
	return &Cleaner{
		scanner:    NewDirectoryScanner(excludeDirs...),
		outputName: outputName,
	}
}

// CleanGeneratedFiles removes every generated artifact under paths and
// returns the removed files
func (c *Cleaner) CleanGeneratedFiles(paths []string) ([]string, error) {
	targets, err := c.scanner.Resolve(paths)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, target := range targets {
		if !target.IsDir {
			continue
		}
		opts := c.scanner.walkOptions(target, utils.GeneratedFileFilter(c.outputName))
		opts.SkipErrors = true
		files, err := c.scanner.fileProcessor.RemoveFiles([]string{target.Path}, opts)
		removed = append(removed, files...)
		if err != nil {
			return removed, errors.WrapFileSystemError("clean", target.Path, err)
		}
	}
	return removed, nil
}
