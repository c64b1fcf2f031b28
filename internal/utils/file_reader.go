package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type cachedContent struct {
	content string
	modTime time.Time
	size    int64
}

// FileReader reads source files, caching contents until the file changes
type FileReader struct {
	contentCache *Cache[string, cachedContent]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewCache[string, cachedContent](),
	}
}

// ReadFile returns the file's contents, served from cache when the file's
// size and modification time are unchanged.
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}
	cleanPath := filepath.Clean(filePath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat file %s: %w", filepath.Base(cleanPath), err)
	}

	if cached, ok := fr.contentCache.Get(cleanPath); ok {
		if cached.modTime.Equal(stat.ModTime()) && cached.size == stat.Size() {
			return cached.content, nil
		}
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	fr.contentCache.Set(cleanPath, cachedContent{
		content: string(content),
		modTime: stat.ModTime(),
		size:    stat.Size(),
	})

	return string(content), nil
}

// CacheSize returns the number of cached files
func (fr *FileReader) CacheSize() int {
	return fr.contentCache.Size()
}

// WriteFileIfChanged writes content to path unless the file already holds
// exactly that content. It reports whether the file was written.
func WriteFileIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
