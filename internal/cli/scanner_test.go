package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/mockly/internal/errors"
)

// scanTree lays out
//
//	root/
//	  Fakes.cs
//	  Mockly.g.cs          generated, never scanned
//	  notes.txt
//	  sub/Deep.cs
//	  sub/fakes.mockly.yaml
//	  bin/Out.cs           build output
//	  .hidden/Hidden.cs
//	  custom/Custom.cs     excluded by name
func scanTree(t *testing.T) string {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Fakes.cs":              fakeDependency,
		"Mockly.g.cs":           "// generated",
		"notes.txt":             "notes",
		"sub/Deep.cs":           "namespace Deep { }",
		"sub/fakes.mockly.yaml": "mocks: []",
		"bin/Out.cs":            "namespace Out { }",
		".hidden/Hidden.cs":     "namespace Hidden { }",
		"custom/Custom.cs":      "namespace Custom { }",
	})
	return root
}

// scan resolves paths and walks the targets the way a generator run does
func scan(t *testing.T, scanner *DirectoryScanner, paths ...string) ([]string, error) {
	t.Helper()
	targets, err := scanner.Resolve(paths)
	if err != nil {
		return nil, err
	}
	return scanner.Scan(targets)
}

func TestDirectoryScanner_Scan(t *testing.T) {
	root := scanTree(t)
	scanner := NewDirectoryScanner("custom")

	t.Run("directory only", func(t *testing.T) {
		files, err := scan(t, scanner, root)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "Fakes.cs")}, files)
	})

	t.Run("recursive pattern", func(t *testing.T) {
		files, err := scan(t, scanner, root+"/...")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "Fakes.cs"),
			filepath.Join(root, "sub", "Deep.cs"),
			filepath.Join(root, "sub", "fakes.mockly.yaml"),
		}, files)
	})

	t.Run("explicit file first and no duplicates", func(t *testing.T) {
		deep := filepath.Join(root, "sub", "Deep.cs")
		files, err := scan(t, scanner, deep, root+"/...")
		require.NoError(t, err)
		assert.Equal(t, []string{
			deep,
			filepath.Join(root, "Fakes.cs"),
			filepath.Join(root, "sub", "fakes.mockly.yaml"),
		}, files)
	})

	t.Run("relative pattern", func(t *testing.T) {
		t.Chdir(root)
		files, err := scan(t, scanner, "./sub/...")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.True(t, filepath.IsAbs(files[0]))
	})
}

func TestDirectoryScanner_Errors(t *testing.T) {
	root := scanTree(t)
	scanner := NewDirectoryScanner()

	_, err := scanner.Resolve([]string{
		filepath.Join(root, "missing"),
		root,
		filepath.Join(root, "Fakes.cs") + "/...",
	})
	require.Error(t, err)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	require.Equal(t, 2, multi.Count())
	assert.Contains(t, multi.Errors[0].Error(), "path does not exist")
	assert.Contains(t, multi.Errors[1].Error(), "recursive pattern needs a directory")
	assert.Equal(t, errors.FileSystemErrorCode, multi.ErrorCode())
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		in        string
		base      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"src/...", "src", true},
		{"src", "src", false},
		{"./src/Fakes.cs", filepath.FromSlash("./src/Fakes.cs"), false},
	}
	for _, tt := range tests {
		base, recursive := splitPattern(tt.in)
		assert.Equal(t, filepath.FromSlash(tt.base), base, tt.in)
		assert.Equal(t, tt.recursive, recursive, tt.in)
	}
}

func TestOutputDir(t *testing.T) {
	assert.Equal(t, ".", OutputDir(nil))
	assert.Equal(t, "/work/src", OutputDir([]Target{{Path: "/work/src", IsDir: true}, {Path: "/other", IsDir: true}}))
	assert.Equal(t, "/work/src", OutputDir([]Target{{Path: "/work/src/Fakes.cs"}}))
}
