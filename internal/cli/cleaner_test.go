package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Mockly.g.cs":        "// top",
		"Other.g.cs":         "// not ours",
		"Fakes.cs":           fakeDependency,
		"nested/Mockly.g.cs": "// nested",
		"obj/Mockly.g.cs":    "// build output",
	})

	t.Run("directory only", func(t *testing.T) {
		removed, err := NewCleaner("Mockly.g.cs").CleanGeneratedFiles([]string{root})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "Mockly.g.cs")}, removed)
		assert.FileExists(t, filepath.Join(root, "nested", "Mockly.g.cs"))
	})

	t.Run("recursive", func(t *testing.T) {
		removed, err := NewCleaner("Mockly.g.cs").CleanGeneratedFiles([]string{root + "/..."})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "nested", "Mockly.g.cs")}, removed)
	})

	assert.FileExists(t, filepath.Join(root, "Other.g.cs"))
	assert.FileExists(t, filepath.Join(root, "Fakes.cs"))
	assert.FileExists(t, filepath.Join(root, "obj", "Mockly.g.cs"))
	_, err := os.Stat(filepath.Join(root, "Mockly.g.cs"))
	assert.True(t, os.IsNotExist(err))
}

func TestCleaner_MissingPath(t *testing.T) {
	_, err := NewCleaner("Mockly.g.cs").CleanGeneratedFiles([]string{filepath.Join(t.TempDir(), "gone")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}
