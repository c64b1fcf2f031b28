package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// Each testdata/*.txtar archive holds source files plus want/<name> entries
// with the exact artifacts a recursive run over the archive must produce.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			root := t.TempDir()
			want := make(map[string]string)
			for _, f := range archive.Files {
				if name, ok := strings.CutPrefix(f.Name, "want/"); ok {
					want[name] = string(f.Data)
					continue
				}
				writeTree(t, root, map[string]string{f.Name: string(f.Data)})
			}
			require.NotEmpty(t, want, "archive has no want/ entries")

			g := newTestGenerator(t, nil)
			ctx := context.Background()
			require.NoError(t, g.Run(ctx, []string{root + "/..."}))

			for name, content := range want {
				got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
				require.NoError(t, err)
				assert.Equal(t, content, string(got))
			}
			assert.NoError(t, g.Check(ctx, []string{root + "/..."}))
		})
	}
}

func TestExamplesAreUpToDate(t *testing.T) {
	example := filepath.Join("..", "..", "examples", "basic")
	cfg, err := FindConfig(example)
	require.NoError(t, err)
	require.Equal(t, ConfigFileName, filepath.Base(cfg.Path))

	g := newTestGenerator(t, cfg)
	assert.NoError(t, g.Check(context.Background(), []string{example}))
	assert.Equal(t, 4, g.Summary().FilesScanned)
}
