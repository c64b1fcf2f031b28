package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/mockly/internal/utils"
)

// captureDiagnostics returns a diagnostic system writing into buffers
func captureDiagnostics(level utils.DiagnosticLevel) (*utils.DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	d := utils.NewDiagnosticSystem(level)
	d.SetOutput(&stdout, &stderr)
	return d, &stdout, &stderr
}

// writeTree creates files relative to root, making parent directories
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

const fakeDependency = `using System;

namespace Acme.Tests
{
    public partial class FakeDependency
    {
        [Mocklify]
        public partial int DoSomething(int val);
    }
}
`
