package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/mockly/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParser_ParseFilesMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	cs := writeFile(t, dir, "Fakes.cs", fakesSource)
	yml := writeFile(t, dir, "extra.mockly.yaml", descriptorSource)

	p := New(nil, nil)
	assert.True(t, p.Accepts(cs))
	assert.True(t, p.Accepts(yml))
	assert.False(t, p.Accepts(filepath.Join(dir, "notes.txt")))

	result, err := p.ParseFiles([]string{cs, yml})
	require.NoError(t, err)

	var names []string
	for _, m := range result.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"DoSomething", "Lookup", "Reset", "DoSomething", "Reset"}, names)
	assert.Equal(t, cs, result.Methods[0].Location.File)
	assert.Equal(t, yml, result.Methods[3].Location.File)

	// System.Collections.Generic appears in both files but is kept once
	assert.Equal(t, []string{
		"System",
		"System.Collections.Generic",
		"static System.Math",
		"Json = System.Text.Json.JsonSerializer",
	}, result.Usings)
}

func TestParser_FilesWithoutMethodsAddNoUsings(t *testing.T) {
	dir := t.TempDir()
	tests := writeFile(t, dir, "FakeTests.cs", `using Xunit;
using Json = Newtonsoft.Json;

namespace Acme.Tests
{
    public class FakeTests
    {
        [Fact]
        public void Works() { }
    }
}
`)
	fakes := writeFile(t, dir, "Fakes.cs", "using Json = System.Text.Json;\n\n"+
		wrapInClass("[Mocklify] public partial int C();"))

	result, err := New(nil, nil).ParseFiles([]string{tests, fakes})
	require.NoError(t, err)
	require.Len(t, result.Methods, 1)
	assert.Equal(t, []string{"Json = System.Text.Json"}, result.Usings)
}

func TestParser_ParseFilesCollectsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "Bad.cs", wrapInClass(`[Mocklify] public int A();
        [Mocklify] public partial int B() => 1;`))
	good := writeFile(t, dir, "Good.cs", wrapInClass("[Mocklify] public partial int C();"))
	notes := writeFile(t, dir, "notes.txt", "hello")
	missing := filepath.Join(dir, "Missing.cs")

	result, err := New(nil, nil).ParseFiles([]string{bad, notes, good, missing})
	require.Error(t, err)
	require.Len(t, result.Methods, 1)
	assert.Equal(t, "C", result.Methods[0].Name)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	require.Equal(t, 4, multi.Count(), err.Error())
	assert.Equal(t, errors.DiscoveryErrorCode, multi.Errors[0].ErrorCode())
	assert.Equal(t, errors.DiscoveryErrorCode, multi.Errors[1].ErrorCode())
	assert.Equal(t, errors.FileSystemErrorCode, multi.Errors[2].ErrorCode())
	assert.Equal(t, notes, multi.Errors[2].Location().File)
	assert.Equal(t, errors.FileSystemErrorCode, multi.Errors[3].ErrorCode())
}
