package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		loc  SourceLocation
		want string
	}{
		{SourceLocation{}, "unknown location"},
		{SourceLocation{File: "A.cs"}, "A.cs"},
		{SourceLocation{File: "A.cs", Line: 3}, "A.cs:3"},
		{SourceLocation{File: "A.cs", Line: 3, Column: 9}, "A.cs:3:9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.loc.String())
	}
}

func TestBaseError_Error(t *testing.T) {
	err := New(DiscoveryErrorCode, "bad")
	assert.Equal(t, "bad", err.Error())
	assert.Empty(t, err.Context())

	cause := fmt.Errorf("disk full")
	wrapped := Wrap(FileSystemErrorCode, "write failed", cause).
		WithLocation(SourceLocation{File: "Mockly.g.cs"}).
		WithSuggestion("free some space")
	assert.Equal(t, "Mockly.g.cs: write failed: disk full", wrapped.Error())
	assert.Equal(t, []string{"free some space"}, wrapped.Suggestions())
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "FileSystemError", wrapped.ErrorCode().String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

func TestKinds(t *testing.T) {
	de := NewDiscoveryError("M", "must be declared partial").WithLocation(SourceLocation{File: "F.cs", Line: 2})
	assert.Equal(t, "F.cs:2: 'M' must be declared partial", de.Error())
	assert.Equal(t, "M", de.Symbol)

	cv := NewContractViolation("container kind", "\"interface\"", "class", "struct")
	assert.Equal(t, ContractViolationErrorCode, cv.ErrorCode())
	assert.Equal(t, []string{"class", "struct"}, cv.Context()["allowed"])

	us := NewUnsupportedSignature("Big(...)", "has more than 16 parameters")
	assert.Contains(t, us.Error(), "cannot mock 'Big(...)'")

	se := NewSyntaxError("unexpected token").WithExpected("a C# declaration")
	assert.Equal(t, "a C# declaration", se.Context()["expected"])

	te := WrapTemplateError("method", "execute", fmt.Errorf("boom"))
	assert.Equal(t, TemplateErrorCode, te.ErrorCode())
	assert.Equal(t, "execute", te.Stage)
}

func TestMultipleErrors(t *testing.T) {
	var multi *MultipleErrors
	assert.NoError(t, multi.ErrorOrNil())

	first := NewDiscoveryError("A", "is generic").WithLocation(SourceLocation{File: "A.cs", Line: 1})
	AddToMultiple(&multi, first)
	assert.Equal(t, first.Error(), multi.Error())

	AddDiscoveryError(&multi, SourceLocation{File: "B.cs", Line: 4}, "B", "is readonly")
	AddToMultiple(&multi, ConfigurationError("mockly.toml", "bad indent"))

	err := multi.ErrorOrNil()
	require.Error(t, err)
	assert.Equal(t, 3, multi.Count())
	assert.Equal(t, DiscoveryErrorCode, multi.ErrorCode())
	assert.Equal(t, "A.cs", multi.Location().File)
	assert.Equal(t, "mockly.toml", multi.Context()["error_2_config_type"])
	assert.Contains(t, err.Error(), "3 errors:")
	assert.Contains(t, err.Error(), "  2. B.cs:4: 'B' is readonly")

	var de *DiscoveryError
	require.True(t, stderrors.As(err, &de))
	assert.Equal(t, "A", de.Symbol)
}
