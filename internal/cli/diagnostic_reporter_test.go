package cli

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/utils"
)

func TestDiagnosticReporter_ReportError(t *testing.T) {
	var multi *errors.MultipleErrors
	errors.AddToMultiple(&multi, errors.NewDiscoveryError("M", "must be declared partial").
		WithLocation(errors.SourceLocation{File: "Fakes.cs", Line: 3, Column: 5}).
		WithSuggestion("add the partial modifier\nand remove the body"))
	errors.AddToMultiple(&multi, errors.NewUnsupportedSignature("Big(...)", "has more than 16 parameters"))

	d, stdout, stderr := captureDiagnostics(utils.DiagnosticInfo)
	NewDiagnosticReporter(d).ReportError(multi)

	assert.Contains(t, stderr.String(), "[ERROR] Fakes.cs:3:5: 'M' must be declared partial (DiscoveryError)\n")
	assert.Contains(t, stderr.String(), "(UnsupportedSignature)")
	assert.Contains(t, stderr.String(), "[ERROR] 2 problems found\n")
	assert.Contains(t, stdout.String(), "  [INFO] hint: add the partial modifier\n")
	assert.Contains(t, stdout.String(), "  [INFO]       and remove the body\n")
	assert.NotContains(t, stdout.String(), "cause")
}

func TestDiagnosticReporter_VerboseShowsContextAndCauses(t *testing.T) {
	err := errors.Wrap(errors.FileSystemErrorCode, "failed to read", fmt.Errorf("open: %w", io.ErrUnexpectedEOF)).
		WithContext("file_path", "Fakes.cs")

	d, stdout, stderr := captureDiagnostics(utils.DiagnosticVerbose)
	NewDiagnosticReporter(d).ReportError(err)

	assert.Contains(t, stderr.String(), "failed to read: open: unexpected EOF (FileSystemError)")
	assert.NotContains(t, stderr.String(), "problems found")
	assert.Contains(t, stdout.String(), "[VERBOSE] File Path: Fakes.cs")
	assert.Contains(t, stdout.String(), "[VERBOSE] cause 1: open: unexpected EOF")
	assert.Contains(t, stdout.String(), "[VERBOSE] cause 2: unexpected EOF")
}

func TestDiagnosticReporter_PlainError(t *testing.T) {
	d, _, stderr := captureDiagnostics(utils.DiagnosticInfo)
	r := NewDiagnosticReporter(d)

	r.ReportError(nil)
	assert.Empty(t, stderr.String())

	r.ReportError(fmt.Errorf("boom"))
	assert.Equal(t, "[ERROR] boom\n", stderr.String())
}

func TestDiagnosticReporter_ReportSuccess(t *testing.T) {
	tests := []struct {
		name    string
		summary GenerationSummary
		title   string
	}{
		{"written", GenerationSummary{FilesScanned: 2, MethodsGenerated: 3, Output: "Mockly.g.cs", Written: true}, "Generation complete\n"},
		{"unchanged", GenerationSummary{FilesScanned: 2, MethodsGenerated: 3, Output: "Mockly.g.cs"}, "Generation complete (already up to date)\n"},
		{"checked", GenerationSummary{Checked: true, Output: "Mockly.g.cs"}, "Check complete\n"},
		{"drift", GenerationSummary{Checked: true, Drift: true}, "Check failed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, stdout, _ := captureDiagnostics(utils.DiagnosticVerbose)
			tt.summary.Elapsed = 5 * time.Millisecond
			NewDiagnosticReporter(d).ReportSuccess(tt.summary)

			out := stdout.String()
			assert.Contains(t, out, tt.title)
			assert.Contains(t, out, fmt.Sprintf("   Mocks generated: %d\n", tt.summary.MethodsGenerated))
			assert.Contains(t, out, "Finished in 5ms")
		})
	}
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "File Path", formatContextKey("file_path"))
	assert.Equal(t, "Operation", formatContextKey("operation"))
}
