package cli

import (
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/utils"
)

// DiagnosticReporter renders generator errors and results through a
// DiagnosticSystem
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{diagnostics: diagnostics}
}

// ReportError prints every problem carried by err, one block each, with
// suggestions. Context and cause chains are shown in verbose mode.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	problems := flatten(err)
	for _, p := range problems {
		r.reportOne(p)
	}
	if len(problems) > 1 {
		r.diagnostics.Error("%d problems found", len(problems))
	}
}

func (r *DiagnosticReporter) reportOne(err error) {
	var mErr errors.MocklyError
	if !stderrors.As(err, &mErr) {
		r.diagnostics.Error("%s", err.Error())
		return
	}

	r.diagnostics.Error("%s (%s)", mErr.Error(), mErr.ErrorCode())
	r.diagnostics.Indent()
	defer r.diagnostics.Unindent()

	for _, suggestion := range mErr.Suggestions() {
		lines := strings.Split(suggestion, "\n")
		r.diagnostics.Info("hint: %s", lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				r.diagnostics.Info("      %s", line)
			}
		}
	}

	if r.diagnostics.Level() < utils.DiagnosticVerbose {
		return
	}

	ctx := mErr.Context()
	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		r.diagnostics.Verbose("%s: %v", formatContextKey(key), ctx[key])
	}

	level := 1
	for cause := stderrors.Unwrap(mErr); cause != nil; cause = stderrors.Unwrap(cause) {
		r.diagnostics.Verbose("cause %d: %s", level, cause.Error())
		level++
	}
}

// flatten expands MultipleErrors, keeping any other error whole
func flatten(err error) []error {
	var multi *errors.MultipleErrors
	if !stderrors.As(err, &multi) || multi.IsEmpty() {
		return []error{err}
	}
	out := make([]error, 0, multi.Count())
	for _, e := range multi.Errors {
		out = append(out, flatten(e)...)
	}
	return out
}

// formatContextKey converts snake_case context keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ReportSuccess prints the end-of-run summary
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	stats := map[string]interface{}{
		"Files scanned":   summary.FilesScanned,
		"Mocks generated": summary.MethodsGenerated,
	}
	if summary.Output != "" {
		stats["Output"] = summary.Output
	}

	title := "Generation complete"
	switch {
	case summary.Drift:
		title = "Check failed"
	case summary.Checked:
		title = "Check complete"
	case summary.Output != "" && !summary.Written:
		title = "Generation complete (already up to date)"
	}
	r.diagnostics.Summary(title, stats)

	if summary.Elapsed > 0 {
		r.diagnostics.Verbose("Finished in %s", summary.Elapsed)
	}
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	FilesScanned     int
	MethodsGenerated int
	Output           string // artifact path; empty when nothing was generated
	Written          bool   // the artifact on disk changed
	Checked          bool   // ran in check mode
	Drift            bool   // check mode found a difference
	Elapsed          time.Duration
}
