package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     DiagnosticLevel
		wantOut   []string
		wantErr   []string
		unwantOut []string
	}{
		{
			name:      "quiet shows only errors",
			level:     DiagnosticError,
			wantErr:   []string{"[ERROR] boom"},
			unwantOut: []string{"[INFO]", "[WARN]"},
		},
		{
			name:      "info",
			level:     DiagnosticInfo,
			wantOut:   []string{"[INFO] hello 1", "[SUCCESS] done"},
			wantErr:   []string{"[ERROR] boom", "[WARN] careful"},
			unwantOut: []string{"[VERBOSE]", "[DEBUG]"},
		},
		{
			name:    "debug",
			level:   DiagnosticDebug,
			wantOut: []string{"[VERBOSE] detail", "[DEBUG] trace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			d := NewDiagnosticSystem(tt.level)
			d.SetOutput(&out, &errOut)

			d.Error("boom")
			d.Warn("careful")
			d.Info("hello %d", 1)
			d.Success("done")
			d.Verbose("detail")
			d.Debug("trace")

			for _, s := range tt.wantOut {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.wantErr {
				assert.Contains(t, errOut.String(), s)
			}
			for _, s := range tt.unwantOut {
				assert.NotContains(t, out.String()+errOut.String(), s)
			}
		})
	}
}

func TestDiagnosticSystem_SummaryIsSorted(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &out)

	d.Summary("Summary", map[string]interface{}{"zeta": 1, "alpha": 2})
	assert.Equal(t, "\nSummary\n   alpha: 2\n   zeta: 1\n", out.String())
}

func TestDiagnosticSystem_IndentAndList(t *testing.T) {
	var out bytes.Buffer
	d := NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &out)

	d.Indent()
	d.List("item")
	d.Unindent()
	d.Unindent()
	d.Done("ok")

	assert.Equal(t, "  - item\n✓ ok\n", out.String())
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		module, revision, want string
	}{
		{"v1.2.3", "", "v1.2.3"},
		{"v1.2", "", "v1.2.0"},
		{"v1.2.3+meta", "", "v1.2.3"},
		{"v0.0.0-20250101000000-abcdef123456", "abcdef1234567890", "abcdef123456"},
		{"(devel)", "abc", "abc"},
		{"(devel)", "", "devel"},
		{"", "", "devel"},
		{"v1.0.0-rc.1", "", "v1.0.0-rc.1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveVersion(tt.module, tt.revision), "module=%q revision=%q", tt.module, tt.revision)
	}
}
