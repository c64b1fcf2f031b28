package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/toyz/mockly/internal/errors"
	"github.com/toyz/mockly/internal/models"
)

func method(name, ret string, params ...models.ParameterDescriptor) models.MethodDescriptor {
	return models.MethodDescriptor{
		Name:       name,
		ReturnType: ret,
		Modifiers:  []string{"public"},
		Parameters: params,
		Hierarchy: models.NewHierarchyDescriptor("Acme.Tests",
			models.MustContainer(models.AccessibilityPublic, false, models.ContainerKindClass, "FakeDependency")),
	}
}

func param(name, typ string) models.ParameterDescriptor {
	return models.ParameterDescriptor{Name: name, Type: typ}
}

func TestMockSynthesizer_SingleParameter(t *testing.T) {
	s := NewMockSynthesizer(NewIndentationCache(), 4, false)

	out, err := s.Synthesize(method("DoSomething", "int", param("val", "int")), 2)
	require.NoError(t, err)

	expected := `        public global::System.Func<int, int>? MockDoSomethingMethod { get; set; }

        private global::System.Collections.Generic.Dictionary<global::System.ValueTuple<int>, int>? _doSomethingCallCounters;

        public partial int DoSomething(int val)
        {
            global::Mockly.Generated.MocklyCallCounter.Increment(ref _doSomethingCallCounters, new global::System.ValueTuple<int>(val));

            return MockDoSomethingMethod is { } __mocklyBehavior ? __mocklyBehavior(val) : default!;
        }

        public int NumberOfCallsToDoSomethingWith(int val)
        {
            return global::Mockly.Generated.MocklyCallCounter.Count(_doSomethingCallCounters, new global::System.ValueTuple<int>(val));
        }
`
	assert.Equal(t, expected, out)
}

func TestMockSynthesizer_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		method   models.MethodDescriptor
		strict   bool
		contains []string
		excludes []string
	}{
		{
			name:   "no parameters",
			method: method("Next", "string"),
			contains: []string{
				"public global::System.Func<string>? MockNextMethod { get; set; }",
				"Dictionary<global::System.ValueTuple, int>? _nextCallCounters;",
				"Increment(ref _nextCallCounters, default(global::System.ValueTuple));",
				"return MockNextMethod is { } __mocklyBehavior ? __mocklyBehavior() : default!;",
				"public int NumberOfCallsToNext()",
			},
			excludes: []string{"NumberOfCallsToNextWith"},
		},
		{
			name:   "several parameters use a tuple key",
			method: method("Combine", "string", param("a", "string?"), param("b", "int"), param("c", "List<int>")),
			contains: []string{
				"global::System.Func<string?, int, List<int>, string>? MockCombineMethod",
				"Dictionary<(string?, int, List<int>), int>? _combineCallCounters;",
				"Increment(ref _combineCallCounters, (a, b, c));",
				"__mocklyBehavior(a, b, c)",
				"public int NumberOfCallsToCombineWith(string? a, int b, List<int> c)",
				"Count(_combineCallCounters, (a, b, c));",
			},
		},
		{
			name:   "void without parameters",
			method: method("Reset", "void"),
			contains: []string{
				"public global::System.Action? MockResetMethod { get; set; }",
				"public partial void Reset()",
				"MockResetMethod?.Invoke();",
			},
			excludes: []string{"return MockResetMethod", "default!"},
		},
		{
			name:   "void with parameters",
			method: method("Log", "void", param("message", "string"), param("level", "int")),
			contains: []string{
				"public global::System.Action<string, int>? MockLogMethod",
				"MockLogMethod?.Invoke(message, level);",
			},
		},
		{
			name:   "strict mode throws when unset",
			method: method("Load", "Span<byte>", param("id", "int")),
			strict: true,
			contains: []string{
				`return (MockLoadMethod ?? throw new global::System.InvalidOperationException("MockLoadMethod is not set; assign it before calling Load(int).")).Invoke(id);`,
			},
			excludes: []string{"default!"},
		},
		{
			name: "static method gets static members",
			method: func() models.MethodDescriptor {
				m := method("Create", "Widget", param("size", "int"))
				m.Modifiers = []string{"internal", "static"}
				return m
			}(),
			contains: []string{
				"public static global::System.Func<int, Widget>? MockCreateMethod",
				"private static global::System.Collections.Generic.Dictionary",
				"internal static partial Widget Create(int size)",
				"public static int NumberOfCallsToCreateWith(int size)",
			},
		},
		{
			name: "params and verbatim identifiers",
			method: method("@event", "int",
				models.ParameterDescriptor{Name: "@class", Type: "string"},
				models.ParameterDescriptor{Name: "rest", Type: "object[]", Variadic: true}),
			contains: []string{
				"MockeventMethod",
				"_eventCallCounters",
				"public partial int @event(string @class, params object[] rest)",
				"Increment(ref _eventCallCounters, (@class, rest));",
				"public int NumberOfCallsToeventWith(string @class, params object[] rest)",
			},
		},
		{
			name: "overload stem",
			method: func() models.MethodDescriptor {
				m := method("Add", "int", param("a", "int"))
				m.Stem = "Add_int"
				return m
			}(),
			contains: []string{
				"MockAdd_intMethod",
				"_add_intCallCounters",
				"public int NumberOfCallsToAddWith(int a)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMockSynthesizer(nil, 4, tt.strict)
			out, err := s.Synthesize(tt.method, 0)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestMockSynthesizer_UnsupportedSignatures(t *testing.T) {
	tooMany := make([]models.ParameterDescriptor, MaxParameters+1)
	for i := range tooMany {
		tooMany[i] = param(fmt.Sprintf("p%d", i), "int")
	}

	tests := []struct {
		name    string
		method  models.MethodDescriptor
		wantErr string
	}{
		{"too many parameters", method("Wide", "int", tooMany...), "exceed the delegate limit"},
		{"void parameter", method("Bad", "int", param("x", "void")), "no usable type"},
		{"unnamed parameter", method("Bad", "int", param("", "int")), "parameter 1 has no name"},
		{"pointer parameter", method("Raw", "int", param("p", "byte*")), "pointer type"},
		{"pointer return", method("Raw", "int*"), "pointer types"},
		{"ref return", method("Ref", "ref int"), "ref returns"},
		{"missing return type", method("None", ""), "no return type"},
		{"ref parameter", method("Swap", "void", param("a", "ref int")), "'ref' parameter 'a'"},
		{"out parameter", method("TryGet", "bool", param("value", "out string")), "'out' parameter 'value'"},
		{"in parameter", method("Read", "int", param("p", " in Point")), "'in' parameter 'p'"},
		{"params in the type", method("Sum", "int", param("xs", "params int[]")), "mark it variadic"},
	}

	s := NewMockSynthesizer(nil, 4, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method.Location = errors.SourceLocation{File: "Fakes.cs", Line: 12, Column: 5}
			_, err := s.Synthesize(tt.method, 0)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)

			var us *errors.UnsupportedSignatureError
			require.ErrorAs(t, err, &us)
			assert.Equal(t, errors.UnsupportedSignatureErrorCode, us.ErrorCode())
			assert.Equal(t, "Fakes.cs:12:5", us.Location().String())
		})
	}
}

func TestMockSynthesizer_TypeNamesStartingLikeModifiers(t *testing.T) {
	s := NewMockSynthesizer(nil, 4, false)
	_, err := s.Synthesize(method("Keep", "int", param("r", "refCount"), param("o", "outer.Node")), 0)
	assert.NoError(t, err)
}

func TestMockSynthesizer_MaxParametersAllowed(t *testing.T) {
	params := make([]models.ParameterDescriptor, MaxParameters)
	for i := range params {
		params[i] = param(fmt.Sprintf("p%d", i), "int")
	}
	_, err := NewMockSynthesizer(nil, 4, false).Synthesize(method("Wide", "int", params...), 0)
	assert.NoError(t, err)
}

// TestMockSynthesizer_IndentationProperty checks that every non-empty line
// is indented at least to the requested level and that blank lines carry no
// trailing whitespace.
func TestMockSynthesizer_IndentationProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 8).Draw(rt, "width")
		level := rapid.IntRange(0, 10).Draw(rt, "level")
		arity := rapid.IntRange(0, MaxParameters).Draw(rt, "arity")
		ret := rapid.SampledFrom([]string{"void", "int", "string?", "List<int>"}).Draw(rt, "ret")

		params := make([]models.ParameterDescriptor, arity)
		for i := range params {
			params[i] = param(fmt.Sprintf("p%d", i), rapid.SampledFrom([]string{"int", "string", "bool?"}).Draw(rt, "type"))
		}

		out, err := NewMockSynthesizer(nil, width, rapid.Bool().Draw(rt, "strict")).
			Synthesize(method("Op", ret, params...), level)
		if err != nil {
			rt.Fatalf("synthesize failed: %v", err)
		}

		base := strings.Repeat(" ", level*width)
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			if line == "" {
				continue
			}
			if strings.TrimSpace(line) == "" {
				rt.Fatalf("whitespace-only line in output")
			}
			if !strings.HasPrefix(line, base) {
				rt.Fatalf("line %q is not indented to level %d", line, level)
			}
			if strings.Contains(line, "\t") {
				rt.Fatalf("tab leaked into output: %q", line)
			}
		}

		if strings.Count(out, "{") != strings.Count(out, "}") {
			rt.Fatalf("unbalanced braces in:\n%s", out)
		}
	})
}
