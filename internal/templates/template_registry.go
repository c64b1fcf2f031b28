package templates

import (
	"github.com/toyz/mockly/internal/utils"
)

// Template names. A leading tab in a template line stands for one indent
// unit relative to the depth the text is finally written at.
const (
	FileHeaderTemplate    = "file-header"
	UsingsTemplate        = "usings"
	MockMembersTemplate   = "mock-members"
	SharedHelpersTemplate = "shared-helpers"
	TimingTemplate        = "timing"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates *utils.Registry[string, string]
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: utils.NewRegistry[string, string]("template"),
	}
	registry.templates.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[string]("template name"),
		utils.NoDuplicateValidator[string, string]("template name"),
	))

	registry.registerFileTemplates()
	registry.registerMockTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	return tr.templates.Get(name)
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates.Get(name)
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names lists registered template names in registration order
func (tr *TemplateRegistry) Names() []string {
	return tr.templates.List()
}

func (tr *TemplateRegistry) mustRegister(name, text string) {
	if err := tr.templates.Register(name, text); err != nil {
		panic(err)
	}
}

// registerFileTemplates registers the artifact-level templates
func (tr *TemplateRegistry) registerFileTemplates() {
	tr.mustRegister(FileHeaderTemplate, `// <auto-generated>
//     This file was generated by mockly.
//     Changes to this file will be lost when the code is regenerated.
// </auto-generated>

#nullable enable

`)

	tr.mustRegister(UsingsTemplate, `{{range .}}using {{.}};
{{end}}{{if .}}
{{end}}`)

	tr.mustRegister(SharedHelpersTemplate, `namespace Mockly.Generated
{
	internal static class MocklyCallCounter
	{
		public static void Increment<TKey>(ref global::System.Collections.Generic.Dictionary<TKey, int>? counters, TKey key)
			where TKey : notnull
		{
			var map = counters
				?? global::System.Threading.Interlocked.CompareExchange(ref counters, new global::System.Collections.Generic.Dictionary<TKey, int>(), null)
				?? counters!;

			lock (map)
			{
				map.TryGetValue(key, out int count);
				map[key] = count + 1;
			}
		}

		public static int Count<TKey>(global::System.Collections.Generic.Dictionary<TKey, int>? counters, TKey key)
			where TKey : notnull
		{
			if (counters is null)
			{
				return 0;
			}

			lock (counters)
			{
				counters.TryGetValue(key, out int count);
				return count;
			}
		}
	}
}
`)

	tr.mustRegister(TimingTemplate, `// Generated {{.Count}} mock method(s) in {{.Milliseconds}} ms.
`)
}

// registerMockTemplates registers the per-method member templates
func (tr *TemplateRegistry) registerMockTemplates() {
	tr.mustRegister(MockMembersTemplate, `public {{if .Static}}static {{end}}{{.DelegateType}}? {{.SlotName}} { get; set; }

private {{if .Static}}static {{end}}global::System.Collections.Generic.Dictionary<{{.KeyType}}, int>? {{.CounterField}};

{{with .Modifiers}}{{.}} {{end}}partial {{.ReturnType}} {{.Name}}({{.Parameters}})
{
	global::Mockly.Generated.MocklyCallCounter.Increment(ref {{.CounterField}}, {{.KeyExpression}});

{{if .Void}}	{{.SlotName}}?.Invoke({{.Arguments}});
{{else if .Strict}}	return ({{.SlotName}} ?? throw new global::System.InvalidOperationException({{quote .StrictMessage}})).Invoke({{.Arguments}});
{{else}}	return {{.SlotName}} is { } __mocklyBehavior ? __mocklyBehavior({{.Arguments}}) : default!;
{{end}}}

public {{if .Static}}static {{end}}int {{.QueryName}}({{.Parameters}})
{
	return global::Mockly.Generated.MocklyCallCounter.Count({{.CounterField}}, {{.KeyExpression}});
}
`)
}

// DefaultTemplateRegistry is the process-wide registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
