package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// csLexer tokenizes the C# subset. Every input rune matches some rule, so
// lexing never fails; unknown syntax surfaces as a parse error instead.
var csLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "Preprocessor", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "VerbatimString", Pattern: `@"(?:""|[^"])*"`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\\n])*'`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_]*(?:\.[0-9][0-9a-zA-Z_]*)?`},
	{Name: "Ident", Pattern: `@?[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[^\s]`},
})

var csParser = participle.MustBuild[csFile](
	participle.Lexer(csLexer),
	participle.Elide("Comment", "Preprocessor", "Whitespace"),
	participle.UseLookahead(participle.MaxLookahead),
)

type csFile struct {
	Pos     lexer.Position
	Usings  []*usingDirective  `parser:"@@*"`
	Members []*namespaceMember `parser:"@@*"`
}

type usingDirective struct {
	Pos    lexer.Position
	Global bool     `parser:"@'global'? 'using'"`
	Static bool     `parser:"@'static'?"`
	Alias  string   `parser:"( @Ident '=' )?"`
	Target *typeRef `parser:"@@ ';'"`
}

// Body renders the directive without the using keyword and semicolon
func (u *usingDirective) Body() string {
	var b strings.Builder
	if u.Static {
		b.WriteString("static ")
	}
	if u.Alias != "" {
		b.WriteString(u.Alias + " = ")
	}
	b.WriteString(u.Target.String())
	return b.String()
}

type namespaceMember struct {
	Namespace *namespaceDecl   `parser:"  @@"`
	Attribute *globalAttribute `parser:"| @@"`
	Member    *memberDecl      `parser:"| @@"`
}

// globalAttribute is an assembly or module level attribute section
type globalAttribute struct {
	Target string       `parser:"'[' @( 'assembly' | 'module' ) ':'"`
	Items  []*groupItem `parser:"@@* ']'"`
}

type namespaceDecl struct {
	Pos    lexer.Position
	Name   string         `parser:"'namespace' @Ident ( @'.' @Ident )*"`
	Block  *namespaceBody `parser:"( '{' @@ '}' ';'?"`
	Scoped *namespaceBody `parser:"| ';' @@ )"`
}

// Body returns whichever body form the declaration used
func (n *namespaceDecl) Body() *namespaceBody {
	if n.Block != nil {
		return n.Block
	}
	return n.Scoped
}

type namespaceBody struct {
	Usings  []*usingDirective  `parser:"@@*"`
	Members []*namespaceMember `parser:"@@*"`
}

type memberDecl struct {
	Pos        lexer.Position
	Attributes []*attributeSection `parser:"@@*"`
	Modifiers  []string            `parser:"@( 'public' | 'private' | 'protected' | 'internal' | 'file' | 'static' | 'partial' | 'virtual' | 'override' | 'abstract' | 'sealed' | 'extern' | 'unsafe' | 'new' | 'readonly' | 'ref' | 'async' | 'const' | 'volatile' | 'required' | 'fixed' )*"`
	Type       *typeDecl           `parser:"( @@"`
	Method     *methodDecl         `parser:"| @@"`
	Other      *otherMember        `parser:"| @@ )"`
}

type attributeSection struct {
	Pos        lexer.Position
	Target     string       `parser:"'[' ( @Ident ':' (?! ':' ) )?"`
	Attributes []*attribute `parser:"@@ ( ',' @@ )* ','? ']'"`
}

type attribute struct {
	Pos  lexer.Position
	Name *qualifiedName `parser:"@@"`
	Args *parenGroup    `parser:"@@?"`
}

type typeDecl struct {
	Pos           lexer.Position
	Kind          string        `parser:"@( 'class' | 'struct' | 'interface' | 'record' )"`
	RecordKind    string        `parser:"@( 'class' | 'struct' )?"`
	Name          *identifier   `parser:"@@"`
	TypeParams    []string      `parser:"( '<' ( 'in' | 'out' )? @Ident ( ',' ( 'in' | 'out' )? @Ident )* '>' )?"`
	PrimaryParams []*parameter  `parser:"( '(' ( @@ ( ',' @@ )* )? ')' )?"`
	Tail          []string      `parser:"( ( ':' | 'where' ) @~( '{' | ';' )+ )?"`
	Members       []*memberDecl `parser:"( '{' @@* '}' ';'?"`
	Bodiless      bool          `parser:"| @';' )"`
}

type methodDecl struct {
	Pos         lexer.Position
	ReturnType  *typeRef      `parser:"@@"`
	Name        *identifier   `parser:"@@"`
	TypeParams  []string      `parser:"( '<' @Ident ( ',' @Ident )* '>' )?"`
	Params      []*parameter  `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
	Constraints []string      `parser:"( 'where' @~( '{' | ';' | '=' )+ )?"`
	Declaration bool          `parser:"( @';'"`
	Body        *braceGroup   `parser:"| @@"`
	Arrow       []*valueChunk `parser:"| '=' '>' @@+ ';' )"`
}

type parameter struct {
	Pos        lexer.Position
	Attributes []*attributeSection `parser:"@@*"`
	Modifiers  []string            `parser:"@( 'ref' | 'out' | 'in' | 'this' | 'params' | 'scoped' | 'readonly' )*"`
	Type       *typeRef            `parser:"@@"`
	Name       *identifier         `parser:"@@"`
	Default    []*argChunk         `parser:"( '=' @@+ )?"`
}

// otherMember swallows any member the grammar does not model: fields,
// properties, constructors, operators, events, enums and delegates.
type otherMember struct {
	Pos         lexer.Position
	Head        []*headChunk  `parser:"@@*"`
	Terminated  bool          `parser:"( @';'"`
	Body        *braceGroup   `parser:"| @@"`
	Initializer []*valueChunk `parser:"  ( '=' @@+ ';' | ';' )? )"`
}

type identifier struct {
	Pos   lexer.Position
	Value string `parser:"@Ident"`
}

type typeRef struct {
	Pos      lexer.Position
	Tuple    []*tupleElement `parser:"( '(' @@ ( ',' @@ )+ ')'"`
	Name     *qualifiedName  `parser:"| @@ )"`
	Suffixes []*typeSuffix   `parser:"@@*"`
}

func (t *typeRef) String() string {
	var b strings.Builder
	if t.Name != nil {
		b.WriteString(t.Name.String())
	} else {
		elems := make([]string, len(t.Tuple))
		for i, e := range t.Tuple {
			elems[i] = e.String()
		}
		b.WriteString("(" + strings.Join(elems, ", ") + ")")
	}
	for _, s := range t.Suffixes {
		b.WriteString(s.String())
	}
	return b.String()
}

type tupleElement struct {
	Type *typeRef `parser:"@@"`
	Name string   `parser:"@Ident?"`
}

func (e *tupleElement) String() string {
	if e.Name == "" {
		return e.Type.String()
	}
	return e.Type.String() + " " + e.Name
}

type qualifiedName struct {
	Global bool        `parser:"( @'global' ':' ':' )?"`
	Parts  []*namePart `parser:"@@ ( '.' @@ )*"`
}

func (q *qualifiedName) String() string {
	parts := make([]string, len(q.Parts))
	for i, p := range q.Parts {
		parts[i] = p.String()
	}
	name := strings.Join(parts, ".")
	if q.Global {
		return "global::" + name
	}
	return name
}

type namePart struct {
	Name string     `parser:"@Ident"`
	Args []*typeRef `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
}

func (p *namePart) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return p.Name + "<" + strings.Join(args, ", ") + ">"
}

type typeSuffix struct {
	Nullable bool     `parser:"  @'?'"`
	Pointer  bool     `parser:"| @'*'"`
	Rank     []string `parser:"| @'[' @','* ']'"`
}

func (s *typeSuffix) String() string {
	switch {
	case s.Nullable:
		return "?"
	case s.Pointer:
		return "*"
	default:
		return strings.Join(s.Rank, "") + "]"
	}
}

// Balanced groups. Their contents are matched, never interpreted.

type parenGroup struct {
	Items []*groupItem `parser:"'(' @@* ')'"`
}

type bracketGroup struct {
	Items []*groupItem `parser:"'[' @@* ']'"`
}

type braceGroup struct {
	Items []*groupItem `parser:"'{' @@* '}'"`
}

type groupItem struct {
	Parens   *parenGroup   `parser:"  @@"`
	Brackets *bracketGroup `parser:"| @@"`
	Braces   *braceGroup   `parser:"| @@"`
	Token    string        `parser:"| @~( '(' | ')' | '[' | ']' | '{' | '}' )"`
}

// headChunk never matches the namespace keyword so a skipped member cannot
// swallow the namespace declaration that follows it.
type headChunk struct {
	Parens   *parenGroup   `parser:"  @@"`
	Brackets *bracketGroup `parser:"| @@"`
	Token    string        `parser:"| @~( ';' | '(' | ')' | '[' | ']' | '{' | '}' | 'namespace' )"`
}

type valueChunk struct {
	Parens   *parenGroup   `parser:"  @@"`
	Brackets *bracketGroup `parser:"| @@"`
	Braces   *braceGroup   `parser:"| @@"`
	Token    string        `parser:"| @~( ';' | '(' | ')' | '[' | ']' | '{' | '}' )"`
}

type argChunk struct {
	Parens   *parenGroup   `parser:"  @@"`
	Brackets *bracketGroup `parser:"| @@"`
	Braces   *braceGroup   `parser:"| @@"`
	Token    string        `parser:"| @~( ',' | ';' | '(' | ')' | '[' | ']' | '{' | '}' )"`
}
