package hostexpr

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var hostLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `-?(\d+\.\d*|\.\d+|\d+)([eE][-+]?\d+)?`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[()\[\]{},.=:]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type (
	// Script is a sequence of statements.
	Script struct {
		Stmts []*Stmt `@@*`
	}

	// Stmt is an expression, optionally bound to a name.
	Stmt struct {
		Pos    lexer.Position
		Target string `( @Ident "=" )?`
		Value  *Expr  `@@`
	}

	// Expr is one host expression.
	Expr struct {
		Pos   lexer.Position
		Dict  *DictLit  `  @@`
		List  *ListLit  `| @@`
		Paren *ParenLit `| @@`
		Str   *string   `| @String`
		Num   *string   `| @Number`
		Named *Named    `| @@`
	}

	// DictLit is {k: v, ...}.
	DictLit struct {
		Entries []*DictEntry `"{" ( @@ ( "," @@ )* ","? )? "}"`
	}

	// DictEntry is one key: value pair.
	DictEntry struct {
		Key   *Expr `@@ ":"`
		Value *Expr `@@`
	}

	// ListLit is [a, b, ...].
	ListLit struct {
		Items []*Expr `"[" ( @@ ( "," @@ )* ","? )? "]"`
	}

	// ParenLit is a parenthesized expression or a tuple. It is a tuple
	// unless it holds exactly one item without a trailing comma.
	ParenLit struct {
		Items    []*Expr `"(" ( @@ ( "," @@ )* )?`
		Trailing bool    `@","? ")"`
	}

	// Named is a dotted name, optionally called.
	Named struct {
		Path []string  `@Ident ( "." @Ident )*`
		Call *CallArgs `@@?`
	}

	// CallArgs is a call argument list.
	CallArgs struct {
		Args []*Arg `"(" ( @@ ( "," @@ )* ","? )? ")"`
	}

	// Arg is one positional or keyword argument.
	Arg struct {
		Name  string `( @Ident "=" )?`
		Value *Expr  `@@`
	}
)

var (
	scriptParser = participle.MustBuild[Script](
		participle.Lexer(hostLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	)
	exprParser = participle.MustBuild[Expr](
		participle.Lexer(hostLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(4),
	)
)

// ParseScript parses a sequence of statements.
func ParseScript(src string) (*Script, error) {
	s, err := scriptParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("hostexpr: %w", err)
	}
	return s, nil
}

// ParseExpr parses a single expression.
func ParseExpr(src string) (*Expr, error) {
	e, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("hostexpr: %w", err)
	}
	return e, nil
}

// IsTuple reports if the parenthesized form is a tuple.
func (p *ParenLit) IsTuple() bool {
	return len(p.Items) != 1 || p.Trailing
}

// Ident returns the dotted name of a bare, uncalled name, or false.
func (e *Expr) Ident() ([]string, bool) {
	if e.Named == nil || e.Named.Call != nil {
		return nil, false
	}
	return e.Named.Path, true
}
