package schema

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[<>,*&]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// typeExpr is the parse tree of the textual TypeRef form.
type typeExpr struct {
	Name string      `@Ident`
	Args []*typeExpr `( "<" @@ ( "," @@ )* ">" )?`
	Ref  string      `@( "*" | "&" )?`
}

var typeParser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
)

// ParseType parses the textual form of a TypeRef:
//
//	Float  Str  Int  UInt32  UInt64  Bool  Vec2  Vec3  IVec3
//	List<T>  Dict<K, V>  Func<T>
//	Thing*   nullable object reference
//	Thing&   non-null object reference
//	Color    enum or object, bound later by Model.Bind
func ParseType(s string) (*TypeRef, error) {
	expr, err := typeParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("schema: parse type %q: %w", s, err)
	}
	t, err := expr.typeRef()
	if err != nil {
		return nil, fmt.Errorf("schema: parse type %q: %w", s, err)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) *TypeRef {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *typeExpr) typeRef() (*TypeRef, error) {
	args := make([]*TypeRef, len(e.Args))
	for i, a := range e.Args {
		t, err := a.typeRef()
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d type argument(s), got %d", e.Name, n, len(args))
		}
		if e.Ref != "" {
			return fmt.Errorf("%s cannot be used as an object reference", e.Name)
		}
		return nil
	}
	if k, ok := scalarKinds[e.Name]; ok {
		if err := arity(0); err != nil {
			return nil, err
		}
		return &TypeRef{Kind: k}, nil
	}
	switch e.Name {
	case "List":
		if err := arity(1); err != nil {
			return nil, err
		}
		return List(args[0]), nil
	case "Dict":
		if err := arity(2); err != nil {
			return nil, err
		}
		return Dict(args[0], args[1]), nil
	case "Func":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Func(args[0]), nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("%s is not a generic type", e.Name)
	}
	switch e.Ref {
	case "*":
		return Object(e.Name, true), nil
	case "&":
		return Object(e.Name, false), nil
	default:
		return Named(e.Name), nil
	}
}
