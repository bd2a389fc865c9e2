package gen

import (
	"fmt"
	"math"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/classgen/hostexpr"
	"github.com/syssam/classgen/schema"
)

// literal converts a default or constant literal, written in the host
// expression syntax, to a Go expression of type t.
func (g *Graph) literal(t *schema.TypeRef, src string) (*jen.Statement, error) {
	e, err := hostexpr.ParseExpr(src)
	if err != nil {
		return nil, err
	}
	return g.convertLit(t, e)
}

func (g *Graph) convertLit(t *schema.TypeRef, e *hostexpr.Expr) (*jen.Statement, error) {
	if path, ok := e.Ident(); ok && len(path) == 1 {
		if path[0] == "None" {
			switch t.Kind {
			case schema.KindObject, schema.KindList, schema.KindDict, schema.KindFunc:
				return jen.Nil(), nil
			}
			return nil, fmt.Errorf("None is not a valid %s", t)
		}
		if k, ok := g.constants[path[0]]; ok {
			if !k.Type.Equal(t) {
				return nil, fmt.Errorf("constant %s has type %s, want %s", k.Name, k.Type, t)
			}
			return jen.Id(k.GoName), nil
		}
	}
	switch t.Kind {
	case schema.KindFloat:
		v, err := number(e)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case int64:
			return jen.Lit(float64(n)), nil
		case uint64:
			return jen.Lit(float64(n)), nil
		default:
			return jen.Lit(n.(float64)), nil
		}
	case schema.KindInt:
		n, err := integer(e, math.MinInt, math.MaxInt)
		if err != nil {
			return nil, err
		}
		return jen.Lit(int(n)), nil
	case schema.KindUInt32:
		n, err := unsigned(e, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		return jen.Lit(uint32(n)), nil
	case schema.KindUInt64:
		n, err := unsigned(e, math.MaxUint64)
		if err != nil {
			return nil, err
		}
		return jen.Lit(n), nil
	case schema.KindStr:
		if e.Str == nil {
			return nil, fmt.Errorf("expected a string literal")
		}
		s, err := hostexpr.Unquote(*e.Str)
		if err != nil {
			return nil, err
		}
		return jen.Lit(s), nil
	case schema.KindBool:
		if path, ok := e.Ident(); ok && len(path) == 1 {
			switch path[0] {
			case "True", "true":
				return jen.True(), nil
			case "False", "false":
				return jen.False(), nil
			}
		}
		return nil, fmt.Errorf("expected True or False")
	case schema.KindVec2, schema.KindVec3, schema.KindIVec3:
		items, ok := seq(e)
		if size := vecSize(t.Kind); !ok || len(items) != size {
			return nil, fmt.Errorf("expected a sequence of %d numbers", size)
		}
		elem := schema.Float()
		if t.Kind == schema.KindIVec3 {
			elem = schema.Int()
		}
		vals, err := g.convertAll(elem, items)
		if err != nil {
			return nil, err
		}
		return jen.Qual(RuntimePkg, t.Kind.String()).Values(vals...), nil
	case schema.KindList:
		items, ok := seq(e)
		if !ok {
			return nil, fmt.Errorf("expected a list")
		}
		vals, err := g.convertAll(t.Elem, items)
		if err != nil {
			return nil, err
		}
		return jen.Id(ContainerName(t)).Values(vals...), nil
	case schema.KindDict:
		if e.Dict == nil {
			return nil, fmt.Errorf("expected a dict")
		}
		entries := make(jen.Dict, len(e.Dict.Entries))
		for _, en := range e.Dict.Entries {
			k, err := g.convertLit(t.Key, en.Key)
			if err != nil {
				return nil, fmt.Errorf("dict key: %w", err)
			}
			v, err := g.convertLit(t.Elem, en.Value)
			if err != nil {
				return nil, fmt.Errorf("dict value: %w", err)
			}
			entries[k] = v
		}
		return goType(t).Values(entries), nil
	case schema.KindEnum:
		return g.enumLit(t, e)
	case schema.KindObject, schema.KindFunc:
		return nil, fmt.Errorf("%s attributes only accept None", t.Kind)
	}
	return nil, fmt.Errorf("no literal form for %s", t)
}

func (g *Graph) convertAll(t *schema.TypeRef, items []*hostexpr.Expr) ([]jen.Code, error) {
	out := make([]jen.Code, len(items))
	for i, item := range items {
		v, err := g.convertLit(t, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// enumLit accepts Enum.MEMBER and a bare MEMBER.
func (g *Graph) enumLit(t *schema.TypeRef, e *hostexpr.Expr) (*jen.Statement, error) {
	path, ok := e.Ident()
	if !ok || len(path) > 2 || (len(path) == 2 && path[0] != t.Name) {
		return nil, fmt.Errorf("expected a member of enum %s", t.Name)
	}
	member := path[len(path)-1]
	en := g.enums[t.Name]
	for _, v := range en.Values {
		if v.Name == member {
			return jen.Id(en.ConstName(v.Name)), nil
		}
	}
	return nil, fmt.Errorf("enum %s has no member %s", t.Name, member)
}

func number(e *hostexpr.Expr) (any, error) {
	if e.Num == nil {
		return nil, fmt.Errorf("expected a number")
	}
	return hostexpr.ParseNumber(*e.Num)
}

func integer(e *hostexpr.Expr, lo, hi int64) (int64, error) {
	v, err := number(e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok || n < lo || n > hi {
		return 0, fmt.Errorf("%s is not an integer in range", *e.Num)
	}
	return n, nil
}

func unsigned(e *hostexpr.Expr, hi uint64) (uint64, error) {
	v, err := number(e)
	if err != nil {
		return 0, err
	}
	var u uint64
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%s is negative", *e.Num)
		}
		u = uint64(n)
	case uint64:
		u = n
	default:
		return 0, fmt.Errorf("%s is not an integer", *e.Num)
	}
	if u > hi {
		return 0, fmt.Errorf("%s is out of range", *e.Num)
	}
	return u, nil
}

// seq returns the items of a list or tuple literal.
func seq(e *hostexpr.Expr) ([]*hostexpr.Expr, bool) {
	switch {
	case e.List != nil:
		return e.List.Items, true
	case e.Paren != nil && e.Paren.IsTuple():
		return e.Paren.Items, true
	}
	return nil, false
}

func vecSize(k schema.Kind) int {
	if k == schema.KindVec2 {
		return 2
	}
	return 3
}

// literalText returns the literal as written, for documentation.
func literalText(src *string) string {
	if src == nil {
		return ""
	}
	return strings.TrimSpace(*src)
}
