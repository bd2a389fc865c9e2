package hostexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/syssam/classgen"
)

// ErrUnknownName is returned when a name resolves to nothing.
var ErrUnknownName = errors.New("hostexpr: unknown name")

// Error is an evaluation error at a source position.
type Error struct {
	Pos lexer.Position
	Msg string
	Err error
}

// Error returns the error string.
func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return fmt.Sprintf("hostexpr: %d:%d: %s", e.Pos.Line, e.Pos.Column, msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Interpreter evaluates scripts against a registry. Statement targets
// become variables visible to later statements.
type Interpreter struct {
	reg  *classgen.Registry
	vars map[string]any
}

// NewInterpreter returns an interpreter resolving classes, enums and
// constants through reg. A nil reg evaluates plain literals only.
func NewInterpreter(reg *classgen.Registry) *Interpreter {
	return &Interpreter{reg: reg, vars: make(map[string]any)}
}

// Exec runs src and returns the value of its last statement.
func (in *Interpreter) Exec(src string) (any, error) {
	s, err := ParseScript(src)
	if err != nil {
		return nil, err
	}
	var last any
	for _, st := range s.Stmts {
		v, err := in.Eval(st.Value)
		if err != nil {
			return nil, err
		}
		if st.Target != "" {
			in.vars[st.Target] = v
		}
		last = v
	}
	return last, nil
}

// Var returns the variable bound to name.
func (in *Interpreter) Var(name string) (any, bool) {
	v, ok := in.vars[name]
	return v, ok
}

// Literal evaluates src as a plain literal: numbers, strings, booleans,
// None, lists, tuples, dicts and numeric arrays.
func Literal(src string) (any, error) {
	e, err := ParseExpr(src)
	if err != nil {
		return nil, err
	}
	return NewInterpreter(nil).Eval(e)
}

// Eval evaluates one expression.
func (in *Interpreter) Eval(e *Expr) (any, error) {
	switch {
	case e.Num != nil:
		v, err := ParseNumber(*e.Num)
		if err != nil {
			return nil, &Error{Pos: e.Pos, Err: err}
		}
		return v, nil
	case e.Str != nil:
		v, err := Unquote(*e.Str)
		if err != nil {
			return nil, &Error{Pos: e.Pos, Err: err}
		}
		return v, nil
	case e.List != nil:
		items, err := in.evalAll(e.List.Items)
		return classgen.List(items), err
	case e.Paren != nil:
		items, err := in.evalAll(e.Paren.Items)
		if err != nil {
			return nil, err
		}
		if !e.Paren.IsTuple() {
			return items[0], nil
		}
		return classgen.Tuple(items), nil
	case e.Dict != nil:
		d := make(classgen.Dict, 0, len(e.Dict.Entries))
		for _, en := range e.Dict.Entries {
			k, err := in.Eval(en.Key)
			if err != nil {
				return nil, err
			}
			v, err := in.Eval(en.Value)
			if err != nil {
				return nil, err
			}
			d = append(d, classgen.DictEntry{Key: k, Value: v})
		}
		return d, nil
	case e.Named != nil:
		if e.Named.Call != nil {
			return in.call(e)
		}
		return in.lookup(e.Pos, e.Named.Path)
	}
	return nil, &Error{Pos: e.Pos, Msg: "empty expression"}
}

func (in *Interpreter) evalAll(exprs []*Expr) ([]any, error) {
	out := make([]any, len(exprs))
	for i, x := range exprs {
		v, err := in.Eval(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) lookup(pos lexer.Position, path []string) (any, error) {
	name := strings.Join(path, ".")
	if len(path) == 1 {
		switch name {
		case "None":
			return nil, nil
		case "True":
			return true, nil
		case "False":
			return false, nil
		}
		if v, ok := in.vars[name]; ok {
			return v, nil
		}
		if in.reg != nil {
			if v, err := in.reg.Constant(name); err == nil {
				return v, nil
			}
		}
	}
	if len(path) == 2 && in.reg != nil {
		if e, err := in.reg.Enum(path[0]); err == nil {
			if m, ok := e.Member(path[1]); ok {
				return m.Value, nil
			}
		}
	}
	return nil, &Error{Pos: pos, Msg: name, Err: ErrUnknownName}
}

func (in *Interpreter) call(e *Expr) (any, error) {
	var (
		path = e.Named.Path
		pos  []any
		kw   map[string]any
	)
	for _, a := range e.Named.Call.Args {
		v, err := in.Eval(a.Value)
		if err != nil {
			return nil, err
		}
		if a.Name == "" {
			if kw != nil {
				return nil, &Error{Pos: a.Value.Pos, Msg: "positional argument follows keyword argument"}
			}
			pos = append(pos, v)
			continue
		}
		if kw == nil {
			kw = make(map[string]any)
		}
		kw[a.Name] = v
	}
	switch {
	case len(path) == 1 && path[0] == "array":
		return numericArray(e.Pos, pos, kw)
	case in.reg == nil:
		return nil, &Error{Pos: e.Pos, Msg: strings.Join(path, "."), Err: ErrUnknownName}
	case len(path) == 1:
		v, err := in.reg.New(path[0], pos, kw)
		if err != nil {
			return nil, &Error{Pos: e.Pos, Err: err}
		}
		return v, nil
	case len(path) == 2:
		self, ok := in.vars[path[0]]
		if !ok {
			return nil, &Error{Pos: e.Pos, Msg: path[0], Err: ErrUnknownName}
		}
		v, err := in.reg.Invoke(self, path[1], pos, kw)
		if err != nil {
			return nil, &Error{Pos: e.Pos, Err: err}
		}
		return v, nil
	}
	return nil, &Error{Pos: e.Pos, Msg: strings.Join(path, "."), Err: ErrUnknownName}
}

func numericArray(pos lexer.Position, args []any, kw map[string]any) (any, error) {
	if len(kw) > 0 || len(args) < 1 || len(args) > 2 {
		return nil, &Error{Pos: pos, Msg: "array takes a typecode and an optional list"}
	}
	code, ok := args[0].(string)
	if !ok {
		return nil, &Error{Pos: pos, Msg: "array typecode must be a str"}
	}
	a := &classgen.NumericArray{Typecode: code, Values: classgen.List{}}
	if a.Kind() == classgen.NumericNone {
		return nil, &Error{Pos: pos, Msg: fmt.Sprintf("unsupported array typecode %q", code)}
	}
	if len(args) == 2 {
		switch items := args[1].(type) {
		case classgen.List:
			a.Values = items
		case classgen.Tuple:
			a.Values = classgen.List(items)
		default:
			return nil, &Error{Pos: pos, Msg: "array initializer must be a list"}
		}
	}
	return a, nil
}

// ParseNumber parses a host number literal. Integers become int64, or
// uint64 above the int64 range; everything else becomes float64.
func ParseNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		return strconv.ParseUint(s, 10, 64)
	}
	return strconv.ParseFloat(s, 64)
}

// Unquote decodes a single or double quoted host string literal.
func Unquote(s string) (string, error) {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		body := strings.ReplaceAll(s[1:len(s)-1], `\'`, `'`)
		body = strings.ReplaceAll(body, `"`, `\"`)
		s = `"` + body + `"`
	}
	return strconv.Unquote(s)
}
