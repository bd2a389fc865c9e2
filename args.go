package classgen

import (
	"fmt"
	"reflect"
)

// Args are host arguments bound to a parameter list.
type Args struct {
	reg    *Registry
	callee string
	params []Param
	values map[string]any
}

// NewArgs binds positional and keyword host arguments to params.
func NewArgs(r *Registry, callee string, params []Param, pos []any, kw map[string]any) (*Args, error) {
	if len(pos) > len(params) {
		return nil, NewArgumentError(callee, "", fmt.Sprintf("takes %d arguments, got %d", len(params), len(pos)), nil)
	}
	a := &Args{reg: r, callee: callee, params: params, values: make(map[string]any, len(pos)+len(kw))}
	for i, v := range pos {
		a.values[params[i].Name] = v
	}
	for name, v := range kw {
		if _, ok := a.param(name); !ok {
			return nil, NewArgumentError(callee, name, "unexpected keyword argument", nil)
		}
		if _, dup := a.values[name]; dup {
			return nil, NewArgumentError(callee, name, "given more than once", nil)
		}
		a.values[name] = v
	}
	for _, p := range params {
		if _, ok := a.values[p.Name]; p.Required && !ok {
			return nil, NewArgumentError(callee, p.Name, "missing required argument", nil)
		}
	}
	return a, nil
}

// Empty reports if no argument was supplied.
func (a *Args) Empty() bool { return len(a.values) == 0 }

// Len returns the number of supplied arguments.
func (a *Args) Len() int { return len(a.values) }

// Has reports if the named argument was supplied.
func (a *Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

func (a *Args) param(name string) (Param, bool) {
	for _, p := range a.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// ArgAs returns the named argument converted to T, or fallback when the
// argument was not supplied.
func ArgAs[T any](a *Args, name string, fallback T) (T, error) {
	v, ok := a.values[name]
	if !ok {
		return fallback, nil
	}
	p, _ := a.param(name)
	rv, err := a.reg.convert(v, reflect.TypeFor[T](), p.Mode, p.Nullable)
	if err != nil {
		var zero T
		return zero, NewArgumentError(a.callee, name, "", err)
	}
	return rv.Interface().(T), nil
}

// Convert converts a host value to T as a by-value argument would be.
func Convert[T any](r *Registry, v any) (T, error) {
	rv, err := r.convert(v, reflect.TypeFor[T](), ByValue, true)
	if err != nil {
		var zero T
		return zero, err
	}
	return rv.Interface().(T), nil
}

func (r *Registry) convert(v any, t reflect.Type, mode PassMode, nullable bool) (reflect.Value, error) {
	fail := func(msg string) (reflect.Value, error) {
		return reflect.Value{}, &ConversionError{From: hostTypeName(v), To: t.String(), Msg: msg}
	}
	if v == nil {
		if mode == ByReference {
			return fail("reference arguments do not accept None")
		}
		switch t.Kind() {
		case reflect.Pointer:
			if !nullable {
				return fail("reference is not nullable")
			}
			return reflect.Zero(t), nil
		case reflect.Slice, reflect.Map, reflect.Func, reflect.Interface:
			return reflect.Zero(t), nil
		default:
			return fail("")
		}
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return rv, nil
	}
	if t.Kind() == reflect.Slice {
		if c := r.containerFor(t); c != nil {
			return c.fromHost(r, v)
		}
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		switch n := v.(type) {
		case float64:
			return reflect.ValueOf(n).Convert(t), nil
		case int64:
			if mode == ByReference {
				return fail("no numeric conversion for reference arguments")
			}
			return reflect.ValueOf(float64(n)).Convert(t), nil
		case uint64:
			if mode == ByReference {
				return fail("no numeric conversion for reference arguments")
			}
			return reflect.ValueOf(float64(n)).Convert(t), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if t.PkgPath() != "" {
			// Named integer types are enums; only their members convert.
			return fail("expected an enum member")
		}
		if n, ok := v.(int64); ok {
			out := reflect.New(t).Elem()
			if out.OverflowInt(n) {
				return fail("overflow")
			}
			out.SetInt(n)
			return out, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		switch n := v.(type) {
		case int64:
			if n < 0 {
				return fail("negative value")
			}
			u = uint64(n)
		case uint64:
			u = n
		default:
			return fail("")
		}
		out := reflect.New(t).Elem()
		if out.OverflowUint(u) {
			return fail("overflow")
		}
		out.SetUint(u)
		return out, nil
	case reflect.Array:
		items, ok := sequence(v)
		if !ok || len(items) != t.Len() {
			return fail(fmt.Sprintf("expected a sequence of %d", t.Len()))
		}
		out := reflect.New(t).Elem()
		for i, item := range items {
			ev, err := r.convert(item, t.Elem(), ByValue, true)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Slice:
		items, ok := sequence(v)
		if !ok {
			return fail("")
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			ev, err := r.convert(item, t.Elem(), ByValue, true)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		d, ok := v.(Dict)
		if !ok {
			return fail("")
		}
		out := reflect.MakeMapWithSize(t, len(d))
		for _, e := range d {
			kv, err := r.convert(e.Key, t.Key(), ByValue, false)
			if err != nil {
				return reflect.Value{}, err
			}
			vv, err := r.convert(e.Value, t.Elem(), ByValue, true)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(kv, vv)
		}
		return out, nil
	}
	if rv.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}
	return fail("")
}

func (c *ContainerBinding) fromHost(r *Registry, v any) (reflect.Value, error) {
	var items []any
	switch v := v.(type) {
	case List:
		items = v
	case Tuple:
		items = v
	case *NumericArray:
		if c.Numeric == NumericNone || v.Kind() != c.Numeric {
			return reflect.Value{}, &ConversionError{From: hostTypeName(v), To: c.Name, Msg: "numeric array type mismatch"}
		}
		items = v.Values
	default:
		return reflect.Value{}, &ConversionError{From: hostTypeName(v), To: c.Name}
	}
	out := reflect.MakeSlice(c.Type, len(items), len(items))
	for i, item := range items {
		ev, err := r.convert(item, c.Elem, ByValue, true)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s[%d]: %w", c.Name, i, err)
		}
		out.Index(i).Set(ev)
	}
	return out, nil
}

func sequence(v any) ([]any, bool) {
	switch v := v.(type) {
	case List:
		return v, true
	case Tuple:
		return v, true
	}
	return nil, false
}
