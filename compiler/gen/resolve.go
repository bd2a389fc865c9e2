package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/classgen"
	"github.com/syssam/classgen/schema"
)

// TargetType holds the facts the emitter needs about one TypeRef.
type TargetType struct {
	// Type is the resolved TypeRef.
	Type *schema.TypeRef
	// Storage is how the binding layer passes values of the type.
	Storage classgen.PassMode
	// Base reports if the type needs no forward declaration.
	Base bool
	// Nullable reports if the binding accepts None for the type.
	Nullable bool
	// HasUnset reports if the type has an unset sentinel.
	HasUnset bool
	// BindingName is the host type name shown in binding signatures.
	BindingName string
}

// passByReference is the fixed table of reference-passed kinds.
var passByReference = map[schema.Kind]bool{
	schema.KindStr:   true,
	schema.KindVec2:  true,
	schema.KindVec3:  true,
	schema.KindIVec3: true,
}

// unsetNames maps kinds to their runtime sentinel. Object, List, Dict and
// Func use nil; Bool and Enum have none.
var unsetNames = map[schema.Kind]string{
	schema.KindFloat:  "UnsetFloat",
	schema.KindStr:    "UnsetStr",
	schema.KindInt:    "UnsetInt",
	schema.KindUInt32: "UnsetUInt32",
	schema.KindUInt64: "UnsetUInt64",
	schema.KindVec2:   "UnsetVec2",
	schema.KindVec3:   "UnsetVec3",
	schema.KindIVec3:  "UnsetIVec3",
}

// Resolve maps t to its target type facts. It fails on names that were
// never bound, unknown kinds, missing components and unhashable Dict keys.
func Resolve(t *schema.TypeRef) (*TargetType, error) {
	if err := check(t); err != nil {
		return nil, NewSchemaViolation("", "", "unresolvable type", err)
	}
	tt := &TargetType{
		Type:        t,
		Storage:     classgen.ByValue,
		Base:        IsBase(t),
		BindingName: hostType(t, nil),
	}
	if passByReference[t.Kind] {
		tt.Storage = classgen.ByReference
	}
	switch t.Kind {
	case schema.KindObject:
		tt.Nullable = t.Nullable
		tt.HasUnset = true
	case schema.KindList, schema.KindDict, schema.KindFunc:
		tt.Nullable = true
		tt.HasUnset = true
	case schema.KindBool, schema.KindEnum:
	default:
		tt.HasUnset = true
	}
	return tt, nil
}

func check(t *schema.TypeRef) error {
	if t == nil {
		return fmt.Errorf("missing type")
	}
	switch t.Kind {
	case schema.KindNamed:
		return fmt.Errorf("unresolved type name %q", t.Name)
	case schema.KindObject, schema.KindEnum:
		if t.Name == "" {
			return fmt.Errorf("%s reference without a name", t.Kind)
		}
	case schema.KindList, schema.KindFunc:
		return check(t.Elem)
	case schema.KindDict:
		if err := check(t.Key); err != nil {
			return err
		}
		if !Hashable(t.Key) {
			return fmt.Errorf("dict key %s is not a hashable scalar or enum", t.Key)
		}
		return check(t.Elem)
	default:
		if !t.Kind.Scalar() {
			return fmt.Errorf("invalid type kind %d", t.Kind)
		}
	}
	return nil
}

// Hashable reports if t may be used as a Dict key.
func Hashable(t *schema.TypeRef) bool {
	return t != nil && (t.Kind.Scalar() || t.Kind == schema.KindEnum)
}

// Decompose returns the components of a compound type: the List element,
// the Dict key and value, or the Func argument. Other kinds have none.
func Decompose(t *schema.TypeRef) []*schema.TypeRef {
	switch t.Kind {
	case schema.KindList, schema.KindFunc:
		return []*schema.TypeRef{t.Elem}
	case schema.KindDict:
		return []*schema.TypeRef{t.Key, t.Elem}
	}
	return nil
}

// IsBase reports if t is built from scalars only, so it never needs a
// forward declaration.
func IsBase(t *schema.TypeRef) bool {
	if t.Kind.Scalar() {
		return true
	}
	parts := Decompose(t)
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if !IsBase(p) {
			return false
		}
	}
	return true
}

// goType returns a fresh Go type expression for t.
func goType(t *schema.TypeRef) *jen.Statement {
	switch t.Kind {
	case schema.KindFloat:
		return jen.Float64()
	case schema.KindStr:
		return jen.String()
	case schema.KindInt:
		return jen.Int()
	case schema.KindUInt32:
		return jen.Uint32()
	case schema.KindUInt64:
		return jen.Uint64()
	case schema.KindBool:
		return jen.Bool()
	case schema.KindVec2, schema.KindVec3, schema.KindIVec3:
		return jen.Qual(RuntimePkg, t.Kind.String())
	case schema.KindList:
		return jen.Id(ContainerName(t))
	case schema.KindDict:
		return jen.Map(goType(t.Key)).Add(goType(t.Elem))
	case schema.KindFunc:
		return jen.Func().Params(goType(t.Elem))
	case schema.KindObject:
		return jen.Op("*").Id(t.Name)
	default:
		return jen.Id(t.Name)
	}
}

// unset returns the sentinel expression of t, or nil if t has none.
func unset(t *schema.TypeRef) *jen.Statement {
	if name, ok := unsetNames[t.Kind]; ok {
		return jen.Qual(RuntimePkg, name)
	}
	switch t.Kind {
	case schema.KindObject, schema.KindList, schema.KindDict, schema.KindFunc:
		return jen.Nil()
	}
	return nil
}

// isSet returns the condition that v holds an assigned value, or nil for
// types without a sentinel (always set).
func isSet(t *schema.TypeRef, v jen.Code) *jen.Statement {
	switch t.Kind {
	case schema.KindList, schema.KindDict:
		return jen.Len(v).Op(">").Lit(0)
	case schema.KindBool, schema.KindEnum:
		return nil
	}
	return jen.Add(v).Op("!=").Add(unset(t))
}

// hostType renders t as a host type annotation. Object names for which
// quote reports true are written as forward references.
func hostType(t *schema.TypeRef, quote func(string) bool) string {
	switch t.Kind {
	case schema.KindFloat:
		return "float"
	case schema.KindStr:
		return "str"
	case schema.KindInt, schema.KindUInt32, schema.KindUInt64:
		return "int"
	case schema.KindBool:
		return "bool"
	case schema.KindVec2:
		return "tuple[float, float]"
	case schema.KindVec3:
		return "tuple[float, float, float]"
	case schema.KindIVec3:
		return "tuple[int, int, int]"
	case schema.KindList:
		return ContainerName(t)
	case schema.KindDict:
		return "dict[" + hostType(t.Key, quote) + ", " + hostType(t.Elem, quote) + "]"
	case schema.KindFunc:
		return "Callable[[" + hostType(t.Elem, quote) + "], None]"
	case schema.KindObject:
		name := t.Name
		if quote != nil && quote(name) {
			name = `"` + name + `"`
		}
		if t.Nullable {
			return "Optional[" + name + "]"
		}
		return name
	default:
		return t.Name
	}
}
