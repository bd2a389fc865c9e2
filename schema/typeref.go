package schema

import "strings"

// Kind is the kind of a TypeRef node.
type Kind uint8

// The closed set of TypeRef kinds.
const (
	KindInvalid Kind = iota
	KindFloat
	KindStr
	KindInt
	KindUInt32
	KindUInt64
	KindBool
	KindVec2
	KindVec3
	KindIVec3
	KindList
	KindDict
	KindFunc
	KindObject
	KindEnum
	// KindNamed is a name that was parsed from text but not yet bound to
	// an enum or a class by Model.Bind.
	KindNamed
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindFloat:   "Float",
	KindStr:     "Str",
	KindInt:     "Int",
	KindUInt32:  "UInt32",
	KindUInt64:  "UInt64",
	KindBool:    "Bool",
	KindVec2:    "Vec2",
	KindVec3:    "Vec3",
	KindIVec3:   "IVec3",
	KindList:    "List",
	KindDict:    "Dict",
	KindFunc:    "Func",
	KindObject:  "Object",
	KindEnum:    "Enum",
	KindNamed:   "Named",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports if the kind is one of the known kinds.
func (k Kind) Valid() bool { return k > KindInvalid && k < endKinds }

// Scalar reports if the kind is a leaf value type (numbers, strings,
// booleans and the fixed-size vectors).
func (k Kind) Scalar() bool { return k >= KindFloat && k <= KindIVec3 }

// scalarKinds maps the textual scalar names to their kinds.
var scalarKinds = map[string]Kind{
	"Float":  KindFloat,
	"Str":    KindStr,
	"Int":    KindInt,
	"UInt32": KindUInt32,
	"UInt64": KindUInt64,
	"Bool":   KindBool,
	"Vec2":   KindVec2,
	"Vec3":   KindVec3,
	"IVec3":  KindIVec3,
}

// TypeRef is a node in the abstract type algebra consumed by the generator.
type TypeRef struct {
	// Kind of the node.
	Kind Kind
	// Elem is the List element, the Dict value or the Func argument.
	Elem *TypeRef
	// Key is the Dict key.
	Key *TypeRef
	// Name of the referenced class or enum.
	Name string
	// Nullable is set on object references that accept the unset pointer
	// at the binding boundary.
	Nullable bool
}

// Float returns the Float type.
func Float() *TypeRef { return &TypeRef{Kind: KindFloat} }

// Str returns the Str type.
func Str() *TypeRef { return &TypeRef{Kind: KindStr} }

// Int returns the Int type.
func Int() *TypeRef { return &TypeRef{Kind: KindInt} }

// UInt32 returns the UInt32 type.
func UInt32() *TypeRef { return &TypeRef{Kind: KindUInt32} }

// UInt64 returns the UInt64 type.
func UInt64() *TypeRef { return &TypeRef{Kind: KindUInt64} }

// Bool returns the Bool type.
func Bool() *TypeRef { return &TypeRef{Kind: KindBool} }

// Vec2 returns the Vec2 type.
func Vec2() *TypeRef { return &TypeRef{Kind: KindVec2} }

// Vec3 returns the Vec3 type.
func Vec3() *TypeRef { return &TypeRef{Kind: KindVec3} }

// IVec3 returns the IVec3 type.
func IVec3() *TypeRef { return &TypeRef{Kind: KindIVec3} }

// List returns List<elem>.
func List(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindList, Elem: elem} }

// Dict returns Dict<key, value>.
func Dict(key, value *TypeRef) *TypeRef { return &TypeRef{Kind: KindDict, Key: key, Elem: value} }

// Func returns FunctionRef<arg>, a single-argument callback.
func Func(arg *TypeRef) *TypeRef { return &TypeRef{Kind: KindFunc, Elem: arg} }

// Object returns a reference to the named class.
func Object(name string, nullable bool) *TypeRef {
	return &TypeRef{Kind: KindObject, Name: name, Nullable: nullable}
}

// Enum returns a reference to the named enum.
func Enum(name string) *TypeRef { return &TypeRef{Kind: KindEnum, Name: name} }

// Named returns an unbound reference to name. Model.Bind turns it into an
// Enum or an Object reference.
func Named(name string) *TypeRef { return &TypeRef{Kind: KindNamed, Name: name} }

// IsList reports if t is a List.
func (t *TypeRef) IsList() bool { return t != nil && t.Kind == KindList }

// IsObject reports if t is an object reference.
func (t *TypeRef) IsObject() bool { return t != nil && t.Kind == KindObject }

// IsEnum reports if t is an enum reference.
func (t *TypeRef) IsEnum() bool { return t != nil && t.Kind == KindEnum }

// IsObjectList reports if t is a List of object references.
func (t *TypeRef) IsObjectList() bool { return t.IsList() && t.Elem.IsObject() }

// ListDepth returns the number of nested List layers of t.
func (t *TypeRef) ListDepth() int {
	n := 0
	for ; t.IsList(); t = t.Elem {
		n++
	}
	return n
}

// Innermost strips every List layer of t.
func (t *TypeRef) Innermost() *TypeRef {
	for t.IsList() {
		t = t.Elem
	}
	return t
}

// Clone returns a deep copy of t.
func (t *TypeRef) Clone() *TypeRef {
	if t == nil {
		return nil
	}
	c := *t
	c.Elem = t.Elem.Clone()
	c.Key = t.Key.Clone()
	return &c
}

// Equal reports if t and o describe the same type.
func (t *TypeRef) Equal(o *TypeRef) bool {
	return t.String() == o.String()
}

// String returns the canonical textual form of t, as accepted by ParseType.
func (t *TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *TypeRef) write(b *strings.Builder) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case KindList, KindFunc:
		b.WriteString(t.Kind.String())
		b.WriteByte('<')
		t.Elem.write(b)
		b.WriteByte('>')
	case KindDict:
		b.WriteString("Dict<")
		t.Key.write(b)
		b.WriteString(", ")
		t.Elem.write(b)
		b.WriteByte('>')
	case KindObject:
		b.WriteString(t.Name)
		if t.Nullable {
			b.WriteByte('*')
		} else {
			b.WriteByte('&')
		}
	case KindEnum, KindNamed:
		b.WriteString(t.Name)
	default:
		b.WriteString(t.Kind.String())
	}
}

// Walk calls fn for t and every nested component of t in pre-order.
func (t *TypeRef) Walk(fn func(*TypeRef)) {
	if t == nil {
		return
	}
	fn(t)
	t.Key.Walk(fn)
	t.Elem.Walk(fn)
}
