package schema

import (
	"maps"
	"slices"
)

// ClassKind tells how a class is exposed to the host language.
type ClassKind string

// Class kinds.
const (
	ClassRegular   ClassKind = "class"
	ClassSubmodule ClassKind = "submodule"
)

// Parentage is how a class inherits. It is one of NoParent, SingleParent
// or Capabilities; the two inheriting forms are distinct operations and
// never combine.
type Parentage interface {
	parentage()
}

type (
	// NoParent is the parentage of a root class.
	NoParent struct{}

	// SingleParent names one superclass whose attributes and methods are
	// flattened into the class. The superclass must itself be a root class.
	SingleParent struct {
		Name string
	}

	// Capabilities lists capability superclasses. Only their methods are
	// unioned into the class, for binding exposure.
	Capabilities struct {
		Names []string
	}
)

func (NoParent) parentage()     {}
func (SingleParent) parentage() {}
func (Capabilities) parentage() {}

type (
	// ClassDef is one declared class.
	ClassDef struct {
		Name       string
		Kind       ClassKind
		Parent     Parentage
		Attributes []*AttributeDef
		Methods    []*MethodDef
		Category   string
		Doc        string
	}

	// AttributeDef is one class attribute.
	AttributeDef struct {
		Name string
		Type *TypeRef
		// Default is the literal default value, nil when none was declared.
		Default *string
		// Inherited is set on attributes copied from a superclass.
		Inherited bool
		// ExcludedFromCtor is set on inherited attributes shadowed by an own
		// attribute with the same name.
		ExcludedFromCtor bool
		Doc              string
	}

	// MethodDef is one class method. Its body is written by hand in the
	// editable stub.
	MethodDef struct {
		Name      string
		Params    []*ParamDef
		Return    *TypeRef
		Const     bool
		Inherited bool
		Doc       string
	}

	// ParamDef is one method parameter.
	ParamDef struct {
		Name    string
		Type    *TypeRef
		Default *string
	}

	// EnumDef is an enumeration with ordered values.
	EnumDef struct {
		Name   string
		Values []EnumValue
		Doc    string
	}

	// EnumValue is one named enum value.
	EnumValue struct {
		Name  string
		Value int
	}

	// ConstantDef is a global constant.
	ConstantDef struct {
		Name    string
		Type    *TypeRef
		Literal string
		Doc     string
	}

	// Model is the whole schema handed to the generator.
	Model struct {
		Classes   map[string]*ClassDef
		Enums     []*EnumDef
		Constants []*ConstantDef
	}
)

// Lit returns a pointer to the literal s. It is a helper for declaring
// defaults in code.
func Lit(s string) *string { return &s }

// Superclass returns the single superclass name, if any.
func (c *ClassDef) Superclass() (string, bool) {
	if p, ok := c.Parent.(SingleParent); ok {
		return p.Name, true
	}
	return "", false
}

// CapabilityNames returns the capability superclasses, if any.
func (c *ClassDef) CapabilityNames() []string {
	if p, ok := c.Parent.(Capabilities); ok {
		return p.Names
	}
	return nil
}

// IsDerived reports if the class has a single superclass.
func (c *ClassDef) IsDerived() bool {
	_, ok := c.Superclass()
	return ok
}

// IsRoot reports if the class has neither a single superclass nor
// capability superclasses.
func (c *ClassDef) IsRoot() bool {
	switch c.Parent.(type) {
	case nil, NoParent:
		return true
	}
	return false
}

// IsSubmodule reports if the class is exposed as a submodule.
func (c *ClassDef) IsSubmodule() bool { return c.Kind == ClassSubmodule }

// Attribute returns the first attribute named name.
func (c *ClassDef) Attribute(name string) (*AttributeDef, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// NewModel returns a model holding the given classes.
func NewModel(classes ...*ClassDef) *Model {
	m := &Model{Classes: make(map[string]*ClassDef, len(classes))}
	for _, c := range classes {
		m.Classes[c.Name] = c
	}
	return m
}

// ClassNames returns the class names in sorted order.
func (m *Model) ClassNames() []string {
	return slices.Sorted(maps.Keys(m.Classes))
}

// Class returns the class named name.
func (m *Model) Class(name string) (*ClassDef, bool) {
	c, ok := m.Classes[name]
	return c, ok
}

// Enum returns the enum named name.
func (m *Model) Enum(name string) (*EnumDef, bool) {
	for _, e := range m.Enums {
		if e != nil && e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// EnumNames returns the set of enum names.
func (m *Model) EnumNames() map[string]struct{} {
	s := make(map[string]struct{}, len(m.Enums))
	for _, e := range m.Enums {
		if e != nil {
			s[e.Name] = struct{}{}
		}
	}
	return s
}

// SortedEnums returns the enums ordered by name.
func (m *Model) SortedEnums() []*EnumDef {
	enums := slices.Clone(m.Enums)
	slices.SortFunc(enums, func(a, b *EnumDef) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return enums
}

// Defaults fills the zero parts of every class: nil attribute and method
// lists become empty, a nil parentage becomes NoParent and an empty kind
// becomes ClassRegular. Nil entries are left for the generator to report.
func (m *Model) Defaults() {
	if m.Classes == nil {
		m.Classes = make(map[string]*ClassDef)
	}
	for _, c := range m.Classes {
		if c == nil {
			continue
		}
		if c.Attributes == nil {
			c.Attributes = []*AttributeDef{}
		}
		if c.Methods == nil {
			c.Methods = []*MethodDef{}
		}
		if c.Parent == nil {
			c.Parent = NoParent{}
		}
		if c.Kind == "" {
			c.Kind = ClassRegular
		}
		for _, md := range c.Methods {
			if md != nil && md.Params == nil {
				md.Params = []*ParamDef{}
			}
		}
	}
}

// Bind turns every KindNamed reference of the model into an enum or an
// object reference. Names that match neither are left unbound and are
// reported by the generator.
func (m *Model) Bind() {
	enums := m.EnumNames()
	bind := func(t *TypeRef) {
		t.Walk(func(n *TypeRef) {
			if n.Kind != KindNamed {
				return
			}
			if _, ok := enums[n.Name]; ok {
				n.Kind = KindEnum
				return
			}
			if _, ok := m.Classes[n.Name]; ok {
				n.Kind = KindObject
				n.Nullable = true
			}
		})
	}
	for _, c := range m.Classes {
		if c == nil {
			continue
		}
		for _, a := range c.Attributes {
			if a != nil {
				bind(a.Type)
			}
		}
		for _, md := range c.Methods {
			if md == nil {
				continue
			}
			for _, p := range md.Params {
				if p != nil {
					bind(p.Type)
				}
			}
			bind(md.Return)
		}
	}
	for _, k := range m.Constants {
		if k != nil {
			bind(k.Type)
		}
	}
}
