package gen

import (
	"go/token"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/classgen"
	"github.com/syssam/classgen/schema"
)

// The following types and their exported methods are used by the emitter
// to generate the artifacts.
type (
	// Class is one flattened class of the graph.
	Class struct {
		def *schema.ClassDef
		// Name holds the class name, which is also its Go type name.
		Name string
		// Kind tells how the class is exposed to the host.
		Kind schema.ClassKind
		// Super is the single superclass name, empty for root classes.
		Super string
		// Capabilities lists the capability superclasses.
		Capabilities []string
		// Category tags the class in the documentation.
		Category string
		// Doc is the class documentation.
		Doc string
		// Attributes holds the own attributes in declared order, then the
		// inherited ones. A shadowed inherited attribute is kept and flagged
		// ExcludedFromCtor.
		Attributes []*Attribute
		// Methods holds the own methods, then the inherited ones.
		Methods []*Method
		// Exposed holds the methods exposed by the binding: Methods deduplicated
		// by name, plus the methods of every capability superclass.
		Exposed []*Method
		// Forward holds the class names that need a forward declaration.
		Forward []string
		// Includes holds the class and enum names the class depends on.
		Includes []string
	}

	// Attribute of a flattened class.
	Attribute struct {
		*schema.AttributeDef
		// Owner is the class that declares the attribute.
		Owner string
		// Target holds the resolved type facts.
		Target *TargetType
		// Value is the Go expression of the declared default, nil if none.
		Value *jen.Statement
	}

	// Method of a flattened class.
	Method struct {
		*schema.MethodDef
		// Owner is the class that declares the method.
		Owner string
		// Params holds the resolved parameters.
		Params []*Param
		// Result holds the resolved return type, nil for none.
		Result *TargetType
	}

	// Param of a method.
	Param struct {
		*schema.ParamDef
		// Target holds the resolved type facts.
		Target *TargetType
		// Value is the Go expression of the declared default, nil if none.
		Value *jen.Statement
	}

	// Enum of the graph.
	Enum struct {
		*schema.EnumDef
		// Consts holds the Go constant names, one per value.
		Consts []string
	}

	// Constant of the graph.
	Constant struct {
		*schema.ConstantDef
		// GoName is the Go identifier of the constant.
		GoName string
		// Target holds the resolved type facts.
		Target *TargetType
		// Value is the Go expression of the literal.
		Value *jen.Statement
	}
)

// identityAttr is the attribute stored by classgen.Object.
const identityAttr = "name"

// rules is the inflection ruleset used for generated identifiers.
var rules = inflect.NewDefaultRuleset()

// BaseName returns the name of the generated storage struct.
func (c *Class) BaseName() string { return c.Name + "Base" }

// MethodsName returns the name of the generated method interface.
func (c *Class) MethodsName() string { return c.Name + "Methods" }

// CtorName returns the name of the argument constructor.
func (c *Class) CtorName() string { return "New" + rules.Camelize(c.Name) }

// DefaultCtorName returns the name of the zero-argument constructor.
func (c *Class) DefaultCtorName() string { return c.CtorName() + "Default" }

// RegisterName returns the name of the binding registration function.
func (c *Class) RegisterName() string { return "register" + rules.Camelize(c.Name) }

// FileName returns the base file name of the class artifacts.
func (c *Class) FileName() string { return rules.Underscore(c.Name) }

// IsDerived reports if the class has a single superclass.
func (c *Class) IsDerived() bool { return c.Super != "" }

// IsSubmodule reports if the class is exposed as a submodule.
func (c *Class) IsSubmodule() bool { return c.Kind == schema.ClassSubmodule }

// Own returns the attributes declared by the class itself.
func (c *Class) Own() []*Attribute {
	return slices.DeleteFunc(slices.Clone(c.Attributes), func(a *Attribute) bool { return a.Inherited })
}

// CtorAttributes returns the constructor-eligible attributes: own in
// declared order, then the inherited ones that are not shadowed.
func (c *Class) CtorAttributes() []*Attribute {
	return slices.DeleteFunc(slices.Clone(c.Attributes), func(a *Attribute) bool { return a.ExcludedFromCtor })
}

// OwnMethods returns the methods the editable stub must implement: own
// methods and capability methods.
func (c *Class) OwnMethods() []*Method {
	return slices.DeleteFunc(slices.Clone(c.Exposed), func(m *Method) bool { return m.Inherited })
}

// Attribute returns the first attribute named name.
func (c *Class) Attribute(name string) (*Attribute, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Identity reports if the attribute is the identity attribute stored by
// classgen.Object.
func (a *Attribute) Identity() bool { return a.Name == identityAttr }

// Field returns the Go struct field name of the attribute.
func (a *Attribute) Field() string { return localIdent(rules.CamelizeDownFirst(a.Name)) }

// Getter returns the getter name.
func (a *Attribute) Getter() string { return rules.Camelize(a.Name) }

// Setter returns the setter name.
func (a *Attribute) Setter() string { return "Set" + rules.Camelize(a.Name) }

// ArgName returns the constructor parameter name.
func (a *Attribute) ArgName() string { return localIdent(rules.CamelizeDownFirst(a.Name)) }

// ExportHelper returns the name of the list export helper.
func (a *Attribute) ExportHelper() string { return "export" + rules.Camelize(a.Name) }

// IsObjectList reports if the attribute is a list of object references.
func (a *Attribute) IsObjectList() bool { return a.Type.IsObjectList() }

// IsList reports if the attribute is a list.
func (a *Attribute) IsList() bool { return a.Type.IsList() }

// Binding returns the binding parameter description of the attribute.
func (a *Attribute) Binding() classgen.Param {
	return classgen.Param{
		Name:     a.Name,
		Type:     a.Target.BindingName,
		Mode:     a.Target.Storage,
		Nullable: a.Target.Nullable,
		Required: !a.Target.HasUnset && a.Value == nil,
	}
}

// GoName returns the Go method name.
func (m *Method) GoName() string { return rules.Camelize(m.Name) }

// ArgName returns the Go parameter name.
func (p *Param) ArgName() string { return localIdent(rules.CamelizeDownFirst(p.Name)) }

// Required reports if the binding must receive the parameter.
func (p *Param) Required() bool { return p.Value == nil }

// Binding returns the binding parameter description.
func (p *Param) Binding() classgen.Param {
	return classgen.Param{
		Name:     p.Name,
		Type:     p.Target.BindingName,
		Mode:     p.Target.Storage,
		Nullable: p.Target.Nullable,
		Required: p.Required(),
	}
}

// ConstName returns the Go constant name of an enum value.
func (e *Enum) ConstName(value string) string {
	return enumConstName(e.Name, value)
}

func enumConstName(enum, value string) string {
	return enum + rules.Camelize(strings.ToLower(value))
}

// constGoName returns the Go name of a schema constant. Upper-case
// constant names are camelized word by word.
func constGoName(name string) string {
	if strings.ToUpper(name) == name {
		name = strings.ToLower(name)
	}
	return rules.Camelize(name)
}

// locals are identifiers used inside generated function bodies.
var locals = map[string]struct{}{
	"a": {}, "b": {}, "c": {}, "ctx": {}, "err": {}, "indent": {}, "kw": {},
	"o": {}, "other": {}, "r": {}, "self": {}, "v": {}, "classgen": {},
	"maps": {}, "slices": {}, "strings": {}, "reflect": {}, "ignoreName": {},
}

// localIdent guards a generated local or field name against Go keywords
// and identifiers used by the generated bodies.
func localIdent(name string) string {
	_, ok := locals[name]
	if ok || token.Lookup(name).IsKeyword() {
		return "_" + name
	}
	return name
}
