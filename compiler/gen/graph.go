package gen

import (
	"fmt"
	"go/token"

	"github.com/syssam/classgen/schema"
)

// Graph holds the resolved and flattened model of one generation run.
// It is built once by NewGraph and is read-only afterwards, so classes
// can be emitted concurrently.
type Graph struct {
	*Config
	// Model is the input model, defaulted and bound.
	Model *schema.Model
	// Classes holds the flattened classes sorted by name.
	Classes []*Class
	// Enums holds the enums sorted by name.
	Enums []*Enum
	// Constants holds the constants in declared order.
	Constants []*Constant
	// Containers holds the distinct List instantiations sorted by name.
	Containers []*Container
	// Names is the global identifier table.
	Names *NameTable

	classes   map[string]*Class
	enums     map[string]*Enum
	constants map[string]*Constant
}

// NewGraph validates m and resolves it into a Graph. Model defaults are
// filled in and named type references are bound in place.
func NewGraph(c *Config, m *schema.Model) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing configuration")
	}
	if m == nil {
		return nil, NewConfigError("Model", nil, "missing model")
	}
	if err := checkEntries(m); err != nil {
		return nil, err
	}
	m.Defaults()
	m.Bind()
	g := &Graph{
		Config:    c,
		Model:     m,
		classes:   make(map[string]*Class, len(m.Classes)),
		enums:     make(map[string]*Enum, len(m.Enums)),
		constants: make(map[string]*Constant, len(m.Constants)),
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	for _, e := range m.SortedEnums() {
		en := &Enum{EnumDef: e}
		for _, v := range e.Values {
			en.Consts = append(en.Consts, enumConstName(e.Name, v.Name))
		}
		g.Enums = append(g.Enums, en)
		g.enums[e.Name] = en
	}
	for _, k := range m.Constants {
		if err := g.addConstant(k); err != nil {
			return nil, err
		}
	}
	for _, name := range m.ClassNames() {
		cls, err := Flatten(m, m.Classes[name])
		if err != nil {
			return nil, err
		}
		if err := g.resolveClass(cls); err != nil {
			return nil, err
		}
		g.Classes = append(g.Classes, cls)
		g.classes[name] = cls
	}
	containers, err := ScanContainers(m)
	if err != nil {
		return nil, err
	}
	g.Containers = containers
	g.Names = BuildNameTable(g)
	if err := checkCollisions(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Class returns the flattened class named name.
func (g *Graph) Class(name string) (*Class, bool) {
	c, ok := g.classes[name]
	return c, ok
}

// Enum returns the enum named name.
func (g *Graph) Enum(name string) (*Enum, bool) {
	e, ok := g.enums[name]
	return e, ok
}

func (g *Graph) addConstant(k *schema.ConstantDef) error {
	if _, ok := g.constants[k.Name]; ok {
		return NewSchemaViolation("", k.Name, "duplicate constant", nil)
	}
	t, err := Resolve(k.Type)
	if err != nil {
		return locate("", k.Name, "constant type", err)
	}
	switch k.Type.Kind {
	case schema.KindObject, schema.KindFunc:
		return NewSchemaViolation("", k.Name, "constants cannot hold "+k.Type.Kind.String()+" values", nil)
	}
	v, err := g.literal(k.Type, k.Literal)
	if err != nil {
		return NewSchemaViolation("", k.Name, "invalid literal", err)
	}
	kc := &Constant{ConstantDef: k, GoName: constGoName(k.Name), Target: t, Value: v}
	g.Constants = append(g.Constants, kc)
	g.constants[k.Name] = kc
	return nil
}

func (g *Graph) resolveClass(c *Class) error {
	for _, a := range c.Attributes {
		t, err := Resolve(a.Type)
		if err != nil {
			return locate(c.Name, a.Name, "attribute type", err)
		}
		a.Target = t
		if a.Default != nil {
			if a.Value, err = g.literal(a.Type, *a.Default); err != nil {
				return NewSchemaViolation(c.Name, a.Name, "invalid default", err)
			}
		}
	}
	for _, m := range c.Exposed {
		m.Params = make([]*Param, len(m.MethodDef.Params))
		for i, pd := range m.MethodDef.Params {
			t, err := Resolve(pd.Type)
			if err != nil {
				return locate(c.Name, m.Name+"."+pd.Name, "parameter type", err)
			}
			p := &Param{ParamDef: pd, Target: t}
			if pd.Default != nil {
				if p.Value, err = g.literal(pd.Type, *pd.Default); err != nil {
					return NewSchemaViolation(c.Name, m.Name+"."+pd.Name, "invalid default", err)
				}
			}
			m.Params[i] = p
		}
		if m.Return != nil {
			t, err := Resolve(m.Return)
			if err != nil {
				return locate(c.Name, m.Name, "return type", err)
			}
			m.Result = t
		}
	}
	c.Forward = ForwardDecls(c)
	c.Includes = Includes(c)
	return nil
}

// checkEntries rejects nil entries of a hand-built model.
func checkEntries(m *schema.Model) error {
	for _, name := range m.ClassNames() {
		c := m.Classes[name]
		if c == nil {
			return NewSchemaViolation(name, "", "missing class definition", nil)
		}
		for i, a := range c.Attributes {
			if a == nil {
				return NewSchemaViolation(name, fmt.Sprintf("attribute %d", i), "missing attribute definition", nil)
			}
		}
		for i, md := range c.Methods {
			if md == nil {
				return NewSchemaViolation(name, fmt.Sprintf("method %d", i), "missing method definition", nil)
			}
			for j, p := range md.Params {
				if p == nil {
					return NewSchemaViolation(name, fmt.Sprintf("%s.%d", md.Name, j), "missing parameter definition", nil)
				}
			}
		}
	}
	for i, e := range m.Enums {
		if e == nil {
			return NewEnumViolation(fmt.Sprintf("enum %d", i), "missing enum definition")
		}
	}
	for i, k := range m.Constants {
		if k == nil {
			return NewSchemaViolation("", fmt.Sprintf("constant %d", i), "missing constant definition", nil)
		}
		if k.Type == nil {
			return NewSchemaViolation("", k.Name, "missing type", nil)
		}
	}
	return nil
}

// validate checks the model rules that do not depend on resolution.
func (g *Graph) validate() error {
	m := g.Model
	seen := make(map[string]struct{}, len(m.Enums))
	for _, e := range m.SortedEnums() {
		if !token.IsExported(e.Name) || !token.IsIdentifier(e.Name) {
			return NewEnumViolation(e.Name, "enum name must be an exported identifier")
		}
		if _, ok := seen[e.Name]; ok {
			return NewEnumViolation(e.Name, "duplicate enum")
		}
		seen[e.Name] = struct{}{}
		if _, ok := m.Classes[e.Name]; ok {
			return NewEnumViolation(e.Name, "enum name is also a class name")
		}
		if len(e.Values) == 0 {
			return NewEnumViolation(e.Name, "enum has no values")
		}
		values := make(map[string]struct{}, len(e.Values))
		for _, v := range e.Values {
			if !token.IsIdentifier(v.Name) {
				return NewEnumViolation(e.Name, fmt.Sprintf("value %q is not an identifier", v.Name))
			}
			if _, ok := values[v.Name]; ok {
				return NewEnumViolation(e.Name, "duplicate value "+v.Name)
			}
			values[v.Name] = struct{}{}
		}
	}
	for _, k := range m.Constants {
		if !token.IsIdentifier(k.Name) {
			return NewSchemaViolation("", k.Name, "constant name must be an identifier", nil)
		}
	}
	for _, name := range m.ClassNames() {
		if err := validateClass(m, m.Classes[name]); err != nil {
			return err
		}
	}
	return nil
}

func validateClass(m *schema.Model, c *schema.ClassDef) error {
	if !token.IsExported(c.Name) || !token.IsIdentifier(c.Name) {
		return NewSchemaViolation(c.Name, "", "class name must be an exported identifier", nil)
	}
	switch c.Kind {
	case schema.ClassRegular, schema.ClassSubmodule:
	default:
		return NewSchemaViolation(c.Name, "", fmt.Sprintf("unknown class kind %q", c.Kind), nil)
	}
	switch p := c.Parent.(type) {
	case schema.SingleParent:
		super, ok := m.Class(p.Name)
		switch {
		case p.Name == c.Name:
			return NewSchemaViolation(c.Name, "", "class cannot be its own superclass", nil)
		case !ok:
			return NewSchemaViolation(c.Name, "", "unknown superclass "+p.Name, nil)
		case !super.IsRoot():
			return NewSchemaViolation(c.Name, "", "superclass "+p.Name+" has superclasses of its own; only one inheritance level is supported", nil)
		}
	case schema.Capabilities:
		if len(p.Names) == 0 {
			return NewSchemaViolation(c.Name, "", "empty capability list", nil)
		}
		for _, name := range p.Names {
			if _, ok := m.Class(name); !ok || name == c.Name {
				return NewSchemaViolation(c.Name, "", "invalid capability "+name, nil)
			}
		}
	}
	attrs := make(map[string]struct{}, len(c.Attributes))
	for _, a := range c.Attributes {
		if !token.IsIdentifier(a.Name) {
			return NewSchemaViolation(c.Name, a.Name, "attribute name must be an identifier", nil)
		}
		if _, ok := attrs[a.Name]; ok {
			return NewSchemaViolation(c.Name, a.Name, "duplicate attribute", nil)
		}
		attrs[a.Name] = struct{}{}
		if a.Type == nil {
			return NewSchemaViolation(c.Name, a.Name, "missing type", nil)
		}
		if a.Name == identityAttr && a.Type.Kind != schema.KindStr {
			return NewSchemaViolation(c.Name, a.Name, "identity attribute must be Str", nil)
		}
		if a.Type.Kind == schema.KindBool && a.Default == nil {
			return NewSchemaViolation(c.Name, a.Name, "Bool attribute requires a default", nil)
		}
	}
	methods := make(map[string]struct{}, len(c.Methods))
	for _, md := range c.Methods {
		if !token.IsIdentifier(md.Name) {
			return NewSchemaViolation(c.Name, md.Name, "method name must be an identifier", nil)
		}
		if _, ok := methods[md.Name]; ok {
			return NewSchemaViolation(c.Name, md.Name, "duplicate method", nil)
		}
		methods[md.Name] = struct{}{}
		params := make(map[string]struct{}, len(md.Params))
		for _, p := range md.Params {
			if !token.IsIdentifier(p.Name) {
				return NewSchemaViolation(c.Name, md.Name+"."+p.Name, "parameter name must be an identifier", nil)
			}
			if _, ok := params[p.Name]; ok {
				return NewSchemaViolation(c.Name, md.Name+"."+p.Name, "duplicate parameter", nil)
			}
			params[p.Name] = struct{}{}
			if p.Type == nil {
				return NewSchemaViolation(c.Name, md.Name+"."+p.Name, "missing type", nil)
			}
		}
	}
	return nil
}
