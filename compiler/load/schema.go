package load

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/syssam/classgen/schema"
)

// Schema is the serialized form of a schema.Model. The same structure is
// read from YAML, JSON and msgpack documents.
type Schema struct {
	Classes   []*Class    `json:"classes,omitempty" yaml:"classes,omitempty" msgpack:"classes,omitempty"`
	Enums     []*Enum     `json:"enums,omitempty" yaml:"enums,omitempty" msgpack:"enums,omitempty"`
	Constants []*Constant `json:"constants,omitempty" yaml:"constants,omitempty" msgpack:"constants,omitempty"`
}

// Class is a serialized class. Super and Capabilities are exclusive.
type Class struct {
	Name         string       `json:"name" yaml:"name" msgpack:"name"`
	Kind         string       `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Super        string       `json:"super,omitempty" yaml:"super,omitempty" msgpack:"super,omitempty"`
	Capabilities []string     `json:"capabilities,omitempty" yaml:"capabilities,omitempty" msgpack:"capabilities,omitempty"`
	Category     string       `json:"category,omitempty" yaml:"category,omitempty" msgpack:"category,omitempty"`
	Doc          string       `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
	Attributes   []*Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Methods      []*Method    `json:"methods,omitempty" yaml:"methods,omitempty" msgpack:"methods,omitempty"`
}

// Attribute is a serialized attribute. Default holds the literal, either as
// host expression text or as a plain number or boolean.
type Attribute struct {
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Type    string `json:"type" yaml:"type" msgpack:"type"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
	Doc     string `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
}

// Method is a serialized method.
type Method struct {
	Name    string   `json:"name" yaml:"name" msgpack:"name"`
	Params  []*Param `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	Returns string   `json:"returns,omitempty" yaml:"returns,omitempty" msgpack:"returns,omitempty"`
	Const   bool     `json:"const,omitempty" yaml:"const,omitempty" msgpack:"const,omitempty"`
	Doc     string   `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
}

// Param is a serialized method parameter.
type Param struct {
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Type    string `json:"type" yaml:"type" msgpack:"type"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
}

// Enum is a serialized enum.
type Enum struct {
	Name   string       `json:"name" yaml:"name" msgpack:"name"`
	Values []*EnumValue `json:"values" yaml:"values" msgpack:"values"`
	Doc    string       `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
}

// EnumValue is a serialized enum value. A value without a number follows
// the previous one.
type EnumValue struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Value *int   `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
}

// Constant is a serialized global constant.
type Constant struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Type  string `json:"type" yaml:"type" msgpack:"type"`
	Value any    `json:"value" yaml:"value" msgpack:"value"`
	Doc   string `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
}

// Model converts the serialized schema to a schema.Model. Type names are
// left for Model.Bind; rule checking is the generator's job.
func (s *Schema) Model() (*schema.Model, error) {
	m := schema.NewModel()
	for _, c := range s.Classes {
		if c == nil || c.Name == "" {
			return nil, fmt.Errorf("class without a name")
		}
		if _, ok := m.Classes[c.Name]; ok {
			return nil, fmt.Errorf("duplicate class %q", c.Name)
		}
		def, err := c.def()
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
		m.Classes[c.Name] = def
	}
	for _, e := range s.Enums {
		if e == nil || e.Name == "" {
			return nil, fmt.Errorf("enum without a name")
		}
		def := &schema.EnumDef{Name: e.Name, Doc: e.Doc}
		next := 0
		for _, v := range e.Values {
			if v.Value != nil {
				next = *v.Value
			}
			def.Values = append(def.Values, schema.EnumValue{Name: v.Name, Value: next})
			next++
		}
		m.Enums = append(m.Enums, def)
	}
	for _, k := range s.Constants {
		if k == nil || k.Name == "" {
			return nil, fmt.Errorf("constant without a name")
		}
		t, err := schema.ParseType(k.Type)
		if err != nil {
			return nil, fmt.Errorf("constant %q: %w", k.Name, err)
		}
		lit, err := literal(k.Value)
		if err != nil {
			return nil, fmt.Errorf("constant %q: %w", k.Name, err)
		}
		if lit == nil {
			return nil, fmt.Errorf("constant %q has no value", k.Name)
		}
		m.Constants = append(m.Constants, &schema.ConstantDef{Name: k.Name, Type: t, Literal: *lit, Doc: k.Doc})
	}
	return m, nil
}

func (c *Class) def() (*schema.ClassDef, error) {
	def := &schema.ClassDef{
		Name:     c.Name,
		Category: c.Category,
		Doc:      c.Doc,
	}
	switch c.Kind {
	case "", string(schema.ClassRegular):
		def.Kind = schema.ClassRegular
	case string(schema.ClassSubmodule):
		def.Kind = schema.ClassSubmodule
	default:
		return nil, fmt.Errorf("unknown kind %q", c.Kind)
	}
	switch {
	case c.Super != "" && len(c.Capabilities) > 0:
		return nil, fmt.Errorf("super and capabilities cannot be combined")
	case c.Super != "":
		def.Parent = schema.SingleParent{Name: c.Super}
	case len(c.Capabilities) > 0:
		def.Parent = schema.Capabilities{Names: c.Capabilities}
	default:
		def.Parent = schema.NoParent{}
	}
	for _, a := range c.Attributes {
		t, err := schema.ParseType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		lit, err := literal(a.Default)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		def.Attributes = append(def.Attributes, &schema.AttributeDef{Name: a.Name, Type: t, Default: lit, Doc: a.Doc})
	}
	for _, md := range c.Methods {
		method := &schema.MethodDef{Name: md.Name, Const: md.Const, Doc: md.Doc}
		if md.Returns != "" {
			t, err := schema.ParseType(md.Returns)
			if err != nil {
				return nil, fmt.Errorf("method %q: %w", md.Name, err)
			}
			method.Return = t
		}
		for _, p := range md.Params {
			t, err := schema.ParseType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("method %q parameter %q: %w", md.Name, p.Name, err)
			}
			lit, err := literal(p.Default)
			if err != nil {
				return nil, fmt.Errorf("method %q parameter %q: %w", md.Name, p.Name, err)
			}
			method.Params = append(method.Params, &schema.ParamDef{Name: p.Name, Type: t, Default: lit})
		}
		def.Methods = append(def.Methods, method)
	}
	return def, nil
}

// NewSchema returns the serialized form of m. Classes are ordered by name;
// literals are kept as host expression text.
func NewSchema(m *schema.Model) *Schema {
	s := &Schema{}
	for _, name := range m.ClassNames() {
		c := m.Classes[name]
		sc := &Class{
			Name:     c.Name,
			Kind:     string(c.Kind),
			Category: c.Category,
			Doc:      c.Doc,
		}
		if c.Kind == schema.ClassRegular {
			sc.Kind = ""
		}
		if super, ok := c.Superclass(); ok {
			sc.Super = super
		}
		sc.Capabilities = c.CapabilityNames()
		for _, a := range c.Attributes {
			sc.Attributes = append(sc.Attributes, &Attribute{Name: a.Name, Type: a.Type.String(), Default: text(a.Default), Doc: a.Doc})
		}
		for _, md := range c.Methods {
			sm := &Method{Name: md.Name, Const: md.Const, Doc: md.Doc}
			if md.Return != nil {
				sm.Returns = md.Return.String()
			}
			for _, p := range md.Params {
				sm.Params = append(sm.Params, &Param{Name: p.Name, Type: p.Type.String(), Default: text(p.Default)})
			}
			sc.Methods = append(sc.Methods, sm)
		}
		s.Classes = append(s.Classes, sc)
	}
	for _, e := range m.Enums {
		se := &Enum{Name: e.Name, Doc: e.Doc}
		for _, v := range e.Values {
			se.Values = append(se.Values, &EnumValue{Name: v.Name, Value: &v.Value})
		}
		s.Enums = append(s.Enums, se)
	}
	for _, k := range m.Constants {
		s.Constants = append(s.Constants, &Constant{Name: k.Name, Type: k.Type.String(), Value: k.Literal, Doc: k.Doc})
	}
	return s
}

func text(lit *string) any {
	if lit == nil {
		return nil
	}
	return *lit
}

// literal returns the host expression text of a decoded default. Strings
// are taken as written; numbers and booleans are spelled in host syntax.
func literal(v any) (*string, error) {
	var s string
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case bool:
		s = "False"
		if v {
			s = "True"
		}
	case json.Number:
		s = v.String()
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			s = strconv.FormatInt(rv.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			s = strconv.FormatUint(rv.Uint(), 10)
		case reflect.Float32, reflect.Float64:
			s = strconv.FormatFloat(rv.Float(), 'g', -1, 64)
		default:
			return nil, fmt.Errorf("unsupported literal %v of type %T", v, v)
		}
	}
	return &s, nil
}
