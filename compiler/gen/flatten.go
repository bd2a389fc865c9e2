package gen

import (
	"strings"

	"github.com/syssam/classgen/schema"
)

// Flatten merges the members a class inherits into a new Class.
//
// With a single superclass, the superclass's own attributes and methods
// are appended after the class's own entries, tagged Inherited, each list
// keeping its declared order. An inherited attribute whose name is also
// declared by the class is kept and flagged ExcludedFromCtor. The
// superclass must itself be a root class.
//
// With capability superclasses, only their methods are unioned into
// Exposed; attributes are not flattened.
func Flatten(m *schema.Model, def *schema.ClassDef) (*Class, error) {
	c := &Class{
		def:      def,
		Name:     def.Name,
		Kind:     def.Kind,
		Category: def.Category,
		Doc:      oneLine(def.Doc),
	}
	for _, a := range def.Attributes {
		c.Attributes = append(c.Attributes, &Attribute{AttributeDef: cloneAttr(a), Owner: def.Name})
	}
	for _, md := range def.Methods {
		c.Methods = append(c.Methods, &Method{MethodDef: cloneMethod(md), Owner: def.Name})
	}
	switch p := def.Parent.(type) {
	case schema.SingleParent:
		super, err := parent(m, def, p.Name, "superclass")
		if err != nil {
			return nil, err
		}
		if !super.IsRoot() {
			return nil, NewSchemaViolation(def.Name, "", "superclass "+super.Name+" has superclasses of its own; only one inheritance level is supported", nil)
		}
		c.Super = super.Name
		for _, a := range super.Attributes {
			x := cloneAttr(a)
			x.Inherited = true
			if _, ok := def.Attribute(a.Name); ok {
				x.ExcludedFromCtor = true
			}
			c.Attributes = append(c.Attributes, &Attribute{AttributeDef: x, Owner: super.Name})
		}
		for _, md := range super.Methods {
			x := cloneMethod(md)
			x.Inherited = true
			c.Methods = append(c.Methods, &Method{MethodDef: x, Owner: super.Name})
		}
	case schema.Capabilities:
		c.Capabilities = append([]string(nil), p.Names...)
	}
	seen := make(map[string]struct{})
	expose := func(m *Method) {
		if _, ok := seen[m.Name]; ok {
			return
		}
		seen[m.Name] = struct{}{}
		c.Exposed = append(c.Exposed, m)
	}
	for _, md := range c.Methods {
		expose(md)
	}
	for _, name := range c.Capabilities {
		cp, err := parent(m, def, name, "capability")
		if err != nil {
			return nil, err
		}
		for _, md := range cp.Methods {
			expose(&Method{MethodDef: cloneMethod(md), Owner: cp.Name})
		}
	}
	return c, nil
}

func parent(m *schema.Model, def *schema.ClassDef, name, role string) (*schema.ClassDef, error) {
	if name == def.Name {
		return nil, NewSchemaViolation(def.Name, "", "class cannot be its own "+role, nil)
	}
	p, ok := m.Class(name)
	if !ok {
		return nil, NewSchemaViolation(def.Name, "", "unknown "+role+" "+name, nil)
	}
	return p, nil
}

func cloneAttr(a *schema.AttributeDef) *schema.AttributeDef {
	x := *a
	x.Type = a.Type.Clone()
	x.Doc = oneLine(a.Doc)
	return &x
}

func cloneMethod(md *schema.MethodDef) *schema.MethodDef {
	x := *md
	x.Return = md.Return.Clone()
	x.Doc = oneLine(md.Doc)
	x.Params = make([]*schema.ParamDef, len(md.Params))
	for i, p := range md.Params {
		y := *p
		y.Type = p.Type.Clone()
		x.Params[i] = &y
	}
	return &x
}

// oneLine folds documentation text into one line for Go comments.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
