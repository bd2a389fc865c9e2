package gen

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/syssam/classgen"
	"github.com/syssam/classgen/schema"
)

// Container is one distinct List instantiation, bound as an opaque type.
type Container struct {
	// Name is the Go and host name of the container.
	Name string
	// Type is the List type.
	Type *schema.TypeRef
	// Numeric tells which numeric arrays convert to the container.
	Numeric classgen.NumericKind
}

// Elem returns the element type.
func (c *Container) Elem() *schema.TypeRef { return c.Type.Elem }

// ContainerName returns the container name of the List type t. It is a
// pure function of the element type: "Vector" followed by the element
// token, so List<List<U>> is named VectorVectorU.
func ContainerName(t *schema.TypeRef) string {
	return "Vector" + typeToken(t.Elem)
}

func typeToken(t *schema.TypeRef) string {
	switch t.Kind {
	case schema.KindList:
		return ContainerName(t)
	case schema.KindDict:
		return "Dict" + typeToken(t.Key) + typeToken(t.Elem)
	case schema.KindFunc:
		return "Func" + typeToken(t.Elem)
	case schema.KindObject, schema.KindEnum, schema.KindNamed:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// ScanContainers collects every distinct List type used by the model:
// attribute types, method signatures and constants, including lists
// nested in other types. The result is sorted by name. Two List types
// of different Go types that mangle to the same name are a naming
// collision.
func ScanContainers(m *schema.Model) ([]*Container, error) {
	var (
		err  error
		seen = make(map[string]*Container)
	)
	visit := func(t *schema.TypeRef) {
		t.Walk(func(n *schema.TypeRef) {
			if !n.IsList() || err != nil {
				return
			}
			name := ContainerName(n)
			if c, ok := seen[name]; ok {
				if goTypeText(c.Elem()) != goTypeText(n.Elem) {
					err = NewNamingCollision(name, c.Type.String(), n.String())
				}
				return
			}
			c := &Container{Name: name, Type: n.Clone()}
			switch n.Elem.Kind {
			case schema.KindFloat:
				c.Numeric = classgen.NumericFloat
			case schema.KindInt:
				c.Numeric = classgen.NumericInt
			}
			seen[name] = c
		})
	}
	for _, name := range m.ClassNames() {
		c := m.Classes[name]
		for _, a := range c.Attributes {
			visit(a.Type)
		}
		for _, md := range c.Methods {
			for _, p := range md.Params {
				visit(p.Type)
			}
			visit(md.Return)
		}
	}
	for _, k := range m.Constants {
		visit(k.Type)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*Container, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Container) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// goTypeText returns the Go spelling of t. Element types that differ only
// in nullability share one container.
func goTypeText(t *schema.TypeRef) string {
	return fmt.Sprintf("%#v", goType(t))
}
